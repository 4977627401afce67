// Command lectern-useradd registers a user in the lectern database.
//
//	lectern-useradd -username alice -full-name "Alice A" -email a@x.com
//
// The password is read without echo when stdin is a terminal, otherwise
// from the first line of stdin. With -generate-password a random password is
// created and printed once instead. Database and hashing settings come from the
// same LECTERN_* environment variables as the server.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aussiebroadwan/lectern/internal/auth/app"
	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/internal/auth/service"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "lectern-useradd:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin *os.File, stdout io.Writer) error {
	fs := flag.NewFlagSet("lectern-useradd", flag.ContinueOnError)
	username := fs.String("username", "", "login name (required)")
	fullName := fs.String("full-name", "", "display name (required)")
	email := fs.String("email", "", "email address (required)")
	generate := fs.Bool("generate-password", false, "create a random password and print it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *fullName == "" || *email == "" {
		fs.Usage()
		return errors.New("-username, -full-name and -email are required")
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateStorage(); err != nil {
		return err
	}

	var password string
	if *generate {
		password, err = cryptox.GeneratePassword()
	} else {
		password, err = readNewPassword(stdin, stdout)
	}
	if err != nil {
		return err
	}

	db, creds, err := app.OpenCredentials(cfg, app.NewLogger(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := creds.Register(ctx, domain.RegisterParams{
		FullName: *fullName,
		Username: *username,
		Email:    *email,
		Password: password,
	})
	switch {
	case errors.Is(err, service.ErrDuplicateIdentity):
		return fmt.Errorf("username or email already registered")
	case err != nil:
		return err
	}

	fmt.Fprintf(stdout, "created user %q with id %d\n", *username, id)
	if *generate {
		fmt.Fprintf(stdout, "password: %s\n", password)
	}
	return nil
}

func readNewPassword(stdin *os.File, stdout io.Writer) (string, error) {
	fd := int(stdin.Fd())
	if !isTerminal(fd) {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", errors.New("empty password on stdin")
		}
		return password, nil
	}

	fmt.Fprint(stdout, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(stdout, "Repeat password: ")
	second, err := readPassword(fd)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("empty password")
	}
	return string(first), nil
}
