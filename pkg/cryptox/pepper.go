package cryptox

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const pepperSize = 32

// LoadOrGeneratePepper reads the pepper stored at path, creating the file
// with a fresh random value when it does not exist yet. An empty path means
// no pepper. Losing the file makes every stored password unverifiable.
func LoadOrGeneratePepper(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			return nil, fmt.Errorf("cryptox: pepper file %s is empty", path)
		}
		return raw, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("cryptox: read pepper: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	buf := make([]byte, pepperSize)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	pepper := []byte(base64.RawURLEncoding.EncodeToString(buf))

	// O_EXCL so two processes starting together cannot both write a pepper.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return LoadOrGeneratePepper(path)
		}
		return nil, fmt.Errorf("cryptox: write pepper: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(pepper); err != nil {
		return nil, fmt.Errorf("cryptox: write pepper: %w", err)
	}
	return pepper, nil
}
