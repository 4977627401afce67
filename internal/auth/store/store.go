package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this
// and expose one sub-repository per table.
type Store interface {
	Users() Users
	Lectures() Lectures

	ApplyMigrations() error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts u and returns the assigned id. A username or email
	// collision returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UsernameExists is an existence probe that does not read the hash.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// DeleteUserByUsername returns ErrNotFound when nothing was deleted.
	DeleteUserByUsername(ctx context.Context, username string) error
}

type Lectures interface {
	// UpsertPage inserts the page or replaces the data of an existing one.
	UpsertPage(ctx context.Context, p domain.LecturePage) error

	// ListPages returns the pages of a lecture ordered by page number.
	ListPages(ctx context.Context, subject, lecture string) ([]domain.LecturePage, error)
}
