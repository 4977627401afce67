package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/internal/auth/store"
	"github.com/aussiebroadwan/lectern/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

// CreateUser relies on the UNIQUE constraints on username and email, so two
// racing registrations resolve inside SQLite and the loser gets
// store.ErrAlreadyExists.
func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	id, err := r.q.CreateUser(ctx, gen.CreateUserParams{
		FullName:     u.FullName,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    createdAt.UTC(),
	})
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := r.q.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r *usersRepo) DeleteUserByUsername(ctx context.Context, username string) error {
	n, err := r.q.DeleteUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
