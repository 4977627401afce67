package domain

import "time"

// User is the stored identity record. PasswordHash never leaves the
// credential store; callers outside it receive an Identity.
type User struct {
	ID           int64
	FullName     string
	Username     string
	Email        string
	PasswordHash string // bcrypt or argon2id encoded
	CreatedAt    time.Time
}

// Identity is the public-safe projection of a User.
type Identity struct {
	ID       int64     `json:"id"`
	FullName string    `json:"full_name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Created  time.Time `json:"created_at"`
}

// Identity drops the hash.
func (u User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		FullName: u.FullName,
		Username: u.Username,
		Email:    u.Email,
		Created:  u.CreatedAt,
	}
}

// RegisterParams is the input to registration. Password is plaintext and
// is hashed before it reaches the store.
type RegisterParams struct {
	FullName string
	Username string
	Email    string
	Password string
}
