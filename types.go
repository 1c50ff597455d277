package credgate

import (
	"context"
	"time"
)

// UserRecord is the stored account shape. PasswordDigest is the opaque
// PHC-encoded output of the password hasher; the plaintext is never stored
// and the digest must never appear in a response body.
type UserRecord struct {
	Username       string
	PasswordDigest string
	Email          string
	CreatedAt      time.Time
}

// UserRepository is the interface callers implement to integrate credgate
// with their user database. Username is the unique key; uniqueness is
// enforced at write time by Save, not by an in-process lock, so a race
// between concurrent registrations resolves at the store.
//
// FindByUsername returns [ErrUserNotFound] for absent users. Save returns
// [ErrDuplicateUser] when the username is already taken and must not mutate
// the store in that case. Reads are assumed to observe prior writes
// (read-your-writes) for the duplicate check in Register.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*UserRecord, error)
	Save(ctx context.Context, record UserRecord) error
	ListUsernames(ctx context.Context) ([]string, error)
}

// RegisterInput is the input for [Pipeline.Register]. Email is optional and
// not validated by the pipeline.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// LoginResult is returned by [Pipeline.Login] on success. Token is a signed
// bearer token whose subject is the stored username.
type LoginResult struct {
	Token   string
	Subject string
}
