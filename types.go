package assets

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore retrieves user records by their exact username.
// Implementations return a go-errors NotFound error for unknown users.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// AssetStore is the durable table of asset records. LoadAll
// reconstructs the full list on every call; no snapshot survives
// across the read-decide-write gap. UpdateStatus performs the whole
// load-mutate-save cycle against durable storage.
type AssetStore interface {
	LoadAll(ctx context.Context) ([]Asset, error)
	UpdateStatus(ctx context.Context, id string, status Status) (UpdateResult, error)
}

// PasswordVerifier checks a cleartext secret against a stored hash.
// The zero implementation is bcrypt (see BcryptVerifier); tests swap
// in cheaper fakes.
type PasswordVerifier interface {
	ComparePasswordAndHash(password, hash string) error
}

// Authenticator holds methods to establish sessions
type Authenticator interface {
	Login(ctx context.Context, username, secret string) (*Session, error)
}

// TokenService mints and validates session-carrying tokens
type TokenService interface {
	Generate(session *Session) (string, error)
	Validate(raw string) (*Session, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ASSETS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] ASSETS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ASSETS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ASSETS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
