package assets

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Auther verifies username/secret pairs against a CredentialStore and
// produces Sessions. It sits on the login path only; per-request
// authorization happens in the gate.
type Auther struct {
	credentials CredentialStore
	verifier    PasswordVerifier
	logger      Logger
}

// NewAuthenticator returns a new Authenticator backed by the given
// credential store.
func NewAuthenticator(credentials CredentialStore) *Auther {
	return &Auther{
		credentials: credentials,
		verifier:    BcryptVerifier{},
		logger:      defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithPasswordVerifier swaps the hash verification capability.
func (a *Auther) WithPasswordVerifier(verifier PasswordVerifier) *Auther {
	if verifier != nil {
		a.verifier = verifier
	}
	return a
}

// Login looks the username up (case-sensitive, exact) and verifies
// the secret against the stored hash. Unknown user and wrong secret
// collapse into the same ErrInvalidCredentials so callers cannot
// enumerate identities. Success yields a Session with the role
// normalized to lowercase.
func (a *Auther) Login(ctx context.Context, username, secret string) (*Session, error) {
	user, err := a.credentials.FindByUsername(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			a.logger.Debug("login unknown username %q", username)
			return nil, ErrInvalidCredentials
		}
		a.logger.Error("login credential lookup failed: %v", err)
		return nil, WrapStorageError(err, "failed to read credential table")
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := a.verifier.ComparePasswordAndHash(secret, user.PasswordHash); err != nil {
		a.logger.Debug("login secret mismatch for %q", username)
		return nil, ErrInvalidCredentials
	}

	return NewSession(user), nil
}

var _ Authenticator = (*Auther)(nil)
