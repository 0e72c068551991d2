package assets

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeRoleNotAllowed     = "ROLE_NOT_ALLOWED"
	textCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	textCodeInvalidStatus      = "INVALID_ASSET_STATUS"
)

// ErrInvalidCredentials is returned for unknown users and wrong
// secrets alike; the two cases are deliberately indistinguishable to
// the caller.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnauthorized is returned when an authenticated session's role
// does not permit the requested action. No state is mutated.
var ErrUnauthorized = goerrors.New("role not allowed to perform action", goerrors.CategoryAuthz).
	WithTextCode(textCodeRoleNotAllowed).
	WithCode(goerrors.CodeForbidden)

// ErrStorageUnavailable is returned when the durable table cannot be
// read or written. It aborts the single request; the table is
// revisited fresh on the next one.
var ErrStorageUnavailable = goerrors.New("asset table unavailable", goerrors.CategoryOperation).
	WithTextCode(textCodeStorageUnavailable).
	WithCode(goerrors.CodeInternal)

// ErrInvalidStatus is returned when a target status is not one of the
// five lifecycle states.
var ErrInvalidStatus = goerrors.New("unknown asset status", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidStatus).
	WithCode(goerrors.CodeBadRequest)

// WrapStorageError decorates a store failure with the storage
// taxonomy while keeping the cause inspectable through errors.Is.
func WrapStorageError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, msg).
		WithTextCode(textCodeStorageUnavailable).
		WithCode(goerrors.CodeInternal)
}
