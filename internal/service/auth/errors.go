package auth

import "errors"

// Verification errors returned by Verify.
var (
	// ErrMissingSignature indicates the init data carries no hash field
	ErrMissingSignature = errors.New("init data signature is missing")

	// ErrInvalidSignature indicates the hash does not match the signed fields
	ErrInvalidSignature = errors.New("init data signature is invalid")

	// ErrExpired indicates auth_date is older than the allowed age
	ErrExpired = errors.New("init data has expired")

	// ErrMalformedAuthDate indicates auth_date is present but not a Unix timestamp
	ErrMalformedAuthDate = errors.New("init data auth_date is malformed")

	// ErrMissingIdentity indicates the signed payload has no usable user object
	ErrMissingIdentity = errors.New("init data does not identify a user")
)
