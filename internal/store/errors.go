package store

import "errors"

var (
	// ErrNoStore is returned when a store file does not exist.
	ErrNoStore = errors.New("could not find a store")
	// ErrAlreadyPresent is returned when creating a store whose file exists.
	ErrAlreadyPresent = errors.New("a store is already present")
	// ErrDuplicateCredential is returned when adding an existing user/password pair.
	ErrDuplicateCredential = errors.New("credential already exists")
	// ErrInvalidCredential is returned for credentials missing a user or password.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrUnexpectedFilterSyntax is returned for filters not shaped like <field>/<value>.
	ErrUnexpectedFilterSyntax = errors.New("unexpected filter syntax")
	// ErrInvalidName is returned for store names containing path separators or NUL.
	ErrInvalidName = errors.New("invalid store name")
	// ErrSerialization is returned when a decrypted payload is not a credential list.
	ErrSerialization = errors.New("could not serialize or deserialize store")
	// ErrLocked is returned when another process holds the store lock.
	ErrLocked = errors.New("store is locked by another process")
)
