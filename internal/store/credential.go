package store

import "fmt"

// Credential is one login record. Tag and Site are optional; empty means absent.
type Credential struct {
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Tag      string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Site     string `json:"site,omitempty" yaml:"site,omitempty"`
}

// Validate checks the required fields
func (c Credential) Validate() error {
	if c.User == "" {
		return fmt.Errorf("%w: user must not be empty", ErrInvalidCredential)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidCredential)
	}
	return nil
}

// Matches reports whether c has exactly the given user and password
func (c Credential) Matches(user, password string) bool {
	return c.User == user && c.Password == password
}
