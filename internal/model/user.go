package model

import (
	"net/mail"
	"strings"
)

// User is the customer record returned by the identity endpoints.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validate checks a user record decoded from the backend or storage.
func (u User) Validate() error {
	if u.ID <= 0 {
		return ValidationError("id", "must be positive")
	}
	return nil
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login form.
func (c Credentials) Validate() error {
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return ValidationError("email", "is not a valid address")
	}
	if c.Password == "" {
		return ValidationError("password", "is required")
	}
	return nil
}

// Registration is the sign-up payload.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
}

// Validate checks the sign-up form.
func (r Registration) Validate() error {
	if err := (Credentials{Email: r.Email, Password: r.Password}).Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return ValidationError("firstName", "is required")
	}
	return nil
}

// GoogleToken carries the Google identity credential.
type GoogleToken struct {
	Token string `json:"token"`
}

// Validate checks that a credential is present.
func (g GoogleToken) Validate() error {
	if strings.TrimSpace(g.Token) == "" {
		return ValidationError("token", "is required")
	}
	return nil
}

// ProfileUpdate is the payload for PUT /api/auth/update-profile/{id}.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone"`
}

// Validate checks the profile form.
func (p ProfileUpdate) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return ValidationError("firstName", "is required")
	}
	return nil
}
