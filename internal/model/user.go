package model

import "time"

// User represents a registered account. PasswordHash and AccessToken never
// leave the service except for the token on register and login.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	AccessToken  string
	Watchlist    []ShowEntry
	CreatedAt    time.Time
}

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// LoginRequest is the body of POST /sessions.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	AccessToken string `json:"accessToken"`
}

// WhoAmIResponse echoes the identity resolved by the auth guard.
type WhoAmIResponse struct {
	Name       string `json:"name"`
	UserID     string `json:"userId"`
	Authorized bool   `json:"authorized"`
}

// AuthFailureResponse is written by the auth guard when it rejects a request.
type AuthFailureResponse struct {
	Authorized bool `json:"authorized"`
}

// NotFoundResponse is the uniform login failure body.
type NotFoundResponse struct {
	NotFound bool `json:"notFound"`
}

// MessageResponse carries a human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a message and, for diagnostics only, the raw cause.
type ErrorResponse struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}
