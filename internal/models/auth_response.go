package models

// AuthResponse is returned by register and login. It only ever carries the token.
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}
