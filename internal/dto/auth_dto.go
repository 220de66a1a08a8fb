package dto

// RegisterRequest creates a new administrator credential.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest exchanges a credential for a bearer token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the signed session token.
type AuthResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
