package auth

import (
	"github.com/quickwishapp/quickwish-backend/internal/users"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
)

// RegisterRequest captures the payload for creating an account. Role may be
// "user" or "agent"; admins are never self-assigned.
type RegisterRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Phone    *string         `json:"phone,omitempty"`
	Role     *enums.UserRole `json:"role,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a refresh token. The expired access token is sent
// along so its jti can be matched against the stored session.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse contains the token pair and user produced by a successful
// register, login, or refresh.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
