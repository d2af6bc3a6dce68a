package auth

import (
	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// RegisterRequest contains the payload required for onboarding a new company.
type RegisterRequest struct {
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=8"`
	FullName           string  `json:"full_name" validate:"required"`
	CompanyName        string  `json:"company_name" validate:"required"`
	Role               string  `json:"role" validate:"required"`
	CompanyCountryCode *string `json:"company_country_code,omitempty" validate:"omitempty,len=2"`
	VatNumber          *string `json:"vat_number,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the public projection of a user returned by auth endpoints.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FullName  string         `json:"full_name"`
	Role      enums.UserRole `json:"role"`
	CompanyID uuid.UUID      `json:"company_id"`
}

// AuthResponse contains the bearer token and user produced by register/login.
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	User        UserDTO `json:"user"`
}

// FromModel projects a user row into its DTO.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}
}
