package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Email     string
	FullName  string
	Role      enums.UserRole
}

// AccessTokenClaims represents the typed JWT issued to clients. The company
// id is what authorization checks compare against resource ownership.
type AccessTokenClaims struct {
	UserID    uuid.UUID      `json:"user_id"`
	CompanyID uuid.UUID      `json:"company_id"`
	Email     string         `json:"email"`
	FullName  string         `json:"full_name"`
	Role      enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
