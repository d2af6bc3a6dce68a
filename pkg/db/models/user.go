package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// User represents the canonical identity entity. Every user belongs to
// exactly one company and carries a single role.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID    uuid.UUID      `gorm:"column:company_id;type:uuid;not null" json:"company_id"`
	Email        string         `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	FullName     string         `gorm:"column:full_name;not null" json:"full_name"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null" json:"role"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
