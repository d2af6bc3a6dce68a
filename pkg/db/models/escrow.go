package models

import (
	"time"

	"github.com/google/uuid"
)

// Escrow holds the order total until the buyer releases it. released is
// monotonic false→true; released_at records the single release instant.
type Escrow struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID  `gorm:"column:order_id;type:uuid;not null;uniqueIndex" json:"order_id"`
	HeldMinor  int64      `gorm:"column:held_minor;not null" json:"held_minor"`
	Currency   string     `gorm:"column:currency;type:char(3);not null" json:"currency"`
	Released   bool       `gorm:"column:released;not null;default:false" json:"released"`
	ReleasedAt *time.Time `gorm:"column:released_at" json:"released_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
