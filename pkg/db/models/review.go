package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is the buyer's post-delivery rating of the order's supplier.
// One review per order, enforced by the unique index on order_id.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex" json:"order_id"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null" json:"company_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Text      *string   `gorm:"column:text" json:"text,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
