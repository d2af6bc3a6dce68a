package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract pins an order to the SHA-256 digest of its terms text. The
// terms themselves are kept out-of-band; only the hash is persisted, so
// verification requires the original document. Signature timestamps are
// write-once per party.
type Contract struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID          uuid.UUID  `gorm:"column:order_id;type:uuid;not null;uniqueIndex" json:"order_id"`
	Hash             string     `gorm:"column:hash;type:char(64);not null" json:"hash"`
	BuyerSignedAt    *time.Time `gorm:"column:buyer_signed_at" json:"buyer_signed_at,omitempty"`
	SupplierSignedAt *time.Time `gorm:"column:supplier_signed_at" json:"supplier_signed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
