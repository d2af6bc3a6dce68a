package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// Shipment is one transport leg of an order.
type Shipment struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID            `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	Mode      enums.ShipmentMode   `gorm:"column:mode;type:shipment_mode;not null;default:'SEA'" json:"mode"`
	Tracking  *string              `gorm:"column:tracking" json:"tracking,omitempty"`
	Status    enums.ShipmentStatus `gorm:"column:status;type:shipment_status;not null;default:'BOOKED'" json:"status"`
	Customs   []CustomsDecl        `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE" json:"customs,omitempty"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
