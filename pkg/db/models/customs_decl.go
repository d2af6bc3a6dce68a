package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	"github.com/tijaralink/tijaralink-backend/pkg/types"
)

// CustomsDecl is a customs declaration filed against a shipment. Data is
// an opaque broker payload (HS code, document list, whatever the filing
// agent attaches); only the status column is interpreted by the server.
type CustomsDecl struct {
	ID         uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShipmentID uuid.UUID           `gorm:"column:shipment_id;type:uuid;not null" json:"shipment_id"`
	Data       types.JSONMap       `gorm:"column:data;type:jsonb" json:"data"`
	Status     enums.CustomsStatus `gorm:"column:status;type:customs_status;not null;default:'DRAFT'" json:"status"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
