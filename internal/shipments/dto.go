package shipments

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	"github.com/tijaralink/tijaralink-backend/pkg/types"
)

// CreateRequest is the payload for booking a shipment against an order.
// tracking_number is accepted as an alias of tracking.
type CreateRequest struct {
	Mode           string  `json:"mode,omitempty"`
	Tracking       *string `json:"tracking,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

// StatusRequest carries a requested status transition.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CustomsCreateRequest is the payload for attaching a customs declaration.
type CustomsCreateRequest struct {
	Data   types.JSONMap `json:"data,omitempty"`
	Status *string       `json:"status,omitempty"`
}

// CustomsDTO is the projection of a customs declaration.
type CustomsDTO struct {
	ID         uuid.UUID           `json:"id"`
	ShipmentID uuid.UUID           `json:"shipment_id"`
	Data       types.JSONMap       `json:"data,omitempty"`
	Status     enums.CustomsStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ShipmentDTO is the projection of a shipment with its declarations.
type ShipmentDTO struct {
	ID        uuid.UUID            `json:"id"`
	OrderID   uuid.UUID            `json:"order_id"`
	Mode      enums.ShipmentMode   `json:"mode"`
	Tracking  *string              `json:"tracking,omitempty"`
	Status    enums.ShipmentStatus `json:"status"`
	Customs   []CustomsDTO         `json:"customs"`
	CreatedAt time.Time            `json:"created_at"`
}

// CustomsFromModel projects a customs declaration row into its DTO.
func CustomsFromModel(row *models.CustomsDecl) CustomsDTO {
	return CustomsDTO{
		ID:         row.ID,
		ShipmentID: row.ShipmentID,
		Data:       row.Data,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
	}
}

// FromModel projects a shipment row (customs preloaded) into its DTO.
func FromModel(row *models.Shipment) ShipmentDTO {
	customs := make([]CustomsDTO, 0, len(row.Customs))
	for i := range row.Customs {
		customs = append(customs, CustomsFromModel(&row.Customs[i]))
	}
	return ShipmentDTO{
		ID:        row.ID,
		OrderID:   row.OrderID,
		Mode:      row.Mode,
		Tracking:  row.Tracking,
		Status:    row.Status,
		Customs:   customs,
		CreatedAt: row.CreatedAt,
	}
}
