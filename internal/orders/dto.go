package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/internal/contracts"
	"github.com/tijaralink/tijaralink-backend/internal/reviews"
	"github.com/tijaralink/tijaralink-backend/internal/shipments"
	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// CreateRequest is the payload for placing an order from an accepted quote.
// total_minor and total_currency default to the quote's price when omitted.
type CreateRequest struct {
	QuoteID       uuid.UUID `json:"quote_id" validate:"required"`
	TotalMinor    *int64    `json:"total_minor,omitempty"`
	TotalCurrency *string   `json:"total_currency,omitempty"`
}

// EscrowDTO is the projection of an order's escrow row.
type EscrowDTO struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    uuid.UUID  `json:"order_id"`
	HeldMinor  int64      `json:"held_minor"`
	Currency   string     `json:"currency"`
	Released   bool       `json:"released"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OrderItemDTO is the projection of a line item.
type OrderItemDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	Unit      *string   `json:"unit,omitempty"`
	UnitMinor int64     `json:"unit_minor"`
}

// OrderDTO is the enriched order projection with all of its satellites.
type OrderDTO struct {
	ID                uuid.UUID                 `json:"id"`
	QuoteID           uuid.UUID                 `json:"quote_id"`
	BuyerCompanyID    uuid.UUID                 `json:"buyer_company_id"`
	SupplierCompanyID uuid.UUID                 `json:"supplier_company_id"`
	TotalMinor        int64                     `json:"total_minor"`
	TotalCurrency     string                    `json:"total_currency"`
	Status            enums.OrderStatus         `json:"status"`
	Escrow            *EscrowDTO                `json:"escrow,omitempty"`
	Items             []OrderItemDTO            `json:"items"`
	Shipments         []shipments.ShipmentDTO   `json:"shipments"`
	Contract          *contracts.ContractDTO    `json:"contract,omitempty"`
	Review            *reviews.ReviewDTO        `json:"review,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// EscrowFromModel projects an escrow row into its DTO.
func EscrowFromModel(row *models.Escrow) EscrowDTO {
	return EscrowDTO{
		ID:         row.ID,
		OrderID:    row.OrderID,
		HeldMinor:  row.HeldMinor,
		Currency:   row.Currency,
		Released:   row.Released,
		ReleasedAt: row.ReleasedAt,
		CreatedAt:  row.CreatedAt,
	}
}

// FromModel projects an order row (satellites preloaded) into its DTO.
func FromModel(row *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:                row.ID,
		QuoteID:           row.QuoteID,
		BuyerCompanyID:    row.BuyerCompanyID,
		SupplierCompanyID: row.SupplierCompanyID,
		TotalMinor:        row.TotalMinor,
		TotalCurrency:     row.TotalCurrency,
		Status:            row.Status,
		Items:             make([]OrderItemDTO, 0, len(row.Items)),
		Shipments:         make([]shipments.ShipmentDTO, 0, len(row.Shipments)),
		CreatedAt:         row.CreatedAt,
	}
	if row.Escrow != nil {
		escrow := EscrowFromModel(row.Escrow)
		dto.Escrow = &escrow
	}
	for i := range row.Items {
		item := &row.Items[i]
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:        item.ID,
			Name:      item.Name,
			Qty:       item.Qty,
			Unit:      item.Unit,
			UnitMinor: item.UnitMinor,
		})
	}
	for i := range row.Shipments {
		dto.Shipments = append(dto.Shipments, shipments.FromModel(&row.Shipments[i]))
	}
	if row.Contract != nil {
		contract := contracts.FromModel(row.Contract)
		dto.Contract = &contract
	}
	if row.Review != nil {
		review := reviews.FromModel(row.Review)
		dto.Review = &review
	}
	return dto
}
