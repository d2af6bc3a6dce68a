package quotes

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// CreateRequest is the payload a supplier submits against an RFQ.
type CreateRequest struct {
	RfqID             uuid.UUID `json:"rfq_id" validate:"required"`
	PricePerUnitMinor int64     `json:"price_per_unit_minor" validate:"required"`
	Currency          string    `json:"currency,omitempty"`
	MOQ               *int      `json:"moq,omitempty" validate:"omitempty,min=1"`
	LeadTimeDays      *int      `json:"lead_time_days,omitempty" validate:"omitempty,min=0"`
}

// QuoteDTO is the projection returned by quote endpoints.
type QuoteDTO struct {
	ID                uuid.UUID         `json:"id"`
	RfqID             uuid.UUID         `json:"rfq_id"`
	SupplierCompanyID uuid.UUID         `json:"supplier_company_id"`
	Currency          string            `json:"currency"`
	PricePerUnitMinor int64             `json:"price_per_unit_minor"`
	MOQ               *int              `json:"moq,omitempty"`
	LeadTimeDays      *int              `json:"lead_time_days,omitempty"`
	Status            enums.QuoteStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
}

// FromModel projects a quote row into its DTO.
func FromModel(row *models.Quote) QuoteDTO {
	return QuoteDTO{
		ID:                row.ID,
		RfqID:             row.RfqID,
		SupplierCompanyID: row.SupplierCompanyID,
		Currency:          row.Currency,
		PricePerUnitMinor: row.PricePerUnitMinor,
		MOQ:               row.MOQ,
		LeadTimeDays:      row.LeadTimeDays,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
	}
}
