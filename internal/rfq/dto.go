package rfq

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// CreateRequest is the payload for posting a new RFQ.
type CreateRequest struct {
	Title              string  `json:"title" validate:"required"`
	Details            *string `json:"details,omitempty"`
	DestinationCountry *string `json:"destination_country,omitempty" validate:"omitempty,len=2"`
}

// ListParams carries cursor pagination inputs for the open RFQ feed.
type ListParams struct {
	Limit  int
	Cursor string
}

// RfqListDTO is one page of the RFQ feed.
type RfqListDTO struct {
	Rfqs       []RfqDTO `json:"rfqs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// RfqDTO is the listing projection of an RFQ.
type RfqDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Status             enums.RfqStatus `json:"status"`
	DestinationCountry *string         `json:"destination_country,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// FromModel projects an RFQ row into its DTO.
func FromModel(row *models.Rfq) RfqDTO {
	return RfqDTO{
		ID:                 row.ID,
		Title:              row.Title,
		Status:             row.Status,
		DestinationCountry: row.DestinationCountry,
		CreatedAt:          row.CreatedAt,
	}
}
