package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
)

// CreateRequest carries the rating a buyer leaves on a completed order.
type CreateRequest struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Text   *string `json:"text,omitempty"`
}

// ReviewDTO is the projection of a review returned by the API.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	CompanyID uuid.UUID `json:"company_id"`
	Rating    int       `json:"rating"`
	Text      *string   `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierReviewsDTO is the supplier-facing listing with the aggregate score.
type SupplierReviewsDTO struct {
	Reviews []ReviewDTO `json:"reviews"`
	Avg     float64     `json:"avg"`
}

// FromModel projects a review row into its DTO.
func FromModel(row *models.Review) ReviewDTO {
	return ReviewDTO{
		ID:        row.ID,
		OrderID:   row.OrderID,
		CompanyID: row.CompanyID,
		Rating:    row.Rating,
		Text:      row.Text,
		CreatedAt: row.CreatedAt,
	}
}
