package contracts

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
)

// CreateRequest optionally carries the contract terms. The terms themselves
// are never persisted, only their hash.
type CreateRequest struct {
	Terms *string `json:"terms,omitempty"`
}

// SignRequest names the party signing the contract.
type SignRequest struct {
	Role string `json:"role" validate:"required"`
}

// ContractDTO is the projection of a contract returned by the API.
type ContractDTO struct {
	ID               uuid.UUID  `json:"id"`
	OrderID          uuid.UUID  `json:"order_id"`
	Hash             string     `json:"hash"`
	BuyerSignedAt    *time.Time `json:"buyer_signed_at,omitempty"`
	SupplierSignedAt *time.Time `json:"supplier_signed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// FromModel projects a contract row into its DTO.
func FromModel(row *models.Contract) ContractDTO {
	return ContractDTO{
		ID:               row.ID,
		OrderID:          row.OrderID,
		Hash:             row.Hash,
		BuyerSignedAt:    row.BuyerSignedAt,
		SupplierSignedAt: row.SupplierSignedAt,
		CreatedAt:        row.CreatedAt,
	}
}
