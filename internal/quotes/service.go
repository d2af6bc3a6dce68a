package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AcceptInput identifies the quote being accepted and who is accepting it.
type AcceptInput struct {
	QuoteID        uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
}

// Service defines quote operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, supplierCompanyID uuid.UUID, req CreateRequest) (*QuoteDTO, error)
	ListByRfq(ctx context.Context, rfqID uuid.UUID) ([]QuoteDTO, error)
	Accept(ctx context.Context, input AcceptInput) (*QuoteDTO, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a quotes service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, supplierCompanyID uuid.UUID, req CreateRequest) (*QuoteDTO, error) {
	if supplierCompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "company identity missing")
	}
	if req.RfqID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rfq_id is required")
	}
	if req.PricePerUnitMinor <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_unit_minor must be positive")
	}

	if _, err := s.repo.FindRfqByID(ctx, req.RfqID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rfq not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rfq")
	}

	row, err := s.repo.Create(ctx, &models.Quote{
		RfqID:             req.RfqID,
		SupplierCompanyID: supplierCompanyID,
		Currency:          types.NormalizeCurrency(req.Currency),
		PricePerUnitMinor: req.PricePerUnitMinor,
		MOQ:               req.MOQ,
		LeadTimeDays:      req.LeadTimeDays,
		Status:            enums.QuoteStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quote")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) ListByRfq(ctx context.Context, rfqID uuid.UUID) ([]QuoteDTO, error) {
	if rfqID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rfq id required")
	}
	rows, err := s.repo.ListByRfq(ctx, rfqID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	out := make([]QuoteDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

// Accept marks the winning quote ACCEPTED, rejects the rfq's other pending
// quotes, and closes the rfq, all in one transaction. Re-accepting the winner
// returns it unchanged; accepting after a different quote won is a state
// conflict, as is reviving a rejected quote.
func (s *service) Accept(ctx context.Context, input AcceptInput) (*QuoteDTO, error) {
	if input.QuoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}
	if input.ActorCompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "company identity missing")
	}

	var dto QuoteDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		quote, err := repo.FindByID(ctx, input.QuoteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
		}

		rfq, err := repo.FindRfqByID(ctx, quote.RfqID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rfq")
		}
		if input.ActorRole != enums.UserRoleAdmin && rfq.BuyerCompanyID != input.ActorCompanyID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "quote does not belong to your rfq")
		}

		switch quote.Status {
		case enums.QuoteStatusAccepted:
			dto = FromModel(quote)
			return nil
		case enums.QuoteStatusPending:
			if rfq.Status == enums.RfqStatusClosed {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "rfq already closed by another quote")
			}
			if err := repo.UpdateStatus(ctx, quote.ID, enums.QuoteStatusAccepted); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept quote")
			}
			if err := repo.RejectPendingSiblings(ctx, quote.RfqID, quote.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject sibling quotes")
			}
			if err := repo.UpdateRfqStatus(ctx, quote.RfqID, enums.RfqStatusClosed); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close rfq")
			}
			quote.Status = enums.QuoteStatusAccepted
			dto = FromModel(quote)
			return nil
		default:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quote cannot be accepted in current state")
		}
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}
