package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db"
	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/types"
)

const syntheticItemName = "Line Item"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput carries the placing buyer's identity alongside the payload.
type CreateInput struct {
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Request        CreateRequest
}

// AccessInput identifies an order and the actor reading or mutating it.
type AccessInput struct {
	OrderID        uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
}

// Service defines order operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*OrderDTO, error)
	Get(ctx context.Context, input AccessInput) (*OrderDTO, error)
	List(ctx context.Context, actorCompanyID uuid.UUID, actorRole enums.UserRole) ([]OrderDTO, error)
	ReleaseEscrow(ctx context.Context, input AccessInput) (*EscrowDTO, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds an orders service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

// Create places an order from a quote inside one transaction: the order
// row, its escrow holding the full total, and a synthetic line item. At
// most one order exists per quote; a repeat create returns the existing
// order unchanged.
func (s *service) Create(ctx context.Context, input CreateInput) (*OrderDTO, error) {
	if input.ActorCompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "company identity missing")
	}
	if input.Request.QuoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote_id is required")
	}

	var dto OrderDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		quote, err := repo.FindQuoteByID(ctx, input.Request.QuoteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
		}

		if existing, err := repo.FindByQuoteID(ctx, quote.ID); err == nil {
			dto = FromModel(existing)
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing order")
		}

		total := quote.PricePerUnitMinor
		if input.Request.TotalMinor != nil && *input.Request.TotalMinor > 0 {
			total = *input.Request.TotalMinor
		}
		if total <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order total must be positive")
		}
		currency := effectiveCurrency(input.Request.TotalCurrency, quote.Currency)

		order, err := repo.CreateOrder(ctx, &models.Order{
			QuoteID:           quote.ID,
			BuyerCompanyID:    input.ActorCompanyID,
			SupplierCompanyID: quote.SupplierCompanyID,
			TotalMinor:        total,
			TotalCurrency:     currency,
			Status:            enums.OrderStatusPlaced,
		})
		if err != nil {
			// Concurrent create for the same quote: the unique index on
			// quote_id decides the winner, everyone reads that row.
			if db.IsUniqueViolation(err, "") {
				existing, readErr := repo.FindByQuoteID(ctx, quote.ID)
				if readErr != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, readErr, "load existing order")
				}
				dto = FromModel(existing)
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if _, err := repo.CreateEscrow(ctx, &models.Escrow{
			OrderID:   order.ID,
			HeldMinor: total,
			Currency:  currency,
			Released:  false,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create escrow")
		}

		if err := repo.CreateOrderItems(ctx, []models.OrderItem{{
			OrderID:   order.ID,
			Name:      syntheticItemName,
			Qty:       1,
			UnitMinor: total,
		}}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}

		created, err := repo.FindDetailByID(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		dto = FromModel(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) Get(ctx context.Context, input AccessInput) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindDetailByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !canAccess(order, input.ActorCompanyID, input.ActorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not involve your company")
	}
	dto := FromModel(order)
	return &dto, nil
}

// List returns the actor's orders newest first. Admins see every order.
func (s *service) List(ctx context.Context, actorCompanyID uuid.UUID, actorRole enums.UserRole) ([]OrderDTO, error) {
	filter := actorCompanyID
	if actorRole == enums.UserRoleAdmin {
		filter = uuid.Nil
	} else if actorCompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "company identity missing")
	}
	rows, err := s.repo.ListDetailed(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

// ReleaseEscrow flips the escrow to released exactly once. Releasing an
// already released escrow returns the row unchanged.
func (s *service) ReleaseEscrow(ctx context.Context, input AccessInput) (*EscrowDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var dto EscrowDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindDetailByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if input.ActorRole != enums.UserRoleAdmin && order.BuyerCompanyID != input.ActorCompanyID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the buyer can release escrow")
		}

		escrow, err := repo.FindEscrowByOrderID(ctx, order.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "escrow not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load escrow")
		}

		if escrow.Released {
			dto = EscrowFromModel(escrow)
			return nil
		}

		releasedAt := s.now().UTC()
		if err := repo.MarkEscrowReleased(ctx, escrow.ID, releasedAt); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release escrow")
		}
		escrow.Released = true
		escrow.ReleasedAt = &releasedAt
		dto = EscrowFromModel(escrow)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func canAccess(order *models.Order, companyID uuid.UUID, role enums.UserRole) bool {
	if role == enums.UserRoleAdmin {
		return true
	}
	return order.BuyerCompanyID == companyID || order.SupplierCompanyID == companyID
}

func effectiveCurrency(caller *string, quoteCurrency string) string {
	if caller != nil && strings.TrimSpace(*caller) != "" {
		return types.NormalizeCurrency(*caller)
	}
	if quoteCurrency != "" {
		return types.NormalizeCurrency(quoteCurrency)
	}
	return "USD"
}
