package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db"
	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
)

// WriteInput identifies the order being reviewed and the reviewer.
type WriteInput struct {
	OrderID        uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Request        CreateRequest
}

// Service defines review operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, input WriteInput) (*ReviewDTO, error)
	Upsert(ctx context.Context, input WriteInput) (*ReviewDTO, error)
	ListBySupplier(ctx context.Context, companyID uuid.UUID) (*SupplierReviewsDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a reviews service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	return &service{repo: repo}, nil
}

// Create leaves a review on an order. Each order takes exactly one review;
// a second create conflicts.
func (s *service) Create(ctx context.Context, input WriteInput) (*ReviewDTO, error) {
	order, err := s.authorize(ctx, input)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByOrderID(ctx, order.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order already reviewed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}

	row, err := s.repo.Create(ctx, &models.Review{
		OrderID:   order.ID,
		CompanyID: order.SupplierCompanyID,
		Rating:    input.Request.Rating,
		Text:      trimmedOrNil(input.Request.Text),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order already reviewed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	dto := FromModel(row)
	return &dto, nil
}

// Upsert replaces the order's review, creating one when none exists yet.
func (s *service) Upsert(ctx context.Context, input WriteInput) (*ReviewDTO, error) {
	order, err := s.authorize(ctx, input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByOrderID(ctx, order.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.Create(ctx, input)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}

	text := trimmedOrNil(input.Request.Text)
	if err := s.repo.Update(ctx, existing.ID, input.Request.Rating, text); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update review")
	}
	existing.Rating = input.Request.Rating
	existing.Text = text
	dto := FromModel(existing)
	return &dto, nil
}

// ListBySupplier returns a supplier's reviews with the mean rating rounded
// to one decimal place, 0 when there are none.
func (s *service) ListBySupplier(ctx context.Context, companyID uuid.UUID) (*SupplierReviewsDTO, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id required")
	}

	rows, err := s.repo.ListBySupplier(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	out := make([]ReviewDTO, 0, len(rows))
	sum := decimal.Zero
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
		sum = sum.Add(decimal.NewFromInt(int64(rows[i].Rating)))
	}

	avg := 0.0
	if len(rows) > 0 {
		mean := sum.Div(decimal.NewFromInt(int64(len(rows)))).Round(1)
		avg, _ = mean.Float64()
	}

	return &SupplierReviewsDTO{Reviews: out, Avg: avg}, nil
}

func (s *service) authorize(ctx context.Context, input WriteInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Request.Rating < 1 || input.Request.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	order, err := s.repo.FindOrderByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if input.ActorRole != enums.UserRoleAdmin && order.BuyerCompanyID != input.ActorCompanyID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to your company")
	}
	return order, nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
