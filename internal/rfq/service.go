package rfq

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/pagination"
)

// Service defines RFQ operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, buyerCompanyID uuid.UUID, req CreateRequest) (*RfqDTO, error)
	List(ctx context.Context, params ListParams) (*RfqListDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds an RFQ service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rfq repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, buyerCompanyID uuid.UUID, req CreateRequest) (*RfqDTO, error) {
	if buyerCompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "company identity missing")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	row, err := s.repo.Create(ctx, &models.Rfq{
		BuyerCompanyID:     buyerCompanyID,
		Title:              title,
		Details:            trimmedOrNil(req.Details),
		DestinationCountry: normalizeCountry(req.DestinationCountry),
		Status:             enums.RfqStatusOpen,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rfq")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*RfqListDTO, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rfqs")
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	out := make([]RfqDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return &RfqListDTO{Rfqs: out, NextCursor: nextCursor}, nil
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

func normalizeCountry(value *string) *string {
	if value == nil {
		return nil
	}
	country := strings.ToUpper(strings.TrimSpace(*value))
	if len(country) != 2 {
		return nil
	}
	return &country
}
