package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// Repository defines persistence operations for quotes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *models.Quote) (*models.Quote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	FindRfqByID(ctx context.Context, id uuid.UUID) (*models.Rfq, error)
	ListByRfq(ctx context.Context, rfqID uuid.UUID) ([]models.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error
	RejectPendingSiblings(ctx context.Context, rfqID, winnerID uuid.UUID) error
	UpdateRfqStatus(ctx context.Context, id uuid.UUID, status enums.RfqStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quotes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var row models.Quote
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindRfqByID(ctx context.Context, id uuid.UUID) (*models.Rfq, error) {
	var row models.Rfq
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListByRfq(ctx context.Context, rfqID uuid.UUID) ([]models.Quote, error) {
	var rows []models.Quote
	err := r.db.WithContext(ctx).
		Where("rfq_id = ?", rfqID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) RejectPendingSiblings(ctx context.Context, rfqID, winnerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("rfq_id = ? AND id <> ? AND status = ?", rfqID, winnerID, enums.QuoteStatusPending).
		Update("status", enums.QuoteStatusRejected).Error
}

func (r *repository) UpdateRfqStatus(ctx context.Context, id uuid.UUID, status enums.RfqStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Rfq{}).
		Where("id = ?", id).
		Update("status", status).Error
}
