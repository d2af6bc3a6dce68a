package rfq

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/pagination"
)

// Repository defines persistence operations for RFQs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *models.Rfq) (*models.Rfq, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rfq, error)
	List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Rfq, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an RFQ repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *models.Rfq) (*models.Rfq, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rfq, error) {
	var row models.Rfq
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Rfq, error) {
	qb := r.db.WithContext(ctx)
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	var rows []models.Rfq
	err := qb.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
