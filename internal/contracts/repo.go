package contracts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
)

// Repository defines persistence operations for contracts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *models.Contract) (*models.Contract, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Contract, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	SetSignedAt(ctx context.Context, id uuid.UUID, column string, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a contracts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *models.Contract) (*models.Contract, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var row models.Contract
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Contract, error) {
	var row models.Contract
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var row models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) SetSignedAt(ctx context.Context, id uuid.UUID, column string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ?", id).
		Update(column, at).Error
}
