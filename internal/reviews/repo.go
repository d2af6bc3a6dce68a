package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
)

// Repository defines persistence operations for reviews.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *models.Review) (*models.Review, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Review, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, rating int, text *string) error
	ListBySupplier(ctx context.Context, companyID uuid.UUID) ([]models.Review, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reviews repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Review, error) {
	var row models.Review
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

func (r *repository) Update(ctx context.Context, id uuid.UUID, rating int, text *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating": rating,
			"text":   text,
		}).Error
}

func (r *repository) ListBySupplier(ctx context.Context, companyID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
