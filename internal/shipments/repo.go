package shipments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// Repository defines persistence operations for shipments and customs rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateShipment(ctx context.Context, row *models.Shipment) (*models.Shipment, error)
	FindShipmentByID(ctx context.Context, id uuid.UUID) (*models.Shipment, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, id uuid.UUID, status enums.ShipmentStatus) error
	CreateCustoms(ctx context.Context, row *models.CustomsDecl) (*models.CustomsDecl, error)
	FindCustomsByID(ctx context.Context, id uuid.UUID) (*models.CustomsDecl, error)
	UpdateCustomsStatus(ctx context.Context, id uuid.UUID, status enums.CustomsStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shipments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateShipment(ctx context.Context, row *models.Shipment) (*models.Shipment, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindShipmentByID(ctx context.Context, id uuid.UUID) (*models.Shipment, error) {
	var row models.Shipment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
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

func (r *repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Shipment, error) {
	var rows []models.Shipment
	err := r.db.WithContext(ctx).
		Preload("Customs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateShipmentStatus(ctx context.Context, id uuid.UUID, status enums.ShipmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) CreateCustoms(ctx context.Context, row *models.CustomsDecl) (*models.CustomsDecl, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindCustomsByID(ctx context.Context, id uuid.UUID) (*models.CustomsDecl, error) {
	var row models.CustomsDecl
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) UpdateCustomsStatus(ctx context.Context, id uuid.UUID, status enums.CustomsStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.CustomsDecl{}).
		Where("id = ?", id).
		Update("status", status).Error
}
