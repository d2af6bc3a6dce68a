package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
)

// Repository defines persistence operations for orders and their escrows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, row *models.Order) (*models.Order, error)
	CreateEscrow(ctx context.Context, row *models.Escrow) (*models.Escrow, error)
	CreateOrderItems(ctx context.Context, rows []models.OrderItem) error
	FindQuoteByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*models.Order, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListDetailed(ctx context.Context, companyID uuid.UUID) ([]models.Order, error)
	FindEscrowByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Escrow, error)
	MarkEscrowReleased(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, row *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) CreateEscrow(ctx context.Context, row *models.Escrow) (*models.Escrow, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, rows []models.OrderItem) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindQuoteByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var row models.Quote
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*models.Order, error) {
	var row models.Order
	err := r.detailScope(ctx).
		Where("orders.quote_id = ?", quoteID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindDetailByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var row models.Order
	err := r.detailScope(ctx).
		Where("orders.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListDetailed returns orders where the company is buyer or supplier,
// newest first. uuid.Nil lifts the filter for admin listings.
func (r *repository) ListDetailed(ctx context.Context, companyID uuid.UUID) ([]models.Order, error) {
	query := r.detailScope(ctx)
	if companyID != uuid.Nil {
		query = query.Where("orders.buyer_company_id = ? OR orders.supplier_company_id = ?", companyID, companyID)
	}
	var rows []models.Order
	if err := query.Order("orders.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindEscrowByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Escrow, error) {
	var row models.Escrow
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) MarkEscrowReleased(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Escrow{}).
		Where("id = ?", id).
		Updates(map[string]any{"released": true, "released_at": at}).Error
}

func (r *repository) detailScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Escrow").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at ASC")
		}).
		Preload("Shipments", func(db *gorm.DB) *gorm.DB {
			return db.Order("shipments.created_at DESC")
		}).
		Preload("Shipments.Customs", func(db *gorm.DB) *gorm.DB {
			return db.Order("customs_decls.created_at DESC")
		}).
		Preload("Contract").
		Preload("Review")
}
