package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// Order is created from exactly one accepted quote. quote_id carries a
// unique index so two orders can never originate from the same quote.
type Order struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuoteID           uuid.UUID         `gorm:"column:quote_id;type:uuid;not null;uniqueIndex" json:"quote_id"`
	BuyerCompanyID    uuid.UUID         `gorm:"column:buyer_company_id;type:uuid;not null" json:"buyer_company_id"`
	SupplierCompanyID uuid.UUID         `gorm:"column:supplier_company_id;type:uuid;not null" json:"supplier_company_id"`
	TotalMinor        int64             `gorm:"column:total_minor;not null" json:"total_minor"`
	TotalCurrency     string            `gorm:"column:total_currency;type:char(3);not null;default:'USD'" json:"total_currency"`
	Status            enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'PLACED'" json:"status"`
	Escrow            *Escrow           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"escrow,omitempty"`
	Items             []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Shipments         []Shipment        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shipments,omitempty"`
	Contract          *Contract         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"contract,omitempty"`
	Review            *Review           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"review,omitempty"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// OrderItem is a line item under an order.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Qty       int       `gorm:"column:qty;not null;default:1" json:"qty"`
	Unit      *string   `gorm:"column:unit" json:"unit,omitempty"`
	UnitMinor int64     `gorm:"column:unit_minor;not null" json:"unit_minor"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
