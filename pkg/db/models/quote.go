package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// Quote is a supplier's priced response to an RFQ. Prices are integer
// minor units of the quoted currency.
type Quote struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RfqID             uuid.UUID         `gorm:"column:rfq_id;type:uuid;not null" json:"rfq_id"`
	SupplierCompanyID uuid.UUID         `gorm:"column:supplier_company_id;type:uuid;not null" json:"supplier_company_id"`
	Currency          string            `gorm:"column:currency;type:char(3);not null;default:'USD'" json:"currency"`
	PricePerUnitMinor int64             `gorm:"column:price_per_unit_minor;not null" json:"price_per_unit_minor"`
	MOQ               *int              `gorm:"column:moq" json:"moq,omitempty"`
	LeadTimeDays      *int              `gorm:"column:lead_time_days" json:"lead_time_days,omitempty"`
	Status            enums.QuoteStatus `gorm:"column:status;type:quote_status;not null;default:'PENDING'" json:"status"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
