package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a registered trading party. A company issues RFQs when buying
// and quotes when supplying; the role split lives on its users.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LegalName   string    `gorm:"column:legal_name;not null" json:"legal_name"`
	CountryCode string    `gorm:"column:country_code;type:char(2);not null" json:"country_code"`
	VatNumber   *string   `gorm:"column:vat_number" json:"vat_number,omitempty"`
	Users       []User    `gorm:"foreignKey:CompanyID" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
