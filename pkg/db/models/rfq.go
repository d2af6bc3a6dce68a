package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// Rfq is a buyer's sourcing demand post.
type Rfq struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BuyerCompanyID     uuid.UUID       `gorm:"column:buyer_company_id;type:uuid;not null" json:"buyer_company_id"`
	Title              string          `gorm:"column:title;not null" json:"title"`
	Details            *string         `gorm:"column:details" json:"details,omitempty"`
	DestinationCountry *string         `gorm:"column:destination_country;type:char(2)" json:"destination_country,omitempty"`
	Status             enums.RfqStatus `gorm:"column:status;type:rfq_status;not null;default:'OPEN'" json:"status"`
	Quotes             []Quote         `gorm:"foreignKey:RfqID" json:"-"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
