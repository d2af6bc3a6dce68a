package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are assigned client side so inserts behave the same on postgres
// and on the sqlite databases the tests run against.

func (m *Company) BeforeCreate(*gorm.DB) error     { ensureID(&m.ID); return nil }
func (m *User) BeforeCreate(*gorm.DB) error        { ensureID(&m.ID); return nil }
func (m *Rfq) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *Quote) BeforeCreate(*gorm.DB) error       { ensureID(&m.ID); return nil }
func (m *Order) BeforeCreate(*gorm.DB) error       { ensureID(&m.ID); return nil }
func (m *OrderItem) BeforeCreate(*gorm.DB) error   { ensureID(&m.ID); return nil }
func (m *Escrow) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }
func (m *Shipment) BeforeCreate(*gorm.DB) error    { ensureID(&m.ID); return nil }
func (m *CustomsDecl) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (m *Contract) BeforeCreate(*gorm.DB) error    { ensureID(&m.ID); return nil }
func (m *Review) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
