package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents the product master data. The catalog is shared
// across tenants; only superusers may mutate it.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	SKU         string    `json:"sku" gorm:"type:varchar(100);uniqueIndex;not null"`
	Timestamps
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
