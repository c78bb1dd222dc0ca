package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory is a tenant's stock record for one product. At most one row
// exists per (tenant, product) pair, enforced by the composite unique
// index uq_tenant_product_stock created at migration time.
type Inventory struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantOwned
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	MinStock     int       `json:"min_stock" gorm:"not null;default:0"`
	CurrentStock int       `json:"current_stock" gorm:"not null;default:0"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
	Tenant  *Tenant  `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Timestamps
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
