package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents an isolated customer organization. Users and
// inventory records are scoped to a tenant; products are not.
type Tenant struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"type:varchar(100);not null"`
	Timestamps
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
