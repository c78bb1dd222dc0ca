package model

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps adds created_at and updated_at columns to a model.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TenantOwned adds the tenant scoping column to a model. Every query
// against a tenant-owned table must filter on tenant_id.
type TenantOwned struct {
	TenantID uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`
}
