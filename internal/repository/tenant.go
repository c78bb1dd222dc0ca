package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jpbarro/multi-t-inventory/internal/model"
)

// TenantRepository provides tenant persistence.
type TenantRepository struct {
	*Repository[model.Tenant]
}

// NewTenantRepository creates a tenant repository over db.
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{Repository: NewRepository[model.Tenant](db)}
}

// Create persists a new tenant with the given name.
func (r *TenantRepository) Create(ctx context.Context, name string) (*model.Tenant, error) {
	tenant := &model.Tenant{Name: name}
	if err := r.Repository.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// List returns all tenants ordered by creation time.
func (r *TenantRepository) List(ctx context.Context) ([]model.Tenant, error) {
	var tenants []model.Tenant
	err := r.DB().WithContext(ctx).Order("created_at").Find(&tenants).Error
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}
