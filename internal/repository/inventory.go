package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpbarro/multi-t-inventory/internal/model"
)

// InventoryRepository provides tenant-scoped stock persistence.
type InventoryRepository struct {
	*Repository[model.Inventory]
}

// NewInventoryRepository creates an inventory repository over db.
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{Repository: NewRepository[model.Inventory](db)}
}

// InventoryCreate is the input for creating an inventory record. The
// tenant is never taken from here; it is stamped server-side.
type InventoryCreate struct {
	ProductID    uuid.UUID
	MinStock     int
	CurrentStock int
}

// GetByProductAndTenant returns the tenant's inventory row for the
// product, or (nil, nil) when the tenant does not stock it.
func (r *InventoryRepository) GetByProductAndTenant(ctx context.Context, productID, tenantID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.DB().WithContext(ctx).
		First(&inv, "product_id = ? AND tenant_id = ?", productID, tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get by product and tenant: %w", err)
	}
	return &inv, nil
}

// GetMultiByTenant returns a page of the tenant's inventory records.
func (r *InventoryRepository) GetMultiByTenant(ctx context.Context, tenantID uuid.UUID, skip, limit int) ([]model.Inventory, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	var invs []model.Inventory
	err := r.DB().WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id").Offset(skip).Limit(limit).
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("get multi by tenant: %w", err)
	}
	return invs, nil
}

// CreateWithTenant persists a new inventory record stamped with the
// caller's tenant id. A duplicate (tenant, product) pair is rejected
// before insert; concurrent creates that slip past the pre-check lose to
// the unique constraint and surface the same conflict.
func (r *InventoryRepository) CreateWithTenant(ctx context.Context, in InventoryCreate, tenantID uuid.UUID) (*model.Inventory, error) {
	existing, err := r.GetByProductAndTenant(ctx, in.ProductID, tenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateInventory
	}

	inv := &model.Inventory{
		TenantOwned:  model.TenantOwned{TenantID: tenantID},
		ProductID:    in.ProductID,
		MinStock:     in.MinStock,
		CurrentStock: in.CurrentStock,
	}
	if err := r.Repository.Create(ctx, inv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateInventory
		}
		return nil, err
	}
	return inv, nil
}
