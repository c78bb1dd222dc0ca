package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jpbarro/multi-t-inventory/internal/model"
)

// ProductRepository provides product catalog persistence.
type ProductRepository struct {
	*Repository[model.Product]
}

// NewProductRepository creates a product repository over db.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{Repository: NewRepository[model.Product](db)}
}

// ProductCreate is the input for creating a product.
type ProductCreate struct {
	Name        string
	Description string
	SKU         string
}

// GetBySKU returns the product with the exact SKU, or (nil, nil) when absent.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.DB().WithContext(ctx).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get by sku: %w", err)
	}
	return &product, nil
}

// Create persists a new product. The SKU is pre-checked so callers get a
// clean conflict instead of a raw constraint violation; the unique index
// remains the final arbiter under concurrent creates.
func (r *ProductRepository) Create(ctx context.Context, in ProductCreate) (*model.Product, error) {
	existing, err := r.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSKU
	}

	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		SKU:         in.SKU,
	}
	if err := r.Repository.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}
	return product, nil
}
