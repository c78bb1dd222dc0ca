package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPageSize is the page size used when a caller passes limit <= 0.
const DefaultPageSize = 100

// Repository implements the generic CRUD operations shared by every
// domain repository. Absence is reported as (nil, nil), not an error;
// callers decide whether a missing row is worth a 404.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository creates a generic repository over db.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying handle for domain-specific queries.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Get returns the record with the given id, or (nil, nil) when absent.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var obj T
	err := r.db.WithContext(ctx).First(&obj, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return &obj, nil
}

// GetMulti returns a page of records in a stable order.
func (r *Repository[T]) GetMulti(ctx context.Context, skip, limit int) ([]T, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	var objs []T
	err := r.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&objs).Error
	if err != nil {
		return nil, fmt.Errorf("get multi: %w", err)
	}
	return objs, nil
}

// Create persists obj and hydrates its generated fields.
func (r *Repository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

// Update applies only the supplied fields to obj and persists them. Unset
// fields are left untouched; callers build the map from explicitly
// provided input (the partial-update contract).
func (r *Repository[T]) Update(ctx context.Context, obj *T, fields map[string]any) (*T, error) {
	if len(fields) == 0 {
		return obj, nil
	}
	if err := r.db.WithContext(ctx).Model(obj).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	return obj, nil
}

// Remove deletes the record with the given id and returns it, or
// (nil, nil) when absent. Deleting a non-existent id is not an error.
func (r *Repository[T]) Remove(ctx context.Context, id uuid.UUID) (*T, error) {
	obj, err := r.Get(ctx, id)
	if err != nil || obj == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(obj).Error; err != nil {
		return nil, fmt.Errorf("remove: %w", err)
	}
	return obj, nil
}
