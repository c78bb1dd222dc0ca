package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestProductCreateAndGetBySKU(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	created, err := products.Create(ctx, ProductCreate{
		Name:        "Laptop Pro 15",
		Description: "15 inch workstation",
		SKU:         "ELEC-LP15",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}

	found, err := products.GetBySKU(ctx, "ELEC-LP15")
	if err != nil {
		t.Fatalf("get by sku failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected to find the created product, got %+v", found)
	}
}

func TestProductDuplicateSKUConflict(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	if _, err := products.Create(ctx, ProductCreate{Name: "Router", SKU: "NET-WR06"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := products.Create(ctx, ProductCreate{Name: "Another Router", SKU: "NET-WR06"})
	if !errors.Is(err, ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}
}

func TestProductGetBySKUNotFound(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)

	found, err := products.GetBySKU(context.Background(), "NO-SUCH-SKU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != nil {
		t.Fatal("expected absence, not a product")
	}
}

func TestProductRemove(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	created, err := products.Create(ctx, ProductCreate{Name: "Desk", SKU: "FURN-SD01"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	removed, err := products.Remove(ctx, created.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed == nil || removed.ID != created.ID {
		t.Fatal("expected the deleted product back")
	}

	// removing again is not an error
	again, err := products.Remove(ctx, created.ID)
	if err != nil {
		t.Fatalf("second remove errored: %v", err)
	}
	if again != nil {
		t.Fatal("expected absence on second remove")
	}
}

func TestProductPartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	created, err := products.Create(ctx, ProductCreate{
		Name:        "Old Name",
		Description: "keep me",
		SKU:         "SKU-UPD",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := products.Update(ctx, created, map[string]any{"name": "New Name"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}

	reloaded, err := products.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.Description != "keep me" {
		t.Fatalf("untouched field changed: %q", reloaded.Description)
	}
}

func TestProductGetMultiStableOrder(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	for _, sku := range []string{"A-1", "A-2", "A-3"} {
		if _, err := products.Create(ctx, ProductCreate{Name: sku, SKU: sku}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	first, err := products.GetMulti(ctx, 0, 2)
	if err != nil {
		t.Fatalf("get multi failed: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 products, got %d", len(first))
	}

	rest, err := products.GetMulti(ctx, 2, 2)
	if err != nil {
		t.Fatalf("get multi failed: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 product, got %d", len(rest))
	}
	for _, p := range first {
		if p.ID == rest[0].ID {
			t.Fatal("pages overlap")
		}
	}
}
