package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jpbarro/multi-t-inventory/internal/repository"
	"github.com/jpbarro/multi-t-inventory/pkg/database"
	"github.com/jpbarro/multi-t-inventory/pkg/logger"
	"github.com/jpbarro/multi-t-inventory/prometheus"
)

// ProductCreateRequest is the payload for creating a catalog product.
type ProductCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SKU         string `json:"sku"`
}

// ProductUpdateRequest carries a partial product patch; nil fields are
// left untouched.
type ProductUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SKU         *string `json:"sku"`
}

// ListProducts returns a page of the shared product catalog.
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	products := repository.NewProductRepository(database.GetDB())
	page, err := products.GetMulti(c.Request().Context(), skip, limit)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	return c.JSON(http.StatusOK, page)
}

// GetProduct returns a single product by id.
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid product id"})
	}

	products := repository.NewProductRepository(database.GetDB())
	product, err := products.Get(c.Request().Context(), id)
	if err != nil {
		log.Error("Failed to get product", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Product not found"})
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct creates a catalog product. Superuser-only; a duplicate
// SKU is a business conflict, not a validation failure.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid request body"})
	}
	if req.Name == "" || req.SKU == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "name and sku are required"})
	}

	products := repository.NewProductRepository(database.GetDB())

	defer prometheus.TrackDBOperation("insert")(time.Now())
	product, err := products.Create(c.Request().Context(), repository.ProductCreate{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
	})
	if err != nil {
		if repository.IsConflict(err) {
			log.Warn("Product with this SKU already exists", zap.String("sku", req.SKU))
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "The product with this SKU already exists in the system"})
		}
		log.Error("Failed to create product", zap.Error(err), zap.String("sku", req.SKU))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial patch to a product. Superuser-only.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid product id"})
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid request body"})
	}

	products := repository.NewProductRepository(database.GetDB())
	ctx := c.Request().Context()

	product, err := products.Get(ctx, id)
	if err != nil {
		log.Error("Failed to get product for update", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Product not found"})
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.SKU != nil && *req.SKU != product.SKU {
		existing, err := products.GetBySKU(ctx, *req.SKU)
		if err != nil {
			log.Error("SKU lookup failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
		}
		if existing != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "The product with this SKU already exists in the system"})
		}
		fields["sku"] = *req.SKU
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := products.Update(ctx, product, fields)
	if err != nil {
		log.Error("Failed to update product", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("Product updated", zap.String("product_id", updated.ID.String()))
	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct removes a product from the catalog. Superuser-only.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid product id"})
	}

	products := repository.NewProductRepository(database.GetDB())

	defer prometheus.TrackDBOperation("delete")(time.Now())
	deleted, err := products.Remove(c.Request().Context(), id)
	if err != nil {
		log.Error("Failed to delete product", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if deleted == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Product not found"})
	}

	log.Info("Product deleted", zap.String("product_id", deleted.ID.String()))
	return c.JSON(http.StatusOK, deleted)
}
