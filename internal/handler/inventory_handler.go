package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jpbarro/multi-t-inventory/internal/middleware"
	"github.com/jpbarro/multi-t-inventory/internal/repository"
	"github.com/jpbarro/multi-t-inventory/pkg/database"
	"github.com/jpbarro/multi-t-inventory/pkg/logger"
	"github.com/jpbarro/multi-t-inventory/prometheus"
)

// InventoryCreateRequest is the payload for stocking a product. The
// tenant is taken from the token, never from the client.
type InventoryCreateRequest struct {
	ProductID    uuid.UUID `json:"product_id"`
	MinStock     int       `json:"min_stock"`
	CurrentStock int       `json:"current_stock"`
}

// InventoryUpdateRequest carries a partial stock patch; nil fields are
// left untouched.
type InventoryUpdateRequest struct {
	MinStock     *int `json:"min_stock"`
	CurrentStock *int `json:"current_stock"`
}

// SupplyRequestBody is the payload for requesting an external restock.
type SupplyRequestBody struct {
	Quantity int `json:"quantity"`
}

// ListInventory returns a page of the caller's tenant inventory.
func ListInventory(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, _, ok := middleware.CurrentTenant(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "User is not associated with a tenant"})
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	inventories := repository.NewInventoryRepository(database.GetDB())
	page, err := inventories.GetMultiByTenant(c.Request().Context(), tenantID, skip, limit)
	if err != nil {
		log.Error("Failed to list inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	return c.JSON(http.StatusOK, page)
}

// GetInventoryByProduct returns the caller's inventory row for a product.
// Absence and cross-tenant rows are both 404 so existence never leaks.
func GetInventoryByProduct(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, _, ok := middleware.CurrentTenant(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "User is not associated with a tenant"})
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid product id"})
	}

	inventories := repository.NewInventoryRepository(database.GetDB())
	inv, err := inventories.GetByProductAndTenant(c.Request().Context(), productID, tenantID)
	if err != nil {
		log.Error("Failed to get inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if inv == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Inventory item not found"})
	}
	return c.JSON(http.StatusOK, inv)
}

// CreateInventory stocks a product for the caller's tenant.
func CreateInventory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInventoryOperation("create")

	tenantID, _, ok := middleware.CurrentTenant(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "User is not associated with a tenant"})
	}

	var req InventoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid request body"})
	}
	if req.ProductID == uuid.Nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "product_id is required"})
	}
	if req.MinStock < 0 || req.CurrentStock < 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "stock levels must not be negative"})
	}

	inventories := repository.NewInventoryRepository(database.GetDB())

	defer prometheus.TrackDBOperation("insert")(time.Now())
	inv, err := inventories.CreateWithTenant(c.Request().Context(), repository.InventoryCreate{
		ProductID:    req.ProductID,
		MinStock:     req.MinStock,
		CurrentStock: req.CurrentStock,
	}, tenantID)
	if err != nil {
		if repository.IsConflict(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "This product is already in your inventory. Use PATCH to update stock."})
		}
		log.Error("Failed to create inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("Inventory created",
		zap.String("inventory_id", inv.ID.String()),
		zap.String("product_id", inv.ProductID.String()),
		zap.String("tenant_id", tenantID.String()))
	return c.JSON(http.StatusCreated, inv)
}

// UpdateInventory applies a partial patch to an inventory row. A row
// belonging to another tenant reads as not found.
func UpdateInventory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInventoryOperation("update")

	tenantID, _, ok := middleware.CurrentTenant(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "User is not associated with a tenant"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid inventory id"})
	}

	var req InventoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid request body"})
	}
	if (req.MinStock != nil && *req.MinStock < 0) || (req.CurrentStock != nil && *req.CurrentStock < 0) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "stock levels must not be negative"})
	}

	inventories := repository.NewInventoryRepository(database.GetDB())
	ctx := c.Request().Context()

	inv, err := inventories.Get(ctx, id)
	if err != nil {
		log.Error("Failed to get inventory for update", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if inv == nil || inv.TenantID != tenantID {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Inventory item not found"})
	}

	fields := map[string]any{}
	if req.MinStock != nil {
		fields["min_stock"] = *req.MinStock
	}
	if req.CurrentStock != nil {
		fields["current_stock"] = *req.CurrentStock
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := inventories.Update(ctx, inv, fields)
	if err != nil {
		log.Error("Failed to update inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("Inventory updated", zap.String("inventory_id", updated.ID.String()))
	return c.JSON(http.StatusOK, updated)
}

// Resupply requests an external restock for an inventory row. All
// database reads complete before the adapter's simulated round-trip.
func Resupply(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RestockRequestCounter.Inc()

	tenantID, _, ok := middleware.CurrentTenant(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "User is not associated with a tenant"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid inventory id"})
	}

	var req SupplyRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid request body"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "quantity must be positive"})
	}

	if supplyService == nil {
		log.Error("Supply service not configured")
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	db := database.GetDB()
	ctx := c.Request().Context()

	inventories := repository.NewInventoryRepository(db)
	inv, err := inventories.Get(ctx, id)
	if err != nil {
		log.Error("Failed to get inventory for resupply", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if inv == nil || inv.TenantID != tenantID {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Inventory item not found"})
	}

	products := repository.NewProductRepository(db)
	product, err := products.Get(ctx, inv.ProductID)
	if err != nil {
		log.Error("Failed to get product for resupply", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Associated product not found"})
	}

	tenants := repository.NewTenantRepository(db)
	tenant, err := tenants.Get(ctx, tenantID)
	if err != nil {
		log.Error("Failed to get tenant for resupply", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if tenant == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Tenant not found"})
	}

	ack, err := supplyService.RequestRestock(ctx, tenant.Name, product.SKU, product.Name, req.Quantity)
	if err != nil {
		log.Error("Restock request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("Restock requested",
		zap.String("inventory_id", inv.ID.String()),
		zap.String("sku", product.SKU),
		zap.Int("quantity", req.Quantity),
		zap.String("external_reference_id", ack.ExternalReferenceID))
	return c.JSON(http.StatusOK, ack)
}
