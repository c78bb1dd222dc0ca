package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jpbarro/multi-t-inventory/internal/repository"
	"github.com/jpbarro/multi-t-inventory/pkg/database"
	"github.com/jpbarro/multi-t-inventory/pkg/logger"
)

// ListTenants returns all tenants. Superuser-only.
func ListTenants(c echo.Context) error {
	log := logger.FromContext(c)

	tenants := repository.NewTenantRepository(database.GetDB())
	all, err := tenants.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list tenants", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	return c.JSON(http.StatusOK, all)
}
