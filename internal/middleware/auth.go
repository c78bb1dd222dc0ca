package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jpbarro/multi-t-inventory/internal/model"
	"github.com/jpbarro/multi-t-inventory/pkg/database"
	"github.com/jpbarro/multi-t-inventory/pkg/jwtutil"
	"github.com/jpbarro/multi-t-inventory/pkg/logger"
	"github.com/jpbarro/multi-t-inventory/prometheus"
)

// ContextUserKey is the echo context key holding the authenticated user.
const ContextUserKey = "current_user"

// Auth validates the bearer token from the Authorization header, resolves
// the user it references and stores it on the context. A malformed or
// expired token, an unknown subject and a deactivated account all fail
// with 401; the inactive case carries a distinct detail message.
func Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Debug("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			prometheus.RecordAuthError("invalid_subject")
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
		}

		var user model.User
		err = database.GetDB().WithContext(c.Request().Context()).
			First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
		}
		if err != nil {
			log.Error("Failed to load user for token", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
		}

		if !user.IsActive {
			prometheus.RecordAuthError("inactive_user")
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Inactive user"})
		}

		c.Set(ContextUserKey, &user)
		return next(c)
	}
}

// RequireSuperuser rejects non-superuser callers. Must run after Auth.
func RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
		}
		if !user.IsSuperuser {
			prometheus.RecordAuthError("forbidden")
			return c.JSON(http.StatusForbidden, echo.Map{"detail": "Forbidden"})
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user stored by Auth.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}

// CurrentTenant derives the acting tenant from the authenticated user.
// A caller without a tenant reference (a bare superuser) is a client
// error: most operations require an acting tenant.
func CurrentTenant(c echo.Context) (uuid.UUID, *model.User, bool) {
	user, ok := CurrentUser(c)
	if !ok || user.TenantID == nil {
		return uuid.Nil, user, false
	}
	return *user.TenantID, user, true
}
