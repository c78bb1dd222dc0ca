package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jpbarro/multi-t-inventory/internal/middleware"
	"github.com/jpbarro/multi-t-inventory/internal/repository"
	"github.com/jpbarro/multi-t-inventory/pkg/database"
	"github.com/jpbarro/multi-t-inventory/pkg/jwtutil"
	"github.com/jpbarro/multi-t-inventory/pkg/logger"
	"github.com/jpbarro/multi-t-inventory/prometheus"
)

// Login handles the form-encoded OAuth2-style password login and returns
// a bearer token. Attempts are throttled per caller identity.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	if loginLimiter != nil && !loginLimiter.Allow(c.RealIP()) {
		prometheus.RateLimitedCounter.Inc()
		log.Warn("Login rate limit exceeded", zap.String("ip", c.RealIP()))
		return c.JSON(http.StatusTooManyRequests, echo.Map{"detail": "Too many login attempts, please try again later"})
	}

	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "username and password are required"})
	}

	users := repository.NewUserRepository(database.GetDB())

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := users.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		log.Error("Authentication lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if user == nil {
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Incorrect email or password"})
	}
	if !user.IsActive {
		prometheus.RecordAuthError("inactive_user")
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Inactive user"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// SignupRequest is the payload for registering a tenant and its first user.
type SignupRequest struct {
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
	TenantName string `json:"tenant_name"`
}

// Signup registers a new tenant and its first user atomically.
func Signup(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SignupCounter.Inc()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid request body"})
	}
	if req.Email == "" || req.FullName == "" || req.Password == "" || req.TenantName == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "email, full_name, password and tenant_name are required"})
	}

	users := repository.NewUserRepository(database.GetDB())
	ctx := c.Request().Context()

	existing, err := users.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error("Signup email lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if existing != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "A user with this email already exists"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := users.CreateTenantAndUser(ctx, repository.SignUp{
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		TenantName: req.TenantName,
	})
	if err != nil {
		if repository.IsConflict(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "A user with this email already exists"})
		}
		log.Error("Signup failed", zap.Error(err), zap.String("email", req.Email))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("Tenant and first user registered",
		zap.String("email", user.Email),
		zap.String("tenant_id", user.TenantID.String()))
	return c.JSON(http.StatusCreated, user)
}

// InviteRequest is the payload for inviting a user to the acting tenant.
type InviteRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Invite creates a user in the caller's tenant with a one-time temporary
// password, returned in plaintext exactly once.
func Invite(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.InviteCounter.Inc()

	tenantID, _, ok := middleware.CurrentTenant(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "User is not associated with a tenant"})
	}

	var req InviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "Invalid request body"})
	}
	if req.Email == "" || req.FullName == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "email and full_name are required"})
	}

	users := repository.NewUserRepository(database.GetDB())
	ctx := c.Request().Context()

	existing, err := users.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error("Invite email lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}
	if existing != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "A user with this email already exists"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, tempPassword, err := users.Invite(ctx, repository.UserInvite{
		Email:    req.Email,
		FullName: req.FullName,
	}, tenantID)
	if err != nil {
		if repository.IsConflict(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "A user with this email already exists"})
		}
		log.Error("Invite failed", zap.Error(err), zap.String("email", req.Email))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Internal server error"})
	}

	log.Info("User invited",
		zap.String("email", user.Email),
		zap.String("tenant_id", tenantID.String()))
	return c.JSON(http.StatusCreated, echo.Map{
		"id":                 user.ID,
		"email":              user.Email,
		"full_name":          user.FullName,
		"tenant_id":          user.TenantID,
		"temporary_password": tempPassword,
	})
}

// Me returns the caller's public profile.
func Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
	}
	return c.JSON(http.StatusOK, user)
}
