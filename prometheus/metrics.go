package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_login_total",
			Help: "Total number of login attempts",
		},
	)

	SignupCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_signup_total",
			Help: "Total number of tenant signups",
		},
	)

	InviteCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_invite_total",
			Help: "Total number of user invites",
		},
	)

	RestockRequestCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_restock_requests_total",
			Help: "Total number of supply restock requests",
		},
	)

	RateLimitedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_login_rate_limited_total",
			Help: "Total number of rate-limited login attempts",
		},
	)

	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_token", "user_not_found", "inactive_user", ...
	)

	ProductOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_product_operations_total",
			Help: "Total number of product catalog operations",
		},
		[]string{"operation"},
	)

	InventoryOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_operations_total",
			Help: "Total number of inventory operations",
		},
		[]string{"operation"},
	)

	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(SignupCounter)
	prometheus.MustRegister(InviteCounter)
	prometheus.MustRegister(RestockRequestCounter)
	prometheus.MustRegister(RateLimitedCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(ProductOperationCounter)
	prometheus.MustRegister(InventoryOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordProductOperation records a product catalog operation
func RecordProductOperation(operation string) {
	ProductOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordInventoryOperation records an inventory operation
func RecordInventoryOperation(operation string) {
	InventoryOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}
