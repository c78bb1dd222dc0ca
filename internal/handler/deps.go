package handler

import (
	"github.com/jpbarro/multi-t-inventory/internal/ratelimit"
	"github.com/jpbarro/multi-t-inventory/internal/supply"
)

// loginLimiter throttles login attempts per caller identity.
var loginLimiter *ratelimit.Limiter

// supplyService is the external supplier integration used by resupply.
var supplyService supply.Service

// InitRateLimiter installs the login rate limiter.
func InitRateLimiter(l *ratelimit.Limiter) {
	loginLimiter = l
}

// InitSupplyService installs the supply request adapter.
func InitSupplyService(s supply.Service) {
	supplyService = s
}
