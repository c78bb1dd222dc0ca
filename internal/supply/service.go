package supply

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Acknowledgment is the structured response from a restock request.
type Acknowledgment struct {
	Status              string `json:"status"`
	Message             string `json:"message"`
	ExternalReferenceID string `json:"external_reference_id"`
}

// Service requests restocks from an external supplier. Real integrations
// must be substitutable behind this signature.
type Service interface {
	RequestRestock(ctx context.Context, tenantName, productSKU, productName string, quantity int) (*Acknowledgment, error)
}

// MockService simulates the external supplier API with a fixed delay.
type MockService struct {
	supplierURL string
	apiKey      string
	delay       time.Duration
	log         *zap.Logger
}

// NewMockService creates a mock supply service.
func NewMockService(supplierURL, apiKey string, delay time.Duration, log *zap.Logger) *MockService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MockService{
		supplierURL: supplierURL,
		apiKey:      apiKey,
		delay:       delay,
		log:         log,
	}
}

// RequestRestock simulates a network round-trip to the supplier and
// returns a simulated acknowledgment. The caller must not hold a database
// transaction open across this call.
func (s *MockService) RequestRestock(ctx context.Context, tenantName, productSKU, productName string, quantity int) (*Acknowledgment, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	message := fmt.Sprintf("%s requested %d of product: %s (SKU: %s)", tenantName, quantity, productName, productSKU)

	s.log.Info("Sending restock request to supplier",
		zap.String("supplier_url", s.supplierURL),
		zap.String("api_key", maskKey(s.apiKey)),
		zap.String("message", message))

	return &Acknowledgment{
		Status:              "success",
		Message:             message,
		ExternalReferenceID: "MOCK-REQ-999",
	}, nil
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "***"
	}
	return key[:4] + "***"
}
