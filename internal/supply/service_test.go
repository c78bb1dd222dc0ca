package supply

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestService() *MockService {
	return NewMockService("https://supplier.example.com", "sk-test-123456", 0, nil)
}

func TestRequestRestockReturnsAcknowledgment(t *testing.T) {
	ack, err := newTestService().RequestRestock(context.Background(), "Acme Corp", "ELEC-LP15", "Laptop Pro 15", 50)
	if err != nil {
		t.Fatalf("request restock failed: %v", err)
	}
	if ack.Status != "success" {
		t.Fatalf("expected status success, got %q", ack.Status)
	}
	if ack.ExternalReferenceID != "MOCK-REQ-999" {
		t.Fatalf("unexpected reference id %q", ack.ExternalReferenceID)
	}
}

func TestRequestRestockMessageContainsDetails(t *testing.T) {
	ack, err := newTestService().RequestRestock(context.Background(), "Globex Industries", "FURN-SD01", "Standing Desk", 10)
	if err != nil {
		t.Fatalf("request restock failed: %v", err)
	}
	for _, want := range []string{"Globex Industries", "10", "Standing Desk", "FURN-SD01"} {
		if !strings.Contains(ack.Message, want) {
			t.Fatalf("message %q missing %q", ack.Message, want)
		}
	}
}

func TestRequestRestockHonorsContextCancellation(t *testing.T) {
	svc := NewMockService("https://supplier.example.com", "sk-test-123456", time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.RequestRestock(ctx, "Acme Corp", "SKU-1", "Widget", 1); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}

func TestMaskKey(t *testing.T) {
	if got := maskKey("sk-test-123456"); got != "sk-t***" {
		t.Fatalf("expected masked key sk-t***, got %q", got)
	}
	if got := maskKey("abc"); got != "***" {
		t.Fatalf("short keys must be fully masked, got %q", got)
	}
}
