package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := New(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d was unexpectedly limited", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("6th attempt should be limited")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first attempt for key a should pass")
	}
	if l.Allow("a") {
		t.Fatal("second attempt for key a should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("key b should not be affected by key a")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("10.0.0.1")
	if l.Allow("10.0.0.1") {
		t.Fatal("expected limit before reset")
	}

	l.Reset()
	if !l.Allow("10.0.0.1") {
		t.Fatal("expected attempt to pass after reset")
	}
}

func TestWindowExpiry(t *testing.T) {
	now := time.Now()
	l := NewWithClock(2, time.Minute, func() time.Time { return now })

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two attempts should pass")
	}
	if l.Allow("k") {
		t.Fatal("third attempt inside window should be limited")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("k") {
		t.Fatal("attempt after window expiry should pass")
	}
}

func TestEmptyKeyIsNeverLimited(t *testing.T) {
	l := New(1, time.Minute)
	for i := 0; i < 10; i++ {
		if !l.Allow("") {
			t.Fatal("empty key must never be limited")
		}
	}
}
