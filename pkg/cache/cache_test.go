package cache

import (
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New()
	c.Set("stats:snapshot", "payload", 1*time.Second)
	val, ok := c.Get("stats:snapshot")
	if !ok || val != "payload" {
		t.Fatalf("expected payload, got %v, exists=%v", val, ok)
	}
}

func TestExpiration(t *testing.T) {
	c := New()
	c.Set("stats:snapshot", "payload", 50*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	if _, ok := c.Get("stats:snapshot"); ok {
		t.Fatalf("expected expired key to return false")
	}
}

func TestDelete(t *testing.T) {
	c := New()
	c.Set("stats:snapshot", "payload", 1*time.Second)
	c.Delete("stats:snapshot")
	if _, ok := c.Get("stats:snapshot"); ok {
		t.Fatalf("expected deleted key to return false")
	}
}

func TestGetMissing(t *testing.T) {
	c := New()
	if _, ok := c.Get("absent"); ok {
		t.Fatalf("expected missing key to return false")
	}
}
