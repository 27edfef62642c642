package rate

import (
	"context"
	"testing"
	"time"
)

func TestGate_SpacesCalls(t *testing.T) {
	g := NewGate(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := g.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("three calls took %v; want at least ~100ms", elapsed)
	}
}

func TestGate_Disabled(t *testing.T) {
	g := NewGate(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := g.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled gate blocked for %v", elapsed)
	}
}

func TestGate_Cancelled(t *testing.T) {
	g := NewGate(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if err := g.Wait(ctx); err != nil {
		t.Fatalf("first Wait: %v", err)
	}
	cancel()
	if err := g.Wait(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
