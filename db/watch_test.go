// ABOUTME: Test suite for the polling change watcher
// ABOUTME: Verifies change detection and signal coalescing
package db

import (
	"context"
	"testing"
	"time"

	"github.com/umassiv/roster/models"
)

func TestWatcherSignalsOnChange(t *testing.T) {
	db := setupTestDB(t)

	w := NewWatcher(db, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Let the watcher take its baseline snapshot.
	time.Sleep(30 * time.Millisecond)

	if err := CreateConnection(db, &models.Connection{Name: "Anna Lee"}); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a change signal after insert")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watcher did not stop after cancel")
	}
}

func TestWatcherNoSignalWithoutChange(t *testing.T) {
	db := setupTestDB(t)

	w := NewWatcher(db, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_ = w.Run(ctx)

	select {
	case <-w.Changes():
		t.Error("Expected no signal for an unchanged database")
	default:
	}
}

func TestWatcherDefaultInterval(t *testing.T) {
	db := setupTestDB(t)

	w := NewWatcher(db, 0)
	if w.interval != 2*time.Second {
		t.Errorf("Expected default interval of 2s, got %v", w.interval)
	}
}
