// ABOUTME: Polling change watcher for the roster database
// ABOUTME: Signals listeners when connections or users change
package db

import (
	"context"
	"database/sql"
	"time"
)

// Watcher polls the database for changes and signals listeners when the
// roster has changed since the last poll. Local SQLite has no change
// feed, so we compare a cheap fingerprint on an interval.
type Watcher struct {
	db       *sql.DB
	interval time.Duration
	changes  chan struct{}
}

type fingerprint struct {
	connectionCount int
	lastUpdated     string
	userCount       int
	lastCreated     string
}

// NewWatcher creates a watcher polling at the given interval. An
// interval of zero defaults to two seconds.
func NewWatcher(db *sql.DB, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{
		db:       db,
		interval: interval,
		changes:  make(chan struct{}, 1),
	}
}

// Changes returns the channel a signal is sent on after each detected
// change. The channel is buffered; an unread signal coalesces with the
// next one.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	last, err := w.snapshot()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current, err := w.snapshot()
			if err != nil {
				// Transient read failures shouldn't kill the watcher.
				continue
			}
			if current != last {
				last = current
				w.notify()
			}
		}
	}
}

func (w *Watcher) snapshot() (fingerprint, error) {
	var fp fingerprint
	err := w.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM connections),
			(SELECT IFNULL(MAX(updated_at), '') FROM connections),
			(SELECT COUNT(*) FROM users),
			(SELECT IFNULL(MAX(created_at), '') FROM users)
	`).Scan(&fp.connectionCount, &fp.lastUpdated, &fp.userCount, &fp.lastCreated)
	return fp, err
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
