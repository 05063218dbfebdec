// ABOUTME: Watch daemon CLI command
// ABOUTME: Polls the database for changes and re-runs duplicate detection
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/dedupe"
)

const minWatchInterval = time.Second

// WatchCommand runs until interrupted, reporting roster changes as they land.
func WatchCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	interval := fs.Duration("interval", 2*time.Second, "Poll interval")
	_ = fs.Parse(args)

	if *interval < minWatchInterval {
		return fmt.Errorf("interval must be at least %s", minWatchInterval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	watcher := db.NewWatcher(database, *interval)
	go func() { _ = watcher.Run(ctx) }()

	log.Printf("Watching roster for changes (every %s)...", *interval)
	if err := reportDuplicates(database); err != nil {
		return err
	}

	for {
		select {
		case <-watcher.Changes():
			log.Println("Roster changed")
			if err := reportDuplicates(database); err != nil {
				log.Printf("Duplicate scan failed: %v", err)
			}
		case sig := <-sigChan:
			log.Printf("Received %v, shutting down", sig)
			return nil
		}
	}
}

func reportDuplicates(database *sql.DB) error {
	connections, err := db.AllConnections(database)
	if err != nil {
		return fmt.Errorf("failed to fetch connections: %w", err)
	}
	users, err := db.AllUsers(database)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	suggestions := dedupe.FindDuplicateSuggestions(connections, users)
	log.Printf("%d connection(s), %d duplicate suggestion(s)", len(connections), len(suggestions))
	for _, suggestion := range suggestions {
		if suggestion.Confidence == "high" {
			log.Printf("  needs review: %s (%s)", suggestion.Name, suggestion.Reason)
		}
	}
	return nil
}
