// ABOUTME: Duplicate detection CLI commands
// ABOUTME: Surfaces duplicate suggestions and drives merges from the terminal
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/dedupe"
	"github.com/umassiv/roster/netgraph"
)

// FindDuplicatesCommand lists duplicate suggestions
func FindDuplicatesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("duplicates", flag.ExitOnError)
	confidence := fs.String("confidence", "", "Filter by confidence: high, medium, or low")
	fs.Parse(args)

	switch *confidence {
	case "", "high", "medium", "low":
	default:
		return fmt.Errorf("invalid --confidence %q (use high, medium, or low)", *confidence)
	}

	connections, err := db.AllConnections(database)
	if err != nil {
		return fmt.Errorf("failed to fetch connections: %w", err)
	}

	users, err := db.AllUsers(database)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	suggestions := dedupe.FindDuplicateSuggestions(connections, users)

	shown := 0
	for _, suggestion := range suggestions {
		if *confidence != "" && suggestion.Confidence != *confidence {
			continue
		}
		shown++

		fmt.Printf("%s [%s]\n", suggestion.Name, strings.ToUpper(suggestion.Confidence))
		fmt.Printf("  %s\n", suggestion.Reason)
		for _, match := range suggestion.Matches {
			groups := strings.Join(netgraph.ConnectionCategories(match), ", ")
			if groups == "" {
				groups = "-"
			}
			addedBy := match.UserName
			if addedBy == "" {
				addedBy = "-"
			}
			fmt.Printf("    %s  %s  (groups: %s, added by: %s)\n",
				match.ID.String()[:8], match.Name, groups, addedBy)
		}
		for _, user := range suggestion.MatchingUsers {
			fmt.Printf("    member: %s (%s)\n", user.Name, user.ID.String()[:8])
		}
		fmt.Println()
	}

	if shown == 0 {
		fmt.Println("No duplicates found")
		return nil
	}

	fmt.Printf("Total: %d suggestion(s)\n", shown)
	fmt.Println("\nMerge with: roster merge --primary <id> --duplicates <id,id,...>")
	return nil
}

// MergeConnectionsCommand folds duplicates into a primary connection
func MergeConnectionsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	primary := fs.String("primary", "", "Connection to keep (required)")
	duplicates := fs.String("duplicates", "", "Comma-separated connection IDs to merge in (required)")
	fs.Parse(args)

	if *primary == "" {
		return fmt.Errorf("--primary is required")
	}
	if *duplicates == "" {
		return fmt.Errorf("--duplicates is required")
	}

	primaryID, err := uuid.Parse(*primary)
	if err != nil {
		return fmt.Errorf("invalid primary ID: %w", err)
	}

	var duplicateIDs []uuid.UUID
	for _, idStr := range splitList(*duplicates) {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return fmt.Errorf("invalid duplicate ID %q: %w", idStr, err)
		}
		duplicateIDs = append(duplicateIDs, id)
	}

	merged, err := db.MergeConnections(database, primaryID, duplicateIDs)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Merged into: %s (ID: %s)\n", merged.Name, merged.ID)
	fmt.Printf("  Groups: %s\n", strings.Join(merged.Categories, ", "))
	if len(merged.MutualConnections) > 0 {
		fmt.Printf("  Mutuals: %s\n", strings.Join(merged.MutualConnections, ", "))
	}
	return nil
}
