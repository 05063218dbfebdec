// ABOUTME: Duplicate merge operation
// ABOUTME: Folds duplicate connection records into a chosen primary in one transaction
package db

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
)

// MergeConnections folds the duplicate records into the primary: the
// primary keeps its id and name, takes the first-seen union of all
// categories and the sorted union of all mutual-connection names
// (minus its own name), and the duplicates are deleted. Everything
// happens in one transaction.
func MergeConnections(database *sql.DB, primaryID uuid.UUID, duplicateIDs []uuid.UUID) (*models.Connection, error) {
	primary, err := GetConnection(database, primaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load primary connection: %w", err)
	}
	if primary == nil {
		return nil, fmt.Errorf("primary connection %s not found", primaryID)
	}

	merged := []models.Connection{*primary}
	for _, id := range duplicateIDs {
		if id == primaryID {
			continue
		}
		dup, err := GetConnection(database, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load connection %s: %w", id, err)
		}
		if dup == nil {
			return nil, fmt.Errorf("connection %s not found", id)
		}
		merged = append(merged, *dup)
	}

	if len(merged) < 2 {
		return nil, fmt.Errorf("nothing to merge")
	}

	categories := combinedCategories(merged)
	mutuals := combinedMutuals(merged, primary.Name)

	tx, err := database.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	primary.Category = categories[0]
	primary.Categories = categories
	primary.MutualConnections = mutuals
	primary.UpdatedAt = time.Now()

	_, err = tx.Exec(`
		UPDATE connections
		SET category = ?, categories = ?, mutual_connections = ?, updated_at = ?
		WHERE id = ?
	`, primary.Category, marshalStringList(primary.Categories),
		marshalStringList(primary.MutualConnections), primary.UpdatedAt, primaryID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to update primary: %w", err)
	}

	for _, c := range merged[1:] {
		if _, err := tx.Exec(`DELETE FROM connections WHERE id = ?`, c.ID.String()); err != nil {
			return nil, fmt.Errorf("failed to delete duplicate %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return primary, nil
}

// combinedCategories unions the normalized category lists in first-seen
// order, primary first.
func combinedCategories(merged []models.Connection) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, c := range merged {
		for _, category := range netgraph.ConnectionCategories(c) {
			if !seen[category] {
				seen[category] = true
				categories = append(categories, category)
			}
		}
	}
	return categories
}

// combinedMutuals unions all mutual-connection names, dropping blanks
// and the primary's own name, sorted for stable output.
func combinedMutuals(merged []models.Connection, primaryName string) []string {
	seen := make(map[string]bool)
	var mutuals []string
	for _, c := range merged {
		for _, name := range c.MutualConnections {
			if name == "" || name == primaryName || seen[name] {
				continue
			}
			seen[name] = true
			mutuals = append(mutuals, name)
		}
	}
	sort.Strings(mutuals)
	return mutuals
}
