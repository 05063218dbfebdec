// ABOUTME: Tests for duplicate detection and merge MCP handlers
// ABOUTME: Validates suggestion output, confidence filtering, and merging
package handlers

import (
	"context"
	"testing"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
)

func TestFindDuplicatesHandler(t *testing.T) {
	database := setupTestDB(t)

	for _, name := range []string{"Anna Lee", "anna   lee", "Bob Smith"} {
		if err := db.CreateConnection(database, &models.Connection{Name: name}); err != nil {
			t.Fatalf("Failed to create connection: %v", err)
		}
	}

	handler := NewDuplicateHandlers(database)

	_, output, err := handler.FindDuplicates(context.Background(), nil, FindDuplicatesInput{})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}

	if len(output.Suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(output.Suggestions))
	}
	if output.Suggestions[0].Confidence != "high" {
		t.Errorf("Expected high confidence, got %s", output.Suggestions[0].Confidence)
	}
	if len(output.Suggestions[0].Matches) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(output.Suggestions[0].Matches))
	}
}

func TestFindDuplicatesConfidenceFilter(t *testing.T) {
	database := setupTestDB(t)

	for _, name := range []string{"Anna Lee", "Anna Lee"} {
		if err := db.CreateConnection(database, &models.Connection{Name: name}); err != nil {
			t.Fatalf("Failed to create connection: %v", err)
		}
	}

	handler := NewDuplicateHandlers(database)

	_, output, err := handler.FindDuplicates(context.Background(), nil, FindDuplicatesInput{Confidence: "low"})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}
	if len(output.Suggestions) != 0 {
		t.Errorf("Expected no low-confidence suggestions, got %d", len(output.Suggestions))
	}

	_, _, err = handler.FindDuplicates(context.Background(), nil, FindDuplicatesInput{Confidence: "bogus"})
	if err == nil {
		t.Error("Expected error for invalid confidence")
	}
}

func TestMergeConnectionsHandler(t *testing.T) {
	database := setupTestDB(t)

	primary := &models.Connection{Name: "Anna Lee", Category: "Prayer"}
	if err := db.CreateConnection(database, primary); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}
	dup := &models.Connection{Name: "anna lee", Category: "LaFe"}
	if err := db.CreateConnection(database, dup); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	handler := NewDuplicateHandlers(database)

	_, output, err := handler.MergeConnections(context.Background(), nil, MergeConnectionsInput{
		PrimaryID:    primary.ID.String(),
		DuplicateIDs: []string{dup.ID.String()},
	})
	if err != nil {
		t.Fatalf("MergeConnections failed: %v", err)
	}

	if output.RemovedCount != 1 {
		t.Errorf("Expected 1 removed, got %d", output.RemovedCount)
	}
	if len(output.Merged.Categories) != 2 {
		t.Errorf("Expected merged categories, got %v", output.Merged.Categories)
	}

	gone, err := db.GetConnection(database, dup.ID)
	if err != nil {
		t.Fatalf("Failed to check duplicate: %v", err)
	}
	if gone != nil {
		t.Error("Expected duplicate to be deleted")
	}
}

func TestMergeConnectionsHandlerValidation(t *testing.T) {
	database := setupTestDB(t)

	handler := NewDuplicateHandlers(database)

	_, _, err := handler.MergeConnections(context.Background(), nil, MergeConnectionsInput{})
	if err == nil {
		t.Error("Expected error for missing primary_id")
	}

	_, _, err = handler.MergeConnections(context.Background(), nil, MergeConnectionsInput{
		PrimaryID: "not-a-uuid", DuplicateIDs: []string{"also-bad"},
	})
	if err == nil {
		t.Error("Expected error for invalid primary_id")
	}
}
