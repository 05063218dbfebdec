// ABOUTME: Tests for the Google contacts importer
// ABOUTME: Verifies connection creation, linking, and import logging
package gsync

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	database.SetMaxOpenConns(1)
	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	return database
}

func TestImportContactCreatesConnection(t *testing.T) {
	database := setupTestDB(t)

	importer := NewContactsImporter(database)
	importer.matcher = NewConnectionMatcher(nil)

	isNew, err := importer.ImportContact(&GoogleContact{
		ResourceName: "people/c1",
		Name:         "Anna Lee",
	})
	if err != nil {
		t.Fatalf("ImportContact failed: %v", err)
	}
	if !isNew {
		t.Error("Expected a new connection")
	}

	connections, err := db.AllConnections(database)
	if err != nil {
		t.Fatalf("Failed to list connections: %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("Expected 1 connection, got %d", len(connections))
	}
	if connections[0].Category != ImportedCategory {
		t.Errorf("Expected category %q, got %q", ImportedCategory, connections[0].Category)
	}

	// The import was logged against the new connection.
	entityID, err := db.FindImportedEntity(database, "google", "people/c1")
	if err != nil {
		t.Fatalf("Failed to look up import: %v", err)
	}
	if entityID == nil || *entityID != connections[0].ID {
		t.Error("Expected import log to point at the new connection")
	}
}

func TestImportContactLinksExisting(t *testing.T) {
	database := setupTestDB(t)

	existing := &models.Connection{Name: "Anna Lee", Category: "Prayer"}
	if err := db.CreateConnection(database, existing); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	connections, err := db.AllConnections(database)
	if err != nil {
		t.Fatalf("Failed to list connections: %v", err)
	}

	importer := NewContactsImporter(database)
	importer.matcher = NewConnectionMatcher(connections)

	isNew, err := importer.ImportContact(&GoogleContact{
		ResourceName: "people/c1",
		Name:         "anna lee",
	})
	if err != nil {
		t.Fatalf("ImportContact failed: %v", err)
	}
	if isNew {
		t.Error("Expected existing connection to be linked, not duplicated")
	}

	count, err := db.CountConnections(database)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 connection, got %d", count)
	}

	entityID, err := db.FindImportedEntity(database, "google", "people/c1")
	if err != nil {
		t.Fatalf("Failed to look up import: %v", err)
	}
	if entityID == nil || *entityID != existing.ID {
		t.Error("Expected import log to point at the existing connection")
	}
}

func TestImportContactSessionDedup(t *testing.T) {
	database := setupTestDB(t)

	importer := NewContactsImporter(database)
	importer.matcher = NewConnectionMatcher(nil)

	first, err := importer.ImportContact(&GoogleContact{ResourceName: "people/c1", Name: "Anna Lee"})
	if err != nil {
		t.Fatalf("ImportContact failed: %v", err)
	}
	second, err := importer.ImportContact(&GoogleContact{ResourceName: "people/c2", Name: "ANNA LEE"})
	if err != nil {
		t.Fatalf("ImportContact failed: %v", err)
	}

	if !first || second {
		t.Error("Expected only the first import to create a connection")
	}

	count, err := db.CountConnections(database)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 connection, got %d", count)
	}
}
