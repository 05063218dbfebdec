// ABOUTME: Test suite for connection database operations
// ABOUTME: Verifies CRUD operations, snapshot ordering, and list-column round-trips
package db

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/umassiv/roster/models"
)

func TestCreateAndGetConnection(t *testing.T) {
	db := setupTestDB(t)

	conn := &models.Connection{
		Name:              "Anna Lee",
		Category:          "Freshman Group",
		Categories:        []string{"Freshman Group", "Prayer"},
		MutualConnections: []string{"Bob Smith"},
		UserName:          "Sam Carter",
	}

	if err := CreateConnection(db, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	if conn.ID == uuid.Nil {
		t.Error("Expected ID to be assigned")
	}
	if conn.CreatedAt.IsZero() || conn.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	retrieved, err := GetConnection(db, conn.ID)
	if err != nil {
		t.Fatalf("Failed to get connection: %v", err)
	}
	if retrieved == nil {
		t.Fatal("Expected connection to be found")
	}

	if retrieved.Name != "Anna Lee" {
		t.Errorf("Expected name 'Anna Lee', got '%s'", retrieved.Name)
	}
	if len(retrieved.Categories) != 2 || retrieved.Categories[0] != "Freshman Group" || retrieved.Categories[1] != "Prayer" {
		t.Errorf("Categories did not round-trip: %v", retrieved.Categories)
	}
	if len(retrieved.MutualConnections) != 1 || retrieved.MutualConnections[0] != "Bob Smith" {
		t.Errorf("Mutual connections did not round-trip: %v", retrieved.MutualConnections)
	}
	if retrieved.UserID != uuid.Nil {
		t.Errorf("Expected nil user id, got %s", retrieved.UserID)
	}
}

func TestGetConnectionNotFound(t *testing.T) {
	db := setupTestDB(t)

	retrieved, err := GetConnection(db, uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for missing connection, got %v", err)
	}
	if retrieved != nil {
		t.Error("Expected nil for missing connection")
	}
}

func TestCreateConnectionWithUser(t *testing.T) {
	db := setupTestDB(t)

	user := &models.User{Name: "Sam Carter"}
	if err := CreateUser(db, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	conn := &models.Connection{
		Name:     "Anna Lee",
		Category: "Prayer",
		UserID:   user.ID,
		UserName: user.Name,
	}
	if err := CreateConnection(db, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	retrieved, err := GetConnection(db, conn.ID)
	if err != nil {
		t.Fatalf("Failed to get connection: %v", err)
	}
	if retrieved.UserID != user.ID {
		t.Errorf("Expected user id %s, got %s", user.ID, retrieved.UserID)
	}
	if retrieved.UserName != "Sam Carter" {
		t.Errorf("Expected user name 'Sam Carter', got '%s'", retrieved.UserName)
	}
}

func TestAllConnectionsNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	first := &models.Connection{Name: "First"}
	if err := CreateConnection(db, first); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	second := &models.Connection{Name: "Second"}
	if err := CreateConnection(db, second); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	all, err := AllConnections(db)
	if err != nil {
		t.Fatalf("Failed to list connections: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 connections, got %d", len(all))
	}
	if all[0].Name != "Second" || all[1].Name != "First" {
		t.Errorf("Expected newest first, got %s then %s", all[0].Name, all[1].Name)
	}
}

func TestFindConnections(t *testing.T) {
	db := setupTestDB(t)

	user := &models.User{Name: "Sam Carter"}
	if err := CreateUser(db, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	conns := []*models.Connection{
		{Name: "Anna Lee", Category: "Prayer", UserID: user.ID},
		{Name: "Bob Smith", Category: "Large Group"},
		{Name: "Annabel Woods", Categories: []string{"Prayer"}},
	}
	for _, c := range conns {
		if err := CreateConnection(db, c); err != nil {
			t.Fatalf("Failed to create connection: %v", err)
		}
	}

	// Name search is case-insensitive substring.
	results, err := FindConnections(db, "anna", nil, 10)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 matches for 'anna', got %d", len(results))
	}

	// Category search matches both the legacy column and the list.
	results, err = FindConnections(db, "prayer", nil, 10)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 matches for 'prayer', got %d", len(results))
	}

	// User filter takes precedence.
	results, err = FindConnections(db, "", &user.ID, 10)
	if err != nil {
		t.Fatalf("Failed to filter by user: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Anna Lee" {
		t.Errorf("Expected only Anna Lee for user filter, got %v", results)
	}

	// Empty query returns the newest rows up to the limit.
	results, err = FindConnections(db, "", nil, 2)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected limit of 2, got %d", len(results))
	}
}

func TestFindConnectionsByName(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"Sam Carter", "Sam Carter", "Samuel Carter"} {
		if err := CreateConnection(db, &models.Connection{Name: name}); err != nil {
			t.Fatalf("Failed to create connection: %v", err)
		}
	}

	results, err := FindConnectionsByName(db, "Sam Carter")
	if err != nil {
		t.Fatalf("Failed to find by name: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 exact matches, got %d", len(results))
	}
}

func TestUpdateConnection(t *testing.T) {
	db := setupTestDB(t)

	conn := &models.Connection{Name: "Anna Lee", Category: "Prayer"}
	if err := CreateConnection(db, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	conn.Name = "Anna Lee-Park"
	conn.Categories = []string{"Prayer", "LaFe"}
	conn.MutualConnections = []string{"Bob Smith"}
	if err := UpdateConnection(db, conn.ID, conn); err != nil {
		t.Fatalf("Failed to update connection: %v", err)
	}

	retrieved, err := GetConnection(db, conn.ID)
	if err != nil {
		t.Fatalf("Failed to get connection: %v", err)
	}
	if retrieved.Name != "Anna Lee-Park" {
		t.Errorf("Expected updated name, got '%s'", retrieved.Name)
	}
	if len(retrieved.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %v", retrieved.Categories)
	}
	if len(retrieved.MutualConnections) != 1 {
		t.Errorf("Expected 1 mutual connection, got %v", retrieved.MutualConnections)
	}
}

func TestDeleteConnection(t *testing.T) {
	db := setupTestDB(t)

	conn := &models.Connection{Name: "Anna Lee"}
	if err := CreateConnection(db, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	if err := DeleteConnection(db, conn.ID); err != nil {
		t.Fatalf("Failed to delete connection: %v", err)
	}

	retrieved, err := GetConnection(db, conn.ID)
	if err != nil {
		t.Fatalf("Failed to get connection after deletion: %v", err)
	}
	if retrieved != nil {
		t.Error("Expected connection to be deleted")
	}

	// Deleting a missing row is not an error.
	if err := DeleteConnection(db, uuid.New()); err != nil {
		t.Fatalf("Expected no error deleting missing connection, got %v", err)
	}
}

func TestCountConnections(t *testing.T) {
	db := setupTestDB(t)

	count, err := CountConnections(db)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0, got %d", count)
	}

	if err := CreateConnection(db, &models.Connection{Name: "Anna Lee"}); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	count, err = CountConnections(db)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1, got %d", count)
	}
}

func TestStringListRoundTrip(t *testing.T) {
	if got := marshalStringList(nil); got != "[]" {
		t.Errorf("Expected '[]' for nil, got %q", got)
	}
	if got := unmarshalStringList("[]"); got != nil {
		t.Errorf("Expected nil for '[]', got %v", got)
	}
	if got := unmarshalStringList(""); got != nil {
		t.Errorf("Expected nil for empty string, got %v", got)
	}
	if got := unmarshalStringList("not json"); got != nil {
		t.Errorf("Expected nil for malformed column, got %v", got)
	}

	raw := marshalStringList([]string{"a", "b"})
	list := unmarshalStringList(raw)
	if len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("Round-trip failed: %v", list)
	}
}
