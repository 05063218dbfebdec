// ABOUTME: Tests for CLI command plumbing
// ABOUTME: Exercises flag parsing, validation, and database effects
package cli

import (
	"database/sql"
	"reflect"
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

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"Prayer", []string{"Prayer"}},
		{"Prayer,LaFe", []string{"Prayer", "LaFe"}},
		{" Prayer , LaFe ,", []string{"Prayer", "LaFe"}},
		{",,", nil},
	}

	for _, tt := range tests {
		got := splitList(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAddConnectionCommand(t *testing.T) {
	database := setupTestDB(t)

	err := AddConnectionCommand(database, []string{
		"--name", "Anna Lee",
		"--categories", "Prayer,LaFe",
		"--user", "Sam Carter",
	})
	if err != nil {
		t.Fatalf("AddConnectionCommand failed: %v", err)
	}

	connections, err := db.FindConnectionsByName(database, "Anna Lee")
	if err != nil {
		t.Fatalf("Failed to find connection: %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("Expected 1 connection, got %d", len(connections))
	}
	if connections[0].Category != "Prayer" {
		t.Errorf("Expected primary category Prayer, got %q", connections[0].Category)
	}

	// The member should have been created on the fly.
	user, err := db.FindUserByName(database, "Sam Carter")
	if err != nil {
		t.Fatalf("Failed to find user: %v", err)
	}
	if user == nil {
		t.Fatal("Expected user to be created")
	}
	if connections[0].UserID != user.ID {
		t.Error("Expected connection linked to the new user")
	}
}

func TestAddConnectionRequiresName(t *testing.T) {
	database := setupTestDB(t)

	if err := AddConnectionCommand(database, nil); err == nil {
		t.Error("Expected error without --name")
	}
}

func TestUpdateConnectionCommand(t *testing.T) {
	database := setupTestDB(t)

	conn := &models.Connection{Name: "Anna Lee", Category: "Prayer", Categories: []string{"Prayer"}}
	if err := db.CreateConnection(database, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	err := UpdateConnectionCommand(database, []string{
		"--categories", "LaFe,Worship",
		conn.ID.String(),
	})
	if err != nil {
		t.Fatalf("UpdateConnectionCommand failed: %v", err)
	}

	got, err := db.GetConnection(database, conn.ID)
	if err != nil {
		t.Fatalf("Failed to load connection: %v", err)
	}
	if got.Category != "LaFe" {
		t.Errorf("Expected primary category LaFe, got %q", got.Category)
	}
	if !reflect.DeepEqual(got.Categories, []string{"LaFe", "Worship"}) {
		t.Errorf("Unexpected categories: %v", got.Categories)
	}
	if got.Name != "Anna Lee" {
		t.Errorf("Expected name untouched, got %q", got.Name)
	}
}

func TestMergeConnectionsCommandValidation(t *testing.T) {
	database := setupTestDB(t)

	if err := MergeConnectionsCommand(database, nil); err == nil {
		t.Error("Expected error without --primary")
	}
	if err := MergeConnectionsCommand(database, []string{"--primary", "not-a-uuid", "--duplicates", "x"}); err == nil {
		t.Error("Expected error for invalid primary ID")
	}
}

func TestMergeConnectionsCommand(t *testing.T) {
	database := setupTestDB(t)

	primary := &models.Connection{Name: "Anna Lee", Category: "Prayer", Categories: []string{"Prayer"}}
	dup := &models.Connection{Name: "anna  lee", Category: "LaFe", Categories: []string{"LaFe"}}
	if err := db.CreateConnection(database, primary); err != nil {
		t.Fatalf("Failed to create primary: %v", err)
	}
	if err := db.CreateConnection(database, dup); err != nil {
		t.Fatalf("Failed to create duplicate: %v", err)
	}

	err := MergeConnectionsCommand(database, []string{
		"--primary", primary.ID.String(),
		"--duplicates", dup.ID.String(),
	})
	if err != nil {
		t.Fatalf("MergeConnectionsCommand failed: %v", err)
	}

	merged, err := db.GetConnection(database, primary.ID)
	if err != nil {
		t.Fatalf("Failed to load merged connection: %v", err)
	}
	if !reflect.DeepEqual(merged.Categories, []string{"Prayer", "LaFe"}) {
		t.Errorf("Expected merged categories, got %v", merged.Categories)
	}

	gone, err := db.GetConnection(database, dup.ID)
	if err != nil {
		t.Fatalf("Failed to check duplicate: %v", err)
	}
	if gone != nil {
		t.Error("Expected duplicate to be deleted")
	}
}
