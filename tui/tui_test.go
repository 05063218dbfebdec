// ABOUTME: Tests for the TUI model
// ABOUTME: Exercises view transitions, search capture, and delete confirmation
package tui

import (
	"database/sql"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
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

func keyMsg(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabSwitching(t *testing.T) {
	m := NewModel(setupTestDB(t))

	if m.entityType != EntityConnections {
		t.Fatalf("Expected connections tab first, got %v", m.entityType)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.entityType != EntityUsers {
		t.Errorf("Expected members tab after one tab, got %v", m.entityType)
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.entityType != EntityDuplicates {
		t.Errorf("Expected duplicates tab after two tabs, got %v", m.entityType)
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.entityType != EntityConnections {
		t.Errorf("Expected tabs to wrap around, got %v", m.entityType)
	}
}

func TestListViewShowsConnections(t *testing.T) {
	database := setupTestDB(t)
	conn := &models.Connection{
		Name:       "Anna Lee",
		Category:   "Prayer",
		Categories: []string{"Prayer"},
	}
	if err := db.CreateConnection(database, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	m := NewModel(database)
	view := m.View()

	if !strings.Contains(view, "Anna Lee") {
		t.Error("Expected connection name in list view")
	}
	if !strings.Contains(view, "UMASS INTERVARSITY ROSTER") {
		t.Error("Expected title in list view")
	}
}

func TestSearchCapture(t *testing.T) {
	m := NewModel(setupTestDB(t))

	next, _ := m.Update(keyMsg("/"))
	m = next.(Model)
	if !m.searching {
		t.Fatal("Expected search mode after /")
	}

	// While searching, q is input rather than quit
	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if cmd != nil {
		t.Error("Expected q to be captured by search, not quit")
	}
	if m.searchQuery != "q" {
		t.Errorf("Expected query %q, got %q", "q", m.searchQuery)
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	if m.searching {
		t.Error("Expected enter to leave search mode")
	}
	if m.searchQuery != "q" {
		t.Errorf("Expected query to persist as filter, got %q", m.searchQuery)
	}
}

func TestDetailAndBack(t *testing.T) {
	database := setupTestDB(t)
	conn := &models.Connection{Name: "Anna Lee", Category: "Prayer", Categories: []string{"Prayer"}}
	if err := db.CreateConnection(database, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	m := NewModel(database)

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	if m.viewMode != ViewDetail {
		t.Fatalf("Expected detail view, got %v", m.viewMode)
	}
	if m.selectedID != conn.ID.String() {
		t.Errorf("Expected selected ID %s, got %s", conn.ID, m.selectedID)
	}

	view := m.View()
	if !strings.Contains(view, "Anna Lee") {
		t.Error("Expected connection name in detail view")
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)
	if m.viewMode != ViewList {
		t.Errorf("Expected list view after esc, got %v", m.viewMode)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	database := setupTestDB(t)
	conn := &models.Connection{Name: "Anna Lee", Category: "Prayer", Categories: []string{"Prayer"}}
	if err := db.CreateConnection(database, conn); err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	m := NewModel(database)

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("d"))
	m = next.(Model)
	if m.viewMode != ViewConfirmDelete {
		t.Fatalf("Expected delete confirmation, got %v", m.viewMode)
	}

	view := m.View()
	if !strings.Contains(view, "DELETE CONFIRMATION") {
		t.Error("Expected confirmation dialog")
	}

	// Cancel keeps the row
	next, _ = m.Update(keyMsg("n"))
	m = next.(Model)
	if m.viewMode != ViewDetail {
		t.Errorf("Expected cancel to return to detail, got %v", m.viewMode)
	}

	got, err := db.GetConnection(database, conn.ID)
	if err != nil || got == nil {
		t.Fatal("Expected connection to survive cancel")
	}

	// Confirm deletes it
	next, _ = m.Update(keyMsg("d"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("y"))
	m = next.(Model)
	if m.viewMode != ViewList {
		t.Errorf("Expected list view after delete, got %v", m.viewMode)
	}

	got, err = db.GetConnection(database, conn.ID)
	if err != nil {
		t.Fatalf("Failed to check connection: %v", err)
	}
	if got != nil {
		t.Error("Expected connection to be deleted")
	}
}
