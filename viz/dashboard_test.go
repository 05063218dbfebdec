// ABOUTME: Tests for dashboard statistics
// ABOUTME: Verifies totals, category breakdowns, and duplicate counts
package viz

import (
	"database/sql"
	"strings"
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

func TestGenerateDashboardStats(t *testing.T) {
	database := setupTestDB(t)

	user := &models.User{Name: "Sam Carter"}
	if err := db.CreateUser(database, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	conns := []*models.Connection{
		{Name: "Anna Lee", Categories: []string{"Prayer", "LaFe"}},
		{Name: "Anna Lee", Category: "Prayer"},
		{Name: "Bob Smith", Category: "Large Group"},
	}
	for _, c := range conns {
		if err := db.CreateConnection(database, c); err != nil {
			t.Fatalf("Failed to create connection: %v", err)
		}
	}

	stats, err := GenerateDashboardStats(database)
	if err != nil {
		t.Fatalf("Failed to generate stats: %v", err)
	}

	if stats.TotalConnections != 3 {
		t.Errorf("Expected 3 connections, got %d", stats.TotalConnections)
	}
	if stats.TotalUsers != 1 {
		t.Errorf("Expected 1 user, got %d", stats.TotalUsers)
	}
	if stats.TotalCategories != 3 {
		t.Errorf("Expected 3 categories, got %d", stats.TotalCategories)
	}

	counts := make(map[string]int)
	for _, cstats := range stats.Categories {
		counts[cstats.Name] = cstats.Count
	}
	if counts["Prayer"] != 2 {
		t.Errorf("Expected 2 members in Prayer, got %d", counts["Prayer"])
	}

	// The two Anna Lee rows are an exact duplicate pair.
	if stats.DuplicatesHigh != 1 {
		t.Errorf("Expected 1 high-confidence duplicate, got %d", stats.DuplicatesHigh)
	}

	// Everything was created just now.
	if len(stats.RecentConnections) != 3 {
		t.Errorf("Expected 3 recent connections, got %d", len(stats.RecentConnections))
	}
}

func TestRenderDashboard(t *testing.T) {
	stats := &DashboardStats{
		Categories: []CategoryStats{
			{Name: "Prayer", Count: 2},
			{Name: "LaFe", Count: 1},
		},
		TotalConnections: 3,
		TotalUsers:       1,
		TotalCategories:  2,
		DuplicatesHigh:   1,
	}

	out := RenderDashboard(stats)

	if !strings.Contains(out, "Prayer") {
		t.Error("Expected category breakdown in output")
	}
	if !strings.Contains(out, "3 connections") {
		t.Error("Expected connection count in output")
	}
	if !strings.Contains(out, "possible duplicates") {
		t.Error("Expected duplicates warning in output")
	}
}

func TestRenderDashboardEmpty(t *testing.T) {
	out := RenderDashboard(&DashboardStats{})

	if !strings.Contains(out, "0 connections") {
		t.Error("Expected zero counts to render")
	}
	if strings.Contains(out, "NEEDS ATTENTION") {
		t.Error("Expected no attention section without duplicates")
	}
}
