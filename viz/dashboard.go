// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides ASCII dashboard for a roster overview
package viz

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/dedupe"
	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
)

type DashboardStats struct {
	// Membership per category, first-seen order
	Categories []CategoryStats

	// Overall stats
	TotalConnections int
	TotalUsers       int
	TotalCategories  int

	// Duplicate suggestions by confidence
	DuplicatesHigh   int
	DuplicatesMedium int
	DuplicatesLow    int

	// Recent additions (last 7 days)
	RecentConnections []RecentConnection
}

type CategoryStats struct {
	Name  string
	Count int
}

type RecentConnection struct {
	Name    string
	AddedAt time.Time
}

func GenerateDashboardStats(database *sql.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}

	connections, err := db.AllConnections(database)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}
	stats.TotalConnections = len(connections)

	users, err := db.AllUsers(database)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	stats.TotalUsers = len(users)

	// Category breakdown in first-seen order.
	counts := make(map[string]int)
	var order []string
	for _, c := range connections {
		for _, category := range netgraph.ConnectionCategories(c) {
			if _, seen := counts[category]; !seen {
				order = append(order, category)
			}
			counts[category]++
		}
	}
	for _, category := range order {
		stats.Categories = append(stats.Categories, CategoryStats{
			Name:  category,
			Count: counts[category],
		})
	}
	stats.TotalCategories = len(order)

	// Duplicate suggestions by confidence.
	for _, suggestion := range dedupe.FindDuplicateSuggestions(connections, users) {
		switch suggestion.Confidence {
		case models.ConfidenceHigh:
			stats.DuplicatesHigh++
		case models.ConfidenceMedium:
			stats.DuplicatesMedium++
		default:
			stats.DuplicatesLow++
		}
	}

	// Recent additions (last 7 days).
	cutoff := time.Now().AddDate(0, 0, -7)
	for _, c := range connections {
		if c.CreatedAt.After(cutoff) {
			stats.RecentConnections = append(stats.RecentConnections, RecentConnection{
				Name:    c.Name,
				AddedAt: c.CreatedAt,
			})
		}
	}

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  " + strings.ToUpper(netgraph.RootNodeName) + " ROSTER\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	// Category breakdown
	out.WriteString("GROUPS\n")
	renderCategories(&out, stats.Categories)
	out.WriteString("\n")

	// Stats
	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d connections  👤 %d members  🏷️ %d groups\n\n",
		stats.TotalConnections, stats.TotalUsers, stats.TotalCategories))

	// Needs attention
	totalDuplicates := stats.DuplicatesHigh + stats.DuplicatesMedium + stats.DuplicatesLow
	if totalDuplicates > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		out.WriteString(fmt.Sprintf("  ⚠️  %d possible duplicates (%d high, %d medium, %d low)\n",
			totalDuplicates, stats.DuplicatesHigh, stats.DuplicatesMedium, stats.DuplicatesLow))
		out.WriteString("\n")
	}

	// Recent additions
	if len(stats.RecentConnections) > 0 {
		out.WriteString("ADDED THIS WEEK\n")
		for _, recent := range stats.RecentConnections {
			out.WriteString(fmt.Sprintf("  %s (%s)\n", recent.Name, recent.AddedAt.Format("Jan 2")))
		}
	}

	return out.String()
}

func renderCategories(out *strings.Builder, categories []CategoryStats) {
	// Find max count for scaling
	maxCount := 0
	for _, cstats := range categories {
		if cstats.Count > maxCount {
			maxCount = cstats.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, cstats := range categories {
		// Calculate bar length (0-10 blocks)
		barLength := (cstats.Count * 10) / maxCount

		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-22s %s  %2d\n", cstats.Name, bar, cstats.Count))
	}
}
