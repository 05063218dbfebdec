// ABOUTME: Category normalization and color assignment
// ABOUTME: Shared fallback rule for the legacy single-category field
package netgraph

import (
	"strings"

	"github.com/umassiv/roster/models"
)

// UncategorizedLabel is the bucket for blank or whitespace categories.
const UncategorizedLabel = "Uncategorized"

// NormalizeCategory trims a category label, mapping empty input to
// UncategorizedLabel. Idempotent.
func NormalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return UncategorizedLabel
	}
	return trimmed
}

// ConnectionCategories returns the normalized category list for a
// connection, falling back to the legacy single Category field when the
// list is empty. Every consumer of connection categories goes through
// here so the fallback rule cannot diverge between call sites.
func ConnectionCategories(c models.Connection) []string {
	raw := c.Categories
	if len(raw) == 0 {
		raw = []string{c.Category}
	}

	categories := make([]string, len(raw))
	for i, cat := range raw {
		categories[i] = NormalizeCategory(cat)
	}
	return categories
}

// CategoryPreset pairs a well-known group label with its display color.
type CategoryPreset struct {
	Label string
	Color string
}

// CategoryPresets are the chapter's standing groups.
var CategoryPresets = []CategoryPreset{
	{Label: "Freshman Group", Color: "#E76127"},
	{Label: "Val/Santa's group", Color: "#006880"},
	{Label: "Naomie/Juliette's group", Color: "#D41A69"},
	{Label: "Cliff/Ayo's group", Color: "#48C1E1"},
	{Label: "Caleb/Milaura's group", Color: "#95C93D"},
	{Label: "LaFe", Color: "#FFC60B"},
	{Label: "Large Group", Color: "#0B3C61"},
	{Label: "Prayer", Color: "#333333"},
}

// brandPalette cycles for categories without a preset color.
var brandPalette = []string{
	"#48C1E1", "#95C93D", "#FFC60B", "#006880", "#0B3C61", "#E76127", "#D41A69",
}

// PresetLabels returns the preset labels in display order.
func PresetLabels() []string {
	labels := make([]string, len(CategoryPresets))
	for i, p := range CategoryPresets {
		labels[i] = p.Label
	}
	return labels
}

// AssignCategoryColors maps each category label to a display color:
// preset labels keep their fixed colors, anything else takes the next
// color from the brand palette in the order given.
func AssignCategoryColors(categories []string) map[string]string {
	colors := make(map[string]string, len(CategoryPresets)+len(categories))
	for _, p := range CategoryPresets {
		colors[p.Label] = p.Color
	}

	dynamicIndex := 0
	for _, category := range categories {
		if _, ok := colors[category]; ok {
			continue
		}
		colors[category] = brandPalette[dynamicIndex%len(brandPalette)]
		dynamicIndex++
	}

	return colors
}
