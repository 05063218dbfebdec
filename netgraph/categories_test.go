// ABOUTME: Tests for category normalization and color assignment
// ABOUTME: Covers the legacy-field fallback and palette cycling
package netgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umassiv/roster/models"
)

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Prayer", NormalizeCategory("  Prayer "))
	assert.Equal(t, UncategorizedLabel, NormalizeCategory(""))
	assert.Equal(t, UncategorizedLabel, NormalizeCategory("   "))
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	for _, in := range []string{" Prayer ", "", "LaFe", "   "} {
		once := NormalizeCategory(in)
		assert.Equal(t, once, NormalizeCategory(once))
	}
}

func TestConnectionCategoriesLegacyFallback(t *testing.T) {
	legacy := models.Connection{Category: " Prayer "}
	assert.Equal(t, []string{"Prayer"}, ConnectionCategories(legacy))

	blank := models.Connection{}
	assert.Equal(t, []string{UncategorizedLabel}, ConnectionCategories(blank))

	// A populated list wins over the legacy field.
	both := models.Connection{Category: "Prayer", Categories: []string{"LaFe", " Large Group "}}
	assert.Equal(t, []string{"LaFe", "Large Group"}, ConnectionCategories(both))

	// Empty list falls back, same as absent.
	empty := models.Connection{Category: "Prayer", Categories: []string{}}
	assert.Equal(t, []string{"Prayer"}, ConnectionCategories(empty))
}

func TestAssignCategoryColorsPresets(t *testing.T) {
	colors := AssignCategoryColors([]string{"Prayer", "LaFe"})
	assert.Equal(t, "#333333", colors["Prayer"])
	assert.Equal(t, "#FFC60B", colors["LaFe"])
}

func TestAssignCategoryColorsCyclesPalette(t *testing.T) {
	labels := []string{"Zeta", "Eta", "Theta", "Iota", "Kappa", "Lambda", "Mu", "Nu"}
	colors := AssignCategoryColors(labels)

	require.Len(t, colors, len(CategoryPresets)+len(labels))
	assert.Equal(t, brandPalette[0], colors["Zeta"])
	assert.Equal(t, brandPalette[6], colors["Mu"])
	// Eighth unknown label wraps around.
	assert.Equal(t, brandPalette[0], colors["Nu"])
}

func TestAssignCategoryColorsPresetNotConsumedFromPalette(t *testing.T) {
	colors := AssignCategoryColors([]string{"Prayer", "Zeta"})
	assert.Equal(t, "#333333", colors["Prayer"])
	// The preset does not advance the dynamic palette cursor.
	assert.Equal(t, brandPalette[0], colors["Zeta"])
}
