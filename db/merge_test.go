// ABOUTME: Test suite for the duplicate merge operation
// ABOUTME: Verifies category and mutual unions and duplicate deletion
package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umassiv/roster/models"
)

func TestMergeConnections(t *testing.T) {
	db := setupTestDB(t)

	primary := &models.Connection{
		Name:              "Sam Carter",
		Categories:        []string{"Freshman Group"},
		MutualConnections: []string{"Anna Lee"},
	}
	require.NoError(t, CreateConnection(db, primary))

	dup1 := &models.Connection{
		Name:              "sam carter",
		Categories:        []string{"Prayer", "Freshman Group"},
		MutualConnections: []string{"Bob Smith", "Sam Carter"},
	}
	require.NoError(t, CreateConnection(db, dup1))

	dup2 := &models.Connection{
		Name:              "Sam  Carter",
		Category:          "LaFe",
		MutualConnections: []string{"Anna Lee", ""},
	}
	require.NoError(t, CreateConnection(db, dup2))

	merged, err := MergeConnections(db, primary.ID, []uuid.UUID{dup1.ID, dup2.ID})
	require.NoError(t, err)
	require.NotNil(t, merged)

	// Primary keeps its id and name.
	assert.Equal(t, primary.ID, merged.ID)
	assert.Equal(t, "Sam Carter", merged.Name)

	// First-seen union of categories, primary first; legacy column falls
	// back when the list is empty.
	assert.Equal(t, []string{"Freshman Group", "Prayer", "LaFe"}, merged.Categories)
	assert.Equal(t, "Freshman Group", merged.Category)

	// Sorted union of mutuals, minus blanks and the primary's own name.
	assert.Equal(t, []string{"Anna Lee", "Bob Smith"}, merged.MutualConnections)

	// Duplicates are gone.
	for _, id := range []uuid.UUID{dup1.ID, dup2.ID} {
		gone, err := GetConnection(db, id)
		require.NoError(t, err)
		assert.Nil(t, gone)
	}

	// The merge persisted.
	stored, err := GetConnection(db, primary.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, merged.Categories, stored.Categories)
	assert.Equal(t, merged.MutualConnections, stored.MutualConnections)
}

func TestMergeConnectionsSkipsPrimaryInDuplicates(t *testing.T) {
	db := setupTestDB(t)

	primary := &models.Connection{Name: "Sam Carter", Category: "Prayer"}
	require.NoError(t, CreateConnection(db, primary))

	dup := &models.Connection{Name: "Sam Carter", Category: "LaFe"}
	require.NoError(t, CreateConnection(db, dup))

	// The primary id appearing in the duplicate list is ignored, not
	// deleted.
	merged, err := MergeConnections(db, primary.ID, []uuid.UUID{primary.ID, dup.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Prayer", "LaFe"}, merged.Categories)

	stored, err := GetConnection(db, primary.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestMergeConnectionsErrors(t *testing.T) {
	db := setupTestDB(t)

	primary := &models.Connection{Name: "Sam Carter"}
	require.NoError(t, CreateConnection(db, primary))

	// Missing primary.
	_, err := MergeConnections(db, uuid.New(), []uuid.UUID{primary.ID})
	assert.Error(t, err)

	// Missing duplicate.
	_, err = MergeConnections(db, primary.ID, []uuid.UUID{uuid.New()})
	assert.Error(t, err)

	// Nothing to merge.
	_, err = MergeConnections(db, primary.ID, nil)
	assert.Error(t, err)
}
