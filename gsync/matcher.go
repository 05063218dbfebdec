// ABOUTME: Connection deduplication and matching logic for imports
// ABOUTME: Finds existing connections by normalized name to prevent duplicates during sync
package gsync

import (
	"github.com/umassiv/roster/dedupe"
	"github.com/umassiv/roster/models"
)

type ConnectionMatcher struct {
	byName map[string]*models.Connection
}

// NewConnectionMatcher creates a matcher from existing connections.
func NewConnectionMatcher(connections []models.Connection) *ConnectionMatcher {
	m := &ConnectionMatcher{
		byName: make(map[string]*models.Connection),
	}

	for i := range connections {
		name := dedupe.NormalizeName(connections[i].Name)
		if name != "" {
			m.byName[name] = &connections[i]
		}
	}

	return m
}

// FindMatch looks for an existing connection by normalized name.
func (m *ConnectionMatcher) FindMatch(name string) (*models.Connection, bool) {
	normalized := dedupe.NormalizeName(name)
	if normalized == "" {
		return nil, false
	}

	connection, found := m.byName[normalized]
	return connection, found
}

// AddConnection adds a newly created connection to the matcher to
// prevent duplicates within the same import session.
func (m *ConnectionMatcher) AddConnection(connection *models.Connection) {
	name := dedupe.NormalizeName(connection.Name)
	if name != "" {
		m.byName[name] = connection
	}
}
