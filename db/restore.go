// ABOUTME: Restore operations for backup snapshots
// ABOUTME: Re-inserts records with their original ids and timestamps
package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/umassiv/roster/models"
)

// RestoreUser inserts a user keeping its original id; existing rows are
// left alone.
func RestoreUser(db *sql.DB, user *models.User) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO users (id, name, created_at)
		VALUES (?, ?, ?)
	`, user.ID.String(), user.Name, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to restore user: %w", err)
	}
	return nil
}

// RestoreConnection inserts a connection keeping its original id and
// timestamps; existing rows are left alone.
func RestoreConnection(db *sql.DB, connection *models.Connection) error {
	var userID *string
	if connection.UserID != uuid.Nil {
		s := connection.UserID.String()
		userID = &s
	}

	_, err := db.Exec(`
		INSERT OR IGNORE INTO connections (`+connectionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, connection.ID.String(), connection.Name, connection.Category,
		marshalStringList(connection.Categories), marshalStringList(connection.MutualConnections),
		userID, connection.UserName, connection.CreatedAt, connection.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to restore connection: %w", err)
	}
	return nil
}
