// ABOUTME: Connection database operations
// ABOUTME: Handles CRUD operations and snapshot queries for connections
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/umassiv/roster/models"
)

const connectionColumns = `id, name, category, categories, mutual_connections, user_id, user_name, created_at, updated_at`

func CreateConnection(db *sql.DB, connection *models.Connection) error {
	connection.ID = uuid.New()
	now := time.Now()
	connection.CreatedAt = now
	connection.UpdatedAt = now

	var userID *string
	if connection.UserID != uuid.Nil {
		s := connection.UserID.String()
		userID = &s
	}

	_, err := db.Exec(`
		INSERT INTO connections (`+connectionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, connection.ID.String(), connection.Name, connection.Category,
		marshalStringList(connection.Categories), marshalStringList(connection.MutualConnections),
		userID, connection.UserName, connection.CreatedAt, connection.UpdatedAt)

	return err
}

func GetConnection(db *sql.DB, id uuid.UUID) (*models.Connection, error) {
	row := db.QueryRow(`
		SELECT `+connectionColumns+`
		FROM connections WHERE id = ?
	`, id.String())

	connection, err := scanConnection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return connection, nil
}

// AllConnections returns the full snapshot, newest first. The duplicate
// detector and graph builder operate on this.
func AllConnections(db *sql.DB) ([]models.Connection, error) {
	rows, err := db.Query(`
		SELECT ` + connectionColumns + `
		FROM connections
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectConnections(rows)
}

func FindConnections(db *sql.DB, query string, userID *uuid.UUID, limit int) ([]models.Connection, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error

	if userID != nil {
		rows, err = db.Query(`
			SELECT `+connectionColumns+`
			FROM connections
			WHERE user_id = ?
			ORDER BY created_at DESC, id
			LIMIT ?
		`, userID.String(), limit)
	} else if query != "" {
		searchPattern := "%" + strings.ToLower(query) + "%"
		rows, err = db.Query(`
			SELECT `+connectionColumns+`
			FROM connections
			WHERE LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(categories) LIKE ?
			ORDER BY created_at DESC, id
			LIMIT ?
		`, searchPattern, searchPattern, searchPattern, limit)
	} else {
		rows, err = db.Query(`
			SELECT `+connectionColumns+`
			FROM connections
			ORDER BY created_at DESC, id
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectConnections(rows)
}

// FindConnectionsByName returns connections whose name matches exactly.
func FindConnectionsByName(db *sql.DB, name string) ([]models.Connection, error) {
	rows, err := db.Query(`
		SELECT `+connectionColumns+`
		FROM connections
		WHERE name = ?
		ORDER BY created_at DESC, id
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectConnections(rows)
}

func UpdateConnection(db *sql.DB, id uuid.UUID, updates *models.Connection) error {
	updates.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE connections
		SET name = ?, category = ?, categories = ?, mutual_connections = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.Category, marshalStringList(updates.Categories),
		marshalStringList(updates.MutualConnections), updates.UpdatedAt, id.String())

	return err
}

func DeleteConnection(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM connections WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	return nil
}

func CountConnections(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM connections`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConnection(row rowScanner) (*models.Connection, error) {
	connection := &models.Connection{}
	var idStr string
	var categories, mutuals string
	var userID sql.NullString

	err := row.Scan(
		&idStr,
		&connection.Name,
		&connection.Category,
		&categories,
		&mutuals,
		&userID,
		&connection.UserName,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection id %q: %w", idStr, err)
	}
	connection.ID = id

	connection.Categories = unmarshalStringList(categories)
	connection.MutualConnections = unmarshalStringList(mutuals)

	if userID.Valid {
		uid, err := uuid.Parse(userID.String)
		if err == nil {
			connection.UserID = uid
		}
	}

	return connection, nil
}

func collectConnections(rows *sql.Rows) ([]models.Connection, error) {
	var connections []models.Connection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		connections = append(connections, *c)
	}
	return connections, rows.Err()
}

// marshalStringList stores a string slice as a JSON text column.
func marshalStringList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalStringList(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}
