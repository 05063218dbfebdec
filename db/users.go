// ABOUTME: User database operations
// ABOUTME: Handles CRUD operations and name lookups for community members
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/umassiv/roster/models"
)

func CreateUser(db *sql.DB, user *models.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO users (id, name, created_at)
		VALUES (?, ?, ?)
	`, user.ID.String(), user.Name, user.CreatedAt)

	return err
}

func GetUser(db *sql.DB, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	var idStr string

	err := db.QueryRow(`
		SELECT id, name, created_at FROM users WHERE id = ?
	`, id.String()).Scan(&idStr, &user.Name, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", idStr, err)
	}
	user.ID = uid

	return user, nil
}

// FindUserByName matches case-insensitively on the exact name.
func FindUserByName(db *sql.DB, name string) (*models.User, error) {
	user := &models.User{}
	var idStr string

	err := db.QueryRow(`
		SELECT id, name, created_at FROM users
		WHERE LOWER(name) = LOWER(?)
		ORDER BY created_at, id
		LIMIT 1
	`, name).Scan(&idStr, &user.Name, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", idStr, err)
	}
	user.ID = uid

	return user, nil
}

// AllUsers returns every community member, oldest first.
func AllUsers(db *sql.DB) ([]models.User, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at FROM users
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var idStr string
		if err := rows.Scan(&idStr, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		uid, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", idStr, err)
		}
		u.ID = uid
		users = append(users, u)
	}

	return users, rows.Err()
}

func DeleteUser(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	// Detach authored connections rather than deleting them.
	_, err = tx.Exec(`UPDATE connections SET user_id = NULL WHERE user_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to detach connections: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM users WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return tx.Commit()
}

func CountUsers(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
