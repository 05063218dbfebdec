// ABOUTME: Database operations for sync_state and sync_log tables
// ABOUTME: Manages import status, tokens, and per-record import tracking
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sync status constants.
const (
	SyncStatusIdle    = "idle"
	SyncStatusSyncing = "syncing"
	SyncStatusError   = "error"
)

// SyncState represents the sync state for a service.
type SyncState struct {
	Service       string
	LastSyncTime  *time.Time
	LastSyncToken *string
	Status        string
	ErrorMessage  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SyncLog records one imported record and the batch it arrived in.
type SyncLog struct {
	ID            uuid.UUID
	BatchID       string
	SourceService string
	SourceID      string
	EntityID      uuid.UUID
	ImportedAt    time.Time
	Metadata      string
}

// GetSyncState retrieves the sync state for a service.
func GetSyncState(db *sql.DB, service string) (*SyncState, error) {
	var state SyncState
	var lastSyncTime sql.NullTime
	var lastSyncToken sql.NullString
	var errorMessage sql.NullString

	err := db.QueryRow(`
		SELECT service, last_sync_time, last_sync_token, status, error_message, created_at, updated_at
		FROM sync_state
		WHERE service = ?
	`, service).Scan(
		&state.Service,
		&lastSyncTime,
		&lastSyncToken,
		&state.Status,
		&errorMessage,
		&state.CreatedAt,
		&state.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}

	if lastSyncTime.Valid {
		state.LastSyncTime = &lastSyncTime.Time
	}
	if lastSyncToken.Valid {
		state.LastSyncToken = &lastSyncToken.String
	}
	if errorMessage.Valid {
		state.ErrorMessage = &errorMessage.String
	}

	return &state, nil
}

// UpsertSyncState creates or updates the sync state row for a service.
func UpsertSyncState(db *sql.DB, state *SyncState) error {
	now := time.Now()
	_, err := db.Exec(`
		INSERT INTO sync_state (service, last_sync_time, last_sync_token, status, error_message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(service) DO UPDATE SET
			last_sync_time = excluded.last_sync_time,
			last_sync_token = excluded.last_sync_token,
			status = excluded.status,
			error_message = excluded.error_message,
			updated_at = excluded.updated_at
	`, state.Service, state.LastSyncTime, state.LastSyncToken, state.Status, state.ErrorMessage, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert sync state: %w", err)
	}
	return nil
}

// LogImport records an imported record; re-imports of the same source
// record are rejected by the unique constraint.
func LogImport(db *sql.DB, entry *SyncLog) error {
	entry.ID = uuid.New()
	if entry.ImportedAt.IsZero() {
		entry.ImportedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO sync_log (id, batch_id, source_service, source_id, entity_id, imported_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID.String(), entry.BatchID, entry.SourceService, entry.SourceID,
		entry.EntityID.String(), entry.ImportedAt, entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to log import: %w", err)
	}
	return nil
}

// FindImportedEntity returns the local entity id for a source record,
// if it was imported before.
func FindImportedEntity(db *sql.DB, sourceService, sourceID string) (*uuid.UUID, error) {
	var entityStr string
	err := db.QueryRow(`
		SELECT entity_id FROM sync_log
		WHERE source_service = ? AND source_id = ?
	`, sourceService, sourceID).Scan(&entityStr)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up import: %w", err)
	}

	id, err := uuid.Parse(entityStr)
	if err != nil {
		return nil, fmt.Errorf("invalid entity id %q: %w", entityStr, err)
	}
	return &id, nil
}
