// ABOUTME: Roster backup and restore over Charm KV
// ABOUTME: Stores full snapshots as JSON under backup/ keys
package charm

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
)

const backupPrefix = "backup/"

// Snapshot is a full copy of the roster at a point in time.
type Snapshot struct {
	CreatedAt   time.Time           `json:"created_at"`
	Connections []models.Connection `json:"connections"`
	Users       []models.User       `json:"users"`
}

// PushBackup snapshots the roster into the KV store and returns the
// backup key. Keys are ULIDs, so they sort chronologically.
func PushBackup(database *sql.DB, client *Client) (string, error) {
	connections, err := db.AllConnections(database)
	if err != nil {
		return "", fmt.Errorf("failed to load connections: %w", err)
	}

	users, err := db.AllUsers(database)
	if err != nil {
		return "", fmt.Errorf("failed to load users: %w", err)
	}

	snapshot := Snapshot{
		CreatedAt:   time.Now(),
		Connections: connections,
		Users:       users,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	key := backupPrefix + ulid.MustNew(ulid.Timestamp(snapshot.CreatedAt), entropy).String()

	if err := client.Set([]byte(key), data); err != nil {
		return "", fmt.Errorf("failed to store backup: %w", err)
	}

	return key, nil
}

// ListBackups returns backup keys, newest first.
func ListBackups(client *Client) ([]string, error) {
	keys, err := client.KeysWithPrefix([]byte(backupPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// PullBackup restores a snapshot into the database. Records already
// present (by id) are left untouched; the restore only fills gaps.
// An empty key restores the most recent backup.
func PullBackup(database *sql.DB, client *Client, key string) (*Snapshot, error) {
	if key == "" {
		keys, err := ListBackups(client)
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("no backups found")
		}
		key = keys[0]
	}

	data, err := client.Get([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backup %q: %w", key, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode backup %q: %w", key, err)
	}

	// Users first so connection foreign keys resolve.
	for i := range snapshot.Users {
		if err := db.RestoreUser(database, &snapshot.Users[i]); err != nil {
			return nil, err
		}
	}
	for i := range snapshot.Connections {
		if err := db.RestoreConnection(database, &snapshot.Connections[i]); err != nil {
			return nil, err
		}
	}

	return &snapshot, nil
}
