// ABOUTME: Data models for roster entities
// ABOUTME: Defines Connection, User, DuplicateSuggestion, and network graph structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type Connection struct {
	ID uuid.UUID `json:"id"`
	// Name is the display name. Not unique; duplicate detection exists
	// precisely because the same person gets entered more than once.
	Name string `json:"name"`
	// Category is the legacy single-category field. Readers must treat
	// it as a one-element category list when Categories is empty.
	Category   string   `json:"category"`
	Categories []string `json:"categories,omitempty"`
	// MutualConnections holds names (not IDs) of other connections.
	// The relation is intentionally weak: resolved by exact name match
	// at graph-build time, never enforced by the store.
	MutualConnections []string  `json:"mutual_connections"`
	UserID            uuid.UUID `json:"user_id"`
	UserName          string    `json:"user_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Duplicate suggestion confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// DuplicateSuggestion is derived output, never persisted.
type DuplicateSuggestion struct {
	Name          string       `json:"name"`
	Matches       []Connection `json:"matches"`
	MatchingUsers []User       `json:"matching_users,omitempty"`
	Confidence    string       `json:"confidence"`
	Reason        string       `json:"reason,omitempty"`
}

// Network node types.
const (
	NodeTypePerson   = "person"
	NodeTypeCategory = "category"
	NodeTypeUser     = "user"
	NodeTypeRoot     = "root"
)

// Group indexes for the synthetic nodes. Category nodes use their
// first-seen index (0..n); person nodes inherit their primary
// category's index.
const (
	GroupRoot = -2
	GroupUser = -1
)

type NetworkNode struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Categories []string `json:"categories,omitempty"`
	UserID     string   `json:"user_id,omitempty"`
	UserName   string   `json:"user_name,omitempty"`
	// Group drives color and force grouping in the renderer.
	Group         int    `json:"group"`
	NodeType      string `json:"node_type"`
	IsCurrentUser bool   `json:"is_current_user,omitempty"`
	MemberCount   int    `json:"member_count,omitempty"`
}

// NetworkLink is written source→target but rendered as an undirected
// weighted edge; Value is a visual weight only.
type NetworkLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

type NetworkData struct {
	Nodes []NetworkNode `json:"nodes"`
	Links []NetworkLink `json:"links"`
}
