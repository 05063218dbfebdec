// ABOUTME: Duplicate detection and merge MCP tool handlers
// ABOUTME: Implements find_duplicates and merge_connections tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/dedupe"
)

type DuplicateHandlers struct {
	db *sql.DB
}

func NewDuplicateHandlers(database *sql.DB) *DuplicateHandlers {
	return &DuplicateHandlers{db: database}
}

type FindDuplicatesInput struct {
	Confidence string `json:"confidence,omitempty" jsonschema:"Filter by confidence level: high, medium, or low"`
}

type DuplicateSuggestionOutput struct {
	Name          string             `json:"name"`
	Matches       []ConnectionOutput `json:"matches"`
	MatchingUsers []UserOutput       `json:"matching_users,omitempty"`
	Confidence    string             `json:"confidence"`
	Reason        string             `json:"reason"`
}

type FindDuplicatesOutput struct {
	Suggestions []DuplicateSuggestionOutput `json:"suggestions"`
}

func (h *DuplicateHandlers) FindDuplicates(_ context.Context, request *mcp.CallToolRequest, input FindDuplicatesInput) (*mcp.CallToolResult, FindDuplicatesOutput, error) {
	switch input.Confidence {
	case "", "high", "medium", "low":
	default:
		return nil, FindDuplicatesOutput{}, fmt.Errorf("invalid confidence: %q (use high, medium, or low)", input.Confidence)
	}

	connections, err := db.AllConnections(h.db)
	if err != nil {
		return nil, FindDuplicatesOutput{}, fmt.Errorf("failed to fetch connections: %w", err)
	}

	users, err := db.AllUsers(h.db)
	if err != nil {
		return nil, FindDuplicatesOutput{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	suggestions := dedupe.FindDuplicateSuggestions(connections, users)

	result := FindDuplicatesOutput{Suggestions: []DuplicateSuggestionOutput{}}
	for _, suggestion := range suggestions {
		if input.Confidence != "" && suggestion.Confidence != input.Confidence {
			continue
		}

		out := DuplicateSuggestionOutput{
			Name:       suggestion.Name,
			Matches:    make([]ConnectionOutput, len(suggestion.Matches)),
			Confidence: suggestion.Confidence,
			Reason:     suggestion.Reason,
		}
		for i, match := range suggestion.Matches {
			out.Matches[i] = connectionToOutput(&match)
		}
		for _, user := range suggestion.MatchingUsers {
			out.MatchingUsers = append(out.MatchingUsers, userToOutput(&user))
		}
		result.Suggestions = append(result.Suggestions, out)
	}

	return nil, result, nil
}

type MergeConnectionsInput struct {
	PrimaryID    string   `json:"primary_id" jsonschema:"Connection to keep (required)"`
	DuplicateIDs []string `json:"duplicate_ids" jsonschema:"Connections to fold into the primary (required)"`
}

type MergeConnectionsOutput struct {
	Merged       ConnectionOutput `json:"merged"`
	RemovedCount int              `json:"removed_count"`
}

func (h *DuplicateHandlers) MergeConnections(_ context.Context, request *mcp.CallToolRequest, input MergeConnectionsInput) (*mcp.CallToolResult, MergeConnectionsOutput, error) {
	if input.PrimaryID == "" {
		return nil, MergeConnectionsOutput{}, fmt.Errorf("primary_id is required")
	}
	if len(input.DuplicateIDs) == 0 {
		return nil, MergeConnectionsOutput{}, fmt.Errorf("duplicate_ids is required")
	}

	primaryID, err := uuid.Parse(input.PrimaryID)
	if err != nil {
		return nil, MergeConnectionsOutput{}, fmt.Errorf("invalid primary_id: %w", err)
	}

	duplicateIDs := make([]uuid.UUID, 0, len(input.DuplicateIDs))
	for _, idStr := range input.DuplicateIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, MergeConnectionsOutput{}, fmt.Errorf("invalid duplicate id %q: %w", idStr, err)
		}
		if id == primaryID {
			continue
		}
		duplicateIDs = append(duplicateIDs, id)
	}

	merged, err := db.MergeConnections(h.db, primaryID, duplicateIDs)
	if err != nil {
		return nil, MergeConnectionsOutput{}, fmt.Errorf("failed to merge: %w", err)
	}

	return nil, MergeConnectionsOutput{
		Merged:       connectionToOutput(merged),
		RemovedCount: len(duplicateIDs),
	}, nil
}
