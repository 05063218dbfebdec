// ABOUTME: MCP resource handlers for exposing roster data
// ABOUTME: Provides read-only access to connections, users, and the network via URI
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/dedupe"
	"github.com/umassiv/roster/netgraph"
)

type ResourceHandlers struct {
	db *sql.DB
}

func NewResourceHandlers(database *sql.DB) *ResourceHandlers {
	return &ResourceHandlers{db: database}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "roster://") {
		return nil, fmt.Errorf("invalid URI scheme: expected roster://")
	}

	path := strings.TrimPrefix(uri, "roster://")
	parts := strings.Split(path, "/")

	switch parts[0] {
	case "connections":
		if len(parts) == 1 {
			return h.readAllConnections()
		}
		return h.readConnection(parts[1])

	case "users":
		return h.readAllUsers()

	case "network":
		return h.readNetwork()

	case "duplicates":
		return h.readDuplicates()

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *ResourceHandlers) readAllConnections() (*mcp.ReadResourceResult, error) {
	connections, err := db.AllConnections(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}

	data, err := json.MarshalIndent(connections, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal connections: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      "roster://connections",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) readConnection(idStr string) (*mcp.ReadResourceResult, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection ID: %w", err)
	}

	connection, err := db.GetConnection(h.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connection: %w", err)
	}
	if connection == nil {
		return nil, fmt.Errorf("connection not found: %s", idStr)
	}

	data, err := json.MarshalIndent(connection, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal connection: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      fmt.Sprintf("roster://connections/%s", idStr),
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) readAllUsers() (*mcp.ReadResourceResult, error) {
	users, err := db.AllUsers(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal users: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      "roster://users",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) readNetwork() (*mcp.ReadResourceResult, error) {
	connections, err := db.AllConnections(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}

	data, err := json.MarshalIndent(netgraph.BuildNetworkData(connections, nil), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal network: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      "roster://network",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) readDuplicates() (*mcp.ReadResourceResult, error) {
	connections, err := db.AllConnections(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}

	users, err := db.AllUsers(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	suggestions := dedupe.FindDuplicateSuggestions(connections, users)
	data, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      "roster://duplicates",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
