// ABOUTME: Connection MCP tool handlers
// ABOUTME: Implements add_connection, find_connections, update_connection, and delete_connection tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
)

type ConnectionHandlers struct {
	db *sql.DB
}

func NewConnectionHandlers(database *sql.DB) *ConnectionHandlers {
	return &ConnectionHandlers{db: database}
}

type AddConnectionInput struct {
	Name              string   `json:"name" jsonschema:"Person's name (required)"`
	Categories        []string `json:"categories,omitempty" jsonschema:"Group categories the person belongs to"`
	MutualConnections []string `json:"mutual_connections,omitempty" jsonschema:"Names of mutual connections"`
	UserName          string   `json:"user_name,omitempty" jsonschema:"Name of the member adding this connection (looked up or created)"`
}

type ConnectionOutput struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Categories        []string `json:"categories"`
	MutualConnections []string `json:"mutual_connections,omitempty"`
	UserID            *string  `json:"user_id,omitempty"`
	UserName          string   `json:"user_name,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

func (h *ConnectionHandlers) AddConnection(_ context.Context, request *mcp.CallToolRequest, input AddConnectionInput) (*mcp.CallToolResult, ConnectionOutput, error) {
	if input.Name == "" {
		return nil, ConnectionOutput{}, fmt.Errorf("name is required")
	}

	connection := &models.Connection{
		Name:              input.Name,
		Categories:        input.Categories,
		MutualConnections: input.MutualConnections,
	}
	if len(input.Categories) > 0 {
		connection.Category = netgraph.NormalizeCategory(input.Categories[0])
	}

	// Look up or create the authoring member if user_name provided
	if input.UserName != "" {
		user, err := db.FindUserByName(h.db, input.UserName)
		if err != nil {
			return nil, ConnectionOutput{}, fmt.Errorf("failed to lookup user: %w", err)
		}

		if user == nil {
			user = &models.User{Name: input.UserName}
			if err := db.CreateUser(h.db, user); err != nil {
				return nil, ConnectionOutput{}, fmt.Errorf("failed to create user: %w", err)
			}
		}

		connection.UserID = user.ID
		connection.UserName = user.Name
	}

	if err := db.CreateConnection(h.db, connection); err != nil {
		return nil, ConnectionOutput{}, fmt.Errorf("failed to create connection: %w", err)
	}

	return nil, connectionToOutput(connection), nil
}

type FindConnectionsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Search query (searches name and categories)"`
	UserID string `json:"user_id,omitempty" jsonschema:"Filter by the member who added the connection"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindConnectionsOutput struct {
	Connections []ConnectionOutput `json:"connections"`
}

func (h *ConnectionHandlers) FindConnections(_ context.Context, request *mcp.CallToolRequest, input FindConnectionsInput) (*mcp.CallToolResult, FindConnectionsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	var userID *uuid.UUID
	if input.UserID != "" {
		uid, err := uuid.Parse(input.UserID)
		if err != nil {
			return nil, FindConnectionsOutput{}, fmt.Errorf("invalid user_id: %w", err)
		}
		userID = &uid
	}

	connections, err := db.FindConnections(h.db, input.Query, userID, limit)
	if err != nil {
		return nil, FindConnectionsOutput{}, fmt.Errorf("failed to find connections: %w", err)
	}

	result := make([]ConnectionOutput, len(connections))
	for i, connection := range connections {
		result[i] = connectionToOutput(&connection)
	}

	return nil, FindConnectionsOutput{Connections: result}, nil
}

type UpdateConnectionInput struct {
	ID                string   `json:"id" jsonschema:"Connection ID (required)"`
	Name              string   `json:"name,omitempty" jsonschema:"Updated name"`
	Categories        []string `json:"categories,omitempty" jsonschema:"Replacement group categories"`
	MutualConnections []string `json:"mutual_connections,omitempty" jsonschema:"Replacement mutual connection names"`
}

func (h *ConnectionHandlers) UpdateConnection(_ context.Context, request *mcp.CallToolRequest, input UpdateConnectionInput) (*mcp.CallToolResult, ConnectionOutput, error) {
	if input.ID == "" {
		return nil, ConnectionOutput{}, fmt.Errorf("id is required")
	}

	connectionID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, ConnectionOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	connection, err := db.GetConnection(h.db, connectionID)
	if err != nil {
		return nil, ConnectionOutput{}, fmt.Errorf("failed to get connection: %w", err)
	}
	if connection == nil {
		return nil, ConnectionOutput{}, fmt.Errorf("connection not found")
	}

	// Update fields if provided
	if input.Name != "" {
		connection.Name = input.Name
	}
	if input.Categories != nil {
		connection.Categories = input.Categories
		connection.Category = ""
		if len(input.Categories) > 0 {
			connection.Category = netgraph.NormalizeCategory(input.Categories[0])
		}
	}
	if input.MutualConnections != nil {
		connection.MutualConnections = input.MutualConnections
	}

	if err := db.UpdateConnection(h.db, connectionID, connection); err != nil {
		return nil, ConnectionOutput{}, fmt.Errorf("failed to update connection: %w", err)
	}

	return nil, connectionToOutput(connection), nil
}

type DeleteConnectionInput struct {
	ID string `json:"id" jsonschema:"Connection ID (required)"`
}

type DeleteConnectionOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *ConnectionHandlers) DeleteConnection(_ context.Context, request *mcp.CallToolRequest, input DeleteConnectionInput) (*mcp.CallToolResult, DeleteConnectionOutput, error) {
	if input.ID == "" {
		return nil, DeleteConnectionOutput{}, fmt.Errorf("id is required")
	}

	connectionID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteConnectionOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if err := db.DeleteConnection(h.db, connectionID); err != nil {
		return nil, DeleteConnectionOutput{}, fmt.Errorf("failed to delete connection: %w", err)
	}

	return nil, DeleteConnectionOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted connection: %s", connectionID),
	}, nil
}

func connectionToOutput(connection *models.Connection) ConnectionOutput {
	output := ConnectionOutput{
		ID:                connection.ID.String(),
		Name:              connection.Name,
		Categories:        netgraph.ConnectionCategories(*connection),
		MutualConnections: connection.MutualConnections,
		UserName:          connection.UserName,
		CreatedAt:         connection.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:         connection.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if connection.UserID != uuid.Nil {
		uid := connection.UserID.String()
		output.UserID = &uid
	}

	return output
}
