// ABOUTME: Network graph MCP handlers
// ABOUTME: Provides get_network_data and generate_graph tools for agents
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
	"github.com/umassiv/roster/viz"
)

type GraphHandlers struct {
	db *sql.DB
}

func NewGraphHandlers(database *sql.DB) *GraphHandlers {
	return &GraphHandlers{db: database}
}

type GetNetworkDataInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Member viewing the graph; their node is highlighted"`
}

type GetNetworkDataOutput struct {
	Nodes []models.NetworkNode `json:"nodes"`
	Links []models.NetworkLink `json:"links"`
}

func (h *GraphHandlers) GetNetworkData(_ context.Context, request *mcp.CallToolRequest, input GetNetworkDataInput) (*mcp.CallToolResult, GetNetworkDataOutput, error) {
	connections, err := db.AllConnections(h.db)
	if err != nil {
		return nil, GetNetworkDataOutput{}, fmt.Errorf("failed to fetch connections: %w", err)
	}

	var viewer *models.User
	if input.UserID != "" {
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return nil, GetNetworkDataOutput{}, fmt.Errorf("invalid user_id: %w", err)
		}
		viewer, err = db.GetUser(h.db, userID)
		if err != nil {
			return nil, GetNetworkDataOutput{}, fmt.Errorf("failed to fetch user: %w", err)
		}
	}

	data := netgraph.BuildNetworkData(connections, viewer)
	return nil, GetNetworkDataOutput{Nodes: data.Nodes, Links: data.Links}, nil
}

type GenerateGraphInput struct {
	Type     string `json:"type" jsonschema:"Graph type: network or person"`
	EntityID string `json:"entity_id,omitempty" jsonschema:"Connection UUID (required for person); member UUID for network highlighting"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *GraphHandlers) GenerateGraph(_ context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	if input.Type == "" {
		return nil, GenerateGraphOutput{}, fmt.Errorf("type is required")
	}

	generator := viz.NewGraphGenerator(h.db)
	var dot string
	var err error

	switch input.Type {
	case "network":
		var viewerID *uuid.UUID
		if input.EntityID != "" {
			var id uuid.UUID
			id, err = uuid.Parse(input.EntityID)
			if err != nil {
				return nil, GenerateGraphOutput{}, fmt.Errorf("invalid entity_id: %w", err)
			}
			viewerID = &id
		}
		dot, err = generator.GenerateNetworkGraph(viewerID)

	case "person":
		if input.EntityID == "" {
			return nil, GenerateGraphOutput{}, fmt.Errorf("entity_id required for person graph")
		}
		var connectionID uuid.UUID
		connectionID, err = uuid.Parse(input.EntityID)
		if err != nil {
			return nil, GenerateGraphOutput{}, fmt.Errorf("invalid entity_id: %w", err)
		}
		dot, err = generator.GeneratePersonGraph(connectionID)

	default:
		return nil, GenerateGraphOutput{}, fmt.Errorf("unknown graph type: %s (valid types: network, person)", input.Type)
	}

	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	// Count nodes and edges for stats
	nodeCount := strings.Count(dot, "[label=")
	edgeCount := strings.Count(dot, "--")

	return nil, GenerateGraphOutput{
		GraphType: input.Type,
		DOTSource: dot,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}, nil
}
