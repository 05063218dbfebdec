// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/umassiv/roster/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(database *sql.DB) error {
	log.Println("Starting Roster MCP Server...")

	// Create handlers
	connectionHandlers := handlers.NewConnectionHandlers(database)
	userHandlers := handlers.NewUserHandlers(database)
	duplicateHandlers := handlers.NewDuplicateHandlers(database)
	graphHandlers := handlers.NewGraphHandlers(database)
	resourceHandlers := handlers.NewResourceHandlers(database)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "roster",
		Version: "0.1.0",
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_connection",
		Description: "Add a person to the community roster with group categories and mutual connections",
	}, connectionHandlers.AddConnection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_connections",
		Description: "Search the roster by name or group category",
	}, connectionHandlers.FindConnections)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_connection",
		Description: "Update an existing connection's name, groups, or mutual connections",
	}, connectionHandlers.UpdateConnection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_connection",
		Description: "Remove a connection from the roster",
	}, connectionHandlers.DeleteConnection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_user",
		Description: "Add a community member who contributes connections",
	}, userHandlers.AddUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_users",
		Description: "Look up community members by name, or list all members",
	}, userHandlers.FindUsers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_user",
		Description: "Remove a member while keeping the connections they added",
	}, userHandlers.DeleteUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_duplicates",
		Description: "Detect likely duplicate roster entries, optionally filtered by confidence",
	}, duplicateHandlers.FindDuplicates)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_connections",
		Description: "Merge duplicate connections into a primary entry, combining groups and mutuals",
	}, duplicateHandlers.MergeConnections)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_network_data",
		Description: "Get the community network graph as nodes and weighted links",
	}, graphHandlers.GetNetworkData)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Render a network or single-person graph in DOT form",
	}, graphHandlers.GenerateGraph)

	// Register resources
	server.AddResource(&mcp.Resource{
		URI:         "roster://connections",
		Name:        "All connections",
		Description: "Every connection in the roster",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "roster://users",
		Name:        "All members",
		Description: "Every community member",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "roster://network",
		Name:        "Network graph",
		Description: "Nodes and weighted links for the community network",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "roster://duplicates",
		Name:        "Duplicate suggestions",
		Description: "Likely duplicate roster entries with confidence and reason",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Run server on stdio transport
	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
