// ABOUTME: Connection CLI commands
// ABOUTME: Human-friendly commands for managing the roster
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
)

// AddConnectionCommand adds a new connection
func AddConnectionCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Person's name (required)")
	categories := fs.String("categories", "", "Comma-separated group categories")
	mutuals := fs.String("mutuals", "", "Comma-separated names of mutual connections")
	userName := fs.String("user", "", "Member adding this connection (looked up or created)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	connection := &models.Connection{
		Name:              *name,
		Categories:        splitList(*categories),
		MutualConnections: splitList(*mutuals),
	}
	if len(connection.Categories) > 0 {
		connection.Category = connection.Categories[0]
	}

	if *userName != "" {
		user, err := db.FindUserByName(database, *userName)
		if err != nil {
			return fmt.Errorf("failed to lookup user: %w", err)
		}
		if user == nil {
			user = &models.User{Name: *userName}
			if err := db.CreateUser(database, user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			fmt.Printf("✓ Member created: %s\n", user.Name)
		}
		connection.UserID = user.ID
		connection.UserName = user.Name
	}

	if err := db.CreateConnection(database, connection); err != nil {
		return fmt.Errorf("failed to create connection: %w", err)
	}

	fmt.Printf("✓ Connection created: %s (ID: %s)\n", connection.Name, connection.ID)
	if len(connection.Categories) > 0 {
		fmt.Printf("  Groups: %s\n", strings.Join(connection.Categories, ", "))
	}
	if len(connection.MutualConnections) > 0 {
		fmt.Printf("  Mutuals: %s\n", strings.Join(connection.MutualConnections, ", "))
	}

	return nil
}

// ListConnectionsCommand lists connections
func ListConnectionsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or group")
	limit := fs.Int("limit", 50, "Maximum results")
	fs.Parse(args)

	connections, err := db.FindConnections(database, *query, nil, *limit)
	if err != nil {
		return fmt.Errorf("failed to find connections: %w", err)
	}

	if len(connections) == 0 {
		fmt.Println("No connections found")
		return nil
	}

	// Pretty print results
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGROUPS\tADDED BY\tID")
	fmt.Fprintln(w, "----\t------\t--------\t--")

	for _, connection := range connections {
		groups := strings.Join(netgraph.ConnectionCategories(connection), ", ")
		if groups == "" {
			groups = "-"
		}
		addedBy := connection.UserName
		if addedBy == "" {
			addedBy = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			connection.Name, groups, addedBy, connection.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d connection(s)\n", len(connections))
	return nil
}

// UpdateConnectionCommand updates an existing connection
func UpdateConnectionCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "New name")
	categories := fs.String("categories", "", "Comma-separated group categories (replaces existing)")
	mutuals := fs.String("mutuals", "", "Comma-separated mutual connection names (replaces existing)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("connection ID required (flags must come before the ID)")
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid connection ID: %w", err)
	}

	connection, err := db.GetConnection(database, id)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	if connection == nil {
		return fmt.Errorf("connection not found: %s", id)
	}

	if *name != "" {
		connection.Name = *name
	}
	if *categories != "" {
		connection.Categories = splitList(*categories)
		connection.Category = connection.Categories[0]
	}
	if *mutuals != "" {
		connection.MutualConnections = splitList(*mutuals)
	}

	if err := db.UpdateConnection(database, id, connection); err != nil {
		return fmt.Errorf("failed to update connection: %w", err)
	}

	fmt.Printf("✓ Connection updated: %s\n", connection.Name)
	if len(connection.Categories) > 0 {
		fmt.Printf("  Groups: %s\n", strings.Join(connection.Categories, ", "))
	}
	return nil
}

// DeleteConnectionCommand removes a connection
func DeleteConnectionCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("connection ID required")
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid connection ID: %w", err)
	}

	connection, err := db.GetConnection(database, id)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	if connection == nil {
		return fmt.Errorf("connection not found: %s", id)
	}

	if err := db.DeleteConnection(database, id); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted connection: %s\n", connection.Name)
	return nil
}

// splitList splits a comma-separated flag value into trimmed parts.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
