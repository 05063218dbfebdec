// ABOUTME: Web server subcommand
// ABOUTME: Starts the browser UI for the roster
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/umassiv/roster/web"
)

// ServeCommand starts the web UI
func ServeCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8420, "Port to listen on")
	_ = fs.Parse(args)

	server, err := web.NewServer(database)
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	fmt.Printf("Roster web UI: http://localhost:%d\n", *port)
	return server.Start(*port)
}
