// ABOUTME: Visualization CLI commands
// ABOUTME: Handles viz dashboard and graph generation commands
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/umassiv/roster/viz"
)

// VizGraphNetworkCommand generates the community network graph.
func VizGraphNetworkCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz graph network", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	viewer := fs.String("viewer", "", "Member ID to highlight as viewer")

	if err := fs.Parse(args); err != nil {
		return err
	}

	generator := viz.NewGraphGenerator(database)

	var viewerID *uuid.UUID
	if *viewer != "" {
		id, err := uuid.Parse(*viewer)
		if err != nil {
			return fmt.Errorf("invalid member ID: %w", err)
		}
		viewerID = &id
	}

	dot, err := generator.GenerateNetworkGraph(viewerID)
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	fmt.Println(dot)
	return nil
}

// VizGraphPersonCommand generates a single connection's graph.
func VizGraphPersonCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz graph person", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("connection ID required")
	}

	connectionID, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid connection ID: %w", err)
	}

	generator := viz.NewGraphGenerator(database)
	dot, err := generator.GeneratePersonGraph(connectionID)
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	fmt.Println(dot)
	return nil
}

func VizDashboardCommand(database *sql.DB, args []string) error {
	stats, err := viz.GenerateDashboardStats(database)
	if err != nil {
		return fmt.Errorf("failed to generate dashboard stats: %w", err)
	}

	output := viz.RenderDashboard(stats)
	fmt.Print(output)

	return nil
}
