// ABOUTME: Entry point for the roster MCP server and CLI
// ABOUTME: Routes to MCP server, web UI, TUI, or CLI commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/umassiv/roster/charm"
	"github.com/umassiv/roster/cli"
	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/tui"
)

const version = "0.1.0"

func main() {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/roster/roster.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	// Handle version flag
	if *showVersion {
		fmt.Printf("roster version %s\n", version)
		os.Exit(0)
	}

	// Get remaining args after flags
	args := flag.Args()

	// If no command specified, show usage
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Roster database initialized: %s", finalDBPath)
		os.Exit(0)
	}

	// Route to top-level command
	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	// Connection commands
	case "add":
		if err := cli.AddConnectionCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "list":
		if err := cli.ListConnectionsCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "update":
		if err := cli.UpdateConnectionCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "delete":
		if err := cli.DeleteConnectionCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	// Member commands
	case "add-user":
		if err := cli.AddUserCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "list-users":
		if err := cli.ListUsersCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "delete-user":
		if err := cli.DeleteUserCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	// Duplicate commands
	case "duplicates":
		if err := cli.FindDuplicatesCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "merge":
		if err := cli.MergeConnectionsCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "viz":
		if len(commandArgs) == 0 {
			fmt.Println("Error: viz requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		vizCommand := commandArgs[0]
		vizArgs := commandArgs[1:]

		switch vizCommand {
		case "dashboard":
			if err := cli.VizDashboardCommand(database, vizArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "graph":
			if len(vizArgs) == 0 {
				fmt.Println("Error: viz graph requires a type (network or person)")
				printUsage()
				os.Exit(1)
			}

			graphType := vizArgs[0]
			graphArgs := vizArgs[1:]

			switch graphType {
			case "network":
				if err := cli.VizGraphNetworkCommand(database, graphArgs); err != nil {
					log.Fatalf("Error: %v", err)
				}
			case "person":
				if err := cli.VizGraphPersonCommand(database, graphArgs); err != nil {
					log.Fatalf("Error: %v", err)
				}
			default:
				fmt.Printf("Unknown graph type: %s\n\n", graphType)
				printUsage()
				os.Exit(1)
			}

		default:
			fmt.Printf("Unknown viz command: %s\n\n", vizCommand)
			printUsage()
			os.Exit(1)
		}

	case "serve":
		if err := cli.ServeCommand(database, commandArgs); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "watch":
		if err := cli.WatchCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "tui":
		program := tea.NewProgram(tui.NewModel(database), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "sync":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand (init or contacts)")
			printUsage()
			os.Exit(1)
		}

		syncCommand := commandArgs[0]
		syncArgs := commandArgs[1:]

		switch syncCommand {
		case "init":
			if err := cli.SyncInitCommand(database, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "contacts":
			if err := cli.SyncContactsCommand(database, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown sync command: %s\n\n", syncCommand)
			printUsage()
			os.Exit(1)
		}

	case "backup":
		if len(commandArgs) == 0 {
			fmt.Println("Error: backup requires a subcommand (push, pull, list, or status)")
			printUsage()
			os.Exit(1)
		}

		backupCommand := commandArgs[0]
		backupArgs := commandArgs[1:]

		switch backupCommand {
		case "push":
			if err := charm.BackupPushCommand(database, backupArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "pull":
			if err := charm.BackupPullCommand(database, backupArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list":
			if err := charm.BackupListCommand(backupArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "status":
			if err := charm.BackupStatusCommand(backupArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown backup command: %s\n\n", backupCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "roster", "roster.db")
}

func printUsage() {
	fmt.Printf(`roster v%s - UMass InterVarsity community roster

USAGE:
  roster [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/roster/roster.db)
  --init                 Initialize database and exit

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  serve                  Start the web UI
  tui                    Interactive terminal browser
  watch                  Watch the roster and report changes

CONNECTION COMMANDS:
  roster add             Add a connection
    --name <name>          Person's name (required)
    --categories <list>    Comma-separated group categories
    --mutuals <list>       Comma-separated mutual connection names
    --user <name>          Member adding this connection

  roster list            List connections
    --query <text>         Search by name or group
    --limit <n>            Max results (default: 50)

  roster update [flags] <id>  Update a connection
    --name <name>          New name
    --categories <list>    Replace group categories
    --mutuals <list>       Replace mutual connection names
    Note: flags must come before the connection ID

  roster delete <id>     Delete a connection

MEMBER COMMANDS:
  roster add-user        Add a member
    --name <name>          Member name (required)

  roster list-users      List members
  roster delete-user <id>  Delete a member (their connections are kept)

DUPLICATE COMMANDS:
  roster duplicates      List duplicate suggestions
    --confidence <level>   Filter: high, medium, or low

  roster merge           Merge duplicates into a primary connection
    --primary <id>         Connection to keep (required)
    --duplicates <ids>     Comma-separated IDs to merge in (required)

VIZ COMMANDS:
  roster viz dashboard   Terminal dashboard with group stats
  roster viz graph network   Render the community network
    --output <file>          Output file (default: stdout)
    --viewer <id>            Member ID to highlight
  roster viz graph person <id>  Render one connection's graph
    --output <file>          Output file (default: stdout)

SYNC COMMANDS:
  roster sync init       Authenticate with Google (OAuth)
  roster sync contacts   Import Google Contacts

BACKUP COMMANDS:
  roster backup push     Snapshot the roster to Charm Cloud
  roster backup pull     Restore a snapshot (--key to pick one)
  roster backup list     List stored snapshots
  roster backup status   Show backup configuration and status

EXAMPLES:
  # Add a connection tagged with two groups
  roster add --name "Anna Lee" --categories "Prayer,LaFe" --user "Sam Carter"

  # Review and merge duplicates
  roster duplicates --confidence high
  roster merge --primary <id> --duplicates <id>

  # Render the network graph to a file
  roster viz graph network --output network.dot

`, version)
}
