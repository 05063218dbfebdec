// ABOUTME: CLI commands for Charm-backed roster backups
// ABOUTME: Simplified sync with SSH key auth - no login/logout needed

package charm

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/charmbracelet/charm/client"
)

// BackupPushCommand snapshots the roster to Charm Cloud.
func BackupPushCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("backup push", flag.ExitOnError)
	_ = fs.Parse(args)

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	key, err := PushBackup(database, c)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Backup stored: %s\n", key)
	return nil
}

// BackupPullCommand restores a snapshot from Charm Cloud.
func BackupPullCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("backup pull", flag.ExitOnError)
	key := fs.String("key", "", "Backup key (default: most recent)")
	_ = fs.Parse(args)

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	snapshot, err := PullBackup(database, c, *key)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Restored backup from %s\n", snapshot.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  %d connections, %d members\n", len(snapshot.Connections), len(snapshot.Users))
	return nil
}

// BackupListCommand lists stored backups, newest first.
func BackupListCommand(args []string) error {
	fs := flag.NewFlagSet("backup list", flag.ExitOnError)
	_ = fs.Parse(args)

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	keys, err := ListBackups(c)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		fmt.Println("No backups found. Run 'roster backup push' to create one.")
		return nil
	}

	for _, key := range keys {
		fmt.Println(key)
	}
	fmt.Printf("\nTotal: %d backup(s)\n", len(keys))
	return nil
}

// BackupStatusCommand shows current sync configuration and status.
func BackupStatusCommand(args []string) error {
	fs := flag.NewFlagSet("backup status", flag.ExitOnError)
	_ = fs.Parse(args)

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Charm Backup Status")
	fmt.Println("───────────────────")
	fmt.Printf("Server:    %s\n", cfg.Host)
	fmt.Printf("Auto-sync: %v\n", cfg.AutoSync)

	cc, err := client.NewClientWithDefaults()
	if err != nil {
		fmt.Println("\nStatus: Not connected")
		fmt.Println("\nCharm uses SSH keys for authentication - no login required!")
		return nil //nolint:nilerr // Not connected is a valid state, not an error
	}

	id, err := cc.ID()
	if err != nil {
		fmt.Println("\nStatus: Connected (ID unavailable)")
	} else {
		fmt.Println("\nStatus: Connected to Charm Cloud")
		fmt.Printf("ID:        %s\n", id)
	}

	c, err := GetClient()
	if err == nil {
		keys, err := ListBackups(c)
		if err == nil {
			fmt.Printf("Backups:   %d\n", len(keys))
		}
	}

	return nil
}
