// ABOUTME: User CLI commands
// ABOUTME: Human-friendly commands for managing community members
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
)

// AddUserCommand adds a new member
func AddUserCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-user", flag.ExitOnError)
	name := fs.String("name", "", "Member name (required)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	existing, err := db.FindUserByName(database, *name)
	if err != nil {
		return fmt.Errorf("failed to lookup user: %w", err)
	}
	if existing != nil {
		fmt.Printf("Member already exists: %s (ID: %s)\n", existing.Name, existing.ID)
		return nil
	}

	user := &models.User{Name: *name}
	if err := db.CreateUser(database, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("✓ Member created: %s (ID: %s)\n", user.Name, user.ID)
	return nil
}

// ListUsersCommand lists all members
func ListUsersCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-users", flag.ExitOnError)
	fs.Parse(args)

	users, err := db.AllUsers(database)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No members found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tJOINED\tID")
	fmt.Fprintln(w, "----\t------\t--")

	for _, user := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			user.Name, user.CreatedAt.Format("2006-01-02"), user.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d member(s)\n", len(users))
	return nil
}

// DeleteUserCommand removes a member, keeping their connections
func DeleteUserCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("user ID required")
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := db.GetUser(database, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user not found: %s", id)
	}

	if err := db.DeleteUser(database, id); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted member: %s (their connections were kept)\n", user.Name)
	return nil
}
