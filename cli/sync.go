// ABOUTME: Google sync CLI commands
// ABOUTME: Handles OAuth setup and Google Contacts import
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/umassiv/roster/gsync"
)

// SyncInitCommand handles OAuth setup
func SyncInitCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()

	if err := promptForCredentials(); err != nil {
		return err
	}

	config, err := gsync.GetClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to get OAuth config: %w", err)
	}

	// Start local server for OAuth callback
	callbackChan := make(chan *oauth2.Token)
	errChan := make(chan error)

	http.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080"}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Generate auth URL
	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)

	fmt.Println("Opening browser for Google OAuth...")
	fmt.Printf("\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)

	// Try to open browser
	_ = openBrowser(authURL)

	// Wait for callback or error
	select {
	case token := <-callbackChan:
		_ = server.Shutdown(ctx)

		if err := gsync.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Printf("\n✓ Authenticated successfully\n")
		fmt.Printf("✓ Tokens saved to %s\n\n", gsync.TokenPath())
		fmt.Println("Ready to sync! Run 'roster sync contacts' to import contacts.")

		return nil

	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return fmt.Errorf("OAuth flow failed: %w", err)
	}
}

// SyncContactsCommand imports Google Contacts into the roster
func SyncContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("contacts", flag.ExitOnError)
	_ = fs.Parse(args)

	// Load OAuth token
	token, err := gsync.LoadToken()
	if err != nil {
		return fmt.Errorf("no authentication token found. Run 'roster sync init' first: %w", err)
	}

	// Create People API client
	client, err := gsync.NewPeopleClient(token)
	if err != nil {
		return fmt.Errorf("failed to create People client: %w", err)
	}

	if err := gsync.ImportContacts(database, client); err != nil {
		return fmt.Errorf("contacts sync failed: %w", err)
	}

	return nil
}

// promptForCredentials fills in OAuth credentials interactively when the
// environment doesn't provide them. The secret is read without echo.
func promptForCredentials() error {
	if os.Getenv("GOOGLE_CLIENT_ID") == "" {
		fmt.Print("Google OAuth client ID: ")
		var clientID string
		if _, err := fmt.Scanln(&clientID); err != nil {
			return fmt.Errorf("failed to read client ID: %w", err)
		}
		if err := os.Setenv("GOOGLE_CLIENT_ID", strings.TrimSpace(clientID)); err != nil {
			return err
		}
	}

	if os.Getenv("GOOGLE_CLIENT_SECRET") == "" {
		fmt.Print("Google OAuth client secret: ")
		secretBytes, err := term.ReadPassword(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
		if err := os.Setenv("GOOGLE_CLIENT_SECRET", strings.TrimSpace(string(secretBytes))); err != nil {
			return err
		}
		fmt.Println("Tip: put GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in .env to skip this prompt.")
	}

	return nil
}

// openBrowser attempts to open URL in default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	command := exec.Command(cmd, args...)
	return command.Start()
}
