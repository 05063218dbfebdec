// ABOUTME: Google Contacts API importer
// ABOUTME: Fetches Google contacts and imports them as connections with deduplication
package gsync

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"google.golang.org/api/people/v1"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
)

// ImportedCategory is the group assigned to connections brought in
// from Google until someone files them properly.
const ImportedCategory = "Imported"

const googleService = "google"

type ContactsImporter struct {
	db      *sql.DB
	matcher *ConnectionMatcher
	batchID string
}

type GoogleContact struct {
	ResourceName string
	Name         string
}

func NewContactsImporter(database *sql.DB) *ContactsImporter {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return &ContactsImporter{
		db:      database,
		batchID: ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
	}
}

// ImportContact imports a single contact from Google. Returns true if
// a new connection was created.
func (ci *ContactsImporter) ImportContact(gc *GoogleContact) (bool, error) {
	// An existing connection with the same name gets linked, not
	// duplicated.
	if existing, found := ci.matcher.FindMatch(gc.Name); found {
		if err := ci.logImport(gc.ResourceName, existing.ID); err != nil {
			return false, fmt.Errorf("failed to log import: %w", err)
		}
		return false, nil
	}

	connection := &models.Connection{
		Name:       gc.Name,
		Category:   ImportedCategory,
		Categories: []string{ImportedCategory},
	}

	if err := db.CreateConnection(ci.db, connection); err != nil {
		return false, fmt.Errorf("failed to create connection: %w", err)
	}

	if err := ci.logImport(gc.ResourceName, connection.ID); err != nil {
		return false, fmt.Errorf("failed to log import: %w", err)
	}

	// Prevent duplicates within the same import session.
	ci.matcher.AddConnection(connection)

	return true, nil
}

func (ci *ContactsImporter) logImport(sourceID string, entityID uuid.UUID) error {
	return db.LogImport(ci.db, &db.SyncLog{
		BatchID:       ci.batchID,
		SourceService: googleService,
		SourceID:      sourceID,
		EntityID:      entityID,
	})
}

// ImportContacts fetches and imports contacts from Google People API.
func ImportContacts(database *sql.DB, client *people.Service) error {
	fmt.Println("Syncing Google Contacts...")
	if err := setSyncStatus(database, db.SyncStatusSyncing, nil); err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	// Load all existing connections for matching once, not per contact.
	allConnections, err := db.AllConnections(database)
	if err != nil {
		return failSync(database, fmt.Errorf("failed to load existing connections: %w", err))
	}

	importer := NewContactsImporter(database)
	importer.matcher = NewConnectionMatcher(allConnections)

	totalFetched := 0
	newConnections := 0
	linked := 0
	pageToken := ""

	for {
		call := client.People.Connections.List("people/me").
			PageSize(1000).
			PersonFields("names")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return failSync(database, fmt.Errorf("failed to fetch contacts: %w", err))
		}

		if response == nil || response.Connections == nil {
			break
		}

		totalFetched += len(response.Connections)

		for _, person := range response.Connections {
			gc := convertPerson(person)
			if gc.Name == "" {
				continue
			}

			// Skip records imported in an earlier run.
			imported, err := db.FindImportedEntity(database, googleService, person.ResourceName)
			if err != nil {
				fmt.Printf("  ✗ Failed to check import log for %q: %v\n", gc.Name, err)
				continue
			}
			if imported != nil {
				continue
			}

			isNew, err := importer.ImportContact(gc)
			if err != nil {
				fmt.Printf("  ✗ Failed to import %q: %v\n", gc.Name, err)
				continue
			}

			if isNew {
				newConnections++
			} else {
				linked++
			}
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}

		if newConnections > 0 {
			fmt.Printf("  → Imported %d new connections so far...\n", newConnections)
		}
	}

	now := time.Now()
	if err := db.UpsertSyncState(database, &db.SyncState{
		Service:      googleService,
		Status:       db.SyncStatusIdle,
		LastSyncTime: &now,
	}); err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	fmt.Printf("\n✓ Fetched %d contacts from Google\n", totalFetched)
	if newConnections == 0 && linked == 0 {
		fmt.Println("  ✓ Nothing new to import (all up to date)")
	} else {
		if newConnections > 0 {
			fmt.Printf("  ✓ Created %d new connections under %q\n", newConnections, ImportedCategory)
		}
		if linked > 0 {
			fmt.Printf("  ✓ Linked %d contacts to existing connections\n", linked)
		}
	}

	return nil
}

func setSyncStatus(database *sql.DB, status string, errorMessage *string) error {
	return db.UpsertSyncState(database, &db.SyncState{
		Service:      googleService,
		Status:       status,
		ErrorMessage: errorMessage,
	})
}

func failSync(database *sql.DB, err error) error {
	msg := err.Error()
	_ = setSyncStatus(database, db.SyncStatusError, &msg)
	return err
}

// convertPerson converts a People API Person to GoogleContact.
func convertPerson(person *people.Person) *GoogleContact {
	gc := &GoogleContact{
		ResourceName: person.ResourceName,
	}

	if len(person.Names) > 0 && person.Names[0].DisplayName != "" {
		gc.Name = person.Names[0].DisplayName
	}

	return gc
}
