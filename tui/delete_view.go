// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Handles deletion of connections and members with confirmation dialog
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/umassiv/roster/db"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmDeleteView() string {
	var entityName string
	var entityType string

	id, err := uuid.Parse(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: invalid ID: %v", err)
	}

	switch m.entityType {
	case EntityUsers:
		user, err := db.GetUser(m.db, id)
		if err != nil || user == nil {
			return fmt.Sprintf("Error loading member: %v", err)
		}
		entityName = user.Name
		entityType = "member"
	default:
		connection, err := db.GetConnection(m.db, id)
		if err != nil || connection == nil {
			return fmt.Sprintf("Error loading connection: %v", err)
		}
		entityName = connection.Name
		entityType = "connection"
	}

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := fmt.Sprintf("Are you sure you want to delete this %s?", entityType)
	entityInfo := fmt.Sprintf("\n%s: %s\n", strings.ToUpper(entityType), entityName)
	warning := "\nThis action cannot be undone!"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		entityInfo,
		warning,
		"",
		buttons,
	)

	box := confirmBoxStyle.Render(content)

	// Center the box on screen
	dialog := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)

	return dialog
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		// Confirm delete
		err := m.performDelete()
		if err != nil {
			m.err = err
			m.deleteMessage = "Error: " + err.Error()
			m.viewMode = ViewList
		} else {
			m.deleteMessage = "Successfully deleted"
			m.viewMode = ViewList
			m.selectedID = "" // Clear selection
		}
	case "n", "N", "esc":
		// Cancel delete
		m.viewMode = ViewDetail
	}

	return m, nil
}

func (m Model) performDelete() error {
	id, err := uuid.Parse(m.selectedID)
	if err != nil {
		return fmt.Errorf("invalid ID: %w", err)
	}

	switch m.entityType {
	case EntityUsers:
		return db.DeleteUser(m.db, id)
	default:
		return db.DeleteConnection(m.db, id)
	}
}
