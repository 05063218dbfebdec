package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/netgraph"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("DETAIL VIEW"))
	s.WriteString("\n\n")

	// Entity details
	switch m.entityType {
	case EntityUsers:
		s.WriteString(m.renderUserDetail())
	default:
		s.WriteString(m.renderConnectionDetail())
	}

	s.WriteString("\n\n")

	// Help
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderConnectionDetail() string {
	id, err := uuid.Parse(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: invalid ID: %v", err)
	}

	connection, err := db.GetConnection(m.db, id)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if connection == nil {
		return "Connection not found"
	}

	var s strings.Builder

	s.WriteString(m.renderField("Name", connection.Name))
	s.WriteString(m.renderField("Groups", strings.Join(netgraph.ConnectionCategories(*connection), ", ")))
	s.WriteString(m.renderField("Added By", connection.UserName))
	s.WriteString(m.renderField("Added", connection.CreatedAt.Format("2006-01-02")))

	if len(connection.MutualConnections) > 0 {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Render("MUTUAL CONNECTIONS"))
		s.WriteString("\n")
		for _, mutual := range connection.MutualConnections {
			s.WriteString(fmt.Sprintf("  • %s\n", mutual))
		}
	}

	return s.String()
}

func (m Model) renderUserDetail() string {
	id, err := uuid.Parse(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: invalid ID: %v", err)
	}

	user, err := db.GetUser(m.db, id)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if user == nil {
		return "Member not found"
	}

	var s strings.Builder

	s.WriteString(m.renderField("Name", user.Name))
	s.WriteString(m.renderField("Joined", user.CreatedAt.Format("2006-01-02")))

	// Connections this member added
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Bold(true).Render("CONNECTIONS"))
	s.WriteString("\n")

	connections, _ := db.FindConnections(m.db, "", &id, 100)
	for _, connection := range connections {
		groups := strings.Join(netgraph.ConnectionCategories(connection), ", ")
		s.WriteString(fmt.Sprintf("  • %s (%s)\n", connection.Name, groups))
	}

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"d: Delete",
		"g: View graph",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
	case "d":
		m.viewMode = ViewConfirmDelete
	case "g":
		m.viewMode = ViewGraph
		if err := (&m).generateGraph(); err != nil {
			m.graphDOT = fmt.Sprintf("Error: %v", err)
		}
	}

	return m, nil
}
