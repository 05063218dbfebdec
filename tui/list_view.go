package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/dedupe"
	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
)

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("UMASS INTERVARSITY ROSTER"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching {
		s.WriteString(fmt.Sprintf("Search: %s_\n\n", m.searchQuery))
	} else if m.searchQuery != "" {
		s.WriteString(fmt.Sprintf("Filter: %s\n\n", m.searchQuery))
	}

	// Table
	s.WriteString(m.renderTable())
	s.WriteString("\n\n")

	if m.deleteMessage != "" {
		s.WriteString(m.deleteMessage)
		s.WriteString("\n")
	}

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Connections", "Members", "Duplicates"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	switch m.entityType {
	case EntityConnections:
		return m.renderConnectionsTable()
	case EntityUsers:
		return m.renderUsersTable()
	case EntityDuplicates:
		return m.renderDuplicatesTable()
	}
	return ""
}

func (m Model) renderConnectionsTable() string {
	connections, err := db.FindConnections(m.db, m.searchQuery, nil, 100)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Groups", Width: 30},
		{Title: "Added By", Width: 20},
	}

	var rows []table.Row
	for _, connection := range connections {
		groups := strings.Join(netgraph.ConnectionCategories(connection), ", ")
		addedBy := connection.UserName
		if addedBy == "" {
			addedBy = "-"
		}

		rows = append(rows, table.Row{
			connection.Name,
			groups,
			addedBy,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-10),
	)

	// Set selected row
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderUsersTable() string {
	users, err := db.AllUsers(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Joined", Width: 15},
		{Title: "Connections", Width: 12},
	}

	var rows []table.Row
	for _, user := range users {
		added, _ := db.FindConnections(m.db, "", &user.ID, 1000)
		rows = append(rows, table.Row{
			user.Name,
			user.CreatedAt.Format("2006-01-02"),
			fmt.Sprintf("%d", len(added)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-10),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderDuplicatesTable() string {
	suggestions, err := m.duplicateSuggestions()
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Confidence", Width: 12},
		{Title: "Reason", Width: 40},
	}

	var rows []table.Row
	for _, suggestion := range suggestions {
		rows = append(rows, table.Row{
			suggestion.Name,
			strings.ToUpper(suggestion.Confidence),
			suggestion.Reason,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-10),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) duplicateSuggestions() ([]models.DuplicateSuggestion, error) {
	connections, err := db.AllConnections(m.db)
	if err != nil {
		return nil, err
	}
	users, err := db.AllUsers(m.db)
	if err != nil {
		return nil, err
	}
	return dedupe.FindDuplicateSuggestions(connections, users), nil
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View details",
		"/: Search",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		m.selectedRow++
	case "tab":
		m.entityType = (m.entityType + 1) % 3
		m.selectedRow = 0
		m.deleteMessage = ""
	case "enter":
		if id := m.getSelectedID(); id != "" {
			m.viewMode = ViewDetail
			m.selectedID = id
		}
	case "/":
		m.searching = true
		m.searchQuery = ""
	case "g":
		m.viewMode = ViewGraph
		if err := (&m).generateGraph(); err != nil {
			m.graphDOT = fmt.Sprintf("Error: %v", err)
		}
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.selectedRow = 0
	case "backspace":
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.searchQuery += string(msg.Runes)
		}
	}

	return m, nil
}

func (m Model) getSelectedID() string {
	switch m.entityType {
	case EntityConnections:
		connections, _ := db.FindConnections(m.db, m.searchQuery, nil, 100)
		if m.selectedRow < len(connections) {
			return connections[m.selectedRow].ID.String()
		}
	case EntityUsers:
		users, _ := db.AllUsers(m.db)
		if m.selectedRow < len(users) {
			return users[m.selectedRow].ID.String()
		}
	case EntityDuplicates:
		suggestions, _ := m.duplicateSuggestions()
		if m.selectedRow < len(suggestions) && len(suggestions[m.selectedRow].Matches) > 0 {
			return suggestions[m.selectedRow].Matches[0].ID.String()
		}
	}
	return ""
}
