// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves the roster browser and D3 network view at localhost:8080
package web

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/dedupe"
	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
	"github.com/umassiv/roster/viz"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	db        *sql.DB
	templates *template.Template
	generator *viz.GraphGenerator
}

func NewServer(database *sql.DB) (*Server, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"join": func(list []string, sep string) string {
			out := ""
			for i, s := range list {
				if i > 0 {
					out += sep
				}
				out += s
			}
			return out
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		db:        database,
		templates: tmpl,
		generator: viz.NewGraphGenerator(database),
	}, nil
}

func (s *Server) Start(port int) error {
	mux := s.routes()
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting web server at http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/connections", s.handleConnections)
	mux.HandleFunc("/duplicates", s.handleDuplicates)
	mux.HandleFunc("/duplicates/merge", s.handleMerge)
	mux.HandleFunc("/network", s.handleNetwork)

	// JSON API used by the D3 network page
	mux.HandleFunc("/api/graph", s.handleAPIGraph)
	mux.HandleFunc("/api/colors", s.handleAPIColors)
	mux.HandleFunc("/api/connections", s.handleAPIConnections)
	mux.HandleFunc("/api/duplicates", s.handleAPIDuplicates)

	return mux
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		log.Printf("Template error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	stats, err := viz.GenerateDashboardStats(s.db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Stats":           stats,
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	connections, err := db.FindConnections(s.db, query, nil, 200)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type ConnectionView struct {
		ID         string
		Name       string
		Categories []string
		Mutuals    []string
		AddedBy    string
	}

	var views []ConnectionView
	for _, connection := range connections {
		views = append(views, ConnectionView{
			ID:         connection.ID.String(),
			Name:       connection.Name,
			Categories: netgraph.ConnectionCategories(connection),
			Mutuals:    connection.MutualConnections,
			AddedBy:    connection.UserName,
		})
	}

	data := map[string]interface{}{
		"Connections":     views,
		"Query":           query,
		"Title":           "Connections",
		"ContentTemplate": "connections-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.findDuplicates()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Suggestions":     suggestions,
		"Title":           "Duplicates",
		"ContentTemplate": "duplicates-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	primaryID, err := uuid.Parse(r.PostForm.Get("primary_id"))
	if err != nil {
		http.Error(w, "Invalid primary id", http.StatusBadRequest)
		return
	}

	var duplicateIDs []uuid.UUID
	for _, idStr := range r.PostForm["duplicate_id"] {
		id, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, "Invalid duplicate id", http.StatusBadRequest)
			return
		}
		duplicateIDs = append(duplicateIDs, id)
	}

	if _, err := db.MergeConnections(s.db, primaryID, duplicateIDs); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/duplicates", http.StatusSeeOther)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":           "Network",
		"ContentTemplate": "network-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleAPIGraph(w http.ResponseWriter, r *http.Request) {
	connections, err := db.AllConnections(s.db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var viewer *models.User
	if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			http.Error(w, "Invalid user id", http.StatusBadRequest)
			return
		}
		viewer, err = db.GetUser(s.db, userID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	s.writeJSON(w, netgraph.BuildNetworkData(connections, viewer))
}

func (s *Server) handleAPIColors(w http.ResponseWriter, r *http.Request) {
	connections, err := db.AllConnections(s.db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := netgraph.BuildNetworkData(connections, nil)
	s.writeJSON(w, netgraph.AssignCategoryColors(netgraph.CategoryLabels(data)))
}

func (s *Server) handleAPIConnections(w http.ResponseWriter, r *http.Request) {
	connections, err := db.AllConnections(s.db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if connections == nil {
		connections = []models.Connection{}
	}
	s.writeJSON(w, connections)
}

func (s *Server) handleAPIDuplicates(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.findDuplicates()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, suggestions)
}

func (s *Server) findDuplicates() ([]models.DuplicateSuggestion, error) {
	connections, err := db.AllConnections(s.db)
	if err != nil {
		return nil, err
	}

	users, err := db.AllUsers(s.db)
	if err != nil {
		return nil, err
	}

	suggestions := dedupe.FindDuplicateSuggestions(connections, users)
	if suggestions == nil {
		suggestions = []models.DuplicateSuggestion{}
	}
	return suggestions, nil
}
