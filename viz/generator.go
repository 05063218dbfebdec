// ABOUTME: Graph generator wrapping a database handle
// ABOUTME: Entry point for graphviz renderings of the roster network
package viz

import (
	"database/sql"
)

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(db *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: db}
}
