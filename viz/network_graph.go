// ABOUTME: Network graph rendering via graphviz
// ABOUTME: Renders the community graph with per-category colors and weighted edges
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/umassiv/roster/db"
	"github.com/umassiv/roster/models"
	"github.com/umassiv/roster/netgraph"
)

// GenerateNetworkGraph renders the full community graph. When viewerID
// is set, that member's node is highlighted as the current user.
func (g *GraphGenerator) GenerateNetworkGraph(viewerID *uuid.UUID) (string, error) {
	connections, err := db.AllConnections(g.db)
	if err != nil {
		return "", fmt.Errorf("failed to fetch connections: %w", err)
	}

	var viewer *models.User
	if viewerID != nil {
		viewer, err = db.GetUser(g.db, *viewerID)
		if err != nil {
			return "", fmt.Errorf("failed to fetch user: %w", err)
		}
	}

	data := netgraph.BuildNetworkData(connections, viewer)
	return RenderNetworkData(data)
}

// RenderNetworkData turns pre-built network data into XDOT source.
func RenderNetworkData(data models.NetworkData) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() {
		if err := gv.Close(); err != nil {
			fmt.Printf("Error closing graphviz: %v\n", err)
		}
	}()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if err := graph.Close(); err != nil {
			fmt.Printf("Error closing graph: %v\n", err)
		}
	}()

	graph.SetLayout("neato")
	graph.SetLabel(netgraph.RootNodeName + " Network")

	colors := netgraph.AssignCategoryColors(netgraph.CategoryLabels(data))

	nodes := make(map[string]*cgraph.Node)
	for _, n := range data.Nodes {
		node, err := graph.CreateNodeByName(n.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create node: %w", err)
		}
		node.SetStyle("filled")

		switch n.NodeType {
		case models.NodeTypeRoot:
			node.SetLabel(n.Name)
			node.SetShape("doubleoctagon")
			node.SetFillColor("lightgray")
		case models.NodeTypeCategory:
			node.SetLabel(fmt.Sprintf("%s\n(%d members)", n.Name, n.MemberCount))
			node.SetShape("box")
			node.SetFillColor(colors[n.Name])
		case models.NodeTypeUser:
			node.SetLabel(fmt.Sprintf("%s\n(you)", n.Name))
			node.SetShape("hexagon")
			node.SetFillColor("gold")
		default:
			node.SetLabel(n.Name)
			node.SetShape("ellipse")
			node.SetFillColor("white")
		}

		nodes[n.ID] = node
	}

	for _, link := range data.Links {
		source, ok1 := nodes[link.Source]
		target, ok2 := nodes[link.Target]
		if !ok1 || !ok2 {
			continue
		}
		edge, err := graph.CreateEdgeByName("", source, target)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetDir("none")
		edge.SetPenWidth(link.Value)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}

// GeneratePersonGraph renders one person's slice of the network: the
// person, their categories, and their mutual connections.
func (g *GraphGenerator) GeneratePersonGraph(connectionID uuid.UUID) (string, error) {
	connection, err := db.GetConnection(g.db, connectionID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch connection: %w", err)
	}
	if connection == nil {
		return "", fmt.Errorf("connection %s not found", connectionID)
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLayout("neato")

	center, err := graph.CreateNodeByName(connection.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create node: %w", err)
	}
	center.SetShape("ellipse")
	center.SetStyle("filled")
	center.SetFillColor("gold")

	categories := netgraph.ConnectionCategories(*connection)
	colors := netgraph.AssignCategoryColors(categories)
	for _, category := range categories {
		node, err := graph.CreateNodeByName(category)
		if err != nil {
			return "", fmt.Errorf("failed to create category node: %w", err)
		}
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(colors[category])

		edge, err := graph.CreateEdgeByName("", center, node)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetDir("none")
	}

	for _, mutual := range connection.MutualConnections {
		if mutual == "" || mutual == connection.Name {
			continue
		}
		node, err := graph.CreateNodeByName(mutual)
		if err != nil {
			return "", fmt.Errorf("failed to create mutual node: %w", err)
		}
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor("white")

		edge, err := graph.CreateEdgeByName("", center, node)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetDir("none")
		edge.SetStyle("dashed")
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
