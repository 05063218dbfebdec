// ABOUTME: Network graph builder for force-directed rendering
// ABOUTME: Synthesizes root/category/user/person nodes and weighted links
package netgraph

import (
	"github.com/google/uuid"

	"github.com/umassiv/roster/models"
)

// Synthetic root node identity.
const (
	RootNodeID   = "root:umass-intervarsity"
	RootNodeName = "UMass InterVarsity"

	// CurrentUserCategory labels the viewer's own node.
	CurrentUserCategory = "Current User"
)

// Link weights, visual only.
const (
	weightCategoryRoot   = 3
	weightPersonCategory = 2
	weightUserCategory   = 2.5
	weightUserRoot       = 2
	weightMutual         = 1
)

// CategoryNodeID returns the node id for a normalized category label.
func CategoryNodeID(category string) string {
	return "category:" + category
}

// UserNodeID returns the node id for the current user.
func UserNodeID(id uuid.UUID) string {
	return "user:" + id.String()
}

// BuildNetworkData turns the connection snapshot into a node/link graph.
// Pure function; output order is deterministic for a fixed input: root,
// categories in first-seen order, persons in input order, then the
// optional current-user node.
func BuildNetworkData(connections []models.Connection, currentUser *models.User) models.NetworkData {
	nodes := []models.NetworkNode{}
	links := []models.NetworkLink{}

	// First pass: assign each distinct category a stable index and tally
	// membership, iterating connections then categories in input order.
	categoryIndex := make(map[string]int)
	categoryCounts := make(map[string]int)
	var categoryOrder []string

	for _, c := range connections {
		for _, category := range ConnectionCategories(c) {
			if _, ok := categoryIndex[category]; !ok {
				categoryIndex[category] = len(categoryOrder)
				categoryOrder = append(categoryOrder, category)
			}
			categoryCounts[category]++
		}
	}

	hasRoot := len(categoryOrder) > 0
	if hasRoot {
		nodes = append(nodes, models.NetworkNode{
			ID:       RootNodeID,
			Name:     RootNodeName,
			Category: RootNodeName,
			Group:    models.GroupRoot,
			NodeType: models.NodeTypeRoot,
		})
	}

	for _, category := range categoryOrder {
		nodes = append(nodes, models.NetworkNode{
			ID:          CategoryNodeID(category),
			Name:        category,
			Category:    category,
			Group:       categoryIndex[category],
			NodeType:    models.NodeTypeCategory,
			MemberCount: categoryCounts[category],
		})

		if hasRoot {
			links = append(links, models.NetworkLink{
				Source: CategoryNodeID(category),
				Target: RootNodeID,
				Value:  weightCategoryRoot,
			})
		}
	}

	// Each unordered person pair links at most once no matter how many
	// times either side declares the other.
	mutualSeen := make(map[string]bool)

	for _, c := range connections {
		categories := ConnectionCategories(c)
		primary := categories[0]

		node := models.NetworkNode{
			ID:         c.ID.String(),
			Name:       c.Name,
			Category:   primary,
			Categories: categories,
			UserName:   c.UserName,
			Group:      categoryIndex[primary],
			NodeType:   models.NodeTypePerson,
		}
		if c.UserID != uuid.Nil {
			node.UserID = c.UserID.String()
		}
		nodes = append(nodes, node)

		for _, category := range categories {
			links = append(links, models.NetworkLink{
				Source: c.ID.String(),
				Target: CategoryNodeID(category),
				Value:  weightPersonCategory,
			})
		}

		// Mutual connections are raw name strings; resolve against the
		// current snapshot by exact match.
		for _, mutualName := range c.MutualConnections {
			for _, other := range connections {
				if other.ID == c.ID || other.Name != mutualName {
					continue
				}

				key := pairKey(c.ID.String(), other.ID.String())
				if mutualSeen[key] {
					continue
				}
				mutualSeen[key] = true

				links = append(links, models.NetworkLink{
					Source: c.ID.String(),
					Target: other.ID.String(),
					Value:  weightMutual,
				})
			}
		}
	}

	if currentUser != nil {
		touched := make(map[string]bool)
		for _, c := range connections {
			if c.UserID != currentUser.ID {
				continue
			}
			for _, category := range ConnectionCategories(c) {
				touched[category] = true
			}
		}

		if len(touched) > 0 {
			userID := UserNodeID(currentUser.ID)
			nodes = append(nodes, models.NetworkNode{
				ID:            userID,
				Name:          currentUser.Name,
				Category:      CurrentUserCategory,
				UserID:        currentUser.ID.String(),
				UserName:      currentUser.Name,
				Group:         models.GroupUser,
				NodeType:      models.NodeTypeUser,
				IsCurrentUser: true,
			})

			for _, category := range categoryOrder {
				if !touched[category] {
					continue
				}
				links = append(links, models.NetworkLink{
					Source: userID,
					Target: CategoryNodeID(category),
					Value:  weightUserCategory,
				})
			}

			if hasRoot {
				links = append(links, models.NetworkLink{
					Source: userID,
					Target: RootNodeID,
					Value:  weightUserRoot,
				})
			}
		}
	}

	return models.NetworkData{Nodes: nodes, Links: links}
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// FindNode returns the node with the given id, if present.
func FindNode(data models.NetworkData, id string) (models.NetworkNode, bool) {
	for _, n := range data.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return models.NetworkNode{}, false
}

// CategoryLabels extracts the category node labels in graph order.
func CategoryLabels(data models.NetworkData) []string {
	var labels []string
	for _, n := range data.Nodes {
		if n.NodeType == models.NodeTypeCategory {
			labels = append(labels, n.Name)
		}
	}
	return labels
}
