package linkgraph

import (
	"fmt"
	"strconv"

	"github.com/veitsen/skald/internal/apperr"
)

// labelComponents assigns every node a connected-component identifier in
// place, treating the directed edge set as an undirected adjacency
// relation. Identifiers are sequential and 1-based, numbered in the order
// components are first discovered while walking g.Nodes; the returned
// list is in that same order. A node with no edges still gets its own
// singleton component.
func labelComponents(g *Graph) ([]string, error) {
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Links {
		if g.node(e.Source) == nil || g.node(e.Target) == nil {
			return nil, fmt.Errorf("%w: edge %s -> %s references an unknown node", apperr.ErrInvariant, e.Source, e.Target)
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}

	components := []string{}
	for _, seed := range g.Nodes {
		if seed.Component != ComponentUnassigned {
			// Already reached by an earlier component's traversal.
			continue
		}
		id := strconv.Itoa(len(components) + 1)
		components = append(components, id)

		// Depth-first over undirected neighbors. Explicit stack so deep
		// link chains cannot exhaust the call stack.
		seed.Component = id
		stack := []*Node{seed}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, neighborID := range adjacency[n.ID] {
				neighbor := g.node(neighborID)
				if neighbor.Component != ComponentUnassigned {
					continue
				}
				neighbor.Component = id
				stack = append(stack, neighbor)
			}
		}
	}
	return components, nil
}
