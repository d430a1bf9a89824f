package linkgraph

import (
	"fmt"
	"path"

	"github.com/veitsen/skald/internal/apperr"
)

// ComponentUnassigned is the sentinel component value before labeling.
const ComponentUnassigned = "unassigned"

// Node is a vertex in the link graph.
type Node struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Component string `json:"component"`
	Isolate   bool   `json:"isolate"`
}

// Edge is a directed link between two notes. Weight is always 1; the
// model carries no real weighting yet.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Graph is a point-in-time snapshot of the link index. Links may contain
// duplicates and self-loops; Nodes are unique by ID.
type Graph struct {
	Nodes      []*Node  `json:"nodes"`
	Links      []Edge   `json:"links"`
	Components []string `json:"components"`

	index map[string]*Node
}

func (g *Graph) node(id string) *Node { return g.index[id] }

// upsertNode returns the vertex for id, creating it unlabeled and
// isolated when it does not exist yet. Creating the vertex for every
// edge endpoint up front makes the post-construction invariant check
// structurally unreachable.
func (g *Graph) upsertNode(id string) *Node {
	if n, ok := g.index[id]; ok {
		return n
	}
	n := &Node{
		ID:        id,
		Label:     path.Base(id),
		Component: ComponentUnassigned,
		Isolate:   true,
	}
	g.index[id] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

// Build snapshots the index into a graph: one vertex per known source and
// per link target (including targets never reported as sources), one edge
// per outbound entry, then isolate flags and component labels.
//
// Node order follows byPath insertion order, which in turn fixes the
// component numbering: two stores fed identical report sequences yield
// identical graphs. A graph that fails its internal invariant check is
// never returned partially; the call errors with apperr.ErrInvariant.
func (s *Store) Build() (*Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &Graph{
		Nodes: []*Node{},
		Links: []Edge{},
		index: make(map[string]*Node),
	}

	for pair := s.byPath.Oldest(); pair != nil; pair = pair.Next() {
		g.upsertNode(pair.Key)
		for _, target := range pair.Value {
			g.upsertNode(target)
			g.Links = append(g.Links, Edge{Source: pair.Key, Target: target, Weight: 1})
		}
	}

	for _, e := range g.Links {
		for _, id := range [2]string{e.Source, e.Target} {
			n := g.node(id)
			if n == nil {
				return nil, fmt.Errorf("%w: edge endpoint %q missing from node set", apperr.ErrInvariant, id)
			}
			n.Isolate = false
		}
	}

	components, err := labelComponents(g)
	if err != nil {
		return nil, err
	}
	g.Components = components
	return g, nil
}
