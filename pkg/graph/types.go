package graph

// =============================================================================
// Canonical Graph - Schema-Independent Representation
// =============================================================================

// NodeDef is a node in the canonical graph.
//
// ParentID is nil for root-level nodes. A non-nil ParentID is not required
// to reference an existing node; dangling parents are tolerated and act as
// a distinct implicit scope key during emission.
type NodeDef struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"`
}

// IsRoot returns true if the node has no containing parent.
func (n NodeDef) IsRoot() bool { return n.ParentID == nil }

// SameScope returns true if both nodes share the same parent reference,
// including both being root-level. This is the sibling test used for edge
// attribution.
func (n NodeDef) SameScope(other NodeDef) bool {
	if n.ParentID == nil || other.ParentID == nil {
		return n.ParentID == nil && other.ParentID == nil
	}
	return *n.ParentID == *other.ParentID
}

// EdgeDef is a directed edge between two node ids.
//
// From and To are not required to resolve to nodes in the graph; unresolved
// edges are dropped at emission time. Label is retained from extraction but
// not currently rendered.
type EdgeDef struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// Graph is the canonical in-memory graph produced by extraction and
// consumed by the SES emitter. It is built once per run and not mutated
// afterwards.
type Graph struct {
	Nodes []NodeDef `json:"nodes"`
	Edges []EdgeDef `json:"edges"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Index builds an id → node lookup. On duplicate ids the first occurrence
// wins; later ones are ignored.
func (g Graph) Index() map[string]NodeDef {
	byID := make(map[string]NodeDef, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, ok := byID[n.ID]; !ok {
			byID[n.ID] = n
		}
	}
	return byID
}
