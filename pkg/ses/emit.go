package ses

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sestools/sescribe/pkg/graph"
)

// RootName is the display name used for the root scope, whose members have
// no containing parent.
const RootName = "ROOT"

// Scope is one parent's view of the graph: the parent's direct children
// and the edges whose endpoints are both among them.
type Scope struct {
	// Root is true for the scope of parentless nodes.
	Root bool

	// ParentID is the shared parent id of the scope's nodes. Empty for
	// the root scope.
	ParentID string

	// Name is the display name: RootName for the root scope, the parent
	// node's name, or the raw parent id when the parent does not resolve.
	Name string

	// Nodes are the scope's children, sorted by name. Exact-duplicate
	// names keep their extraction order.
	Nodes []graph.NodeDef

	// Edges are the scope's sibling edges, sorted by source node name
	// then destination node name.
	Edges []graph.EdgeDef
}

// Partition groups a canonical graph into scopes in emission order: the
// root scope first (when it has members), then the remaining scopes in
// lexicographic order of their display name, with the raw parent id as
// tie-break between distinct parents carrying equal names.
//
// Only sibling edges are attributed: both endpoints must resolve through
// the id index (first occurrence wins on duplicates) and share the same
// parent reference. All other edges are dropped without error. Scopes are
// never empty; a parent id with no children produces no scope.
func Partition(g graph.Graph) []Scope {
	byID := g.Index()

	var rootKids []graph.NodeDef
	kidsByParent := make(map[string][]graph.NodeDef)
	for _, n := range g.Nodes {
		if n.ParentID == nil {
			rootKids = append(rootKids, n)
		} else {
			kidsByParent[*n.ParentID] = append(kidsByParent[*n.ParentID], n)
		}
	}

	byName := func(a, b graph.NodeDef) int { return strings.Compare(a.Name, b.Name) }
	slices.SortStableFunc(rootKids, byName)
	for _, kids := range kidsByParent {
		slices.SortStableFunc(kids, byName)
	}

	var rootEdges []graph.EdgeDef
	edgesByParent := make(map[string][]graph.EdgeDef)
	for _, e := range g.Edges {
		src, okSrc := byID[e.From]
		dst, okDst := byID[e.To]
		if !okSrc || !okDst || !src.SameScope(dst) {
			continue
		}
		if src.ParentID == nil {
			rootEdges = append(rootEdges, e)
		} else {
			edgesByParent[*src.ParentID] = append(edgesByParent[*src.ParentID], e)
		}
	}

	sortEdges := func(edges []graph.EdgeDef) {
		slices.SortStableFunc(edges, func(a, b graph.EdgeDef) int {
			if c := strings.Compare(byID[a.From].Name, byID[b.From].Name); c != 0 {
				return c
			}
			return strings.Compare(byID[a.To].Name, byID[b.To].Name)
		})
	}

	parents := make([]string, 0, len(kidsByParent))
	for p := range kidsByParent {
		parents = append(parents, p)
	}
	slices.SortFunc(parents, func(a, b string) int {
		if c := strings.Compare(scopeName(a, byID), scopeName(b, byID)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	var scopes []Scope
	if len(rootKids) > 0 {
		sortEdges(rootEdges)
		scopes = append(scopes, Scope{
			Root:  true,
			Name:  RootName,
			Nodes: rootKids,
			Edges: rootEdges,
		})
	}
	for _, p := range parents {
		edges := edgesByParent[p]
		sortEdges(edges)
		scopes = append(scopes, Scope{
			ParentID: p,
			Name:     scopeName(p, byID),
			Nodes:    kidsByParent[p],
			Edges:    edges,
		})
	}
	return scopes
}

// scopeName resolves a parent id to its node name, falling back to the raw
// id for dangling parents.
func scopeName(parentID string, byID map[string]graph.NodeDef) string {
	if p, ok := byID[parentID]; ok {
		return p.Name
	}
	return parentID
}

// Emit renders a canonical graph as SES text.
//
// Every scope from [Partition] produces one composition sentence
// enumerating its children, a blank line, one flow sentence per sibling
// edge, and a closing blank line. Flow port counters start at 1
// independently in every scope and increment once per edge. The same
// graph always produces byte-identical output.
func Emit(g graph.Graph) string {
	byID := g.Index()

	var sb strings.Builder
	for _, scope := range Partition(g) {
		perspective := scope.Name + "Sys"

		names := make([]string, len(scope.Nodes))
		for i, n := range scope.Nodes {
			names[i] = n.Name
		}
		fmt.Fprintf(&sb, "From the %s perspective, %s is made of %s!\n\n",
			perspective, scope.Name, JoinWithAnd(names))

		port := 0
		for _, e := range scope.Edges {
			port++
			fmt.Fprintf(&sb, "From the %s perspective, %s sends outPort%d to %s as inPort%d!\n",
				perspective, byID[e.From].Name, port, byID[e.To].Name, port)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// JoinWithAnd joins items as a natural-language list: "A", "A and B",
// "A, B, and C". An empty slice yields the empty string.
func JoinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
