// Package extract builds canonical graphs from loosely-structured input
// trees.
//
// Input schemas are not fixed: the field names carrying ids, names,
// parent links, and edge endpoints vary across tools. Extraction therefore
// probes an ordered list of candidate field names for every logical
// attribute and takes the first scalar match. Missing data degrades to
// defaults (generated ids, synthesized names) or omission (edges without
// resolvable endpoints); extraction itself never fails.
package extract

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sestools/sescribe/pkg/graph"
	"github.com/sestools/sescribe/pkg/ses"
)

// =============================================================================
// Candidate Field Names
// =============================================================================

// Candidate field names probed during extraction, in priority order.
// First present scalar match wins.
var (
	// NodeArrayFields locate the node array on the root object.
	NodeArrayFields = []string{"nodes", "models", "elements"}

	// EdgeArrayFields locate the edge array on the root object.
	EdgeArrayFields = []string{"edges", "links", "connections"}

	// NodeIDFields resolve a node's id.
	NodeIDFields = []string{"id", "_id", "uuid", "key", "identifier"}

	// NodeNameFields resolve a node's display name.
	NodeNameFields = []string{"name", "label", "title"}

	// NodeParentFields resolve a node's parent reference as a scalar.
	NodeParentFields = []string{"parentId", "parent", "containerId", "ownerId", "belongsTo"}

	// NestedParentIDFields resolve the id inside a nested parent object,
	// for inputs shaped like {"parent": {"id": "..."}}.
	NestedParentIDFields = []string{"id", "_id", "uuid"}

	// EdgeFromFields and EdgeToFields resolve edge endpoints as scalars.
	EdgeFromFields = []string{"from", "source", "src", "fromId", "sourceId"}
	EdgeToFields   = []string{"to", "target", "dst", "toId", "targetId"}

	// EdgeEndpointIDFields resolve the id inside nested source/target
	// objects, for inputs shaped like {"source": {"id": "..."}}.
	EdgeEndpointIDFields = []string{"id", "_id", "uuid", "key"}

	// EdgeLabelFields resolve an optional edge label.
	EdgeLabelFields = []string{"label", "type", "kind", "name"}
)

// namePrefixLen is how many leading id characters go into a synthesized
// node name.
const namePrefixLen = 6

// =============================================================================
// Extraction
// =============================================================================

// Extract walks a generic decoded tree (objects as map[string]any, arrays
// as []any, scalars as leaves) and produces a canonical graph.
//
// Node records with no recognizable id get a fresh random UUID; records
// with no recognizable name get "node_" plus the first six characters of
// the id. All names pass through [ses.SanitizeToken]. Edge records missing
// either endpoint are dropped without error.
func Extract(tree any) graph.Graph {
	var g graph.Graph

	if arr, ok := findArray(tree, NodeArrayFields); ok {
		for _, item := range arr {
			g.Nodes = append(g.Nodes, extractNode(item))
		}
	}

	if arr, ok := findArray(tree, EdgeArrayFields); ok {
		for _, item := range arr {
			if e, ok := extractEdge(item); ok {
				g.Edges = append(g.Edges, e)
			}
		}
	}

	return g
}

// extractNode resolves one node record. Non-object records yield a node
// with fully synthesized id and name.
func extractNode(item any) graph.NodeDef {
	obj, _ := item.(map[string]any)

	id, ok := firstScalar(obj, NodeIDFields)
	if !ok {
		id = uuid.NewString()
	}

	name, ok := firstScalar(obj, NodeNameFields)
	if !ok {
		name = "node_" + shortID(id)
	}

	var parent *string
	if p, ok := firstScalar(obj, NodeParentFields); ok {
		parent = &p
	} else if p, ok := nestedScalar(obj, "parent", NestedParentIDFields); ok {
		parent = &p
	}

	return graph.NodeDef{
		ID:       id,
		Name:     ses.SanitizeToken(name),
		ParentID: parent,
	}
}

// extractEdge resolves one edge record. It returns false when either
// endpoint cannot be resolved by any rule.
func extractEdge(item any) (graph.EdgeDef, bool) {
	obj, _ := item.(map[string]any)

	from, okFrom := firstScalar(obj, EdgeFromFields)
	if !okFrom {
		from, okFrom = nestedScalar(obj, "source", EdgeEndpointIDFields)
	}
	to, okTo := firstScalar(obj, EdgeToFields)
	if !okTo {
		to, okTo = nestedScalar(obj, "target", EdgeEndpointIDFields)
	}
	if !okFrom || !okTo {
		return graph.EdgeDef{}, false
	}

	label, _ := firstScalar(obj, EdgeLabelFields)
	return graph.EdgeDef{From: from, To: to, Label: label}, true
}

// =============================================================================
// Tree Probing
// =============================================================================

// findArray returns the first array-valued candidate field on the root
// object. When the root has none and is itself an array, the root is
// accepted as the array.
func findArray(root any, keys []string) ([]any, bool) {
	if obj, ok := root.(map[string]any); ok {
		for _, k := range keys {
			if arr, ok := asArray(obj[k]); ok {
				return arr, true
			}
		}
	}
	return asArray(root)
}

// asArray normalizes the two array shapes decoders produce. TOML arrays of
// tables decode as []map[string]any rather than []any.
func asArray(v any) ([]any, bool) {
	switch arr := v.(type) {
	case []any:
		return arr, true
	case []map[string]any:
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// firstScalar returns the text of the first candidate field holding a
// scalar value. Explicit nulls count as missing and fall through to the
// next candidate.
func firstScalar(obj map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		if s, ok := scalarText(obj[k]); ok {
			return s, true
		}
	}
	return "", false
}

// nestedScalar looks up containerKey and, if it holds an object, probes
// that object with the given candidate keys.
func nestedScalar(obj map[string]any, containerKey string, keys []string) (string, bool) {
	inner, ok := obj[containerKey].(map[string]any)
	if !ok {
		return "", false
	}
	return firstScalar(inner, keys)
}

// scalarText converts a leaf value to its text form. Objects, arrays, and
// nulls are not scalars. Numbers keep their source spelling when the
// decoder preserved it (json.Number); TOML leaves arrive as typed Go
// values.
func scalarText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	case time.Time:
		return s.Format(time.RFC3339), true
	default:
		return "", false
	}
}

// shortID returns the name-synthesis prefix of an id.
func shortID(id string) string {
	if id == "" {
		return "xxxxxx"
	}
	if len(id) <= namePrefixLen {
		return id
	}
	return id[:namePrefixLen]
}
