// Package render produces Graphviz views of canonical graphs.
//
// This is a preview surface for the extraction heuristics: parent scopes
// become DOT clusters, so the containment structure the SES emitter will
// narrate is visible at a glance before converting.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/sestools/sescribe/pkg/graph"
	"github.com/sestools/sescribe/pkg/ses"
)

// ToDOT converts a canonical graph to Graphviz DOT format.
//
// Root-level nodes appear at the top level of the digraph; every other
// scope becomes a subgraph cluster labeled with the parent's name (or the
// raw parent id when it does not resolve). Scope and node ordering follow
// the SES emission order, so the DOT text is deterministic.
//
// Unlike SES emission, edges are not restricted to siblings: every edge
// whose endpoints are known nodes is drawn, with its label when present.
// Cross-scope links the sentence format drops are exactly what a preview
// should surface.
func ToDOT(g graph.Graph) string {
	byID := g.Index()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	cluster := 0
	for _, scope := range ses.Partition(g) {
		if scope.Root {
			for _, n := range scope.Nodes {
				fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.Name)
			}
			continue
		}

		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", cluster)
		cluster++
		fmt.Fprintf(&buf, "    label=%q;\n", scope.Name)
		buf.WriteString("    style=rounded;\n")
		for _, n := range scope.Nodes {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", n.ID, n.Name)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if _, ok := byID[e.From]; !ok {
			continue
		}
		if _, ok := byID[e.To]; !ok {
			continue
		}
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
