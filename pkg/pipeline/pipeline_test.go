package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sestools/sescribe/pkg/cache"
	serrors "github.com/sestools/sescribe/pkg/errors"
	"github.com/sestools/sescribe/pkg/graph"
)

const sampleInput = `{
	"nodes": [
		{"id": "1", "name": "Alpha"},
		{"id": "2", "name": "Beta", "parent": "1"},
		{"id": "3", "name": "Gamma", "parent": "1"}
	],
	"edges": [
		{"source": "2", "target": "3"},
		{"source": "1", "target": "2"}
	]
}`

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if opts.InputFormat != "json" {
		t.Errorf("InputFormat = %q, want json", opts.InputFormat)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent: a second call leaves everything in place.
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if opts.Logger != logger {
		t.Error("second call should not replace the logger")
	}
}

func TestOptionsValidateRejectsUnknownFormat(t *testing.T) {
	opts := Options{InputFormat: "yaml"}
	err := opts.ValidateAndSetDefaults()
	if !serrors.Is(err, serrors.ErrCodeInvalidFormat) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil)

	result, err := r.Execute(context.Background(), Options{}, []byte(sampleInput))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", result.Stats.EdgeCount)
	}
	// Beta -> Gamma is a sibling flow; Alpha -> Beta crosses scopes.
	if result.Stats.SiblingEdges != 1 {
		t.Errorf("SiblingEdges = %d, want 1", result.Stats.SiblingEdges)
	}
	if result.Stats.DroppedEdges != 1 {
		t.Errorf("DroppedEdges = %d, want 1", result.Stats.DroppedEdges)
	}
	if result.CacheInfo.Hit {
		t.Error("first run should not be a cache hit")
	}

	if !strings.Contains(result.Text, "From the AlphaSys perspective, Alpha is made of Beta and Gamma!") {
		t.Errorf("unexpected output:\n%s", result.Text)
	}
	if !strings.Contains(result.Text, "Beta sends outPort1 to Gamma as inPort1!") {
		t.Errorf("flow sentence missing:\n%s", result.Text)
	}
}

func TestExecuteParseError(t *testing.T) {
	r := NewRunner(nil, nil)

	_, err := r.Execute(context.Background(), Options{}, []byte(`{broken`))
	if !serrors.Is(err, serrors.ErrCodeParse) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil)

	first, err := r.Execute(ctx, Options{}, []byte(sampleInput))
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.Hit {
		t.Fatal("first run should miss")
	}

	second, err := r.Execute(ctx, Options{}, []byte(sampleInput))
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.Hit {
		t.Fatal("second run should hit the cache")
	}
	if second.Text != first.Text {
		t.Error("cached text differs from computed text")
	}
	// On a hit only the text is rehydrated.
	if second.Graph.NodeCount() != 0 {
		t.Error("cache hit should not carry a graph")
	}
}

func TestExecuteCacheWriteFailureIsNonFatal(t *testing.T) {
	r := NewRunner(failingCache{}, nil)

	result, err := r.Execute(context.Background(), Options{}, []byte(sampleInput))
	if err != nil {
		t.Fatalf("Execute should survive cache write failure: %v", err)
	}
	if result.Text == "" {
		t.Error("result should still carry the converted text")
	}
}

func TestExtract(t *testing.T) {
	r := NewRunner(nil, nil)

	g, err := r.Extract(Options{}, []byte(sampleInput))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("got %d nodes, %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
}

func TestEdgeStats(t *testing.T) {
	parent := "p"
	g := graph.Graph{
		Nodes: []graph.NodeDef{
			{ID: "p", Name: "Parent"},
			{ID: "a", Name: "A", ParentID: &parent},
			{ID: "b", Name: "B", ParentID: &parent},
		},
		Edges: []graph.EdgeDef{
			{From: "a", To: "b"},     // sibling
			{From: "p", To: "a"},     // crosses scopes
			{From: "a", To: "ghost"}, // unresolved
		},
	}

	sibling, dropped := edgeStats(g)
	if sibling != 1 || dropped != 2 {
		t.Errorf("edgeStats = (%d, %d), want (1, 2)", sibling, dropped)
	}
}

// failingCache errors on every write but reads like an empty cache.
type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (failingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return context.DeadlineExceeded
}

func (failingCache) Delete(ctx context.Context, key string) error { return nil }
func (failingCache) Close() error                                 { return nil }
