// Package pipeline wires the conversion stages together for CLI and
// server use.
//
// The pipeline is the complete decode → extract → emit pass over one
// input document:
//
//  1. Decode: parse the raw bytes into a generic tree (JSON or TOML)
//  2. Extract: heuristically build the canonical graph from the tree
//  3. Emit: render the graph as deterministic SES text
//
// The whole pass is synchronous and pure once decoding succeeds, which is
// what makes results cacheable by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{}, input)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(result.Text)
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sestools/sescribe/pkg/cache"
	"github.com/sestools/sescribe/pkg/extract"
	"github.com/sestools/sescribe/pkg/graph"
	sesio "github.com/sestools/sescribe/pkg/io"
	"github.com/sestools/sescribe/pkg/observability"
	"github.com/sestools/sescribe/pkg/ses"
)

// DefaultCacheTTL is how long cached conversion results stay valid.
const DefaultCacheTTL = 24 * time.Hour

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for a conversion run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// InputFormat selects the decoder: "json" (default) or "toml".
	InputFormat string `json:"input_format,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputFormat == "" {
		o.InputFormat = sesio.FormatJSON
	}
	if err := sesio.ValidateFormat(o.InputFormat); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a conversion run.
type Result struct {
	// Graph is the extracted canonical graph. Empty on a cache hit.
	Graph graph.Graph

	// Text is the emitted SES output.
	Text string

	// Stats contains counts and timing information. Zero on a cache hit.
	Stats Stats

	// CacheInfo tracks whether the result came from the cache.
	CacheInfo CacheInfo
}

// Stats contains conversion statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	SiblingEdges int // edges attributable to a scope and rendered as flows
	DroppedEdges int // edges dropped for unresolved endpoints or crossing scopes
	DecodeTime   time.Duration
	ExtractTime  time.Duration
	EmitTime     time.Duration
}

// CacheInfo tracks cache participation for a run.
type CacheInfo struct {
	Hit bool // whether the SES text came from the cache
}

// =============================================================================
// Runner
// =============================================================================

// Runner executes conversion runs against a cache backend.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{cache: c, logger: logger}
}

// Execute runs the full decode → extract → emit pipeline over input.
//
// The cache is consulted first, keyed by content hash of the input and
// the input format. On a hit only Result.Text and CacheInfo are
// populated. Cache write failures are logged and otherwise ignored; the
// conversion result is already in hand.
func (r *Runner) Execute(ctx context.Context, opts Options, input []byte) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}

	key := cache.ConvertKey(input, opts.InputFormat)
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		r.logger.Debugf("Cache hit for %s", key)
		observability.Cache().OnCacheHit(ctx, "convert")
		return Result{Text: string(data), CacheInfo: CacheInfo{Hit: true}}, nil
	}
	observability.Cache().OnCacheMiss(ctx, "convert")

	runStart := time.Now()
	observability.Conversion().OnConvertStart(ctx, opts.InputFormat, len(input))

	g, stats, err := r.extract(opts, input)
	if err != nil {
		observability.Conversion().OnConvertComplete(ctx, opts.InputFormat, 0, 0, time.Since(runStart), err)
		return Result{}, err
	}

	start := time.Now()
	text := ses.Emit(g)
	stats.EmitTime = time.Since(start)
	stats.SiblingEdges, stats.DroppedEdges = edgeStats(g)
	observability.Conversion().OnConvertComplete(ctx, opts.InputFormat,
		stats.NodeCount, stats.SiblingEdges, time.Since(runStart), nil)

	if err := r.cache.Set(ctx, key, []byte(text), DefaultCacheTTL); err != nil {
		r.logger.Warnf("Cache write failed: %v", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "convert", len(text))
	}

	return Result{Graph: g, Text: text, Stats: stats}, nil
}

// Extract runs only the decode and extract stages, bypassing the cache.
// This backs the standalone extraction surfaces (extract command,
// /v1/extract endpoint, graph rendering).
func (r *Runner) Extract(opts Options, input []byte) (graph.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Graph{}, err
	}
	g, _, err := r.extract(opts, input)
	return g, err
}

func (r *Runner) extract(opts Options, input []byte) (graph.Graph, Stats, error) {
	var stats Stats

	start := time.Now()
	tree, err := sesio.DecodeTree(input, opts.InputFormat)
	if err != nil {
		return graph.Graph{}, stats, err
	}
	stats.DecodeTime = time.Since(start)

	start = time.Now()
	g := extract.Extract(tree)
	stats.ExtractTime = time.Since(start)
	stats.NodeCount = g.NodeCount()
	stats.EdgeCount = g.EdgeCount()

	r.logger.Debugf("Extracted %d nodes, %d edges", stats.NodeCount, stats.EdgeCount)
	return g, stats, nil
}

// edgeStats counts how many edges survive sibling-scope attribution.
func edgeStats(g graph.Graph) (sibling, dropped int) {
	byID := g.Index()
	for _, e := range g.Edges {
		src, okSrc := byID[e.From]
		dst, okDst := byID[e.To]
		if okSrc && okDst && src.SameScope(dst) {
			sibling++
		}
	}
	return sibling, len(g.Edges) - sibling
}
