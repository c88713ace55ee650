package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sestools/sescribe/pkg/cache"
	"github.com/sestools/sescribe/pkg/graph"
	sesio "github.com/sestools/sescribe/pkg/io"
	"github.com/sestools/sescribe/pkg/pipeline"
)

// extractOpts holds the command-line flags for the extract command.
type extractOpts struct {
	inputFormat string // input format override
	output      string // output file path (stdout if empty)
}

// newExtractCmd creates the extract command, which runs only the
// extraction stage and exports the canonical graph as JSON. The exported
// form is what the emitter consumes and can be fed to the graph command.
func newExtractCmd() *cobra.Command {
	var opts extractOpts

	cmd := &cobra.Command{
		Use:   "extract <input>",
		Short: "Extract the canonical graph without emitting SES",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runExtract(c.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: json or toml (default: detect from extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runExtract(ctx context.Context, inPath string, opts *extractOpts) error {
	logger := loggerFromContext(ctx)

	g, err := extractGraph(inPath, opts.inputFormat, logger)
	if err != nil {
		return err
	}
	logger.Infof("Extracted %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := graph.Write(g, out); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote graph to %s", opts.output)
	}
	return nil
}

// extractGraph reads an input document and runs decode + extract.
// Shared by the extract, inspect, and graph commands.
func extractGraph(inPath, format string, logger interface{ Debugf(string, ...any) }) (graph.Graph, error) {
	input, err := sesio.ReadInput(inPath)
	if err != nil {
		return graph.Graph{}, err
	}
	if format == "" {
		format = sesio.DetectFormat(inPath)
	}
	logger.Debugf("Decoding %s as %s", inPath, format)

	runner := pipeline.NewRunner(cache.NewNullCache(), nil)
	return runner.Extract(pipeline.Options{InputFormat: format}, input)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
