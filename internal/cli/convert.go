package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sestools/sescribe/pkg/cache"
	serrors "github.com/sestools/sescribe/pkg/errors"
	sesio "github.com/sestools/sescribe/pkg/io"
	"github.com/sestools/sescribe/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	inputFormat string // input format override (auto-detected from extension if empty)
	overwrite   bool   // accepted for compatibility, see flag help
}

// newConvertCmd creates the convert command, the primary surface of the
// tool: one input document in, one SES file out.
func newConvertCmd() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a graph description to SES text",
		Long: `Convert a JSON or TOML graph description into SES sentence text.

The input schema does not need to follow any particular convention: node
and edge arrays and their id/name/parent/source/target fields are located
heuristically. The output file is created along with any missing parent
directories and overwritten if it already exists.

Examples:
  sescribe convert architecture.json architecture.ses
  sescribe convert services.toml out/services.ses --input-format toml`,
		Args: requirePositional(2, "convert requires <input> and <output> paths"),
		RunE: func(c *cobra.Command, args []string) error {
			return runConvert(c.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: json or toml (default: detect from extension)")
	// The output is always overwritten; the flag changes nothing. It is
	// kept so existing invocations that pass it keep working.
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "accepted for compatibility; output is always overwritten")

	return cmd
}

// requirePositional builds a cobra argument validator that reports a
// usage error (distinct exit status) when the argument count is wrong.
func requirePositional(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return serrors.New(serrors.ErrCodeUsage, "%s", msg)
		}
		return nil
	}
}

// runConvert executes the full pipeline and writes the SES output.
// Nothing is written until the whole conversion has succeeded.
func runConvert(ctx context.Context, inPath, outPath string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	input, err := sesio.ReadInput(inPath)
	if err != nil {
		return err
	}

	format := opts.inputFormat
	if format == "" {
		format = sesio.DetectFormat(inPath)
	}
	logger.Infof("Converting %s (%s)", inPath, format)

	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{InputFormat: format, Logger: logger}, input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %d nodes, %d edges into %d flows",
		result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.SiblingEdges))

	if result.Stats.DroppedEdges > 0 {
		logger.Debugf("Dropped %d edges (unresolved endpoints or crossing scopes)", result.Stats.DroppedEdges)
	}

	if err := sesio.WriteText(outPath, result.Text); err != nil {
		return err
	}
	logger.Infof("Wrote SES to %s", outPath)
	return nil
}
