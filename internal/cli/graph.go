package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sestools/sescribe/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	inputFormat string
	output      string
	format      string // dot, svg, or png
}

// validGraphFormats is the set of supported graph output formats.
var validGraphFormats = map[string]bool{"dot": true, "svg": true, "png": true}

// newGraphCmd creates the graph command, which renders the canonical
// graph as a Graphviz diagram with parent scopes drawn as clusters.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <input>",
		Short: "Render the canonical graph as DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !validGraphFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", opts.format)
			}
			return runGraph(c.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: json or toml (default: detect from extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot (default), svg, png")

	return cmd
}

func runGraph(ctx context.Context, inPath string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	g, err := extractGraph(inPath, opts.inputFormat, logger)
	if err != nil {
		return err
	}
	logger.Infof("Rendering %d nodes, %d edges as %s", g.NodeCount(), g.EdgeCount(), opts.format)

	dot := render.ToDOT(g)

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.RenderSVG(dot)
	case "png":
		data, err = render.RenderPNG(dot)
	}
	if err != nil {
		return err
	}

	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + "." + opts.format
	}

	out, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	logger.Infof("Generated %s", outPath)
	return nil
}
