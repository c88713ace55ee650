package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sestools/sescribe/pkg/ses"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	inputFormat string
}

// newInspectCmd creates the inspect command, a dry run of the extraction
// heuristics: it shows what the converter found before anything is
// written.
func newInspectCmd() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show what the extraction heuristics found in an input",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInspect(c.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: json or toml (default: detect from extension)")

	return cmd
}

func runInspect(ctx context.Context, inPath string, opts *inspectOpts) error {
	logger := loggerFromContext(ctx)

	g, err := extractGraph(inPath, opts.inputFormat, logger)
	if err != nil {
		return err
	}

	scopes := ses.Partition(g)
	flows := 0
	for _, s := range scopes {
		flows += len(s.Edges)
	}

	fmt.Println(styleTitle.Render("Extracted graph") + " " + styleDim.Render(inPath))
	printKeyValue("nodes", fmt.Sprintf("%d", g.NodeCount()))
	printKeyValue("edges", fmt.Sprintf("%d", g.EdgeCount()))
	printKeyValue("flows", fmt.Sprintf("%d", flows))
	if dropped := g.EdgeCount() - flows; dropped > 0 {
		printKeyValue("dropped", fmt.Sprintf("%d (unresolved or cross-scope)", dropped))
	}

	byID := g.Index()

	fmt.Println()
	printInfo("Scopes (%d)", len(scopes))
	for _, s := range scopes {
		label := s.Name + "Sys"
		detail := fmt.Sprintf("%-20s %d children, %d flows", label, len(s.Nodes), len(s.Edges))
		if !s.Root {
			if _, ok := byID[s.ParentID]; !ok {
				detail += "  (dangling parent)"
			}
		}
		printDetail("%s", detail)
	}
	return nil
}
