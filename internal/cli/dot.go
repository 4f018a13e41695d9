package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinetree/kinetree/pkg/model"
	"github.com/kinetree/kinetree/pkg/render"
)

// newDotCmd creates the "dot" command, which renders a link tree as a
// DOT, SVG, or PNG diagram.
func newDotCmd() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "dot <model-file>",
		Short: "Render a robot model as a DOT, SVG, or PNG diagram",
		Long: `Render the link tree as a Graphviz diagram. The output format is
derived from the -o extension (.dot, .svg, or .png); without -o the DOT
source is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			tree, err := model.Load(args[0])
			if err != nil {
				return err
			}
			dot := render.ToDOT(tree, render.Options{Detailed: detailed})

			if output == "" {
				fmt.Print(dot)
				return nil
			}

			var data []byte
			switch ext := strings.ToLower(filepath.Ext(output)); ext {
			case ".dot":
				data = []byte(dot)
			case ".svg":
				if data, err = render.RenderSVG(dot); err != nil {
					return fmt.Errorf("rendering svg: %w", err)
				}
			case ".png":
				if data, err = render.RenderPNG(dot); err != nil {
					return fmt.Errorf("rendering png: %w", err)
				}
			default:
				return fmt.Errorf("unsupported output extension %q (want .dot, .svg, or .png)", ext)
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			prog.done(fmt.Sprintf("Rendered %d links", len(tree.Nodes())))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot, .svg, or .png; default stdout DOT)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include joint axes and limits in node labels")
	return cmd
}
