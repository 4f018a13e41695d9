package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinetree/kinetree/pkg/model"
	"github.com/kinetree/kinetree/pkg/robot"
)

// newChainsCmd creates the "chains" command, which extracts kinematic
// chains from a model.
func newChainsCmd() *cobra.Command {
	var opts robot.ChainOptions

	cmd := &cobra.Command{
		Use:   "chains <model-file>",
		Short: "Extract kinematic chains from a robot model",
		Long: `Extract one kinematic chain per leaf of the link tree. Chains with
more jointed links than --dof-limit are truncated from the leaf end,
and chains with fewer joints than --min-joints are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			tree, err := model.Load(args[0])
			if err != nil {
				return err
			}
			chains, err := robot.ExtractChains(tree, opts)
			if err != nil {
				return err
			}
			logger.Debug("extracted chains", "count", len(chains))

			if len(chains) == 0 {
				printInfo("No chains matched (model has %d DOF)", tree.DOF())
				return nil
			}
			for _, c := range chains {
				printSuccess("%s", c.Name)
				printDetail("%d links, %d DOF", len(c.Nodes()), c.DOF())
				printDetail("joints: %s", strings.Join(c.JointNames(), " "))
				end := c.EndTransform().Position()
				printDetail("end: (%.4f, %.4f, %.4f)", end.X, end.Y, end.Z)
			}
			fmt.Println(StyleDim.Render(fmt.Sprintf("  %d chain(s)", len(chains))))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.DOFLimit, "dof-limit", 0, "truncate chains to at most this many jointed links (0 = unlimited)")
	cmd.Flags().IntVar(&opts.MinJoints, "min-joints", robot.DefaultMinJoints, "drop chains with fewer joints than this")
	return cmd
}
