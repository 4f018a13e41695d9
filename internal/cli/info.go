package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinetree/kinetree/pkg/model"
	"github.com/kinetree/kinetree/pkg/robot"
)

// newInfoCmd creates the "info" command, which summarizes a model file.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model-file>",
		Short: "Summarize a robot model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			logger.Debug("loading model", "path", args[0])

			tree, err := model.Load(args[0])
			if err != nil {
				return err
			}

			fixed := 0
			for _, n := range tree.Nodes() {
				if !n.Data.HasJointAngle() {
					fixed++
				}
			}

			printKeyValue("Model", tree.Name)
			printKeyValue("Links", fmt.Sprintf("%d", len(tree.Nodes())))
			printKeyValue("DOF", fmt.Sprintf("%d", tree.DOF()))
			printKeyValue("Fixed", fmt.Sprintf("%d", fixed))
			printKeyValue("Joints", strings.Join(tree.JointNames(), ", "))

			chains, err := robot.CreateKinematicChains(tree)
			if err != nil {
				return err
			}
			printKeyValue("Chains", fmt.Sprintf("%d", len(chains)))
			for _, c := range chains {
				printDetail("%s (%d DOF)", c.Name, c.DOF())
			}
			return nil
		},
	}
}
