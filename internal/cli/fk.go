package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kinetree/kinetree/pkg/model"
)

// newFKCmd creates the "fk" command, which computes world poses for a
// set of joint angles.
func newFKCmd() *cobra.Command {
	var (
		anglesFlag string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "fk <model-file>",
		Short: "Compute world poses for a set of joint angles",
		Long: `Compute forward kinematics for a robot model. Joint angles are given
as a comma-separated list via --angles, one entry per degree of freedom
in flattened tree order. Omitting --angles computes the rest pose.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			tree, err := model.Load(args[0])
			if err != nil {
				return err
			}

			if anglesFlag != "" {
				angles, err := parseAngles(anglesFlag)
				if err != nil {
					return err
				}
				if err := tree.SetJointAngles(angles); err != nil {
					return err
				}
			}

			transforms := tree.ComputeLinkTransforms()
			nodes := tree.Nodes()
			logger.Debug("computed transforms", "links", len(nodes))

			if jsonOut {
				type pose struct {
					Link     string     `json:"link"`
					Position [3]float64 `json:"position"`
				}
				poses := make([]pose, len(nodes))
				for i, n := range nodes {
					p := transforms[i].Position()
					poses[i] = pose{Link: n.Data.Name, Position: [3]float64{p.X, p.Y, p.Z}}
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(poses)
			}

			for i, n := range nodes {
				p := transforms[i].Position()
				printKeyValue(n.Data.Name, fmt.Sprintf("(%8.4f, %8.4f, %8.4f)", p.X, p.Y, p.Z))
			}
			prog.done(fmt.Sprintf("Computed %d link poses", len(nodes)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&anglesFlag, "angles", "a", "", "comma-separated joint angles (radians or meters)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit poses as JSON")
	return cmd
}
