package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kinetree/kinetree/pkg/link"
	"github.com/kinetree/kinetree/pkg/model"
	"github.com/kinetree/kinetree/pkg/robot"
)

// newJogCmd creates the "jog" command, an interactive joint driver.
func newJogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jog <model-file>",
		Short: "Drive joints interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := model.Load(args[0])
			if err != nil {
				return err
			}
			if tree.DOF() == 0 {
				return fmt.Errorf("model %q has no movable joints", tree.Name)
			}
			p := tea.NewProgram(newJogModel(tree))
			_, err = p.Run()
			return err
		},
	}
}

var (
	jogSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	jogDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// jogModel is the bubbletea model for interactive joint jogging.
type jogModel struct {
	tree   *robot.LinkTree
	joints []*link.Link // movable links, flattened order
	leaves []*robot.LinkNode
	cursor int
	step   float64
}

func newJogModel(tree *robot.LinkTree) jogModel {
	var joints []*link.Link
	var leaves []*robot.LinkNode
	for _, n := range tree.Nodes() {
		if n.Data.HasJointAngle() {
			joints = append(joints, n.Data)
		}
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}
	m := jogModel{tree: tree, joints: joints, leaves: leaves, step: 0.05}
	m.tree.ComputeLinkTransforms()
	return m
}

func (m jogModel) Init() tea.Cmd {
	return nil
}

func (m jogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.joints)-1 {
				m.cursor++
			}
		case "left", "h":
			m.nudge(-m.step)
		case "right", "l":
			m.nudge(m.step)
		case "+", "=":
			m.step *= 2
		case "-", "_":
			m.step /= 2
		case "r":
			for _, j := range m.joints {
				// Zero may be outside the joint limits; skip those.
				_ = j.SetJointAngle(0)
			}
			m.tree.ComputeLinkTransforms()
		}
	}
	return m, nil
}

// nudge moves the selected joint by delta and recomputes world poses.
// Moves past the joint limits are ignored.
func (m jogModel) nudge(delta float64) {
	j := m.joints[m.cursor]
	angle, _ := j.JointAngle()
	if err := j.SetJointAngle(angle + delta); err != nil {
		return
	}
	m.tree.ComputeLinkTransforms()
}

func (m jogModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Jog " + m.tree.Name))
	b.WriteString("\n")
	b.WriteString(jogDimStyle.Render("↑/↓ joint  ←/→ move  +/- step  r reset  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.joints))
	for i, j := range m.joints {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		angle, _ := j.JointAngle()
		limits := "unlimited"
		if lim := j.Joint.Limits; lim != nil {
			limits = fmt.Sprintf("[%.2f, %.2f]", lim.Min, lim.Max)
		}
		rows[i] = []string{cursor, j.JointName(), j.Joint.Type.String(), fmt.Sprintf("%8.4f", angle), limits}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Joint", "Type", "Angle", "Limits").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.cursor {
				return jogSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	for _, leaf := range m.leaves {
		if leaf.Data.WorldCache == nil {
			continue
		}
		p := leaf.Data.WorldCache.Position()
		b.WriteString(fmt.Sprintf("  %s %s (%.4f, %.4f, %.4f)\n",
			jogDimStyle.Render(iconArrow), StyleValue.Render(leaf.Data.Name), p.X, p.Y, p.Z))
	}
	b.WriteString("\n")
	b.WriteString(jogDimStyle.Render(fmt.Sprintf("  step %.4f", m.step)))

	return b.String()
}
