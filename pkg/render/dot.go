// Package render draws a link tree as a Graphviz node-link diagram.
//
// [ToDOT] produces DOT text; [RenderSVG] and [RenderPNG] rasterize it with
// the embedded Graphviz engine.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/kinetree/kinetree/pkg/link"
	"github.com/kinetree/kinetree/pkg/robot"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes joint type, axis, and limits in node labels.
	// When false, only link and joint names are shown.
	Detailed bool
}

// ToDOT converts a link tree to Graphviz DOT format. Fixed links are
// rendered with dashed outlines and grey fill to distinguish structure
// from actuation.
func ToDOT(t *robot.LinkTree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph kinematics {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range t.Nodes() {
		l := n.Data
		attrs := fmtAttrs(l, fmtLabel(l, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", l.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range t.Nodes() {
		for _, c := range n.Children() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.Data.Name, c.Data.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(l *link.Link, detailed bool) string {
	label := l.Name
	if l.HasJointAngle() {
		label += "\n" + l.JointName()
	}
	if !detailed || l.Joint == nil {
		return label
	}

	parts := []string{fmt.Sprintf("type: %s", l.Joint.Type)}
	if l.HasJointAngle() {
		a := l.Joint.Axis
		parts = append(parts, fmt.Sprintf("axis: (%g, %g, %g)", a.X, a.Y, a.Z))
		if lim := l.Joint.Limits; lim != nil {
			parts = append(parts, fmt.Sprintf("limits: [%.2f, %.2f]", lim.Min, lim.Max))
		}
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(l *link.Link, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !l.HasJointAngle() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders DOT text to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders DOT text to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
