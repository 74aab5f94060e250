package analysis

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"graphd/domain/core/entities"
	"graphd/domain/core/valueobjects"
)

// ToDOT renders the snapshot in Graphviz DOT format. Each node is labelled
// with its id, title and condition; edges to deleted nodes are left out.
func ToDOT(nodes []*entities.Node) string {
	live := make(map[valueobjects.NodeID]bool, len(nodes))
	for _, n := range nodes {
		live[n.ID()] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		label := fmt.Sprintf("%d: %s", n.ID(), n.Title())
		if n.Condition() != "" {
			label += "\n" + n.Condition()
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID().String(), label)
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for _, target := range n.Neighbors() {
			if !live[target] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID().String(), target.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
