// Package render produces graphical views of a quest graph.
//
// A quest is converted to Graphviz DOT with per-type node styling, then
// optionally rasterized to SVG. The DOT output is also useful on its own
// for inspection or downstream tooling.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/questforge/questforge/pkg/quest"
)

// Options configures quest rendering.
type Options struct {
	// Detailed includes per-type body text (dialogue snippets, option
	// labels, event names) in node labels. When false, only the node's
	// display label is shown.
	Detailed bool
	// LeftRight lays the graph out left-to-right instead of top-down.
	LeftRight bool
}

// fillColors mirrors the editor's node palette.
var fillColors = map[quest.NodeType]string{
	quest.TypeStart:    "#dcfce7",
	quest.TypeDialogue: "#dbeafe",
	quest.TypeChoice:   "#fef9c3",
	quest.TypeEvent:    "#fae8ff",
	quest.TypeIf:       "#ffedd5",
	quest.TypeAnd:      "#e0e7ff",
	quest.TypeOr:       "#e0e7ff",
	quest.TypeEnd:      "#fee2e2",
}

// ToDOT converts a quest to Graphviz DOT. The resulting string can be
// rendered with [SVG].
func ToDOT(q *quest.Quest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph quest {\n")
	if opts.LeftRight {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range q.Nodes {
		n := &q.Nodes[i]
		label := nodeLabel(n, opts.Detailed)
		attrs := nodeAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range q.Connections {
		c := &q.Connections[i]
		if lbl := edgeLabel(q, c); lbl != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", c.SourceNodeID, c.TargetNodeID, lbl)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.SourceNodeID, c.TargetNodeID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *quest.Node, detailed bool) string {
	if !detailed {
		return n.Label()
	}

	parts := []string{n.Label()}
	switch n.Type {
	case quest.TypeStart:
		if s := snippet(n.Description, 40); s != "" {
			parts = append(parts, s)
		}
	case quest.TypeDialogue:
		if s := snippet(n.Text, 40); s != "" {
			parts = append(parts, s)
		}
	case quest.TypeChoice:
		if s := snippet(n.Prompt, 40); s != "" {
			parts = append(parts, s)
		}
	case quest.TypeEvent:
		if n.EventName != "" {
			parts = append(parts, n.EventName)
		}
	case quest.TypeIf:
		if n.Condition != "" {
			parts = append(parts, snippet(n.Condition, 40))
		}
	case quest.TypeEnd:
		parts = append(parts, string(n.Outcome))
	}
	return strings.Join(parts, "\n")
}

func nodeAttrs(n *quest.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := fillColors[n.Type]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	} else {
		attrs = append(attrs, "fillcolor=white")
	}
	if n.Type == quest.TypeAnd || n.Type == quest.TypeOr {
		attrs = append(attrs, "shape=diamond")
	}
	return attrs
}

// edgeLabel names the source port a connection leaves through: the option
// label for option-bearing nodes, or the named output of a branching node.
func edgeLabel(q *quest.Quest, c *quest.Connection) string {
	if c.SourceOptionID != "" {
		if n := q.Node(c.SourceNodeID); n != nil {
			for i := range n.Options {
				if n.Options[i].ID == c.SourceOptionID {
					if n.Options[i].ShortLabel != "" {
						return n.Options[i].ShortLabel
					}
					return snippet(n.Options[i].Label, 20)
				}
			}
		}
		return ""
	}
	return c.SourceOutput
}

func snippet(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
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
