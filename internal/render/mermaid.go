package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arch-to-diagram/composer/internal/compose"
)

// Mermaid emits the simplified flowchart markup used for live display.
// Annotations are collapsed into the node label; edge labels survive only on
// primary edges to keep the live view readable.
func Mermaid(d *compose.Document) string {
	var buf bytes.Buffer
	buf.WriteString("flowchart TB\n")

	for _, c := range d.Clusters {
		if c.ID == compose.ClusterLegend {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph %s[%q]\n", c.ID, c.Name)
		for _, n := range c.Nodes {
			fmt.Fprintf(&buf, "    %s[%q]\n", mermaidID(n.ID), mermaidLabel(n))
		}
		buf.WriteString("  end\n")
	}

	for _, e := range d.Edges {
		src, dst := mermaidID(e.Source), mermaidID(e.Target)
		switch e.Style {
		case compose.StylePrimary:
			if e.Label != "" {
				fmt.Fprintf(&buf, "  %s -->|%s| %s\n", src, e.Label, dst)
			} else {
				fmt.Fprintf(&buf, "  %s --> %s\n", src, dst)
			}
		case compose.StyleMonitoring:
			fmt.Fprintf(&buf, "  %s -.-> %s\n", src, dst)
		default: // governance, replication
			fmt.Fprintf(&buf, "  %s -.-> %s\n", src, dst)
		}
	}

	return buf.String()
}

func mermaidLabel(n *compose.Node) string {
	label := n.Label()
	if len(n.Annotations) > 0 {
		label += " (" + n.Annotations[0] + ")"
	}
	return label
}

func mermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
