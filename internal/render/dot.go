// Package render turns a composed document into concrete diagram markup:
// Graphviz DOT for the layout engine, a fixed-layout SVG fallback, draw.io
// XML for editing, and Mermaid for live display.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arch-to-diagram/composer/internal/compose"
)

// zoneFill maps trust zones to lane background colors.
var zoneFill = map[compose.TrustZone]string{
	compose.ZoneUntrusted:   "#fde8e8",
	compose.ZoneSemiTrusted: "#fff4e5",
	compose.ZoneTrusted:     "#e8f5e9",
	compose.ZoneData:        "#e3f2fd",
	compose.ZoneDR:          "#f0f0f0",
}

// kindFill maps node kinds to node colors; unmapped kinds stay white.
var kindFill = map[string]string{
	"edge":         "#f8cecc",
	"identity":     "#ffe6cc",
	"vault":        "#ffe6cc",
	"security":     "#ffe6cc",
	"siem":         "#ffe6cc",
	"management":   "#fff2cc",
	"subscription": "#fff2cc",
	"governance":   "#fff2cc",
	"network":      "#dae8fc",
	"firewall":     "#f8cecc",
	"gateway":      "#dae8fc",
	"loadbalancer": "#dae8fc",
	"database":     "#d5e8d4",
	"cache":        "#d5e8d4",
	"storage":      "#d5e8d4",
	"monitor":      "#e1d5e7",
	"backup":       "#f0f0f0",
}

// edgeAttrs maps edge styles to DOT attributes.
var edgeAttrs = map[compose.EdgeStyle]string{
	compose.StylePrimary:     `color="#333333"`,
	compose.StyleGovernance:  `style=dashed, color="#b85450"`,
	compose.StyleMonitoring:  `style=dotted, color="#9673a6"`,
	compose.StyleReplication: `style=dashed, color="#6c8ebf"`,
}

// DOT emits Graphviz source for the document: one subgraph cluster per swim
// lane in render order, styled edges between node ids.
func DOT(d *compose.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString("digraph architecture {\n")
	fmt.Fprintf(&buf, "  label=%s;\n", quote(d.Title+" — "+d.TemplateName))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=11];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=9];\n")

	for _, c := range d.Clusters {
		fmt.Fprintf(&buf, "  subgraph cluster_%s {\n", c.ID)
		fmt.Fprintf(&buf, "    label=%s;\n", quote(c.Name))
		fill := zoneFill[c.Zone]
		if c.ID == compose.ClusterLegend {
			fill = "#ffffff"
		}
		if fill != "" {
			fmt.Fprintf(&buf, "    style=filled;\n    fillcolor=%s;\n", quote(fill))
		}
		for _, n := range c.Nodes {
			attrs := fmt.Sprintf("label=%s", quote(nodeLabel(n)))
			if fc, ok := kindFill[n.Kind]; ok {
				attrs += fmt.Sprintf(", fillcolor=%s", quote(fc))
			}
			if n.Kind == "database" || n.Kind == "cache" {
				attrs += ", shape=cylinder"
			}
			if n.Kind == "legend" {
				attrs += ", shape=plaintext, style=\"\""
			}
			fmt.Fprintf(&buf, "    %s [%s];\n", dotID(n.ID), attrs)
		}
		buf.WriteString("  }\n")
	}

	for _, e := range d.Edges {
		attrs := edgeAttrs[e.Style]
		if e.Label != "" {
			attrs += fmt.Sprintf(", label=%s", quote(e.Label))
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", dotID(e.Source), dotID(e.Target), attrs)
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// nodeLabel joins the numbered title with annotation lines.
func nodeLabel(n *compose.Node) string {
	parts := append([]string{n.Label()}, n.Annotations...)
	return strings.Join(parts, "\n")
}

// dotID makes a node id safe as a bare DOT identifier.
func dotID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

// quote escapes and double-quotes a DOT string, mapping newlines to the DOT
// line-break escape.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
