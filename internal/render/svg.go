package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arch-to-diagram/composer/internal/compose"
)

// Fallback layout constants. The hand-built renderer uses a fixed grid: lanes
// stacked in render order, nodes left to right in rows.
const (
	svgWidth      = 1240
	laneMargin    = 20
	laneHeader    = 30
	nodeWidth     = 220
	nodeHeight    = 82
	nodeGap       = 18
	nodesPerRow   = 5
	laneGapBottom = 24
)

type point struct{ x, y int }

// FallbackSVG renders the document without the layout engine: same swim-lane
// ordering and numbering, fixed positions, reduced fidelity (no edge labels).
func FallbackSVG(d *compose.Document) []byte {
	var body bytes.Buffer
	centers := make(map[string]point)
	y := laneMargin + 24 // room for the title line

	for _, c := range d.Clusters {
		rows := (len(c.Nodes) + nodesPerRow - 1) / nodesPerRow
		laneH := laneHeader + rows*(nodeHeight+nodeGap) + nodeGap
		fill := zoneFill[c.Zone]
		if fill == "" || c.ID == compose.ClusterLegend {
			fill = "#ffffff"
		}
		fmt.Fprintf(&body, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#666" rx="6"/>`+"\n",
			laneMargin, y, svgWidth-2*laneMargin, laneH, fill)
		fmt.Fprintf(&body, `<text x="%d" y="%d" font-family="Helvetica" font-size="14" font-weight="bold">%s</text>`+"\n",
			laneMargin+12, y+20, escapeXML(c.Name))

		for i, n := range c.Nodes {
			col := i % nodesPerRow
			row := i / nodesPerRow
			nx := laneMargin + nodeGap + col*(nodeWidth+nodeGap)
			ny := y + laneHeader + nodeGap + row*(nodeHeight+nodeGap)
			centers[n.ID] = point{nx + nodeWidth/2, ny + nodeHeight/2}

			nodeFill := kindFill[n.Kind]
			if nodeFill == "" {
				nodeFill = "#ffffff"
			}
			if n.Kind == "legend" {
				fmt.Fprintf(&body, `<text x="%d" y="%d" font-family="Helvetica" font-size="11">%s</text>`+"\n",
					nx, ny+16, escapeXML(n.Title))
				continue
			}
			fmt.Fprintf(&body, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#333" rx="4"/>`+"\n",
				nx, ny, nodeWidth, nodeHeight, nodeFill)
			lines := append([]string{n.Label()}, n.Annotations...)
			for j, line := range lines {
				weight := ""
				if j == 0 {
					weight = ` font-weight="bold"`
				}
				fmt.Fprintf(&body, `<text x="%d" y="%d" font-family="Helvetica" font-size="11"%s>%s</text>`+"\n",
					nx+10, ny+20+j*16, weight, escapeXML(line))
			}
		}
		y += laneH + laneGapBottom
	}

	var edges bytes.Buffer
	for _, e := range d.Edges {
		from, okF := centers[e.Source]
		to, okT := centers[e.Target]
		if !okF || !okT {
			continue
		}
		dash := ""
		color := "#333333"
		switch e.Style {
		case compose.StyleGovernance:
			dash = ` stroke-dasharray="8 4"`
			color = "#b85450"
		case compose.StyleMonitoring:
			dash = ` stroke-dasharray="2 3"`
			color = "#9673a6"
		case compose.StyleReplication:
			dash = ` stroke-dasharray="8 4"`
			color = "#6c8ebf"
		}
		fmt.Fprintf(&edges, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1" opacity="0.6"%s/>`+"\n",
			from.x, from.y, to.x, to.y, color, dash)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", svgWidth, y+laneMargin)
	fmt.Fprintf(&out, `<text x="%d" y="%d" font-family="Helvetica" font-size="16" font-weight="bold">%s</text>`+"\n",
		laneMargin, 16, escapeXML(d.Title+" — "+d.TemplateName))
	out.Write(edges.Bytes())
	out.Write(body.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
