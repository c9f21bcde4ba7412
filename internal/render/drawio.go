package render

import (
	"bytes"
	"fmt"

	"github.com/arch-to-diagram/composer/internal/compose"
)

// draw.io geometry mirrors the fallback SVG grid so the editable document and
// the fallback image agree on placement.
const (
	dioLaneWidth  = 1200
	dioNodeWidth  = 220
	dioNodeHeight = 80
	dioNodeGap    = 20
	dioPerRow     = 5
)

// DrawioXML emits an uncompressed mxGraphModel document: one swimlane cell
// per cluster, one child cell per node, one edge cell per edge.
func DrawioXML(d *compose.Document) string {
	var buf bytes.Buffer
	buf.WriteString(`<mxfile host="composer" type="device">` + "\n")
	fmt.Fprintf(&buf, `  <diagram id="architecture" name="%s">`+"\n", escapeXML(d.Title))
	buf.WriteString("    <mxGraphModel dx=\"1400\" dy=\"900\" grid=\"1\" gridSize=\"10\" guides=\"1\" arrows=\"1\">\n")
	buf.WriteString("      <root>\n")
	buf.WriteString(`        <mxCell id="0"/>` + "\n")
	buf.WriteString(`        <mxCell id="1" parent="0"/>` + "\n")

	y := 40
	for _, c := range d.Clusters {
		rows := (len(c.Nodes) + dioPerRow - 1) / dioPerRow
		laneH := 40 + rows*(dioNodeHeight+dioNodeGap) + dioNodeGap
		fill := zoneFill[c.Zone]
		if fill == "" || c.ID == compose.ClusterLegend {
			fill = "#ffffff"
		}
		laneCell := "lane_" + c.ID
		fmt.Fprintf(&buf,
			`        <mxCell id="%s" value="%s" style="swimlane;horizontal=0;fillColor=%s;rounded=1;" vertex="1" parent="1">`+"\n",
			laneCell, escapeXML(c.Name), fill)
		fmt.Fprintf(&buf, `          <mxGeometry x="40" y="%d" width="%d" height="%d" as="geometry"/>`+"\n", y, dioLaneWidth, laneH)
		buf.WriteString("        </mxCell>\n")

		for i, n := range c.Nodes {
			col := i % dioPerRow
			row := i / dioPerRow
			nx := 40 + col*(dioNodeWidth+dioNodeGap)
			ny := 40 + row*(dioNodeHeight+dioNodeGap)
			style := "rounded=1;whiteSpace=wrap;html=1;"
			if fc, ok := kindFill[n.Kind]; ok {
				style += "fillColor=" + fc + ";"
			}
			if n.Kind == "legend" {
				style = "text;html=1;"
			}
			fmt.Fprintf(&buf,
				`        <mxCell id="%s" value="%s" style="%s" vertex="1" parent="%s">`+"\n",
				n.ID, escapeXML(nodeLabel(n)), style, laneCell)
			fmt.Fprintf(&buf, `          <mxGeometry x="%d" y="%d" width="%d" height="%d" as="geometry"/>`+"\n",
				nx, ny, dioNodeWidth, dioNodeHeight)
			buf.WriteString("        </mxCell>\n")
		}
		y += laneH + 30
	}

	for i, e := range d.Edges {
		style := "edgeStyle=orthogonalEdgeStyle;rounded=1;"
		switch e.Style {
		case compose.StyleGovernance:
			style += "dashed=1;strokeColor=#b85450;"
		case compose.StyleMonitoring:
			style += "dashed=1;dashPattern=1 3;strokeColor=#9673a6;"
		case compose.StyleReplication:
			style += "dashed=1;strokeColor=#6c8ebf;"
		}
		fmt.Fprintf(&buf,
			`        <mxCell id="e%d" value="%s" style="%s" edge="1" parent="1" source="%s" target="%s">`+"\n",
			i, escapeXML(e.Label), style, e.Source, e.Target)
		buf.WriteString(`          <mxGeometry relative="1" as="geometry"/>` + "\n")
		buf.WriteString("        </mxCell>\n")
	}

	buf.WriteString("      </root>\n")
	buf.WriteString("    </mxGraphModel>\n")
	buf.WriteString("  </diagram>\n")
	buf.WriteString("</mxfile>\n")
	return buf.String()
}
