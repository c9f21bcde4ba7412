package render

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arch-to-diagram/composer/internal/compose"
	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/template"
)

func sampleDocument(t *testing.T) *compose.Document {
	t.Helper()
	req := &request.ArchitectureRequest{
		BusinessObjective: "Retail platform",
		OrgStructure:      "Enterprise Retail Co",
		ComputeServices:   []string{"aks"},
		DatabaseServices:  []string{"sql_database"},
	}
	doc, err := compose.Compose(req, template.Select(req.OrgStructure))
	require.NoError(t, err)
	return doc
}

func TestDOT(t *testing.T) {
	doc := sampleDocument(t)
	out := string(DOT(doc))

	assert.True(t, strings.HasPrefix(out, "digraph architecture {"))
	assert.Contains(t, out, "Retail platform")
	assert.Contains(t, out, "Enterprise Scale Landing Zone")

	for _, c := range doc.Clusters {
		assert.Contains(t, out, "subgraph cluster_"+c.ID+" {")
	}

	// All four edge styles must appear with their DOT attributes.
	assert.Contains(t, out, `style=dashed, color="#b85450"`)
	assert.Contains(t, out, `style=dotted, color="#9673a6"`)
	assert.Contains(t, out, `style=dashed, color="#6c8ebf"`)

	// Numbered label and database shape.
	assert.Contains(t, out, `"1. `)
	assert.Contains(t, out, "shape=cylinder")
	assert.Contains(t, out, "shape=plaintext")
}

func TestDOT_QuoteEscaping(t *testing.T) {
	assert.Equal(t, `"plain"`, quote("plain"))
	assert.Equal(t, `"a \"b\" c"`, quote(`a "b" c`))
	assert.Equal(t, `"line1\nline2"`, quote("line1\nline2"))
	assert.Equal(t, `"back\\slash"`, quote(`back\slash`))
}

func TestDotID_Sanitizes(t *testing.T) {
	assert.Equal(t, "mg_root", dotID("mg_root"))
	assert.Equal(t, "a_b_c", dotID("a-b c"))
}

func TestFallbackSVG(t *testing.T) {
	doc := sampleDocument(t)
	out := string(FallbackSVG(doc))

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))

	for _, c := range doc.Clusters {
		assert.Contains(t, out, escapeXML(c.Name))
	}
	// Numbered node labels render in lane order.
	assert.Contains(t, out, ">1. ")
	// Dashed governance edges are present.
	assert.Contains(t, out, `stroke-dasharray="8 4"`)
	assert.Contains(t, out, `stroke-dasharray="2 3"`)
}

func TestFallbackSVG_EscapesMarkup(t *testing.T) {
	doc, err := compose.Compose(&request.ArchitectureRequest{
		BusinessObjective: `Retail <red> & "quoted"`,
	}, template.Select(""))
	require.NoError(t, err)

	out := string(FallbackSVG(doc))
	assert.Contains(t, out, "Retail &lt;red&gt; &amp; &quot;quoted&quot;")
	assert.NotContains(t, out, "<red>")
}

func TestDrawioXML(t *testing.T) {
	doc := sampleDocument(t)
	out := DrawioXML(doc)

	assert.Contains(t, out, `<mxfile host="composer"`)
	assert.Contains(t, out, "<mxGraphModel")
	for _, c := range doc.Clusters {
		assert.Contains(t, out, `id="lane_`+c.ID+`"`)
	}
	assert.Contains(t, out, `id="compute_aks"`)
	assert.Contains(t, out, `parent="lane_compute"`)
	assert.Contains(t, out, `edge="1"`)
	assert.Contains(t, out, "dashed=1;strokeColor=#b85450;")
}

func TestMermaid(t *testing.T) {
	doc := sampleDocument(t)
	out := Mermaid(doc)

	assert.True(t, strings.HasPrefix(out, "flowchart TB\n"))
	for _, c := range doc.Clusters {
		if c.ID == compose.ClusterLegend {
			assert.NotContains(t, out, "subgraph "+c.ID+"[")
			continue
		}
		assert.Contains(t, out, "subgraph "+c.ID+"[")
	}
	assert.Contains(t, out, "-->|VNet peering|")
	assert.Contains(t, out, "-.->")
}

func TestGraphviz_MissingBinary(t *testing.T) {
	g := &Graphviz{BinPath: filepath.Join(t.TempDir(), "no-such-dot")}
	err := g.Render(context.Background(), []byte("digraph g {}"), "png", filepath.Join(t.TempDir(), "out.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLayoutUnavailable)
}

func TestGraphviz_NoOutputFile(t *testing.T) {
	// /bin/true exits zero without writing anything, so the output check must
	// still fail the render.
	g := &Graphviz{BinPath: "/bin/true"}
	err := g.Render(context.Background(), []byte("digraph g {}"), "png", filepath.Join(t.TempDir(), "out.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLayoutUnavailable)
}
