package narrative

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/template"
)

func TestNarrate_EmptyRequestUsesPlaceholders(t *testing.T) {
	docs := Narrate(&request.ArchitectureRequest{}, template.Select(""), "")

	require.NotEmpty(t, docs.Summary)
	require.NotEmpty(t, docs.Design)
	require.NotEmpty(t, docs.Implementation)

	assert.Contains(t, docs.Summary, "**Business objective:** Not specified")
	assert.Contains(t, docs.Summary, "**Compliance posture:** Standard")
	assert.Contains(t, docs.Summary, "Baseline platform services only")
	assert.NotContains(t, docs.Design, "External Analysis")
}

func TestNarrate_SelectedServicesListed(t *testing.T) {
	req := &request.ArchitectureRequest{
		BusinessObjective: "Retail platform",
		Industry:          "Retail",
		ComputeServices:   []string{"aks"},
		DatabaseServices:  []string{"sql_database", "unknown_key"},
	}
	docs := Narrate(req, template.Select("enterprise"), "")

	assert.Contains(t, docs.Summary, "**Business objective:** Retail platform")
	assert.Contains(t, docs.Summary, "Kubernetes Service (compute)")
	assert.Contains(t, docs.Summary, "SQL Database (database)")
	assert.NotContains(t, docs.Summary, "unknown_key")
}

func TestNarrate_DesignReflectsTemplate(t *testing.T) {
	tmpl := template.Select("enterprise")
	docs := Narrate(&request.ArchitectureRequest{OrgStructure: "Enterprise Retail Co"}, tmpl, "")

	for _, mg := range tmpl.ManagementGroups {
		assert.Contains(t, docs.Design, mg)
	}
	for _, sub := range tmpl.Subscriptions {
		assert.Contains(t, docs.Design, sub)
	}
	assert.Contains(t, docs.Design, "Hub-spoke topology")
	assert.Contains(t, docs.Design, "Organizational context: Enterprise Retail Co")
}

func TestNarrate_ImplementationSteps(t *testing.T) {
	req := &request.ArchitectureRequest{
		ComputeServices:  []string{"aks"},
		DatabaseServices: []string{"sql_database"},
	}
	docs := Narrate(req, template.Select("enterprise"), "")

	assert.Contains(t, docs.Implementation, "5. Deploy compute workloads: Azure Kubernetes Service.")
	assert.Contains(t, docs.Implementation, "6. Provision the data layer: SQL Database.")
	assert.Contains(t, docs.Implementation, "7. Stand up the disaster-recovery region")
	assert.Contains(t, docs.Implementation, "8. Enable monitoring")

	startup := Narrate(&request.ArchitectureRequest{}, template.Select(""), "")
	assert.NotContains(t, startup.Implementation, "disaster-recovery region")
	assert.Contains(t, startup.Implementation, "5. Enable monitoring")
}

func TestNarrate_ExternalAnalysisAppendedTruncated(t *testing.T) {
	long := strings.Repeat("x", MaxExternalAnalysis+500)
	docs := Narrate(&request.ArchitectureRequest{}, template.Select(""), long)

	require.Contains(t, docs.Design, "## External Analysis")
	idx := strings.Index(docs.Design, "## External Analysis")
	appended := docs.Design[idx:]
	assert.Less(t, len(appended), MaxExternalAnalysis+200, "analysis must be truncated")

	short := Narrate(&request.ArchitectureRequest{}, template.Select(""), "reviewed upstream notes")
	assert.Contains(t, short.Design, "reviewed upstream notes")
}

func TestNarrate_TruncationKeepsValidUTF8(t *testing.T) {
	// Place a two-byte character across the cut point: the truncation must
	// back off to the rune boundary instead of emitting a split rune.
	analysis := strings.Repeat("a", MaxExternalAnalysis-1) + strings.Repeat("é", 300)
	docs := Narrate(&request.ArchitectureRequest{}, template.Select(""), analysis)

	assert.True(t, utf8.ValidString(docs.Design))
	assert.Contains(t, docs.Design, "…")
}
