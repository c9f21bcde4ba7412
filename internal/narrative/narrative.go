// Package narrative assembles the descriptive documents for a generated
// architecture. Pure templated string work over the resolved request and
// template; no diagram logic.
package narrative

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arch-to-diagram/composer/internal/catalog"
	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/result"
	"github.com/arch-to-diagram/composer/internal/template"
)

// MaxExternalAnalysis bounds the appended external-analysis section.
const MaxExternalAnalysis = 4000

// Narrate produces the summary, design and implementation documents. An
// optional external-analysis string (URL/document inspection or completion
// output) is appended truncated; its absence degrades to templated-only text.
func Narrate(req *request.ArchitectureRequest, tmpl template.Template, externalAnalysis string) result.Documents {
	docs := result.Documents{
		Summary:        summaryDoc(req, tmpl),
		Design:         designDoc(req, tmpl),
		Implementation: implementationDoc(req, tmpl),
	}
	if externalAnalysis != "" {
		section := "\n## External Analysis\n\n" + truncate(externalAnalysis, MaxExternalAnalysis) + "\n"
		docs.Design += section
	}
	return docs
}

func summaryDoc(req *request.ArchitectureRequest, tmpl template.Template) string {
	var b strings.Builder
	b.WriteString("# Architecture Summary\n\n")
	fmt.Fprintf(&b, "**Landing zone:** %s\n\n", tmpl.DisplayName)
	fmt.Fprintf(&b, "**Business objective:** %s\n\n", orDefault(req.BusinessObjective, "Not specified"))
	fmt.Fprintf(&b, "**Industry:** %s\n\n", orDefault(req.Industry, "Not specified"))
	fmt.Fprintf(&b, "**Compliance posture:** %s\n\n", orDefault(req.Compliance, "Standard"))
	fmt.Fprintf(&b, "**Region preference:** %s\n\n", orDefault(req.RegionPreference, "Not specified"))

	b.WriteString("## Selected Services\n\n")
	if lines := serviceLines(req); len(lines) > 0 {
		for _, l := range lines {
			b.WriteString("- " + l + "\n")
		}
	} else {
		b.WriteString("- Baseline platform services only\n")
	}
	return b.String()
}

func designDoc(req *request.ArchitectureRequest, tmpl template.Template) string {
	var b strings.Builder
	b.WriteString("# Design Document\n\n")
	b.WriteString("## Governance Structure\n\n")
	for i, mg := range tmpl.ManagementGroups {
		indent := ""
		if i > 0 {
			indent = "  "
		}
		fmt.Fprintf(&b, "%s- %s\n", indent, mg)
	}
	b.WriteString("\n## Subscriptions\n\n")
	for _, s := range tmpl.Subscriptions {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n## Platform Baseline\n\n")
	for _, s := range tmpl.CoreServices {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n## Network Topology\n\n")
	b.WriteString("Hub-spoke topology: one hub virtual network (10.0.0.0/16) peered to " +
		"production, development and UAT spokes with non-overlapping address blocks. " +
		"Internet-facing services sit in the untrusted edge lane; identity and secret " +
		"management in the semi-trusted lane; workloads and data behind the hub.\n")
	if req.OrgStructure != "" {
		fmt.Fprintf(&b, "\nOrganizational context: %s\n", req.OrgStructure)
	}
	return b.String()
}

func implementationDoc(req *request.ArchitectureRequest, tmpl template.Template) string {
	var b strings.Builder
	b.WriteString("# Implementation Plan\n\n")
	b.WriteString("1. Provision the management-group hierarchy and subscriptions.\n")
	b.WriteString("2. Deploy the hub virtual network, firewall and gateways.\n")
	b.WriteString("3. Peer the production, development and UAT spokes.\n")
	b.WriteString("4. Configure identity, Key Vault and policy assignments.\n")
	step := 5
	if len(req.ComputeServices) > 0 {
		fmt.Fprintf(&b, "%d. Deploy compute workloads: %s.\n", step, displayList(req.ComputeServices))
		step++
	}
	if len(req.StorageServices)+len(req.DatabaseServices) > 0 {
		fmt.Fprintf(&b, "%d. Provision the data layer: %s.\n", step,
			displayList(append(append([]string{}, req.StorageServices...), req.DatabaseServices...)))
		step++
	}
	if tmpl.Kind == template.KindEnterprise {
		fmt.Fprintf(&b, "%d. Stand up the disaster-recovery region and replication.\n", step)
		step++
	}
	fmt.Fprintf(&b, "%d. Enable monitoring, log collection and cost alerts.\n", step)
	return b.String()
}

// serviceLines renders "Display Name (category)" for every known selected key.
func serviceLines(req *request.ArchitectureRequest) []string {
	var out []string
	lists := [][]string{
		req.ComputeServices, req.NetworkServices, req.StorageServices,
		req.DatabaseServices, req.SecurityServices, req.MonitoringServices,
		req.AIServices, req.AnalyticsServices, req.IntegrationServices,
	}
	for _, keys := range lists {
		for _, k := range keys {
			if d, ok := catalog.Lookup(k); ok {
				out = append(out, fmt.Sprintf("%s (%s)", d.DisplayName, d.Category))
			}
		}
	}
	return out
}

func displayList(keys []string) string {
	var names []string
	for _, k := range keys {
		if d, ok := catalog.Lookup(k); ok {
			names = append(names, d.DisplayName)
		}
	}
	if len(names) == 0 {
		return "selected services"
	}
	return strings.Join(names, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// truncate cuts s to at most n bytes without splitting a multibyte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
