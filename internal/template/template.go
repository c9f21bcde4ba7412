// Package template holds the fixed landing-zone topology presets and the
// deterministic selector that maps organizational descriptors to one of them.
package template

import (
	"errors"
	"strings"
)

// Kind names one of the fixed topology presets.
type Kind string

const (
	KindEnterprise  Kind = "enterprise"
	KindSmallMedium Kind = "small_medium"
	KindStartup     Kind = "startup"
)

// Template defines the management-group hierarchy, subscription layout and
// baseline services for an organization size class. Immutable after selection.
type Template struct {
	Kind             Kind
	DisplayName      string
	ManagementGroups []string // root first, then children in hierarchy order
	Subscriptions    []string
	CoreServices     []string
}

var enterprise = Template{
	Kind:        KindEnterprise,
	DisplayName: "Enterprise Scale Landing Zone",
	ManagementGroups: []string{
		"Root Management Group",
		"Platform",
		"Landing Zones",
		"Sandbox",
		"Decommissioned",
	},
	Subscriptions: []string{
		"Connectivity",
		"Identity",
		"Management",
		"Production",
		"Development",
	},
	CoreServices: []string{
		"Hub-spoke networking",
		"Centralized identity",
		"Policy-driven governance",
		"Cross-region disaster recovery",
	},
}

var smallMedium = Template{
	Kind:        KindSmallMedium,
	DisplayName: "Small-Medium Enterprise Landing Zone",
	ManagementGroups: []string{
		"Root Management Group",
		"Platform",
		"Landing Zones",
	},
	Subscriptions: []string{
		"Platform",
		"Production",
		"Development",
	},
	CoreServices: []string{
		"Hub-spoke networking",
		"Centralized identity",
		"Baseline policy",
	},
}

var startup = Template{
	Kind:        KindStartup,
	DisplayName: "Startup Landing Zone",
	ManagementGroups: []string{
		"Root Management Group",
		"Workloads",
	},
	Subscriptions: []string{
		"Production",
		"Development",
	},
	CoreServices: []string{
		"Single-region networking",
		"Centralized identity",
	},
}

// Select maps the org-structure descriptor to a template. Substring matching,
// case-insensitive; the startup template is the default for unknown or empty
// input so the same text always yields the same skeleton.
func Select(orgStructure string) Template {
	s := strings.ToLower(orgStructure)
	switch {
	case strings.Contains(s, "enterprise"):
		return enterprise
	case strings.Contains(s, "small"), strings.Contains(s, "medium"), strings.Contains(s, "sme"):
		return smallMedium
	default:
		return startup
	}
}

// ErrInvalidTemplate reports a template missing required structure. This is a
// programmer error, not a caller error.
var ErrInvalidTemplate = errors.New("template missing management groups or subscriptions")

// Check verifies the template invariants the composer relies on.
func Check(t Template) error {
	if t.DisplayName == "" || len(t.ManagementGroups) == 0 || len(t.Subscriptions) == 0 {
		return ErrInvalidTemplate
	}
	return nil
}
