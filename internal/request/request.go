// Package request defines the inbound architecture request and its validation.
package request

import (
	"github.com/arch-to-diagram/composer/internal/catalog"
)

// FileMeta describes one uploaded document (bytes are carried separately
// through the extraction boundary).
type FileMeta struct {
	Name string `json:"name"`
	Type string `json:"type"` // docx, txt, md, csv
	Size int64  `json:"size"`
}

// ArchitectureRequest is one diagram-generation call. Every field is optional;
// an all-empty request is valid and still produces a complete diagram.
type ArchitectureRequest struct {
	BusinessObjective string `json:"business_objective,omitempty"`
	Industry          string `json:"industry,omitempty"`
	OrgStructure      string `json:"org_structure,omitempty"`
	Compliance        string `json:"compliance,omitempty"`
	RegionPreference  string `json:"region_preference,omitempty"`

	// FreeText is the long-form description used by requirement inference.
	FreeText string `json:"free_text,omitempty"`

	ComputeServices     []string `json:"compute_services,omitempty"`
	NetworkServices     []string `json:"network_services,omitempty"`
	StorageServices     []string `json:"storage_services,omitempty"`
	DatabaseServices    []string `json:"database_services,omitempty"`
	SecurityServices    []string `json:"security_services,omitempty"`
	MonitoringServices  []string `json:"monitoring_services,omitempty"`
	AIServices          []string `json:"ai_services,omitempty"`
	AnalyticsServices   []string `json:"analytics_services,omitempty"`
	IntegrationServices []string `json:"integration_services,omitempty"`

	UploadedFiles []FileMeta `json:"uploaded_files,omitempty"`
	SourceURL     string     `json:"source_url,omitempty"`
}

// serviceLists returns the per-category lists paired with their field names,
// in a fixed order shared by validation and composition.
func (r *ArchitectureRequest) serviceLists() []struct {
	Field string
	Keys  *[]string
} {
	return []struct {
		Field string
		Keys  *[]string
	}{
		{"compute_services", &r.ComputeServices},
		{"network_services", &r.NetworkServices},
		{"storage_services", &r.StorageServices},
		{"database_services", &r.DatabaseServices},
		{"security_services", &r.SecurityServices},
		{"monitoring_services", &r.MonitoringServices},
		{"ai_services", &r.AIServices},
		{"analytics_services", &r.AnalyticsServices},
		{"integration_services", &r.IntegrationServices},
	}
}

// TotalSelected counts explicitly selected service keys across all categories.
func (r *ArchitectureRequest) TotalSelected() int {
	n := 0
	for _, l := range r.serviceLists() {
		n += len(*l.Keys)
	}
	return n
}

// Has reports whether the given key appears in any category list.
func (r *ArchitectureRequest) Has(key string) bool {
	for _, l := range r.serviceLists() {
		for _, k := range *l.Keys {
			if k == key {
				return true
			}
		}
	}
	return false
}

// MergeInferred appends inferred service keys into their category lists,
// skipping keys already selected and keys the catalog does not know.
func (r *ArchitectureRequest) MergeInferred(keys []string) {
	for _, key := range keys {
		d, ok := catalog.Lookup(key)
		if !ok || r.Has(key) {
			continue
		}
		switch d.Category {
		case catalog.CategoryCompute:
			r.ComputeServices = append(r.ComputeServices, key)
		case catalog.CategoryNetwork:
			r.NetworkServices = append(r.NetworkServices, key)
		case catalog.CategoryStorage:
			r.StorageServices = append(r.StorageServices, key)
		case catalog.CategoryDatabase:
			r.DatabaseServices = append(r.DatabaseServices, key)
		case catalog.CategorySecurity:
			r.SecurityServices = append(r.SecurityServices, key)
		case catalog.CategoryMonitoring:
			r.MonitoringServices = append(r.MonitoringServices, key)
		case catalog.CategoryAI:
			r.AIServices = append(r.AIServices, key)
		case catalog.CategoryAnalytics:
			r.AnalyticsServices = append(r.AnalyticsServices, key)
		case catalog.CategoryIntegration:
			r.IntegrationServices = append(r.IntegrationServices, key)
		}
	}
}
