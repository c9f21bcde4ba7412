package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arch-to-diagram/composer/internal/result"
)

// Validation limits. Lengths are counted in characters, not bytes, so
// multibyte input is not penalized. Oversized input is rejected, never
// silently truncated.
const (
	MaxScalarLen   = 1000
	MaxFreeTextLen = 10000
	MaxListEntries = 50
	MaxUploads     = 10
)

// Validate checks the request against the input limits. It fails fast: the
// first violation is returned as a field-specific error, nil means valid.
// Purely a predicate; the request is not modified.
func Validate(r *ArchitectureRequest) *result.Error {
	scalars := []struct {
		Field string
		Value string
	}{
		{"business_objective", r.BusinessObjective},
		{"industry", r.Industry},
		{"org_structure", r.OrgStructure},
		{"compliance", r.Compliance},
		{"region_preference", r.RegionPreference},
	}
	for _, s := range scalars {
		if utf8.RuneCountInString(s.Value) > MaxScalarLen {
			return &result.Error{
				Type: "validation_error", Severity: "error", Field: s.Field,
				Message:    fmt.Sprintf("%s exceeds %d characters", s.Field, MaxScalarLen),
				Suggestion: fmt.Sprintf("Shorten %s to at most %d characters", s.Field, MaxScalarLen),
			}
		}
	}

	if utf8.RuneCountInString(r.FreeText) > MaxFreeTextLen {
		return &result.Error{
			Type: "validation_error", Severity: "error", Field: "free_text",
			Message:    fmt.Sprintf("free_text exceeds %d characters", MaxFreeTextLen),
			Suggestion: fmt.Sprintf("Shorten free_text to at most %d characters", MaxFreeTextLen),
		}
	}

	for _, l := range r.serviceLists() {
		if len(*l.Keys) > MaxListEntries {
			return &result.Error{
				Type: "validation_error", Severity: "error", Field: l.Field,
				Message:    fmt.Sprintf("%s has %d entries, limit is %d", l.Field, len(*l.Keys), MaxListEntries),
				Suggestion: fmt.Sprintf("Select at most %d services per category", MaxListEntries),
			}
		}
	}

	if r.SourceURL != "" && !strings.HasPrefix(r.SourceURL, "http://") && !strings.HasPrefix(r.SourceURL, "https://") {
		return &result.Error{
			Type: "validation_error", Severity: "error", Field: "source_url",
			Message:    "source_url must start with http:// or https://",
			Suggestion: "Provide a full URL including the scheme",
		}
	}

	if len(r.UploadedFiles) > MaxUploads {
		return &result.Error{
			Type: "validation_error", Severity: "error", Field: "uploaded_files",
			Message:    fmt.Sprintf("uploaded_files has %d entries, limit is %d", len(r.UploadedFiles), MaxUploads),
			Suggestion: fmt.Sprintf("Upload at most %d documents", MaxUploads),
		}
	}

	return nil
}
