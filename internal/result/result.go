package result

// Error represents a validation or generation error surfaced to the caller.
type Error struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a degraded-but-recoverable condition (fallback renderer
// used, completion service unavailable, and so on).
type Warning struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Documents bundles the narrative output of a generation call.
type Documents struct {
	Summary        string `json:"summary,omitempty"`
	Design         string `json:"design,omitempty"`
	Implementation string `json:"implementation,omitempty"`
}

// GenerateResult is the outcome of one diagram-generation call.
type GenerateResult struct {
	Success      bool      `json:"success"`
	TemplateName string    `json:"template_name,omitempty"`
	DiagramPath  string    `json:"diagram_path,omitempty"`
	ExportPath   string    `json:"export_path,omitempty"`
	DrawioXML    string    `json:"drawio_xml,omitempty"`
	Mermaid      string    `json:"mermaid,omitempty"`
	Documents    Documents `json:"documents"`
	Errors       []Error   `json:"errors,omitempty"`
	Warnings     []Warning `json:"warnings,omitempty"`
}
