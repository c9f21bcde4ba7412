package infer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arch-to-diagram/composer/internal/catalog"
)

// DefaultTimeout bounds one inference call against the completion service.
const DefaultTimeout = 12 * time.Second

// Result is the outcome of requirement inference. Failures never surface as
// errors: Services is empty and Reasoning records what happened.
type Result struct {
	Services  []string `json:"services"`
	Reasoning string   `json:"reasoning"`
}

// Engine performs requirement inference. A nil client skips the completion
// service and goes straight to the deterministic keyword fallback.
type Engine struct {
	Client  CompletionClient
	Timeout time.Duration
	Log     *slog.Logger
}

// ShouldInfer reports whether inference applies: the caller supplied free
// text but selected at most one explicit service overall. It is a fallback
// for minimal-effort input, not a general override.
func ShouldInfer(freeText string, totalSelected int) bool {
	return strings.TrimSpace(freeText) != "" && totalSelected <= 1
}

// Infer maps free text to catalog service keys. Timeout, transport errors and
// unparsable completions all degrade to an empty selection with a non-empty
// reasoning string.
func (e *Engine) Infer(ctx context.Context, freeText string) Result {
	log := e.Log
	if log == nil {
		log = slog.Default()
	}

	if e.Client == nil {
		services := keywordFallback(freeText)
		return Result{
			Services:  services,
			Reasoning: fmt.Sprintf("completion service not configured; keyword analysis matched %d services", len(services)),
		}
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	completion, err := e.Client.Complete(ctx, buildPrompt(freeText))
	if err != nil {
		log.Warn("inference completion failed", "error", err)
		return Result{Reasoning: "completion service unavailable or timed out; no services inferred"}
	}

	payload, err := extractJSONObject(completion)
	if err != nil {
		log.Warn("inference response unparsable")
		return Result{Reasoning: "completion response not parseable; no services inferred"}
	}

	var parsed Result
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return Result{Reasoning: "completion response not parseable; no services inferred"}
	}

	// Keep only keys the catalog knows; the completion service is free text
	// and invents keys.
	var known []string
	for _, k := range parsed.Services {
		if _, ok := catalog.Lookup(k); ok {
			known = append(known, k)
		}
	}
	parsed.Services = known
	if parsed.Reasoning == "" {
		parsed.Reasoning = fmt.Sprintf("inferred %d services from requirements", len(known))
	}
	return parsed
}

func buildPrompt(freeText string) string {
	keys := catalog.Keys()
	return fmt.Sprintf(
		"Given the requirements below, pick the cloud services that fit.\n"+
			"Respond with one JSON object: {\"services\": [keys], \"reasoning\": \"...\"}.\n"+
			"Valid service keys: %s\n\nRequirements:\n%s",
		strings.Join(keys, ", "), freeText)
}

// keywordTable drives the deterministic fallback. Same text, same selection.
var keywordTable = []struct {
	term string
	key  string
}{
	{"kubernetes", "aks"},
	{"container", "aks"},
	{"serverless", "functions"},
	{"function", "functions"},
	{"web app", "app_service"},
	{"website", "app_service"},
	{"virtual machine", "virtual_machines"},
	{"postgres", "postgresql"},
	{"mysql", "mysql"},
	{"sql", "sql_database"},
	{"nosql", "cosmos_db"},
	{"document database", "cosmos_db"},
	{"cache", "redis_cache"},
	{"redis", "redis_cache"},
	{"blob", "blob_storage"},
	{"object storage", "blob_storage"},
	{"file share", "file_storage"},
	{"data lake", "data_lake"},
	{"queue", "service_bus"},
	{"message", "service_bus"},
	{"event", "event_hubs"},
	{"api gateway", "api_management"},
	{"api management", "api_management"},
	{"machine learning", "machine_learning"},
	{"analytics", "synapse"},
	{"warehouse", "synapse"},
	{"etl", "data_factory"},
	{"siem", "sentinel"},
	{"firewall", "firewall"},
	{"vpn", "vpn_gateway"},
	{"cdn", "cdn"},
}

// keywordFallback scans the text for known terms, preserving table order and
// deduplicating keys.
func keywordFallback(freeText string) []string {
	text := strings.ToLower(freeText)
	seen := make(map[string]bool)
	var out []string
	for _, kw := range keywordTable {
		if !strings.Contains(text, kw.term) || seen[kw.key] {
			continue
		}
		seen[kw.key] = true
		out = append(out, kw.key)
	}
	return out
}
