package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/arch-to-diagram/composer/internal/artifact"
	"github.com/arch-to-diagram/composer/internal/config"
	"github.com/arch-to-diagram/composer/internal/generate"
	"github.com/arch-to-diagram/composer/internal/infer"
	"github.com/arch-to-diagram/composer/internal/logger"
	"github.com/arch-to-diagram/composer/internal/render"
	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/result"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body     string `json:"body"` // request JSON (raw or base64 if isBase64)
	IsBase64 bool   `json:"isBase64,omitempty"`
}

// LambdaResponse is returned to the client.
type LambdaResponse struct {
	StatusCode int               `json:"statusCode"`
	Success    bool              `json:"success"`
	Template   string            `json:"template,omitempty"`
	Errors     []result.Error    `json:"errors,omitempty"`
	Warnings   []result.Warning  `json:"warnings,omitempty"`
	Files      map[string]string `json:"files,omitempty"` // filename -> content (base64)
	DrawioXML  string            `json:"drawio_xml,omitempty"`
	Mermaid    string            `json:"mermaid,omitempty"`
	Documents  result.Documents  `json:"documents"`
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration.
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

var gen *generate.Generator

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: 200}

	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			out.StatusCode = 400
			out.Errors = []result.Error{{Type: "invalid_input", Severity: "error", Message: "invalid base64 body: " + err.Error()}}
			return wrap(out), nil
		}
		body = string(dec)
	}

	var req request.ArchitectureRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		out.StatusCode = 400
		out.Errors = []result.Error{{Type: "invalid_json", Severity: "error", Message: "invalid request JSON: " + err.Error()}}
		return wrap(out), nil
	}

	res := gen.Generate(ctx, &req)
	out.Success = res.Success
	out.Template = res.TemplateName
	out.Errors = res.Errors
	out.Warnings = res.Warnings
	out.DrawioXML = res.DrawioXML
	out.Mermaid = res.Mermaid
	out.Documents = res.Documents
	if res.DiagramPath != "" {
		if content, err := os.ReadFile(res.DiagramPath); err == nil {
			out.Files = map[string]string{"diagram": base64.StdEncoding.EncodeToString(content)}
		}
	}
	if !res.Success {
		out.StatusCode = 422
	}
	return wrap(out), nil
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	log := logger.Default

	cfg, err := config.Load(os.Getenv("COMPOSER_CONFIG"))
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}
	writer, err := artifact.NewWriter(cfg.Staging.Dirs, log)
	if err != nil {
		log.Error("no writable staging directory", "error", err)
		os.Exit(1)
	}

	engine := &infer.Engine{Timeout: cfg.Completion.Timeout, Log: log}
	if cfg.Completion.APIKey != "" {
		if client, cerr := infer.NewOpenAIClient(cfg.Completion.APIKey, cfg.Completion.Model, log); cerr == nil {
			engine.Client = client
		}
	}

	gen = &generate.Generator{
		Log:       log,
		Inference: engine,
		Graphviz: &render.Graphviz{
			BinPath: cfg.Render.GraphvizPath,
			Timeout: cfg.Render.Timeout,
		},
		Writer: writer,
		Format: cfg.Render.Format,
	}

	lambda.Start(handler)
}
