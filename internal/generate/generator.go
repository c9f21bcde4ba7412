// Package generate orchestrates one diagram-generation call: validation,
// template selection, optional requirement inference, composition, rendering
// with fallback, narrative assembly and artifact staging.
package generate

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/arch-to-diagram/composer/internal/artifact"
	"github.com/arch-to-diagram/composer/internal/compose"
	"github.com/arch-to-diagram/composer/internal/export"
	"github.com/arch-to-diagram/composer/internal/extract"
	"github.com/arch-to-diagram/composer/internal/infer"
	"github.com/arch-to-diagram/composer/internal/narrative"
	"github.com/arch-to-diagram/composer/internal/render"
	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/result"
	"github.com/arch-to-diagram/composer/internal/template"
)

// Attachment pairs uploaded-file metadata with its raw bytes.
type Attachment struct {
	Meta request.FileMeta
	Data []byte
}

// Generator holds the per-process collaborators. It carries no cross-request
// state beyond these read-only handles, so concurrent calls need no locking.
type Generator struct {
	Log        *slog.Logger
	Inference  *infer.Engine
	Graphviz   *render.Graphviz
	Writer     *artifact.Writer
	Format     string // png or svg
	EmitExport bool
}

// Generate runs one request to completion. Validation errors and internal
// defects surface in the result; external degradations (completion service,
// layout engine, extraction) are absorbed as warnings with fallback output.
func (g *Generator) Generate(ctx context.Context, req *request.ArchitectureRequest, attachments ...Attachment) *result.GenerateResult {
	log := g.Log
	if log == nil {
		log = slog.Default()
	}
	res := &result.GenerateResult{Success: true}

	if verr := request.Validate(req); verr != nil {
		res.Success = false
		res.Errors = append(res.Errors, *verr)
		return res
	}

	tmpl := template.Select(req.OrgStructure)
	res.TemplateName = tmpl.DisplayName

	if g.Inference != nil && infer.ShouldInfer(req.FreeText, req.TotalSelected()) {
		inferred := g.Inference.Infer(ctx, req.FreeText)
		req.MergeInferred(inferred.Services)
		res.Warnings = append(res.Warnings, result.Warning{
			Type: "inference", Severity: "info",
			Message: inferred.Reasoning,
		})
	}

	doc, err := compose.Compose(req, tmpl)
	if err != nil {
		// Template invariant violation: an internal defect, not caller input.
		log.Error("composition failed", "stage", "compose", "error", err)
		res.Success = false
		res.Errors = append(res.Errors, result.Error{
			Type: "compose_error", Severity: "error",
			Message: "composition failed: " + err.Error(),
		})
		return res
	}
	if issues := compose.Verify(doc); len(issues) > 0 {
		log.Error("composed document failed verification", "issues", len(issues))
		res.Success = false
		res.Errors = append(res.Errors, issues...)
		return res
	}

	analysis := externalAnalysis(attachments)

	// Rendering and narrative assembly are independent; run them together.
	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		path, warn, ferr := g.renderDiagram(ctx, doc)
		mu.Lock()
		defer mu.Unlock()
		if ferr != nil {
			res.Success = false
			res.Errors = append(res.Errors, *ferr)
			return
		}
		res.DiagramPath = path
		if warn != nil {
			res.Warnings = append(res.Warnings, *warn)
		}
		res.DrawioXML = render.DrawioXML(doc)
		res.Mermaid = render.Mermaid(doc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		docs := narrative.Narrate(req, tmpl, analysis)
		mu.Lock()
		res.Documents = docs
		mu.Unlock()
	}()

	wg.Wait()

	if res.Success && g.EmitExport {
		if path, werr := g.writeExport(doc); werr != nil {
			res.Warnings = append(res.Warnings, result.Warning{
				Type: "export", Severity: "warning",
				Message: "terraform export failed: " + werr.Error(),
			})
		} else {
			res.ExportPath = path
		}
	}

	if g.Writer != nil {
		g.Writer.Cleanup()
	}
	return res
}

// renderDiagram tries the layout engine first and falls back to the
// hand-built SVG renderer. Only a failed artifact write is fatal.
func (g *Generator) renderDiagram(ctx context.Context, doc *compose.Document) (string, *result.Warning, *result.Error) {
	if g.Writer == nil {
		return "", nil, &result.Error{
			Type: "config_error", Severity: "error",
			Message: "no artifact writer configured",
		}
	}
	format := g.Format
	if format == "" {
		format = "png"
	}

	if g.Graphviz != nil {
		outPath := g.Writer.Path(format)
		if err := g.Graphviz.Render(ctx, render.DOT(doc), format, outPath); err == nil {
			return outPath, nil, nil
		}
	}

	path, err := g.Writer.Write(render.FallbackSVG(doc), "svg")
	if err != nil {
		return "", nil, &result.Error{
			Type: "artifact_error", Severity: "error",
			Message: "cannot stage diagram: " + err.Error(),
		}
	}
	warn := &result.Warning{
		Type: "render", Severity: "warning",
		Message: "layout engine unavailable; fixed-layout fallback renderer used",
	}
	return path, warn, nil
}

// writeExport bundles the Terraform skeleton into one staged artifact.
func (g *Generator) writeExport(doc *compose.Document) (string, error) {
	files := export.Files(doc)
	var b strings.Builder
	for _, name := range []string{"versions.tf", "variables.tf", "main.tf"} {
		if content, ok := files[name]; ok {
			b.WriteString("# " + name + "\n")
			b.Write(content)
			b.WriteString("\n")
		}
	}
	return g.Writer.Write([]byte(b.String()), "tf")
}

// externalAnalysis extracts plain text from uploaded documents. Failures
// yield an empty string, which degrades the narrative to templated-only
// content.
func externalAnalysis(attachments []Attachment) string {
	var parts []string
	for _, a := range attachments {
		if text := extract.Text(a.Data, a.Meta.Type); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
