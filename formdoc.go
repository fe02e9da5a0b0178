// Package formdoc generates signed PDF documents from declarative form
// schemas. The root package bundles the default forms and exposes the
// orchestrator constructor for callers that do not need the sub-packages.
package formdoc

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/pdfdoc"
	"github.com/goliatone/go-formdoc/pkg/renderers/vanilla"
)

// RenderOptions describes per-request values, errors and the signature.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GeneratePDF renders the form with the PDF renderer. Required fields are
// validated first; a failure is returned as *orchestrator.ValidationError.
func GeneratePDF(ctx context.Context, gen *orchestrator.Orchestrator, key, locale string, opts RenderOptions) ([]byte, error) {
	return generate(ctx, gen, pdfdoc.Name, key, locale, opts)
}

// GenerateHTML renders the data-entry page of the form.
func GenerateHTML(ctx context.Context, gen *orchestrator.Orchestrator, key, locale string, opts RenderOptions) ([]byte, error) {
	return generate(ctx, gen, vanilla.Name, key, locale, opts)
}

func generate(ctx context.Context, gen *orchestrator.Orchestrator, renderer, key, locale string, opts RenderOptions) ([]byte, error) {
	if gen == nil {
		return nil, fmt.Errorf("formdoc: orchestrator is required")
	}
	result, err := gen.Generate(ctx, Request{
		Form:          key,
		Renderer:      renderer,
		Locale:        locale,
		RenderOptions: opts,
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
