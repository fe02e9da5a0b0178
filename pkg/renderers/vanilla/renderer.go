package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
	rendertemplate "github.com/goliatone/go-formdoc/pkg/render/template"
	"github.com/goliatone/go-formdoc/pkg/render/template/gotemplate"
)

const (
	// Name is the registry name of the renderer.
	Name = "vanilla"
	// DefaultAssetPrefix is the URL prefix the server mounts AssetsFS under.
	DefaultAssetPrefix = "/assets"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetPrefix      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		if dir == "" {
			return
		}
		cfg.templateFS = os.DirFS(dir)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetPrefix changes the URL prefix of the stylesheet and script.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// Renderer renders the HTML data-entry page of a form.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	assetPrefix string
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetPrefix: DefaultAssetPrefix}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer, assetPrefix: cfg.assetPrefix}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full page: selectors, sections, the place and date row,
// the signature panel and any messages carried by opts.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	page := buildPage(form, opts, r.assetURL)
	data := map[string]any{"page": page}
	for name, fn := range i18n.TemplateFuncs(opts.Catalog, i18n.TemplateConfig{}) {
		data[name] = fn
	}

	result, err := r.templates.RenderTemplate("form", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) assetURL(name string) string {
	if r.assetPrefix == "" {
		return "/" + name
	}
	return path.Join(r.assetPrefix, name)
}
