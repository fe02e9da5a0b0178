package pdf

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
	"github.com/goliatone/go-formdoc/pkg/signature"
)

// Names of the builders registered by NewRegistry.
const (
	BuilderGeneric = "generic"
	BuilderLayout  = "layout"
)

// Request carries everything a builder needs to draw one document.
type Request struct {
	Form      model.FormModel
	Data      model.Values
	Catalog   i18n.Catalog
	Options   Options
	Signature *signature.Signature
	// Layout is the parsed layout.json of the form, if any.
	Layout *schema.Layout
	// Assets resolves files referenced by the layout (backgrounds).
	Assets    fs.FS
	CreatedAt time.Time
	Logger    logrus.FieldLogger
}

// Text returns the catalog entry for key or fallback.
func (r Request) Text(key, fallback string) string {
	return r.Catalog.Get(key, fallback)
}

// Title resolves the document title through the configured title key.
func (r Request) Title(fallback string) string {
	return r.Catalog.Get(r.Options.TitleKey(), fallback)
}

// Value returns the submitted value for name as a trimmed string.
func (r Request) Value(name string) string {
	return r.Data.String(name)
}

// Checked reports whether the submitted value for name is truthy.
func (r Request) Checked(name string) bool {
	return r.Data.Bool(name)
}

// Canvas opens a new canvas for the request.
func (r Request) Canvas(title string) *Canvas {
	return NewCanvas(r.Options, Meta{Title: title, CreatedAt: r.CreatedAt})
}

// SignatureBlock draws the signature with the request options, logging an
// image that had to be skipped.
func (r Request) SignatureBlock(c *Canvas, label string, defWidth, defHeight float64) {
	err := c.Signature(SignatureBlock{
		Signature: r.Signature,
		Options:   r.Options.Signature(defWidth, defHeight),
		Label:     label,
	})
	if err != nil && r.Logger != nil {
		r.Logger.WithError(err).WithField("form", r.Form.Key).Warn("signature image not drawn")
	}
}

// PlaceDate renders "<Ort>: <stadt>    <Datum>: <datum>".
func (r Request) PlaceDate() string {
	return fmt.Sprintf("%s: %s    %s: %s",
		r.Text("field.ort", "Ort"), r.Value(model.KeyCity),
		r.Text("field.datum", "Datum"), r.Value(model.KeyDate))
}

// Builder turns a request into PDF bytes.
type Builder interface {
	Build(ctx context.Context, req Request) ([]byte, error)
}

// BuilderFunc adapts a function into a Builder.
type BuilderFunc func(ctx context.Context, req Request) ([]byte, error)

// Build calls the underlying function.
func (fn BuilderFunc) Build(ctx context.Context, req Request) ([]byte, error) {
	return fn(ctx, req)
}

// Registry stores builders by name.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates a registry with the generic and layout builders.
func NewRegistry() *Registry {
	reg := &Registry{builders: make(map[string]Builder)}
	reg.MustRegister(BuilderGeneric, BuilderFunc(Generic))
	reg.MustRegister(BuilderLayout, BuilderFunc(FromLayout))
	return reg
}

// Register adds a builder. Duplicate names return an error.
func (r *Registry) Register(name string, builder Builder) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("pdf: builder name is required")
	}
	if builder == nil {
		return fmt.Errorf("pdf: builder %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[name]; exists {
		return fmt.Errorf("pdf: builder %q already registered", name)
	}
	r.builders[name] = builder
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, builder Builder) {
	if err := r.Register(name, builder); err != nil {
		panic(err)
	}
}

// Get retrieves a builder by name.
func (r *Registry) Get(name string) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("pdf: builder %q not found", name)
	}
	return builder, nil
}

// Has reports whether a builder is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.builders[name]
	return ok
}

// List returns the sorted builder names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select picks the builder for form: the schema's builder name, a builder
// registered under the form key, the layout builder when the form ships a
// layout, and finally the generic builder.
func (r *Registry) Select(form model.FormModel) (string, Builder, error) {
	if name := strings.TrimSpace(form.Builder); name != "" {
		builder, err := r.Get(name)
		return name, builder, err
	}
	candidates := []string{form.Key}
	if form.HasLayout {
		candidates = append(candidates, BuilderLayout)
	}
	candidates = append(candidates, BuilderGeneric)
	for _, name := range candidates {
		if builder, err := r.Get(name); err == nil {
			return name, builder, nil
		}
	}
	return "", nil, fmt.Errorf("pdf: no builder for form %q", form.Key)
}

// Build selects a builder for req.Form and runs it.
func (r *Registry) Build(ctx context.Context, req Request) ([]byte, error) {
	_, builder, err := r.Select(req.Form)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return builder.Build(ctx, req)
}
