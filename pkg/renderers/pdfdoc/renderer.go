// Package pdfdoc exposes the PDF builder registry as a render.Renderer.
package pdfdoc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/pdf"
	"github.com/goliatone/go-formdoc/pkg/pdf/builders"
	"github.com/goliatone/go-formdoc/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "pdf"

// Option configures the renderer.
type Option func(*Renderer)

// WithBuilders replaces the builder registry.
func WithBuilders(reg *pdf.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.builders = reg
		}
	}
}

// WithLogger sets the logger handed to builders.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// Renderer draws documents through the builder selected for each form.
type Renderer struct {
	builders *pdf.Registry
	logger   logrus.FieldLogger
	now      func() time.Time
}

// New constructs a renderer backed by the bundled builders.
func New(options ...Option) *Renderer {
	r := &Renderer{
		builders: builders.NewRegistry(),
		logger:   logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Builders exposes the underlying registry.
func (r *Renderer) Builders() *pdf.Registry {
	return r.builders
}

// Render normalizes opts.Values for form and runs the selected builder.
// opts.Catalog must already hold the document language.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	name, builder, err := r.builders.Select(form)
	if err != nil {
		return nil, fmt.Errorf("pdf renderer: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := r.logger.WithFields(logrus.Fields{"form": form.Key, "builder": name})
	req := pdf.Request{
		Form:      form,
		Data:      model.Normalize(form, opts.Values),
		Catalog:   opts.Catalog,
		Options:   opts.PDFOptions,
		Signature: opts.Signature,
		Layout:    opts.Layout,
		Assets:    opts.Assets,
		CreatedAt: r.now(),
		Logger:    logger,
	}

	data, err := builder.Build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("pdf renderer: build %s: %w", name, err)
	}
	logger.WithField("bytes", len(data)).Debug("document generated")
	return data, nil
}
