package model

import (
	"github.com/goliatone/go-formdoc/internal/model"
	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Builder converts schema documents into localized form models.
type Builder interface {
	Build(key string, doc schema.Document, translator i18n.Translator, locale string) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the label used when a field has neither a
// translation nor a literal label.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}
