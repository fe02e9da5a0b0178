package model

import internalmodel "github.com/goliatone/go-formdoc/internal/model"

type FormModel = internalmodel.FormModel
type Section = internalmodel.Section
type Field = internalmodel.Field
type Option = internalmodel.Option
type Misc = internalmodel.Misc
type Values = internalmodel.Values

const (
	KeyCity = internalmodel.KeyCity
	KeyDate = internalmodel.KeyDate
)

// Normalize re-exports the internal submission normalizer.
func Normalize(form FormModel, raw map[string]any) Values {
	return internalmodel.Normalize(form, raw)
}

// Truthy re-exports the checkbox truthiness check.
func Truthy(v any) bool {
	return internalmodel.Truthy(v)
}
