// Package validation checks submissions against the required flags of a form.
// The form is projected onto an OpenAPI 3 object schema so checks run through
// kin-openapi; issues are reported in form order with localized labels.
package validation
