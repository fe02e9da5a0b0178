// Package schema parses the declarative files that describe a form: the
// section/field schema (schema.json or schema.yaml) and the optional
// coordinate layout (layout.json) used to place values on fixed PDF pages.
//
// Field identifiers are composed as "<section>_<field>" throughout the
// repository; see FieldName.
package schema
