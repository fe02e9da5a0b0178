// Package forms discovers form definitions on a filesystem. Every directory
// below the root that contains a schema file (schema.json, schema.yaml or
// schema.yml) is a form; its translation catalogs (i18n.<lang>.json) and an
// optional layout.json are loaded alongside.
package forms
