// Package i18n holds the flat translation catalogs shipped next to every form
// (i18n.<lang>.json) and the helpers used to resolve labels for the web UI,
// the terminal prompts and the PDF builders.
package i18n
