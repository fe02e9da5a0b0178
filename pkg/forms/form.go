package forms

import (
	"io/fs"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Form is one discovered form definition.
type Form struct {
	Key      string
	Document schema.Document
	Bundle   *i18n.Bundle
	Layout   *schema.Layout
	// Assets is the form directory, used to resolve layout backgrounds.
	Assets fs.FS
}

// Catalog returns the catalog for the UI language lang following the
// preferred → en → de → ar fallback chain.
func (f *Form) Catalog(lang string) (i18n.Catalog, string) {
	if f == nil || f.Bundle == nil {
		return i18n.Catalog{}, ""
	}
	return f.Bundle.Catalog(lang)
}

// PDFCatalog returns the catalog for the document language, falling back to
// the UI catalog when the form has no file for pdfLang.
func (f *Form) PDFCatalog(pdfLang, uiLang string) (i18n.Catalog, string) {
	if f != nil && f.Bundle != nil {
		if catalog, ok := f.Bundle.Exact(pdfLang); ok {
			return catalog, strings.ToLower(strings.TrimSpace(pdfLang))
		}
	}
	return f.Catalog(uiLang)
}

// Name is the display name for lang: app.title, else the schema title, else
// the key.
func (f *Form) Name(lang string) string {
	catalog, _ := f.Catalog(lang)
	if name := strings.TrimSpace(catalog.Get("app.title", "")); name != "" {
		return name
	}
	if title := strings.TrimSpace(f.Document.Title); title != "" {
		return title
	}
	return f.Key
}

// Languages lists the languages the form ships catalogs for.
func (f *Form) Languages() []string {
	if f == nil || f.Bundle == nil {
		return nil
	}
	return f.Bundle.Languages()
}
