package formdoc

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formdoc/pkg/forms"
	"github.com/goliatone/go-formdoc/pkg/renderers/vanilla"
)

//go:embed forms
var embeddedForms embed.FS

// FormsRoot is the directory of the bundled forms inside FormsFS.
const FormsRoot = "forms"

// FormsFS exposes the bundled form definitions, each below forms/<key>/.
func FormsFS() fs.FS {
	return embeddedForms
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and script served next to the page.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// NewLoader returns a loader for dir on disk, or for the bundled forms when
// dir is empty. The returned registry is filled by Reload.
func NewLoader(dir string, logger logrus.FieldLogger) *forms.Loader {
	loader := &forms.Loader{
		FS:       embeddedForms,
		Root:     FormsRoot,
		Registry: forms.NewRegistry(),
		Logger:   logger,
	}
	if dir = strings.TrimSpace(dir); dir != "" {
		loader.FS = os.DirFS(dir)
		loader.Root = "."
	}
	return loader
}

// LoadForms discovers the forms in dir, or the bundled forms when dir is empty.
func LoadForms(dir string, logger logrus.FieldLogger) (*forms.Registry, error) {
	loader := NewLoader(dir, logger)
	if err := loader.Reload(); err != nil {
		return nil, fmt.Errorf("formdoc: load forms: %w", err)
	}
	return loader.Registry, nil
}
