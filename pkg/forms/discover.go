package forms

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// SchemaFiles lists the accepted schema file names in lookup order.
var SchemaFiles = []string{"schema.json", "schema.yaml", "schema.yml"}

// LayoutFile is the optional coordinate layout of a form.
const LayoutFile = "layout.json"

// Discover loads every form below root in fsys, sorted by key. Directories
// without a schema file are skipped. Per-form failures are aggregated and
// returned next to the forms that loaded successfully.
func Discover(fsys fs.FS, root string) ([]*Form, error) {
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("forms: read %s: %w", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var (
		out    []*Form
		result *multierror.Error
	)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		form, err := load(fsys, path.Join(root, entry.Name()), entry.Name())
		if errors.Is(err, errNoSchema) {
			continue
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("forms: %s: %w", entry.Name(), err))
			continue
		}
		out = append(out, form)
	}
	return out, result.ErrorOrNil()
}

var errNoSchema = errors.New("no schema file")

func load(fsys fs.FS, dir, key string) (*Form, error) {
	var (
		data   []byte
		source string
	)
	for _, name := range SchemaFiles {
		candidate := path.Join(dir, name)
		raw, err := fs.ReadFile(fsys, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		data, source = raw, candidate
		break
	}
	if source == "" {
		return nil, errNoSchema
	}

	doc, err := schema.Parse(data, source)
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.LoadFS(fsys, dir)
	if err != nil {
		return nil, err
	}

	form := &Form{Key: key, Document: doc, Bundle: bundle}
	if sub, err := fs.Sub(fsys, dir); err == nil {
		form.Assets = sub
	}

	layoutPath := path.Join(dir, LayoutFile)
	raw, err := fs.ReadFile(fsys, layoutPath)
	switch {
	case err == nil:
		layout, err := schema.ParseLayout(raw, layoutPath)
		if err != nil {
			return nil, err
		}
		form.Layout = &layout
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	return form, nil
}
