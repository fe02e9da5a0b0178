package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

const (
	filePrefix = "i18n."
	fileSuffix = ".json"
)

// LoadFS reads every i18n.<lang>.json file found directly under dir.
func LoadFS(fsys fs.FS, dir string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read dir %s: %w", dir, err)
	}

	catalogs := make(map[string]Catalog)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		lang := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if lang == "" {
			continue
		}

		file := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", file, err)
		}
		var catalog Catalog
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", file, err)
		}
		catalogs[lang] = catalog
	}
	return NewBundle(catalogs), nil
}
