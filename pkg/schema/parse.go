package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a schema document. JSON is attempted first and YAML second so
// schema.yaml files can sit next to the JSON ones.
func Parse(data []byte, source string) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc Document
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr != nil {
		doc = Document{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("schema: parse %s: %w", source, jsonErr)
		}
	}

	if err := doc.validate(source); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d *Document) validate(source string) error {
	seen := make(map[string]struct{})
	for si := range d.Sections {
		section := &d.Sections[si]
		section.Key = strings.TrimSpace(section.Key)
		if section.Key == "" {
			return fmt.Errorf("schema: %s: section %d has no key", source, si)
		}
		for fi := range section.Fields {
			field := &section.Fields[fi]
			field.Key = strings.TrimSpace(field.Key)
			if field.Key == "" {
				return fmt.Errorf("schema: %s: field %d in section %q has no key", source, fi, section.Key)
			}
			field.Type = NormalizeType(field.Type)
			name := FieldName(section.Key, field.Key)
			if _, dup := seen[name]; dup {
				return fmt.Errorf("schema: %s: duplicate field %q", source, name)
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}
