package render

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// DefaultTokens are the colors and sizes the HTML renderer falls back to when
// no theme manifest is configured.
var DefaultTokens = map[string]string{
	"color-accent":     "#2f5bd3",
	"color-field-fill": "#d9e3ff",
	"color-error":      "#b3261e",
	"color-text":       "#1d1d1f",
	"radius":           "6px",
}

type manifestFile struct {
	Name     string                 `json:"name" yaml:"name"`
	Version  string                 `json:"version" yaml:"version"`
	Tokens   map[string]string      `json:"tokens" yaml:"tokens"`
	Assets   assetsFile             `json:"assets" yaml:"assets"`
	Variants map[string]variantFile `json:"variants" yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

type variantFile struct {
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
	Assets assetsFile        `json:"assets" yaml:"assets"`
}

// ParseThemeManifest decodes a JSON or YAML theme manifest.
func ParseThemeManifest(data []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		if yamlErr := yaml.Unmarshal(data, &file); yamlErr != nil {
			return nil, fmt.Errorf("render: parse theme manifest: %w", yamlErr)
		}
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, fmt.Errorf("render: theme manifest has no name")
	}

	manifest := &theme.Manifest{
		Name:    file.Name,
		Version: file.Version,
		Tokens:  file.Tokens,
		Assets:  theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, variant := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens: variant.Tokens,
				Assets: theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}

	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("render: register theme %q: %w", file.Name, err)
	}
	return manifest, nil
}

// ThemeConfig resolves the renderer configuration of a manifest variant.
// Variant tokens and assets override the base manifest; DefaultTokens fill
// the gaps. A nil manifest yields the defaults.
func ThemeConfig(manifest *theme.Manifest, variant string) *theme.RendererConfig {
	tokens := make(map[string]string, len(DefaultTokens))
	for key, value := range DefaultTokens {
		tokens[key] = value
	}
	cfg := &theme.RendererConfig{Theme: "default", Variant: variant}
	if manifest == nil {
		cfg.Tokens = tokens
		cfg.CSSVars = cssVars(tokens)
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	cfg.Theme = manifest.Name
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}
	if selected, ok := manifest.Variants[variant]; ok {
		for key, value := range selected.Tokens {
			tokens[key] = value
		}
		if selected.Assets.Prefix != "" {
			prefix = selected.Assets.Prefix
		}
		for key, value := range selected.Assets.Files {
			files[key] = value
		}
	}

	cfg.Tokens = tokens
	cfg.CSSVars = cssVars(tokens)
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// CSSVarsStyle renders the theme variables as a :root rule.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func cssVars(tokens map[string]string) map[string]string {
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out["--"+strings.TrimPrefix(key, "--")] = value
	}
	return out
}
