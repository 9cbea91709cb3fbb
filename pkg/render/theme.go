package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys renderers look up in a theme configuration.
const (
	ThemePartialPage    = "forms.page"
	ThemePartialSuccess = "forms.success"
)

// ThemeFallbacks returns the partial paths used when a theme manifest does
// not override them. The paths resolve inside the vanilla template bundle.
func ThemeFallbacks() map[string]string {
	return map[string]string{
		ThemePartialPage:    "templates/form.tmpl",
		ThemePartialSuccess: "templates/success.tmpl",
	}
}

// ResolveTheme selects a theme by name/variant and derives the renderer
// configuration from it. A nil selector disables theming without error.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	return RendererConfigFromSelection(selection, fallbacks), nil
}

// RendererConfigFromSelection merges a theme selection with fallback partials
// into the flat configuration renderers consume. Variant tokens, templates,
// and assets override their base-manifest counterparts.
func RendererConfigFromSelection(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: copyStringMap(fallbacks),
	}

	manifest := selection.Manifest
	var variant theme.Variant
	if manifest != nil && selection.Variant != "" {
		variant = manifest.Variants[selection.Variant]
	}

	if manifest != nil {
		cfg.Partials = overlayStringMap(cfg.Partials, manifest.Templates)
		cfg.Tokens = overlayStringMap(copyStringMap(manifest.Tokens), variant.Tokens)
	}
	cfg.Partials = overlayStringMap(cfg.Partials, variant.Templates)
	cfg.CSSVars = cssVarsFromTokens(cfg.Tokens)
	cfg.AssetURL = assetResolver(manifest, variant)

	return cfg
}

// CSSVarsBlock renders CSS custom properties as a :root declaration block in
// deterministic key order. An empty map produces an empty string.
func CSSVarsBlock(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func cssVarsFromTokens(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		vars[name] = value
	}
	if len(vars) == 0 {
		return nil
	}
	return vars
}

func assetResolver(manifest *theme.Manifest, variant theme.Variant) func(string) string {
	return func(key string) string {
		key = strings.TrimSpace(key)
		if key == "" {
			return ""
		}

		file := variant.Assets.Files[key]
		prefix := variant.Assets.Prefix
		if manifest != nil {
			if file == "" {
				file = manifest.Assets.Files[key]
			}
			if prefix == "" {
				prefix = manifest.Assets.Prefix
			}
		}
		if file == "" {
			return ""
		}
		if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") || strings.HasPrefix(file, "/") {
			return file
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func overlayStringMap(base, overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(overrides))
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}
