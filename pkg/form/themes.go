package form

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Themes returns the manifests bundled with the module. Token keys match the
// custom properties the vanilla stylesheet reads, so selecting a theme
// re-skins the page without template overrides.
func Themes() []*theme.Manifest {
	return []*theme.Manifest{clearbank()}
}

// clearbank is the default bundled look: the stylesheet's light palette as
// the base, with a dark variant.
func clearbank() *theme.Manifest {
	return &theme.Manifest{
		Name:    "clearbank",
		Version: "1.0.0",
		Tokens: map[string]string{
			"oa-bg":              "#f6f7f9",
			"oa-surface":         "#ffffff",
			"oa-border":          "#d4d9e0",
			"oa-text":            "#1d2433",
			"oa-muted":           "#5b6472",
			"oa-accent":          "#14532d",
			"oa-accent-contrast": "#ffffff",
			"oa-error":           "#b42318",
			"oa-error-bg":        "#fef3f2",
		},
		Assets: theme.Assets{
			Prefix: "/static",
			Files: map[string]string{
				"forms.stylesheet": "openaccount.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"oa-bg":              "#10161d",
					"oa-surface":         "#1a222c",
					"oa-border":          "#31404f",
					"oa-text":            "#e6ebf0",
					"oa-muted":           "#96a1ad",
					"oa-accent":          "#34d399",
					"oa-accent-contrast": "#06281b",
					"oa-error":           "#f97066",
					"oa-error-bg":        "#2a1210",
				},
			},
		},
	}
}

// manifestSelector resolves selections from a fixed manifest set. It stands
// in for a full theme provider when themes ship with the binary.
type manifestSelector struct {
	manifests   map[string]*theme.Manifest
	defaultName string
}

func newManifestSelector(manifests []*theme.Manifest) (*manifestSelector, error) {
	s := &manifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			return nil, errors.New("form: theme manifest missing name")
		}
		if _, dup := s.manifests[name]; dup {
			return nil, fmt.Errorf("form: duplicate theme manifest %q", name)
		}
		if s.defaultName == "" {
			s.defaultName = name
		}
		s.manifests[name] = manifest
	}
	return s, nil
}

// Select implements theme.ThemeSelector.
func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	target := strings.TrimSpace(name)
	if target == "" {
		target = s.defaultName
	}
	manifest, ok := s.manifests[target]
	if !ok {
		return nil, fmt.Errorf("form: unknown theme %q", target)
	}

	v := strings.TrimSpace(variant)
	if v != "" {
		if _, ok := manifest.Variants[v]; !ok {
			return nil, fmt.Errorf("form: theme %q has no variant %q", target, v)
		}
	}

	return &theme.Selection{Theme: manifest.Name, Variant: v, Manifest: manifest}, nil
}
