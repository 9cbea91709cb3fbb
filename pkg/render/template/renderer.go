package template

import (
	"io"
)

// TemplateRenderer is the seam HTML renderers rely on for template execution.
// Render dispatches to RenderTemplate or RenderString depending on whether
// the name looks like inline template content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
