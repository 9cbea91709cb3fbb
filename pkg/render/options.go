package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Action overrides the submission URL declared by the form model, letting
	// servers mount the same form under different routes.
	Action string
	// Method overrides the HTTP method declared by the form model. Renderers
	// are responsible for translating unsupported verbs into browser-friendly
	// POST submissions when needed.
	Method string
	// Values pre-populates rendered controls keyed by field name. After a
	// rejected submission the caller passes the applicant's raw input back so
	// no typing is lost.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field name.
	// Renderers map these into inline chrome next to the offending control.
	Errors map[string][]string
	// FormErrors carries messages that do not belong to a single field, such
	// as a downstream account-creation failure.
	FormErrors []string
	// Hidden lists extra hidden inputs (CSRF tokens and the like) emitted
	// alongside the visible controls.
	Hidden map[string]string
	// Theme carries the resolved theme configuration (partials, tokens, CSS
	// variables, asset resolver) for renderers that support theming.
	Theme *theme.RendererConfig
	// Success switches the renderer to its post-submission view instead of
	// the form. The copy comes from the form model's success metadata.
	Success bool
}
