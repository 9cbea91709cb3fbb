// Package openaccount opens one door to the module: the validation schema,
// the submission controller, and the form generator re-exported for callers
// that want the account-opening flow without importing each package.
package openaccount

import (
	"context"
	"time"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/controller"
	"github.com/goliatone/go-openaccount/pkg/form"
	"github.com/goliatone/go-openaccount/pkg/render"
	"github.com/goliatone/go-openaccount/pkg/schema"
	theme "github.com/goliatone/go-theme"
)

// FormInput is the raw record captured from any surface.
type FormInput = account.FormInput

// Request is the typed, validated account-opening request.
type Request = account.Request

// Errors maps field names to human-readable validation messages.
type Errors = schema.Errors

// Controller owns one submission lifecycle.
type Controller = controller.Controller

// Creator receives validated requests; implement it to open real accounts.
type Creator = controller.Creator

// CreatorFunc adapts a function to the Creator interface.
type CreatorFunc = controller.CreatorFunc

// LogCreator logs accepted requests; the default development collaborator.
type LogCreator = controller.LogCreator

// Result reports the outcome of a submit attempt.
type Result = controller.Result

// State names a controller lifecycle phase.
type State = controller.State

// Lifecycle states, re-exported for switch statements at the call site.
const (
	StateEditing    = controller.StateEditing
	StateSubmitting = controller.StateSubmitting
	StateSubmitted  = controller.StateSubmitted
)

// Generator resolves the account form model and renders it.
type Generator = form.Generator

// RenderRequest carries per-render state into Generator.Generate.
type RenderRequest = form.Request

// RenderOptions describes per-request overrides renderers receive: values to
// prefill, errors to surface, hidden inputs, theme context.
type RenderOptions = render.RenderOptions

// Validate checks a raw input against the account-opening schema using the
// current time, returning the typed request or the complete error set.
func Validate(in FormInput) (Request, Errors) {
	return schema.New().Validate(in)
}

// ValidateAt is Validate with an explicit reference time for the age rule.
func ValidateAt(in FormInput, now time.Time) (Request, Errors) {
	return schema.ValidateAt(in, now)
}

// NewController builds a submission controller. Without options it validates
// with the default schema and forwards accepted requests to LogCreator.
func NewController(options ...controller.Option) *Controller {
	return controller.New(options...)
}

// New builds a form generator. Without options it renders the account form
// with the vanilla HTML renderer, unthemed.
func New(options ...form.Option) *Generator {
	return form.New(options...)
}

// GenerateHTML renders the account-opening form to HTML in one call. It is
// the simplest entry point for callers that just want the page.
func GenerateHTML(ctx context.Context, options ...form.Option) ([]byte, error) {
	return form.New(options...).Generate(ctx, form.Request{})
}

// WithThemeSelector passes a go-theme selector through to the generator so
// theme and variant choices resolve ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) form.Option {
	return form.WithThemeSelector(selector)
}

// WithTheme picks a bundled or registered theme by name for every render.
func WithTheme(name, variant string) form.Option {
	return form.WithTheme(name, variant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) form.Option {
	return form.WithThemeFallbacks(fallbacks)
}
