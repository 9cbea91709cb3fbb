package form

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/render"
	"github.com/goliatone/go-openaccount/pkg/renderers/jsonform"
	"github.com/goliatone/go-openaccount/pkg/renderers/vanilla"
	"github.com/goliatone/go-openaccount/pkg/uischema"
	"github.com/goliatone/go-openaccount/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the generator configuration.
type Option func(*Generator)

// WithRegistry injects a renderer registry, replacing the built-in one.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithRenderer registers an additional renderer with the generator's
// registry. The built-in registry already carries vanilla and jsonform.
func WithRenderer(renderer render.Renderer) Option {
	return func(g *Generator) {
		if renderer != nil {
			g.extraRenderers = append(g.extraRenderers, renderer)
		}
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(g *Generator) {
		g.defaultRenderer = name
	}
}

// WithLabeler overrides the label derivation applied while building the
// canonical form model.
func WithLabeler(labeler func(string) string) Option {
	return func(g *Generator) {
		g.labeler = labeler
	}
}

// WithWidgets injects a widget registry.
func WithWidgets(registry *widgets.Registry) Option {
	return func(g *Generator) {
		g.widgets = registry
	}
}

// WithDecorators registers decorators that run against the form model before
// rendering, after the UI schema decorator.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(g *Generator) {
		if len(decorators) == 0 {
			return
		}
		g.decorators = append(g.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(g *Generator) {
		g.uiSchemaFS = fsys
		g.uiSchemaSpecified = true
	}
}

// WithThemeSelector passes a go-theme selector through so theme/variant
// choices can be resolved ahead of rendering. It replaces the manifest-backed
// selector built from bundled and registered manifests.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(g *Generator) {
		g.themeSelector = selector
	}
}

// WithThemeManifests registers theme manifests with the built-in selector,
// alongside the bundled ones.
func WithThemeManifests(manifests ...*theme.Manifest) Option {
	return func(g *Generator) {
		g.manifests = append(g.manifests, manifests...)
	}
}

// WithTheme sets the theme and variant applied when a request does not name
// one.
func WithTheme(name, variant string) Option {
	return func(g *Generator) {
		g.themeName = name
		g.themeVariant = variant
	}
}

// WithThemeFallbacks overrides the fallback partials merged into every theme
// selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(g *Generator) {
		g.themeFallbacks = fallbacks
	}
}

// Generator coordinates the account-opening pipeline from canonical model to
// rendered output. It applies sensible defaults (vanilla renderer, embedded UI
// schema, bundled themes) while remaining open to dependency injection.
type Generator struct {
	registry        *render.Registry
	extraRenderers  []render.Renderer
	defaultRenderer string
	labeler         func(string) string
	widgets         *widgets.Registry
	decorators      []model.Decorator

	uiSchemaFS            fs.FS
	uiSchemaSpecified     bool
	uiDecoratorConfigured bool

	themeSelector  theme.ThemeSelector
	manifests      []*theme.Manifest
	themeName      string
	themeVariant   string
	themeFallbacks map[string]string

	initialiseErr   error
	defaultsApplied bool
}

// New constructs a Generator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Generator {
	g := &Generator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

// Request describes the inputs for one render of the account-opening form.
type Request struct {
	// Renderer names the renderer to use. If empty, the generator falls back
	// to the configured default renderer.
	Renderer string

	// Action and Method override the submission target declared by the form
	// model, letting servers mount the form under different routes.
	Action string
	Method string

	// Values pre-populates controls after a rejected submission; Errors and
	// FormErrors carry the validation feedback to surface alongside them.
	Values     map[string]any
	Errors     map[string][]string
	FormErrors []string

	// Hidden lists extra hidden inputs (CSRF tokens and the like).
	Hidden map[string]string

	// Theme and Variant select a theme by name. When empty the generator's
	// configured default applies; when that is empty too, rendering proceeds
	// unthemed.
	Theme   string
	Variant string

	// Success renders the post-submission view instead of the form.
	Success bool
}

// Generate executes the model → decorate → theme → render sequence and
// returns the rendered bytes (HTML for the default vanilla renderer).
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("form: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.initialiseErr; err != nil {
		return nil, err
	}
	if !g.defaultsApplied {
		g.applyDefaults()
		if err := g.initialiseErr; err != nil {
			return nil, err
		}
	}

	form, err := g.Model()
	if err != nil {
		return nil, err
	}

	renderer, err := g.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := render.RenderOptions{
		Action:     req.Action,
		Method:     req.Method,
		Values:     req.Values,
		Errors:     req.Errors,
		FormErrors: req.FormErrors,
		Hidden:     req.Hidden,
		Success:    req.Success,
	}

	options.Theme, err = g.resolveTheme(req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("form: render output: %w", err)
	}
	return output, nil
}

// Model builds the decorated form model: canonical structure, widget
// assignment, then UI schema and custom decorators.
func (g *Generator) Model() (model.FormModel, error) {
	if !g.defaultsApplied {
		g.applyDefaults()
	}
	if err := g.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	var opts []model.Option
	if g.labeler != nil {
		opts = append(opts, model.WithLabeler(g.labeler))
	}
	form := model.AccountOpening(opts...)

	if g.widgets != nil {
		if err := g.widgets.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("form: assign widgets: %w", err)
		}
	}
	for _, decorator := range g.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("form: decorate form: %w", err)
		}
	}

	if err := model.Validate(form); err != nil {
		return model.FormModel{}, fmt.Errorf("form: invalid form model: %w", err)
	}
	return form, nil
}

// Renderer resolves the named renderer, falling back to the configured
// default and then to any registered renderer, mirroring Generate's dispatch.
func (g *Generator) Renderer(name string) (render.Renderer, error) {
	if !g.defaultsApplied {
		g.applyDefaults()
	}
	if g.registry == nil {
		return nil, errors.New("form: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = g.defaultRenderer
	}

	if target != "" {
		renderer, err := g.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("form: renderer %q: %w", name, err)
		}
	}

	names := g.registry.List()
	if len(names) == 0 {
		return nil, errors.New("form: no renderers registered")
	}
	renderer, err := g.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("form: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (g *Generator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	name := req.Theme
	variant := req.Variant
	if name == "" {
		name = g.themeName
		if variant == "" {
			variant = g.themeVariant
		}
	}
	if name == "" || g.themeSelector == nil {
		return nil, nil
	}

	fallbacks := g.themeFallbacks
	if fallbacks == nil {
		fallbacks = render.ThemeFallbacks()
	}
	return render.ResolveTheme(g.themeSelector, name, variant, fallbacks)
}

func (g *Generator) applyDefaults() {
	if g.defaultsApplied {
		return
	}

	if g.widgets == nil {
		g.widgets = widgets.NewRegistry()
	}

	if g.registry == nil {
		g.registry = render.NewRegistry()
		htmlRenderer, err := vanilla.New()
		if err != nil {
			g.initialiseErr = fmt.Errorf("form: default renderer: %w", err)
		} else {
			g.registry.MustRegister(htmlRenderer)
			g.registry.MustRegister(jsonform.New())
		}
	}
	for _, renderer := range g.extraRenderers {
		if g.registry.Has(renderer.Name()) {
			continue
		}
		g.registry.MustRegister(renderer)
	}
	g.extraRenderers = nil

	if g.defaultRenderer == "" {
		g.defaultRenderer = defaultRendererName
	}

	if g.themeSelector == nil {
		selector, err := newManifestSelector(append(Themes(), g.manifests...))
		if err != nil {
			g.initialiseErr = err
		} else {
			g.themeSelector = selector
		}
	}

	g.ensureUIDecorator()

	g.defaultsApplied = true
}

func (g *Generator) ensureUIDecorator() {
	if g.uiDecoratorConfigured {
		return
	}
	g.uiDecoratorConfigured = true

	if !g.uiSchemaSpecified && g.uiSchemaFS == nil {
		g.uiSchemaFS = uischema.EmbeddedFS()
	}
	if g.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(g.uiSchemaFS)
	if err != nil {
		g.initialiseErr = fmt.Errorf("form: load ui schema: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	// The UI schema decorator runs before caller-supplied ones so overrides
	// can still adjust what the schema set.
	g.decorators = append([]model.Decorator{uischema.NewDecorator(store)}, g.decorators...)
}
