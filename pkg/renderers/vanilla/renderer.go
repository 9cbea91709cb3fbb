package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/render"
	rendertemplate "github.com/goliatone/go-openaccount/pkg/render/template"
	"github.com/goliatone/go-openaccount/pkg/render/template/pongo"
	"github.com/goliatone/go-openaccount/pkg/widgets"
)

// Metadata keys the renderer reads from the form model. The uischema
// decorator writes them; forms built without decoration fall back to the
// defaults below.
const (
	metaSubmitLabel    = "submitLabel"
	metaSuccessTitle   = "success.title"
	metaSuccessMessage = "success.message"
	metaSuccessIcon    = "success.icon"
)

const (
	defaultSubmitLabel    = "Submit"
	defaultSuccessTitle   = "Application received"
	defaultSuccessMessage = "Your application was submitted successfully."

	// themeAssetStylesheet is the manifest asset key a theme uses to swap in
	// its own stylesheet.
	themeAssetStylesheet = "forms.stylesheet"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
	stylesheetHref   string
	defaultStyles    bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgets overrides the registry used to resolve field controls.
func WithWidgets(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithStylesheet emits a <link> tag pointing at the provided URL. Themes can
// still override the href through their asset manifest.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheetHref = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the rendered page so
// the output is presentable without serving assets separately.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.defaultStyles = true
	}
}

// Renderer produces a dependency-free HTML page for the account-opening form.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	widgets        *widgets.Registry
	stylesheetHref string
	defaultStyles  bool
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:      renderer,
		widgets:        cfg.widgets,
		stylesheetHref: cfg.stylesheetHref,
		defaultStyles:  cfg.defaultStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form page, or the success page when options request it.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	if options.Success {
		return r.renderSuccess(form, options)
	}
	return r.renderForm(form, options)
}

func (r *Renderer) renderForm(form model.FormModel, options render.RenderOptions) ([]byte, error) {
	fields := newFieldRenderer(r.widgets, options.Values, options.Errors)

	sections, err := r.sectionPayloads(form, fields)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"form": form,
		"page": map[string]any{
			"title":        pageTitle(form),
			"subtitle":     strings.TrimSpace(form.Description),
			"action":       submitAction(form, options),
			"method":       submitMethod(form, options),
			"form_method":  browserMethod(submitMethod(form, options)),
			"submit_label": metadataOr(form.Metadata, metaSubmitLabel, defaultSubmitLabel),
			"form_errors":  render.MergeFormErrors(nil, options.FormErrors...),
			"hidden":       hiddenPayload(form, options),
			"sections":     sections,
			"stylesheet":   r.stylesheetURL(options),
			"inline_css":   r.inlineCSS(),
			"css_vars":     themeCSSVars(options),
			"theme":        themeName(options),
			"variant":      themeVariant(options),
		},
	}

	name := partialName(options, render.ThemePartialPage)
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderSuccess(form model.FormModel, options render.RenderOptions) ([]byte, error) {
	data := map[string]any{
		"form": form,
		"page": map[string]any{
			"title":      pageTitle(form),
			"heading":    metadataOr(form.Metadata, metaSuccessTitle, defaultSuccessTitle),
			"message":    metadataOr(form.Metadata, metaSuccessMessage, defaultSuccessMessage),
			"icon":       form.Metadata[metaSuccessIcon],
			"stylesheet": r.stylesheetURL(options),
			"inline_css": r.inlineCSS(),
			"css_vars":   themeCSSVars(options),
			"theme":      themeName(options),
			"variant":    themeVariant(options),
		},
	}

	name := partialName(options, render.ThemePartialSuccess)
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render success template: %w", err)
	}
	return []byte(result), nil
}

// sectionPayloads groups field markup by section, preserving model order.
// Fields assigned to an undeclared section render in a trailing untitled
// group so no input silently disappears from the page.
func (r *Renderer) sectionPayloads(form model.FormModel, fields *fieldRenderer) ([]map[string]any, error) {
	declared := make(map[string]bool, len(form.Sections))
	for _, section := range form.Sections {
		declared[section.ID] = true
	}

	var strayMarkup []any
	for _, field := range form.Fields {
		if declared[field.Section] {
			continue
		}
		markup, err := fields.render(field)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
		}
		strayMarkup = append(strayMarkup, markup)
	}

	payloads := make([]map[string]any, 0, len(form.Sections)+1)
	for _, section := range form.Sections {
		group := form.SectionFields(section.ID)
		if len(group) == 0 {
			continue
		}
		markup := make([]any, 0, len(group))
		for _, field := range group {
			rendered, err := fields.render(field)
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
			}
			markup = append(markup, rendered)
		}
		payloads = append(payloads, map[string]any{
			"id":          section.ID,
			"title":       section.Title,
			"description": section.Description,
			"icon":        section.Icon,
			"fields":      markup,
		})
	}

	if len(strayMarkup) > 0 {
		payloads = append(payloads, map[string]any{
			"id":          "",
			"title":       "",
			"description": "",
			"icon":        "",
			"fields":      strayMarkup,
		})
	}
	return payloads, nil
}

func (r *Renderer) stylesheetURL(options render.RenderOptions) string {
	href := r.stylesheetHref
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if resolved := strings.TrimSpace(options.Theme.AssetURL(themeAssetStylesheet)); resolved != "" {
			href = resolved
		}
	}
	return href
}

func (r *Renderer) inlineCSS() string {
	if !r.defaultStyles {
		return ""
	}
	return defaultStylesheet()
}

func pageTitle(form model.FormModel) string {
	if title := strings.TrimSpace(form.Summary); title != "" {
		return title
	}
	return form.OperationID
}

func submitAction(form model.FormModel, options render.RenderOptions) string {
	if action := strings.TrimSpace(options.Action); action != "" {
		return action
	}
	return form.Endpoint
}

func submitMethod(form model.FormModel, options render.RenderOptions) string {
	method := strings.TrimSpace(options.Method)
	if method == "" {
		method = form.Method
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return "POST"
	}
	return method
}

// browserMethod translates verbs HTML forms cannot express into POST. The
// declared verb still reaches the backend through the _method hidden field.
func browserMethod(method string) string {
	switch method {
	case "GET", "POST":
		return method
	default:
		return "POST"
	}
}

func hiddenPayload(form model.FormModel, options render.RenderOptions) []any {
	hidden := options.Hidden
	if method := submitMethod(form, options); browserMethod(method) != method {
		hidden = render.MergeHiddenFields(hidden, render.Hidden("_method", method))
	}

	sorted := render.SortedHiddenFields(hidden)
	payload := make([]any, 0, len(sorted))
	for _, field := range sorted {
		payload = append(payload, map[string]any{
			"name":  field.Name,
			"value": field.Value,
		})
	}
	return payload
}

func partialName(options render.RenderOptions, key string) string {
	if options.Theme != nil {
		if name := strings.TrimSpace(options.Theme.Partials[key]); name != "" {
			return name
		}
	}
	return render.ThemeFallbacks()[key]
}

func themeCSSVars(options render.RenderOptions) string {
	if options.Theme == nil {
		return ""
	}
	return render.CSSVarsBlock(options.Theme.CSSVars)
}

func themeName(options render.RenderOptions) string {
	if options.Theme == nil {
		return ""
	}
	return options.Theme.Theme
}

func themeVariant(options render.RenderOptions) string {
	if options.Theme == nil {
		return ""
	}
	return options.Theme.Variant
}

func metadataOr(metadata map[string]string, key, fallback string) string {
	if value := strings.TrimSpace(metadata[key]); value != "" {
		return value
	}
	return fallback
}
