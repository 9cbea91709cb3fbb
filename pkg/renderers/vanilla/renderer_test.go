package vanilla_test

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/render"
	"github.com/goliatone/go-openaccount/pkg/renderers/vanilla"
	"github.com/goliatone/go-openaccount/pkg/testsupport"
	"github.com/goliatone/go-openaccount/pkg/uischema"
	"github.com/goliatone/go-openaccount/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

func accountForm(t *testing.T) model.FormModel {
	t.Helper()

	form := model.AccountOpening()
	if err := widgets.NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("decorate widgets: %v", err)
	}
	return form
}

func decoratedAccountForm(t *testing.T) model.FormModel {
	t.Helper()

	form := accountForm(t)
	store, err := uischema.Default()
	if err != nil {
		t.Fatalf("load ui schema: %v", err)
	}
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate ui schema: %v", err)
	}
	return form
}

func TestRendererIdentity(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if got := renderer.Name(); got != "vanilla" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := renderer.ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestRenderEmitsEveryField(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	names := []string{
		account.FieldFullName,
		account.FieldEmail,
		account.FieldPhone,
		account.FieldDateOfBirth,
		account.FieldAccountType,
		account.FieldInitialDeposit,
		account.FieldCurrency,
		account.FieldStreetAddress,
		account.FieldCity,
		account.FieldZipCode,
		account.FieldTermsAccepted,
	}
	for _, name := range names {
		if !strings.Contains(page, `name="`+name+`"`) {
			t.Errorf("missing control for field %q", name)
		}
	}

	for _, legend := range []string{"Personal details", "Account details", "Address", "Terms"} {
		if !strings.Contains(page, legend) {
			t.Errorf("missing section legend %q", legend)
		}
	}

	if !strings.Contains(page, `action="/submit"`) {
		t.Errorf("expected default action, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `method="POST"`) {
		t.Errorf("expected POST method, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `<button type="submit" class="oa-submit">Submit</button>`) {
		t.Errorf("expected default submit label, got:\n%s", excerpt(page))
	}
}

func TestRenderUsesUISchemaCopy(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), decoratedAccountForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	if !strings.Contains(page, "<title>Open an account</title>") {
		t.Errorf("expected ui schema title, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, ">Open account</button>") {
		t.Errorf("expected ui schema submit label, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `placeholder="Jane Doe"`) {
		t.Errorf("expected ui schema placeholder, got:\n%s", excerpt(page))
	}
}

func TestRenderPrefilledWithErrors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	input := testsupport.ValidInput()
	options := render.RenderOptions{
		Values: input.Values(),
		Errors: map[string][]string{
			account.FieldEmail:   {"enter a valid email address"},
			account.FieldZipCode: {"must be exactly 5 digits"},
		},
		FormErrors: []string{"account service unavailable, try again"},
	}

	output, err := renderer.Render(testsupport.Context(), accountForm(t), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	if !strings.Contains(page, `value="Jane Doe"`) {
		t.Errorf("expected full name re-filled, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `value="250.50"`) {
		t.Errorf("expected deposit re-filled, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `<option value="USD" selected>`) {
		t.Errorf("expected currency selection preserved, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, "enter a valid email address") {
		t.Errorf("expected inline email error, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, "must be exactly 5 digits") {
		t.Errorf("expected inline zip error, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, "account service unavailable, try again") {
		t.Errorf("expected form-level error, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, ` checked`) {
		t.Errorf("expected terms checkbox re-checked, got:\n%s", excerpt(page))
	}
}

func TestRenderTranslatesUnsupportedMethods(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{
		Action: "/applications/42",
		Method: "PUT",
		Hidden: map[string]string{"_csrf": "token-123"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	if !strings.Contains(page, `action="/applications/42"`) {
		t.Errorf("expected action override, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `method="POST"`) {
		t.Errorf("expected browser-safe POST, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `<input type="hidden" name="_method" value="PUT">`) {
		t.Errorf("expected method override field, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `<input type="hidden" name="_csrf" value="token-123">`) {
		t.Errorf("expected csrf field, got:\n%s", excerpt(page))
	}
}

func TestRenderSuccessView(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := decoratedAccountForm(t)
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{Success: true})
	if err != nil {
		t.Fatalf("render success: %v", err)
	}
	page := string(output)

	if !strings.Contains(page, `class="oa-success"`) {
		t.Errorf("expected success panel, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, "Application received") {
		t.Errorf("expected success heading, got:\n%s", excerpt(page))
	}
	if strings.Contains(page, "<form") {
		t.Errorf("expected no form on success page, got:\n%s", excerpt(page))
	}
}

func TestRenderAppliesTheme(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithStylesheet("/assets/openaccount.css"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "clearbank",
			Variant: "dark",
			CSSVars: map[string]string{"--oa-accent": "#0a3069"},
			AssetURL: func(key string) string {
				if key == "forms.stylesheet" {
					return "/themes/clearbank/forms.css"
				}
				return ""
			},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	if !strings.Contains(page, `data-theme="clearbank"`) {
		t.Errorf("expected theme attribute, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `data-theme-variant="dark"`) {
		t.Errorf("expected variant attribute, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, "--oa-accent: #0a3069;") {
		t.Errorf("expected css vars block, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, `href="/themes/clearbank/forms.css"`) {
		t.Errorf("expected theme stylesheet to win, got:\n%s", excerpt(page))
	}
}

func TestRenderWithDefaultStyles(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithDefaultStyles())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	if !strings.Contains(page, "<style>") {
		t.Fatalf("expected inline styles, got:\n%s", excerpt(page))
	}
	if !strings.Contains(page, ".oa-form") {
		t.Fatalf("expected bundled stylesheet content, got:\n%s", excerpt(page))
	}
}

func TestRenderWithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, out ...io.Writer) (string, error) {
			if name == "templates/form.tmpl" {
				return "custom-output", nil
			}
			return "", nil
		},
	}

	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom-output" {
		t.Fatalf("unexpected output: %s", out)
	}
	if !stub.called {
		t.Fatalf("expected render template to be called")
	}
}

func TestAssetsBundleStylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".oa-field") {
		t.Fatalf("stylesheet missing field styles")
	}
}

func excerpt(page string) string {
	if len(page) > 2000 {
		return page[:2000] + "\n..."
	}
	return page
}

type stubTemplateRenderer struct {
	called             bool
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.called = true
	if s.renderTemplateFunc != nil {
		return s.renderTemplateFunc(name, data, out...)
	}
	return "", nil
}

func (s *stubTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(data any) error {
	return nil
}
