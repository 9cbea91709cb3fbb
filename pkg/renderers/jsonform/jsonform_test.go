package jsonform_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/render"
	"github.com/goliatone/go-openaccount/pkg/renderers/jsonform"
	"github.com/goliatone/go-openaccount/pkg/testsupport"
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

func TestRendererIdentity(t *testing.T) {
	renderer := jsonform.New()
	if got := renderer.Name(); got != "jsonform" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := renderer.ContentType(); got != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestRenderDocumentShape(t *testing.T) {
	renderer := jsonform.New()

	output, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc struct {
		Form struct {
			OperationID string `json:"operationId"`
			Endpoint    string `json:"endpoint"`
			Method      string `json:"method"`
			Sections    []struct {
				ID string `json:"id"`
			} `json:"sections"`
			Fields []struct {
				Name        string `json:"name"`
				Type        string `json:"type"`
				Required    bool   `json:"required"`
				Widget      string `json:"widget"`
				Section     string `json:"section"`
				Enum        []any  `json:"enum"`
				Validations []struct {
					Kind   string            `json:"kind"`
					Params map[string]string `json:"params"`
				} `json:"validations"`
			} `json:"fields"`
		} `json:"form"`
		Action string `json:"action"`
		Method string `json:"method"`
	}
	if err := json.Unmarshal(output, &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}

	if doc.Form.OperationID != "openAccount" {
		t.Errorf("unexpected operation id %q", doc.Form.OperationID)
	}
	if doc.Action != "/submit" || doc.Method != "POST" {
		t.Errorf("unexpected submit target %s %s", doc.Method, doc.Action)
	}
	if len(doc.Form.Fields) != 11 {
		t.Fatalf("expected 11 fields, got %d", len(doc.Form.Fields))
	}
	if len(doc.Form.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Form.Sections))
	}

	byName := make(map[string]int, len(doc.Form.Fields))
	for i, field := range doc.Form.Fields {
		byName[field.Name] = i
	}

	deposit := doc.Form.Fields[byName[account.FieldInitialDeposit]]
	if deposit.Type != "number" || deposit.Widget != "number" {
		t.Errorf("unexpected deposit field: %+v", deposit)
	}
	foundMin := false
	for _, rule := range deposit.Validations {
		if rule.Kind == "min" && rule.Params["value"] == "100" {
			foundMin = true
		}
	}
	if !foundMin {
		t.Errorf("expected min rule on deposit, got %+v", deposit.Validations)
	}

	accountType := doc.Form.Fields[byName[account.FieldAccountType]]
	if accountType.Widget != "select" || len(accountType.Enum) != 2 {
		t.Errorf("unexpected account type field: %+v", accountType)
	}

	terms := doc.Form.Fields[byName[account.FieldTermsAccepted]]
	if terms.Type != "boolean" || terms.Widget != "checkbox" {
		t.Errorf("unexpected terms field: %+v", terms)
	}
}

func TestRenderCarriesRequestState(t *testing.T) {
	renderer := jsonform.New()

	input := testsupport.ValidInput()
	output, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{
		Values: input.Values(),
		Errors: map[string][]string{
			account.FieldEmail: {"enter a valid email address"},
		},
		FormErrors: []string{"account service unavailable"},
		Hidden:     map[string]string{"_csrf": "token-123"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc struct {
		Values     map[string]any      `json:"values"`
		Errors     map[string][]string `json:"errors"`
		FormErrors []string            `json:"formErrors"`
		Hidden     map[string]string   `json:"hidden"`
	}
	if err := json.Unmarshal(output, &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}

	if doc.Values[account.FieldFullName] != "Jane Doe" {
		t.Errorf("expected value passthrough, got %v", doc.Values[account.FieldFullName])
	}
	if got := doc.Errors[account.FieldEmail]; len(got) != 1 || got[0] != "enter a valid email address" {
		t.Errorf("unexpected field errors: %v", doc.Errors)
	}
	if len(doc.FormErrors) != 1 || doc.FormErrors[0] != "account service unavailable" {
		t.Errorf("unexpected form errors: %v", doc.FormErrors)
	}
	if doc.Hidden["_csrf"] != "token-123" {
		t.Errorf("unexpected hidden fields: %v", doc.Hidden)
	}
}

func TestRenderThemeOmittedWhenAbsent(t *testing.T) {
	renderer := jsonform.New()

	output, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), `"theme"`) {
		t.Fatalf("expected theme to be omitted, got:\n%s", output)
	}

	themed, err := renderer.Render(testsupport.Context(), accountForm(t), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "clearbank",
			Variant: "dark",
			CSSVars: map[string]string{"--oa-accent": "#0a3069"},
		},
	})
	if err != nil {
		t.Fatalf("render themed: %v", err)
	}

	var doc struct {
		Theme struct {
			Name    string            `json:"name"`
			Variant string            `json:"variant"`
			CSSVars map[string]string `json:"cssVars"`
		} `json:"theme"`
	}
	if err := json.Unmarshal(themed, &doc); err != nil {
		t.Fatalf("unmarshal themed document: %v", err)
	}
	if doc.Theme.Name != "clearbank" || doc.Theme.Variant != "dark" {
		t.Errorf("unexpected theme context: %+v", doc.Theme)
	}
	if doc.Theme.CSSVars["--oa-accent"] != "#0a3069" {
		t.Errorf("expected css vars passthrough, got %v", doc.Theme.CSSVars)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	renderer := jsonform.New(jsonform.WithIndent("  "))
	form := accountForm(t)
	form.Metadata = map[string]string{
		"submitLabel":   "Open account",
		"success.title": "Application received",
		"b":             "2",
		"a":             "1",
	}

	first, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render first: %v", err)
	}
	second, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render second: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected deterministic output:\n%s\n---\n%s", first, second)
	}

	metaOrder := strings.Index(string(first), `"a":`)
	if metaOrder == -1 || metaOrder > strings.Index(string(first), `"b":`) {
		t.Fatalf("expected metadata keys sorted, got:\n%s", first)
	}
}
