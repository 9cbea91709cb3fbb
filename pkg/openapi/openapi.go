// Package openapi describes the account-opening JSON API as an OpenAPI 3
// document derived from the form model, so the published contract always
// matches the constraints the live schema enforces.
package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-openaccount/pkg/model"
)

// Paths served by the JSON API. The server mounts its handlers at the same
// routes so the published document stays accurate.
const (
	PathAccounts = "/api/accounts"
	PathForm     = "/api/form"
	PathHealth   = "/healthz"
)

// Component schema names referenced by the document.
const (
	schemaRequest    = "AccountOpeningRequest"
	schemaAccepted   = "SubmissionAccepted"
	schemaValidation = "ValidationFailure"
)

// Option customises the generated document.
type Option func(*config)

type config struct {
	title       string
	version     string
	description string
	servers     []string
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(c *config) {
		if title != "" {
			c.title = title
		}
	}
}

// WithVersion overrides the document version.
func WithVersion(version string) Option {
	return func(c *config) {
		if version != "" {
			c.version = version
		}
	}
}

// WithDescription overrides the document description.
func WithDescription(description string) Option {
	return func(c *config) {
		c.description = description
	}
}

// WithServer appends a server URL to the document.
func WithServer(url string) Option {
	return func(c *config) {
		url = strings.TrimSpace(url)
		if url != "" {
			c.servers = append(c.servers, url)
		}
	}
}

// Describe builds the OpenAPI document for the account-opening API from a
// decorated form model. Field constraints are carried into the request schema
// so API clients see the same bounds interactive surfaces display.
func Describe(form model.FormModel, opts ...Option) (*openapi3.T, error) {
	if len(form.Fields) == 0 {
		return nil, errors.New("openapi: form model has no fields")
	}

	cfg := config{
		title:       "OpenAccount API",
		version:     "1.0.0",
		description: "Single-page account opening: validate applicant details and accept account-opening requests.",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	requestSchema, err := requestBodySchema(form)
	if err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       cfg.title,
			Version:     cfg.version,
			Description: cfg.description,
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				schemaRequest:    &openapi3.SchemaRef{Value: requestSchema},
				schemaAccepted:   &openapi3.SchemaRef{Value: acceptedSchema()},
				schemaValidation: &openapi3.SchemaRef{Value: validationSchema()},
			},
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(PathAccounts, accountsPathItem(form)),
			openapi3.WithPath(PathForm, formPathItem()),
			openapi3.WithPath(PathHealth, healthPathItem()),
		),
	}

	for _, url := range cfg.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	return doc, nil
}

// JSON serializes a document indented for the /openapi.json endpoint.
func JSON(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal document: %w", err)
	}
	return payload, nil
}

func accountsPathItem(form model.FormModel) *openapi3.PathItem {
	summary := form.Summary
	if summary == "" {
		summary = "Open a new account"
	}

	requestRef := openapi3.NewSchemaRef("#/components/schemas/"+schemaRequest, nil)
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(requestRef)

	responses := openapi3.NewResponses(
		openapi3.WithStatus(201, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Account request accepted.").
				WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+schemaAccepted, nil)),
		}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Validation failed; no account request was created.").
				WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+schemaValidation, nil)),
		}),
	)

	return &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: form.OperationID,
			Summary:     summary,
			Description: form.Description,
			Tags:        []string{"accounts"},
			RequestBody: &openapi3.RequestBodyRef{Value: body},
			Responses:   responses,
		},
	}
}

func formPathItem() *openapi3.PathItem {
	responses := openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Machine-readable form description: fields, widgets, validation rules, and submit target.").
				WithJSONSchema(openapi3.NewObjectSchema()),
		}),
	)
	return &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "describeForm",
			Summary:     "Describe the account-opening form",
			Tags:        []string{"accounts"},
			Responses:   responses,
		},
	}
}

func healthPathItem() *openapi3.PathItem {
	responses := openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Service is up."),
		}),
	)
	return &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "healthz",
			Summary:     "Liveness probe",
			Tags:        []string{"meta"},
			Responses:   responses,
		},
	}
}

// requestBodySchema converts the form's fields into an object schema,
// mapping each validation rule onto its OpenAPI counterpart.
func requestBodySchema(form model.FormModel) (*openapi3.Schema, error) {
	schema := openapi3.NewObjectSchema()
	schema.Description = "Raw account-opening submission. Validation is authoritative server-side."

	for _, field := range form.Fields {
		property, err := propertySchema(field)
		if err != nil {
			return nil, err
		}
		schema.Properties[field.Name] = &openapi3.SchemaRef{Value: property}
		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema, nil
}

func propertySchema(field model.Field) (*openapi3.Schema, error) {
	schema := &openapi3.Schema{Description: field.Description}

	switch field.Type {
	case model.FieldTypeNumber:
		schema.Type = &openapi3.Types{"number"}
		schema.Format = "double"
	case model.FieldTypeBoolean:
		schema.Type = &openapi3.Types{"boolean"}
	case model.FieldTypeString:
		schema.Type = &openapi3.Types{"string"}
		schema.Format = openAPIFormat(field.Format)
	default:
		return nil, fmt.Errorf("openapi: field %s: unsupported type %q", field.Name, field.Type)
	}

	if len(field.Enum) > 0 {
		schema.Enum = append([]any(nil), field.Enum...)
	}

	for _, rule := range field.Validations {
		if err := applyRule(schema, field, rule); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

func applyRule(schema *openapi3.Schema, field model.Field, rule model.ValidationRule) error {
	switch rule.Kind {
	case model.ValidationRuleMinLength:
		n, err := ruleInt(field, rule)
		if err != nil {
			return err
		}
		schema.MinLength = uint64(n)
	case model.ValidationRuleLength:
		n, err := ruleInt(field, rule)
		if err != nil {
			return err
		}
		schema.MinLength = uint64(n)
		maxLength := uint64(n)
		schema.MaxLength = &maxLength
	case model.ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return fmt.Errorf("openapi: field %s: pattern rule missing expression", field.Name)
		}
		schema.Pattern = anchor(expr)
	case model.ValidationRuleMin:
		raw := rule.Params["value"]
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("openapi: field %s: min rule value %q: %w", field.Name, raw, err)
		}
		schema.Min = &value
	case model.ValidationRuleMinAge:
		n, err := ruleInt(field, rule)
		if err != nil {
			return err
		}
		schema.Description = joinSentences(schema.Description,
			fmt.Sprintf("Account holder must be at least %d years old.", n))
	default:
		return fmt.Errorf("openapi: field %s: unsupported rule %q", field.Name, rule.Kind)
	}
	return nil
}

func acceptedSchema() *openapi3.Schema {
	status := openapi3.NewStringSchema()
	status.Enum = []any{"accepted"}

	schema := openapi3.NewObjectSchema()
	schema.Description = "Confirmation that the account request was handed to account creation."
	schema.Properties["status"] = &openapi3.SchemaRef{Value: status}
	schema.Required = []string{"status"}
	return schema
}

func validationSchema() *openapi3.Schema {
	errorsSchema := openapi3.NewObjectSchema()
	errorsSchema.Description = "One message per rejected field, keyed by field name."
	errorsSchema.AdditionalProperties = openapi3.AdditionalProperties{
		Schema: &openapi3.SchemaRef{Value: openapi3.NewStringSchema()},
	}

	schema := openapi3.NewObjectSchema()
	schema.Description = "Complete validation error set for a rejected submission."
	schema.Properties["errors"] = &openapi3.SchemaRef{Value: errorsSchema}
	schema.Required = []string{"errors"}
	return schema
}

func openAPIFormat(format string) string {
	switch format {
	case "email", "date":
		return format
	default:
		// tel and friends are widget hints, not OpenAPI formats.
		return ""
	}
}

func ruleInt(field model.Field, rule model.ValidationRule) (int, error) {
	raw := rule.Params["value"]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("openapi: field %s: %s rule value %q: %w", field.Name, rule.Kind, raw, err)
	}
	return n, nil
}

func anchor(expr string) string {
	if !strings.HasPrefix(expr, "^") {
		expr = "^" + expr
	}
	if !strings.HasSuffix(expr, "$") {
		expr += "$"
	}
	return expr
}

func joinSentences(a, b string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return b
	}
	return a + " " + b
}
