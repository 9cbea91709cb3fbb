package tui

import (
	"context"
	"errors"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/controller"
	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/schema"
)

// Flow drives one complete account-opening session in the terminal: prompt
// every field, submit through the controller, and when validation rejects the
// attempt re-prompt only the failing fields with previous answers preserved.
// The loop ends when the controller reaches its submitted state or a prompt
// is aborted.
type Flow struct {
	driver PromptDriver
	rules  *schema.Schema
	ctrl   *controller.Controller
	form   model.FormModel

	prompter *Renderer
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithFlowPromptDriver overrides the prompt driver used by the flow.
func WithFlowPromptDriver(driver PromptDriver) FlowOption {
	return func(f *Flow) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithFlowSchema overrides the rules backing inline prompt feedback. The
// controller keeps its own schema; this one only gates what the prompts
// accept before submission.
func WithFlowSchema(rules *schema.Schema) FlowOption {
	return func(f *Flow) {
		if rules != nil {
			f.rules = rules
		}
	}
}

// NewFlow wires a flow around an existing controller and form model.
func NewFlow(ctrl *controller.Controller, form model.FormModel, opts ...FlowOption) (*Flow, error) {
	if ctrl == nil {
		return nil, errors.New("tui: controller is required")
	}

	f := &Flow{ctrl: ctrl, form: form}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	if f.driver == nil {
		f.driver = newSurveyDriver()
	}
	if f.rules == nil {
		f.rules = schema.New()
	}
	f.prompter = &Renderer{driver: f.driver, rules: f.rules, outputFormat: OutputFormatJSON}

	return f, nil
}

// Run executes the session and returns the controller's final result. A nil
// error means the request was accepted; prompt aborts and account-creation
// failures surface as errors with the last result attached.
func (f *Flow) Run(ctx context.Context) (controller.Result, error) {
	if ctx == nil {
		return controller.Result{}, errors.New("tui: context is required")
	}

	state := NewState(nil, nil)

	for {
		if err := ctx.Err(); err != nil {
			return controller.Result{}, err
		}

		for _, field := range f.form.Fields {
			if state.HasErrors() && len(state.ErrorsFor(field.Name)) == 0 {
				continue
			}
			if err := f.prompter.promptField(ctx, field, state); err != nil {
				return controller.Result{}, err
			}
		}

		result, err := f.ctrl.Submit(ctx, formInputFromState(state))
		if err != nil {
			return result, err
		}

		if result.State == controller.StateSubmitted {
			f.announceSuccess(ctx)
			return result, nil
		}

		// Validation rejected the attempt. Keep the answers and loop back
		// over just the rejected fields.
		state = NewState(state.Values(), fieldErrors(result.Errors))
	}
}

func (f *Flow) announceSuccess(ctx context.Context) {
	_ = f.driver.Info(ctx, f.metadataOr("success.title", "Application received"))
	if msg := f.metadataOr("success.message", "Your application was submitted successfully."); msg != "" {
		_ = f.driver.Info(ctx, msg)
	}
}

func (f *Flow) metadataOr(key, fallback string) string {
	if v, ok := f.form.Metadata[key]; ok && v != "" {
		return v
	}
	return fallback
}

// formInputFromState maps the collected answers onto the raw submission
// record the controller validates.
func formInputFromState(state *State) account.FormInput {
	values := state.Values()
	return account.FormInput{
		FullName:       stringAt(values, account.FieldFullName),
		Email:          stringAt(values, account.FieldEmail),
		Phone:          stringAt(values, account.FieldPhone),
		DateOfBirth:    stringAt(values, account.FieldDateOfBirth),
		AccountType:    stringAt(values, account.FieldAccountType),
		InitialDeposit: values[account.FieldInitialDeposit],
		Currency:       stringAt(values, account.FieldCurrency),
		StreetAddress:  stringAt(values, account.FieldStreetAddress),
		City:           stringAt(values, account.FieldCity),
		ZipCode:        stringAt(values, account.FieldZipCode),
		TermsAccepted:  boolAt(values, account.FieldTermsAccepted),
	}
}

func fieldErrors(errs schema.Errors) map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for field, msg := range errs {
		out[field] = []string{msg}
	}
	return out
}

func stringAt(values map[string]any, name string) string {
	if s, ok := values[name].(string); ok {
		return s
	}
	return ""
}

func boolAt(values map[string]any, name string) bool {
	if b, ok := values[name].(bool); ok {
		return b
	}
	return false
}
