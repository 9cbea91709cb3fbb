// Package controller drives the account-opening form through its submit
// lifecycle: editing, a single in-flight submission at a time, and a terminal
// submitted state once the account-creation collaborator accepts the request.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/schema"
)

// State names a point in the form lifecycle. The three states replace the
// usual pair of submitting/submitted flags so impossible combinations cannot
// be represented.
type State string

const (
	// StateEditing accepts value changes and submit attempts.
	StateEditing State = "editing"
	// StateSubmitting holds while an attempt is validated and forwarded.
	StateSubmitting State = "submitting"
	// StateSubmitted is terminal. The form cannot be edited or resubmitted.
	StateSubmitted State = "submitted"
)

var (
	// ErrSubmitInFlight rejects a submit attempt while another is running.
	ErrSubmitInFlight = errors.New("controller: submission already in flight")
	// ErrAlreadySubmitted rejects submit attempts after the terminal state.
	ErrAlreadySubmitted = errors.New("controller: form already submitted")
)

// Creator receives the typed request once validation passes. Implementations
// integrate whatever opens accounts for real; LogCreator stands in for
// development and demos.
type Creator interface {
	CreateAccount(ctx context.Context, req account.Request) error
}

// CreatorFunc adapts a plain function to the Creator interface.
type CreatorFunc func(ctx context.Context, req account.Request) error

// CreateAccount calls f.
func (f CreatorFunc) CreateAccount(ctx context.Context, req account.Request) error {
	return f(ctx, req)
}

// LogCreator logs accepted requests and reports success.
type LogCreator struct {
	Logger *log.Logger
}

// CreateAccount implements Creator.
func (c LogCreator) CreateAccount(_ context.Context, req account.Request) error {
	logger := c.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("account request accepted: %s, %s account, %s %.2f",
		req.FullName, req.AccountType, req.Currency, req.InitialDeposit)
	return nil
}

// Result reports where a submit attempt left the form. Errors is set only
// when validation failed; Request is set only in StateSubmitted.
type Result struct {
	State   State
	Errors  schema.Errors
	Request account.Request
}

// Controller owns one form lifecycle. It is safe for concurrent use; the
// mutex is what makes the in-flight guard hold when submit triggers race.
type Controller struct {
	mu      sync.Mutex
	state   State
	rules   *schema.Schema
	creator Creator
	logger  *log.Logger

	values  account.FormInput
	errors  schema.Errors
	request account.Request
}

// Option configures a Controller.
type Option func(*Controller)

// WithSchema overrides the validation schema, usually to pin its clock.
func WithSchema(s *schema.Schema) Option {
	return func(c *Controller) {
		if s != nil {
			c.rules = s
		}
	}
}

// WithCreator sets the account-creation collaborator.
func WithCreator(creator Creator) Option {
	return func(c *Controller) {
		if creator != nil {
			c.creator = creator
		}
	}
}

// WithLogger sets the logger used by the default LogCreator. It has no effect
// when WithCreator is supplied.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New returns a Controller in StateEditing.
func New(opts ...Option) *Controller {
	c := &Controller{state: StateEditing}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.rules == nil {
		c.rules = schema.New()
	}
	if c.creator == nil {
		c.creator = LogCreator{Logger: c.logger}
	}
	return c
}

// Submit runs one lifecycle pass. Validation failures are state, not Go
// errors: the controller returns to StateEditing carrying the complete error
// set and the entered values, so the surface can re-render without data loss.
// Only guard rejections and collaborator failures surface as errors.
func (c *Controller) Submit(ctx context.Context, in account.FormInput) (Result, error) {
	c.mu.Lock()
	switch c.state {
	case StateSubmitted:
		req := c.request
		c.mu.Unlock()
		return Result{State: StateSubmitted, Request: req}, ErrAlreadySubmitted
	case StateSubmitting:
		c.mu.Unlock()
		return Result{State: StateSubmitting}, ErrSubmitInFlight
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	req, verrs := c.rules.Validate(in)
	if len(verrs) > 0 {
		c.mu.Lock()
		c.state = StateEditing
		c.values = in
		c.errors = verrs
		c.mu.Unlock()
		return Result{State: StateEditing, Errors: verrs}, nil
	}

	if err := c.creator.CreateAccount(ctx, req); err != nil {
		c.mu.Lock()
		c.state = StateEditing
		c.values = in
		c.errors = nil
		c.mu.Unlock()
		return Result{State: StateEditing}, fmt.Errorf("controller: create account: %w", err)
	}

	c.mu.Lock()
	c.state = StateSubmitted
	c.request = req
	c.values = account.FormInput{}
	c.errors = nil
	c.mu.Unlock()
	return Result{State: StateSubmitted, Request: req}, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Values returns the input retained from the last failed attempt so surfaces
// can re-fill the form. Treat the result as read-only.
func (c *Controller) Values() account.FormInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// Errors returns the error set attached by the last attempt, or nil. Treat
// the result as read-only.
func (c *Controller) Errors() schema.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors
}

// Request returns the accepted request once the form reached StateSubmitted.
func (c *Controller) Request() (account.Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.request, c.state == StateSubmitted
}
