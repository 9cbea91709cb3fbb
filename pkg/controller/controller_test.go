package controller_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/controller"
	"github.com/goliatone/go-openaccount/pkg/schema"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func fixedSchema() *schema.Schema {
	return schema.New(schema.WithClock(func() time.Time { return testNow }))
}

func validInput() account.FormInput {
	return account.FormInput{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		Phone:          "1234567890",
		DateOfBirth:    "2000-01-01",
		AccountType:    "savings",
		InitialDeposit: 500,
		Currency:       "USD",
		StreetAddress:  "1 Main St",
		City:           "Springfield",
		ZipCode:        "12345",
		TermsAccepted:  true,
	}
}

type recordingCreator struct {
	mu   sync.Mutex
	reqs []account.Request
	err  error
}

func (r *recordingCreator) CreateAccount(_ context.Context, req account.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.reqs = append(r.reqs, req)
	return nil
}

func (r *recordingCreator) requests() []account.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]account.Request(nil), r.reqs...)
}

type blockingCreator struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCreator) CreateAccount(_ context.Context, _ account.Request) error {
	close(b.entered)
	<-b.release
	return nil
}

func TestSubmit_ValidInputReachesSubmitted(t *testing.T) {
	creator := &recordingCreator{}
	c := controller.New(
		controller.WithSchema(fixedSchema()),
		controller.WithCreator(creator),
	)

	if got := c.State(); got != controller.StateEditing {
		t.Fatalf("initial state = %q, want %q", got, controller.StateEditing)
	}

	res, err := c.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.State != controller.StateSubmitted {
		t.Fatalf("result state = %q, want %q", res.State, controller.StateSubmitted)
	}
	if got := c.State(); got != controller.StateSubmitted {
		t.Fatalf("controller state = %q, want %q", got, controller.StateSubmitted)
	}

	want := account.Request{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		Phone:          "1234567890",
		DateOfBirth:    time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		AccountType:    account.TypeSavings,
		InitialDeposit: 500,
		Currency:       account.CurrencyUSD,
		StreetAddress:  "1 Main St",
		City:           "Springfield",
		ZipCode:        "12345",
		TermsAccepted:  true,
	}
	if diff := cmp.Diff([]account.Request{want}, creator.requests()); diff != "" {
		t.Fatalf("forwarded requests mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, res.Request); diff != "" {
		t.Fatalf("result request mismatch (-want +got):\n%s", diff)
	}

	accepted, ok := c.Request()
	if !ok {
		t.Fatal("expected accepted request after submission")
	}
	if diff := cmp.Diff(want, accepted); diff != "" {
		t.Fatalf("accepted request mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_ValidationFailureStaysEditing(t *testing.T) {
	creator := &recordingCreator{}
	c := controller.New(
		controller.WithSchema(fixedSchema()),
		controller.WithCreator(creator),
	)

	in := validInput()
	in.TermsAccepted = false

	res, err := c.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.State != controller.StateEditing {
		t.Fatalf("result state = %q, want %q", res.State, controller.StateEditing)
	}

	want := schema.Errors{account.FieldTermsAccepted: "must accept terms"}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, c.Errors()); diff != "" {
		t.Fatalf("retained errors mismatch (-want +got):\n%s", diff)
	}
	if len(creator.requests()) != 0 {
		t.Fatal("creator must not be called on validation failure")
	}

	// Entered values survive the round trip.
	if diff := cmp.Diff(in, c.Values()); diff != "" {
		t.Fatalf("retained values mismatch (-want +got):\n%s", diff)
	}

	// A corrected attempt completes the lifecycle.
	in.TermsAccepted = true
	res, err = c.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if res.State != controller.StateSubmitted {
		t.Fatalf("second result state = %q, want %q", res.State, controller.StateSubmitted)
	}
}

func TestSubmit_InFlightGuard(t *testing.T) {
	creator := &blockingCreator{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := controller.New(
		controller.WithSchema(fixedSchema()),
		controller.WithCreator(creator),
	)

	type outcome struct {
		res controller.Result
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := c.Submit(context.Background(), validInput())
		first <- outcome{res, err}
	}()

	<-creator.entered
	if got := c.State(); got != controller.StateSubmitting {
		t.Fatalf("state while in flight = %q, want %q", got, controller.StateSubmitting)
	}

	_, err := c.Submit(context.Background(), validInput())
	if !errors.Is(err, controller.ErrSubmitInFlight) {
		t.Fatalf("concurrent submit error = %v, want ErrSubmitInFlight", err)
	}

	close(creator.release)
	got := <-first
	if got.err != nil {
		t.Fatalf("first submit: %v", got.err)
	}
	if got.res.State != controller.StateSubmitted {
		t.Fatalf("first submit state = %q, want %q", got.res.State, controller.StateSubmitted)
	}
}

func TestSubmit_TerminalStateRejectsFurtherAttempts(t *testing.T) {
	c := controller.New(
		controller.WithSchema(fixedSchema()),
		controller.WithCreator(&recordingCreator{}),
	)

	if _, err := c.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	res, err := c.Submit(context.Background(), validInput())
	if !errors.Is(err, controller.ErrAlreadySubmitted) {
		t.Fatalf("resubmit error = %v, want ErrAlreadySubmitted", err)
	}
	if res.State != controller.StateSubmitted {
		t.Fatalf("resubmit state = %q, want %q", res.State, controller.StateSubmitted)
	}
}

func TestSubmit_CreatorFailureReturnsToEditing(t *testing.T) {
	boom := errors.New("upstream unavailable")
	creator := &recordingCreator{err: boom}
	c := controller.New(
		controller.WithSchema(fixedSchema()),
		controller.WithCreator(creator),
	)

	res, err := c.Submit(context.Background(), validInput())
	if !errors.Is(err, boom) {
		t.Fatalf("submit error = %v, want wrapped %v", err, boom)
	}
	if res.State != controller.StateEditing {
		t.Fatalf("state = %q, want %q", res.State, controller.StateEditing)
	}

	// The form recovers once the collaborator does.
	creator.err = nil
	res, err = c.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if res.State != controller.StateSubmitted {
		t.Fatalf("retry state = %q, want %q", res.State, controller.StateSubmitted)
	}
}

func TestLogCreator_LogsAcceptedRequest(t *testing.T) {
	var buf bytes.Buffer
	c := controller.New(
		controller.WithSchema(fixedSchema()),
		controller.WithLogger(log.New(&buf, "", 0)),
	)

	if _, err := c.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(buf.String(), "Jane Doe") {
		t.Fatalf("log output missing request summary: %q", buf.String())
	}
}
