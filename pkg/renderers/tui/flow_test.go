package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/controller"
	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/schema"
)

type recordingCreator struct {
	requests []account.Request
	err      error
}

func (c *recordingCreator) CreateAccount(_ context.Context, req account.Request) error {
	if c.err != nil {
		return c.err
	}
	c.requests = append(c.requests, req)
	return nil
}

func TestFlowRunSubmitsAcceptedRequest(t *testing.T) {
	driver := happyDriver()
	creator := &recordingCreator{}
	ctrl := controller.New(controller.WithCreator(creator))

	flow, err := NewFlow(ctrl, model.AccountOpening(), WithFlowPromptDriver(driver))
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}

	result, err := flow.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.State != controller.StateSubmitted {
		t.Fatalf("state = %s, want submitted", result.State)
	}
	if len(creator.requests) != 1 {
		t.Fatalf("creator calls = %d, want 1", len(creator.requests))
	}

	req := creator.requests[0]
	if req.FullName != "Jane Doe" {
		t.Errorf("fullName = %q", req.FullName)
	}
	if req.AccountType != account.TypeSavings {
		t.Errorf("accountType = %s", req.AccountType)
	}
	if req.InitialDeposit != 250.5 {
		t.Errorf("initialDeposit = %v", req.InitialDeposit)
	}
	if req.Currency != account.CurrencyUSD {
		t.Errorf("currency = %s", req.Currency)
	}
	if !req.TermsAccepted {
		t.Error("termsAccepted = false")
	}

	var announced bool
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, "Application received") {
			announced = true
		}
	}
	if !announced {
		t.Errorf("success never announced, info = %v", driver.infoMessages)
	}
}

func TestFlowRepromptsOnlyRejectedFields(t *testing.T) {
	// The controller judges age against a clock pinned before the first
	// answer's 18th birthday, so the prompt-side check passes but the
	// submission is rejected; the second answer satisfies both.
	pinned := time.Date(2000, time.January, 10, 0, 0, 0, 0, time.UTC)
	creator := &recordingCreator{}
	ctrl := controller.New(
		controller.WithCreator(creator),
		controller.WithSchema(schema.New(schema.WithClock(func() time.Time { return pinned }))),
	)

	driver := happyDriver()
	driver.inputs = append(driver.inputs, "1975-06-01")

	flow, err := NewFlow(ctrl, model.AccountOpening(), WithFlowPromptDriver(driver))
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}

	result, err := flow.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.State != controller.StateSubmitted {
		t.Fatalf("state = %s, want submitted", result.State)
	}
	if driver.inputPos != 9 {
		t.Fatalf("inputs consumed = %d, want 9 (8 first round + 1 re-prompt)", driver.inputPos)
	}
	if driver.selectPos != 2 || driver.confirmPos != 1 {
		t.Fatalf("selects/confirms re-run: %d selects, %d confirms", driver.selectPos, driver.confirmPos)
	}

	var rejected bool
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, "you must be at least 18 years old") {
			rejected = true
		}
	}
	if !rejected {
		t.Fatalf("age rejection never surfaced, info = %v", driver.infoMessages)
	}

	if len(creator.requests) != 1 {
		t.Fatalf("creator calls = %d, want 1", len(creator.requests))
	}
	wantDOB := time.Date(1975, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !creator.requests[0].DateOfBirth.Equal(wantDOB) {
		t.Errorf("dateOfBirth = %v, want %v", creator.requests[0].DateOfBirth, wantDOB)
	}
}

func TestFlowSurfacesCreatorFailure(t *testing.T) {
	creator := &recordingCreator{err: errors.New("ledger unavailable")}
	ctrl := controller.New(controller.WithCreator(creator))

	flow, err := NewFlow(ctrl, model.AccountOpening(), WithFlowPromptDriver(happyDriver()))
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}

	result, err := flow.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ledger unavailable") {
		t.Fatalf("err = %v, want creator failure", err)
	}
	if result.State != controller.StateEditing {
		t.Errorf("state = %s, want editing", result.State)
	}
	if ctrl.State() != controller.StateEditing {
		t.Errorf("controller state = %s, want editing", ctrl.State())
	}
}

func TestFlowPropagatesAbort(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	ctrl := controller.New(controller.WithCreator(&recordingCreator{}))

	flow, err := NewFlow(ctrl, model.AccountOpening(), WithFlowPromptDriver(driver))
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}

	if _, err := flow.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
}

func TestFlowRequiresController(t *testing.T) {
	if _, err := NewFlow(nil, model.AccountOpening()); err == nil {
		t.Fatal("expected error for nil controller")
	}
}
