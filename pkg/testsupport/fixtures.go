package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-openaccount/pkg/account"
)

// Now is the frozen reference instant used across tests: 2024-06-15 UTC.
var Now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// FrozenClock returns a clock function pinned to the supplied instant.
func FrozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// ValidInput returns a submission that passes every validation rule when
// checked against the Now instant.
func ValidInput() account.FormInput {
	return account.FormInput{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "1234567890",
		DateOfBirth:    "1990-05-10",
		AccountType:    "savings",
		InitialDeposit: "250.50",
		Currency:       "USD",
		StreetAddress:  "1 Main St",
		City:           "Springfield",
		ZipCode:        "12345",
		TermsAccepted:  true,
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents. Tests
// can assert the renderer returns and writes the same payload without
// duplicating buffer setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
