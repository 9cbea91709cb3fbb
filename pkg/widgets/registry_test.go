package widgets

import (
	"testing"

	"github.com/goliatone/go-openaccount/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:   model.FieldTypeBoolean,
		Widget: "custom-switch",
	}

	if got, ok := reg.Resolve(field); !ok || got != "custom-switch" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_MetadataHintWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type: model.FieldTypeString,
		Metadata: map[string]string{
			"widget": "masked-input",
		},
	}

	if got, ok := reg.Resolve(field); !ok || got != "masked-input" {
		t.Fatalf("expected metadata widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{
			name:   "boolean checkbox",
			field:  model.Field{Type: model.FieldTypeBoolean},
			expect: WidgetCheckbox,
		},
		{
			name: "enum select",
			field: model.Field{
				Type: model.FieldTypeString,
				Enum: []any{"savings", "current"},
			},
			expect: WidgetSelect,
		},
		{
			name:   "number input",
			field:  model.Field{Type: model.FieldTypeNumber},
			expect: WidgetNumber,
		},
		{
			name: "date input",
			field: model.Field{
				Type:   model.FieldTypeString,
				Format: "date",
			},
			expect: WidgetDate,
		},
		{
			name: "email input",
			field: model.Field{
				Type:   model.FieldTypeString,
				Format: "email",
			},
			expect: WidgetEmail,
		},
		{
			name: "tel input",
			field: model.Field{
				Type:   model.FieldTypeString,
				Format: "tel",
			},
			expect: WidgetTel,
		},
		{
			name: "textarea via rows metadata",
			field: model.Field{
				Type:     model.FieldTypeString,
				Metadata: map[string]string{"rows": "4"},
			},
			expect: WidgetTextarea,
		},
		{
			name:   "plain string falls back to text",
			field:  model.Field{Type: model.FieldTypeString},
			expect: WidgetText,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("custom", 999, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	got, ok := reg.Resolve(model.Field{Type: model.FieldTypeBoolean})
	if !ok || got != "custom" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestDecorate_AccountOpeningForm(t *testing.T) {
	reg := NewRegistry()

	form := model.AccountOpening()
	if err := reg.Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	want := map[string]string{
		"fullName":       WidgetText,
		"email":          WidgetEmail,
		"phone":          WidgetTel,
		"dateOfBirth":    WidgetDate,
		"accountType":    WidgetSelect,
		"initialDeposit": WidgetNumber,
		"currency":       WidgetSelect,
		"streetAddress":  WidgetText,
		"city":           WidgetText,
		"zipCode":        WidgetText,
		"termsAccepted":  WidgetCheckbox,
	}

	for name, widget := range want {
		field, ok := form.Field(name)
		if !ok {
			t.Fatalf("field %q not found", name)
		}
		if field.Widget != widget {
			t.Fatalf("field %q widget: want %q, got %q", name, widget, field.Widget)
		}
	}
}

func TestDecorate_KeepsExistingWidget(t *testing.T) {
	reg := NewRegistry()

	form := model.FormModel{
		Fields: []model.Field{
			{Name: "notes", Type: model.FieldTypeString, Widget: "markdown"},
		},
	}
	if err := reg.Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if form.Fields[0].Widget != "markdown" {
		t.Fatalf("existing widget overwritten: %q", form.Fields[0].Widget)
	}
}

func TestNames_ListsBuiltinsSorted(t *testing.T) {
	reg := NewRegistry()

	want := []string{
		WidgetCheckbox, WidgetDate, WidgetEmail, WidgetNumber,
		WidgetSelect, WidgetTel, WidgetText, WidgetTextarea,
	}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
}

func TestNames_IncludesRegistrationsOnce(t *testing.T) {
	reg := NewRegistry()
	match := func(model.Field) bool { return false }
	reg.Register("slider", 10, match)
	reg.Register("slider", 20, match)

	count := 0
	for _, name := range reg.Names() {
		if name == "slider" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("slider listed %d times", count)
	}
}
