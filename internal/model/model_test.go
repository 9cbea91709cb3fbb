package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-openaccount/internal/model"
)

func TestAccountOpening_ShapeAndOrder(t *testing.T) {
	form := model.AccountOpening()

	if form.OperationID != "openAccount" {
		t.Fatalf("operation id = %q, want %q", form.OperationID, "openAccount")
	}
	if form.Endpoint != "/submit" || form.Method != "POST" {
		t.Fatalf("endpoint/method = %q %q, want /submit POST", form.Endpoint, form.Method)
	}

	wantOrder := []string{
		"fullName", "email", "phone", "dateOfBirth",
		"accountType", "initialDeposit", "currency",
		"streetAddress", "city", "zipCode", "termsAccepted",
	}
	var gotOrder []string
	for _, f := range form.Fields {
		gotOrder = append(gotOrder, f.Name)
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	for _, f := range form.Fields {
		if !f.Required {
			t.Fatalf("field %q must be required", f.Name)
		}
	}

	if err := model.Validate(form); err != nil {
		t.Fatalf("canonical form failed validation: %v", err)
	}
}

func TestAccountOpening_ConstraintsMirrorRules(t *testing.T) {
	form := model.AccountOpening()

	deposit, ok := form.Field("initialDeposit")
	if !ok {
		t.Fatal("missing initialDeposit field")
	}
	if deposit.Type != model.FieldTypeNumber {
		t.Fatalf("deposit type = %q, want number", deposit.Type)
	}
	wantRules := []model.ValidationRule{
		{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "100"}},
	}
	if diff := cmp.Diff(wantRules, deposit.Validations); diff != "" {
		t.Fatalf("deposit rules mismatch (-want +got):\n%s", diff)
	}

	phone, _ := form.Field("phone")
	if phone.Format != "tel" {
		t.Fatalf("phone format = %q, want tel", phone.Format)
	}
	wantRules = []model.ValidationRule{
		{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "[0-9]{10}"}},
		{Kind: model.ValidationRuleLength, Params: map[string]string{"value": "10"}},
	}
	if diff := cmp.Diff(wantRules, phone.Validations); diff != "" {
		t.Fatalf("phone rules mismatch (-want +got):\n%s", diff)
	}

	currency, _ := form.Field("currency")
	if diff := cmp.Diff([]any{"USD", "EUR", "LKR"}, currency.Enum); diff != "" {
		t.Fatalf("currency enum mismatch (-want +got):\n%s", diff)
	}

	accountType, _ := form.Field("accountType")
	if diff := cmp.Diff([]any{"savings", "current"}, accountType.Enum); diff != "" {
		t.Fatalf("account type enum mismatch (-want +got):\n%s", diff)
	}

	dob, _ := form.Field("dateOfBirth")
	if dob.Format != "date" {
		t.Fatalf("dateOfBirth format = %q, want date", dob.Format)
	}
	wantRules = []model.ValidationRule{
		{Kind: model.ValidationRuleMinAge, Params: map[string]string{"value": "18"}},
	}
	if diff := cmp.Diff(wantRules, dob.Validations); diff != "" {
		t.Fatalf("dateOfBirth rules mismatch (-want +got):\n%s", diff)
	}

	terms, _ := form.Field("termsAccepted")
	if terms.Type != model.FieldTypeBoolean {
		t.Fatalf("terms type = %q, want boolean", terms.Type)
	}
}

func TestAccountOpening_WithLabeler(t *testing.T) {
	form := model.AccountOpening(model.WithLabeler(strings.ToUpper))

	field, _ := form.Field("fullName")
	if field.Label != "FULLNAME" {
		t.Fatalf("label = %q, want FULLNAME", field.Label)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"fullName", "Full name"},
		{"dateOfBirth", "Date of birth"},
		{"zip_code", "Zip code"},
		{"initialDeposit", "Initial deposit"},
		{"termsAccepted", "Terms accepted"},
		{"address2", "Address 2"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := model.DefaultLabeler(tc.in); got != tc.want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidate_RejectsBrokenForms(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.FormModel)
	}{
		{"missing operation id", func(f *model.FormModel) { f.OperationID = "" }},
		{"missing endpoint", func(f *model.FormModel) { f.Endpoint = "" }},
		{"missing method", func(f *model.FormModel) { f.Method = "" }},
		{"no fields", func(f *model.FormModel) { f.Fields = nil }},
		{"duplicate field", func(f *model.FormModel) { f.Fields = append(f.Fields, f.Fields[0]) }},
		{"unknown type", func(f *model.FormModel) { f.Fields[0].Type = "blob" }},
		{"unknown section", func(f *model.FormModel) { f.Fields[0].Section = "missing" }},
		{"duplicate section", func(f *model.FormModel) { f.Sections = append(f.Sections, f.Sections[0]) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := model.AccountOpening()
			tc.mutate(&form)
			if err := model.Validate(form); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestFormModel_SectionFields(t *testing.T) {
	form := model.AccountOpening()

	var names []string
	for _, f := range form.SectionFields(model.SectionAddress) {
		names = append(names, f.Name)
	}
	want := []string{"streetAddress", "city", "zipCode"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("address fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormModel_CloneIsDeep(t *testing.T) {
	form := model.AccountOpening()
	clone := form.Clone()

	clone.Fields[0].Label = "changed"
	clone.Fields[2].Validations[0].Params["pattern"] = "changed"
	clone.Sections[0].Title = "changed"

	if form.Fields[0].Label == "changed" {
		t.Fatal("clone shares field storage with original")
	}
	if form.Fields[2].Validations[0].Params["pattern"] == "changed" {
		t.Fatal("clone shares validation params with original")
	}
	if form.Sections[0].Title == "changed" {
		t.Fatal("clone shares section storage with original")
	}
}
