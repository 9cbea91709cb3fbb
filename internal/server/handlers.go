package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/controller"
	"github.com/goliatone/go-openaccount/pkg/form"
	"github.com/goliatone/go-openaccount/pkg/openapi"
	"github.com/goliatone/go-openaccount/pkg/render"
)

const requestTimeout = 5 * time.Second

// formPage carries the per-request state a form render needs.
type formPage struct {
	Status     int
	Values     map[string]any
	Errors     map[string][]string
	FormErrors []string
	Hidden     map[string]string
	Success    bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	hidden, err := s.csrfHidden(w, r)
	if err != nil {
		s.logger.Printf("issue csrf token: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.renderForm(w, r, formPage{Status: http.StatusOK, Hidden: hidden})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	if !s.csrfValid(r) {
		http.Error(w, "invalid or missing csrf token", http.StatusForbidden)
		return
	}

	input := formInputFromRequest(r)
	ctrl := controller.New(controller.WithCreator(s.creator), controller.WithLogger(s.logger))

	result, err := ctrl.Submit(r.Context(), input)
	if err != nil {
		s.logger.Printf("submit: %v", err)
		hidden, _ := s.csrfHidden(w, r)
		s.renderForm(w, r, formPage{
			Status:     http.StatusBadGateway,
			Values:     input.Values(),
			FormErrors: []string{"We could not process your application. Please try again."},
			Hidden:     hidden,
		})
		return
	}

	if result.State == controller.StateSubmitted {
		s.renderForm(w, r, formPage{Status: http.StatusOK, Success: true})
		return
	}

	hidden, _ := s.csrfHidden(w, r)
	s.renderForm(w, r, formPage{
		Status: http.StatusUnprocessableEntity,
		Values: input.Values(),
		Errors: render.FromValidation(result.Errors),
		Hidden: hidden,
	})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer func() {
		// Exhaust the body to help connection reuse.
		_, _ = io.Copy(io.Discard, r.Body)
		_ = r.Body.Close()
	}()

	var input account.FormInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := ensureEOF(decoder); err != nil {
		writeError(w, http.StatusBadRequest, "unexpected trailing data")
		return
	}

	ctrl := controller.New(controller.WithCreator(s.creator), controller.WithLogger(s.logger))

	result, err := ctrl.Submit(ctx, input)
	if err != nil {
		s.logger.Printf("create account: %v", err)
		writeError(w, http.StatusBadGateway, "account creation unavailable")
		return
	}

	if result.State != controller.StateSubmitted {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": result.Errors})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "accepted"})
}

func (s *Server) handleDescribeForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	renderer, err := s.generator.Renderer("jsonform")
	if err != nil {
		s.logger.Printf("describe form: %v", err)
		writeError(w, http.StatusInternalServerError, "form description unavailable")
		return
	}

	output, err := s.generator.Generate(r.Context(), form.Request{
		Renderer: renderer.Name(),
		Action:   openapi.PathAccounts,
		Method:   http.MethodPost,
	})
	if err != nil {
		s.logger.Printf("describe form: %v", err)
		writeError(w, http.StatusInternalServerError, "form description unavailable")
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(output)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.specOnce.Do(func() {
		model, err := s.generator.Model()
		if err != nil {
			s.specErr = err
			return
		}
		var options []openapi.Option
		if s.cfg.PublicURL != "" {
			options = append(options, openapi.WithServer(s.cfg.PublicURL))
		}
		doc, err := openapi.Describe(model, options...)
		if err != nil {
			s.specErr = err
			return
		}
		s.specJSON, s.specErr = openapi.JSON(doc)
	})
	if s.specErr != nil {
		s.logger.Printf("openapi document: %v", s.specErr)
		writeError(w, http.StatusInternalServerError, "document unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(s.specJSON)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// renderForm produces the HTML surface through the generator's default
// renderer and writes it with the given status.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, page formPage) {
	renderer, err := s.generator.Renderer("")
	if err != nil {
		s.logger.Printf("resolve renderer: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	output, err := s.generator.Generate(r.Context(), form.Request{
		Action:     "/submit",
		Method:     http.MethodPost,
		Values:     page.Values,
		Errors:     page.Errors,
		FormErrors: page.FormErrors,
		Hidden:     page.Hidden,
		Success:    page.Success,
	})
	if err != nil {
		s.logger.Printf("render form: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(page.Status)
	_, _ = w.Write(output)
}

// formInputFromRequest binds a parsed form post onto the raw input record.
// Values arrive as-is; validation decides what they mean.
func formInputFromRequest(r *http.Request) account.FormInput {
	return account.FormInput{
		FullName:       strings.TrimSpace(r.PostFormValue(account.FieldFullName)),
		Email:          strings.TrimSpace(r.PostFormValue(account.FieldEmail)),
		Phone:          strings.TrimSpace(r.PostFormValue(account.FieldPhone)),
		DateOfBirth:    strings.TrimSpace(r.PostFormValue(account.FieldDateOfBirth)),
		AccountType:    strings.TrimSpace(r.PostFormValue(account.FieldAccountType)),
		InitialDeposit: strings.TrimSpace(r.PostFormValue(account.FieldInitialDeposit)),
		Currency:       strings.TrimSpace(r.PostFormValue(account.FieldCurrency)),
		StreetAddress:  strings.TrimSpace(r.PostFormValue(account.FieldStreetAddress)),
		City:           strings.TrimSpace(r.PostFormValue(account.FieldCity)),
		ZipCode:        strings.TrimSpace(r.PostFormValue(account.FieldZipCode)),
		TermsAccepted:  checkboxOn(r.PostFormValue(account.FieldTermsAccepted)),
	}
}

// checkboxOn interprets the value an HTML checkbox submits when ticked.
func checkboxOn(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
