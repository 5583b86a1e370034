package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/churnwatch/internal/features"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type formView struct {
	Input       features.RawInput
	SeniorValue string

	SeniorOptions      []string
	ContractOptions    []features.Contract
	InternetOptions    []features.InternetService
	TechSupportOptions []features.TechSupport

	MinTenure         int
	MaxTenure         int
	MinMonthlyCharges float64
	MaxMonthlyCharges float64

	Result *PredictionResponse
	Error  string
}

func newFormView(in features.RawInput) formView {
	senior := "No"
	if in.Senior {
		senior = "Yes"
	}
	return formView{
		Input:              in,
		SeniorValue:        senior,
		SeniorOptions:      features.SeniorOptions,
		ContractOptions:    features.ContractOptions,
		InternetOptions:    features.InternetOptions,
		TechSupportOptions: features.TechSupportOptions,
		MinTenure:          features.MinTenure,
		MaxTenure:          features.MaxTenure,
		MinMonthlyCharges:  features.MinMonthlyCharges,
		MaxMonthlyCharges:  features.MaxMonthlyCharges,
	}
}

type FormHandler struct {
	assessor *assessor
	logger   *slog.Logger
}

func NewFormHandler(a *assessor, logger *slog.Logger) *FormHandler {
	return &FormHandler{assessor: a, logger: logger}
}

// Index renders the empty form with default values.
// GET /
func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, newFormView(features.DefaultInput()))
}

// Submit scores the submitted profile and renders the result below the form.
// POST /predict
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		view := newFormView(features.DefaultInput())
		view.Error = "could not read form"
		h.render(w, http.StatusBadRequest, view)
		return
	}

	in, err := parseForm(r.PostForm)
	if err != nil {
		view := newFormView(in)
		view.Error = err.Error()
		h.render(w, http.StatusBadRequest, view)
		return
	}

	view := newFormView(in)
	resp, err := h.assessor.assess(in, "form")
	if err != nil {
		view.Error = err.Error()
		h.render(w, statusFor(err), view)
		return
	}
	view.Result = resp
	h.render(w, http.StatusOK, view)
}

func (h *FormHandler) render(w http.ResponseWriter, status int, view formView) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// parseForm reads the six controls. Fields left blank keep their defaults;
// the returned input is usable for re-rendering even when err is set.
func parseForm(form url.Values) (features.RawInput, error) {
	in := features.DefaultInput()

	if v := strings.TrimSpace(form.Get("tenure")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("%w: tenure %q is not a whole number", features.ErrInvalidInput, v)
		}
		in.Tenure = n
	}
	if v := strings.TrimSpace(form.Get("monthly_charges")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, fmt.Errorf("%w: monthly charges %q is not a number", features.ErrInvalidInput, v)
		}
		in.MonthlyCharges = f
	}

	req := PredictRequest{
		SeniorCitizen:   form.Get("senior_citizen"),
		Contract:        form.Get("contract"),
		InternetService: form.Get("internet_service"),
		TechSupport:     form.Get("tech_support"),
		Tenure:          &in.Tenure,
		MonthlyCharges:  &in.MonthlyCharges,
	}
	return req.ToInput()
}
