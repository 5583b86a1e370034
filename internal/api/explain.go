package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/churnwatch/internal/scoring"
)

type ExplainHandler struct {
	predictor *scoring.Predictor
}

func NewExplainHandler(p *scoring.Predictor) *ExplainHandler {
	return &ExplainHandler{predictor: p}
}

// Explain returns the per-column breakdown of one prediction.
// POST /api/v1/explain?include_zero=true
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	in, err := req.ToInput()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	includeZero := r.URL.Query().Get("include_zero") == "true"
	ex, err := h.predictor.Explain(in, includeZero)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	resp := map[string]interface{}{
		"intercept":     ex.Intercept,
		"logit":         ex.Logit,
		"probability":   ex.Probability,
		"percent":       scoring.FormatPercent(ex.Probability),
		"risk":          ex.Risk,
		"contributions": ex.Contributions,
		"model_version": h.predictor.Model().Version(),
	}
	writeJSON(w, http.StatusOK, resp)
}
