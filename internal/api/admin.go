package api

import (
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/churnwatch/internal/features"
	"github.com/MikeSquared-Agency/churnwatch/internal/scoring"
)

type ModelHandler struct {
	predictor *scoring.Predictor
}

func NewModelHandler(p *scoring.Predictor) *ModelHandler {
	return &ModelHandler{predictor: p}
}

type ModelInfo struct {
	Version         string    `json:"version,omitempty"`
	Path            string    `json:"path,omitempty"`
	LoadedAt        time.Time `json:"loaded_at"`
	Classes         []int     `json:"classes"`
	Intercept       float64   `json:"intercept"`
	FeatureNames    []string  `json:"feature_names"`
	AssembledFrom   []string  `json:"assembled_columns"`
	MediumThreshold float64   `json:"medium_threshold"`
	HighThreshold   float64   `json:"high_threshold"`
}

// Info describes the loaded classifier and the columns the form controls.
// GET /api/v1/model
func (h *ModelHandler) Info(w http.ResponseWriter, r *http.Request) {
	m := h.predictor.Model()
	th := h.predictor.Thresholds()

	var assembled []string
	for _, c := range features.RequiredColumns() {
		assembled = append(assembled, string(c))
	}

	writeJSON(w, http.StatusOK, ModelInfo{
		Version:         m.Version(),
		Path:            m.Path(),
		LoadedAt:        m.LoadedAt(),
		Classes:         m.Classes(),
		Intercept:       m.Intercept(),
		FeatureNames:    h.predictor.Schema().Names(),
		AssembledFrom:   assembled,
		MediumThreshold: th.Medium,
		HighThreshold:   th.High,
	})
}
