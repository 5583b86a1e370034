package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/churnwatch/internal/features"
	"github.com/MikeSquared-Agency/churnwatch/internal/hermes"
	"github.com/MikeSquared-Agency/churnwatch/internal/metrics"
	"github.com/MikeSquared-Agency/churnwatch/internal/scoring"
)

const customerSuccessTeam = "customer-success"

// PredictRequest is the JSON form of the six customer attributes. Omitted
// fields take the form defaults.
type PredictRequest struct {
	Tenure          *int     `json:"tenure,omitempty"`
	MonthlyCharges  *float64 `json:"monthly_charges,omitempty"`
	SeniorCitizen   string   `json:"senior_citizen,omitempty"`
	Contract        string   `json:"contract,omitempty"`
	InternetService string   `json:"internet_service,omitempty"`
	TechSupport     string   `json:"tech_support,omitempty"`
}

func (req PredictRequest) ToInput() (features.RawInput, error) {
	in := features.DefaultInput()
	if req.Tenure != nil {
		in.Tenure = *req.Tenure
	}
	if req.MonthlyCharges != nil {
		in.MonthlyCharges = *req.MonthlyCharges
	}
	if req.SeniorCitizen != "" {
		senior, err := features.ParseSenior(req.SeniorCitizen)
		if err != nil {
			return in, err
		}
		in.Senior = senior
	}
	if req.Contract != "" {
		c, err := features.ParseContract(req.Contract)
		if err != nil {
			return in, err
		}
		in.Contract = c
	}
	if req.InternetService != "" {
		is, err := features.ParseInternetService(req.InternetService)
		if err != nil {
			return in, err
		}
		in.InternetService = is
	}
	if req.TechSupport != "" {
		ts, err := features.ParseTechSupport(req.TechSupport)
		if err != nil {
			return in, err
		}
		in.TechSupport = ts
	}
	return in, in.Validate()
}

type PredictionResponse struct {
	PredictionID string `json:"prediction_id"`
	scoring.Assessment
	ModelVersion string `json:"model_version,omitempty"`
}

// assessor runs one prediction and handles everything around it that the
// predictor itself stays free of: metrics, IDs and events.
type assessor struct {
	predictor *scoring.Predictor
	hermes    hermes.Client
	logger    *slog.Logger
}

func (a *assessor) assess(in features.RawInput, source string) (*PredictionResponse, error) {
	start := time.Now()
	result, err := a.predictor.Assess(in)
	metrics.PredictionDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PredictionErrors.WithLabelValues(source, errorKind(err)).Inc()
		a.logger.Error("prediction failed", "source", source, "error", err)
		return nil, err
	}

	metrics.PredictionsTotal.WithLabelValues(source, string(result.Risk)).Inc()
	metrics.PredictionProbability.Observe(result.Probability)

	resp := &PredictionResponse{
		PredictionID: uuid.NewString(),
		Assessment:   result,
		ModelVersion: a.predictor.Model().Version(),
	}
	a.logger.Info("customer assessed",
		"prediction_id", resp.PredictionID,
		"source", source,
		"probability", resp.Probability,
		"risk", resp.Risk,
	)
	a.publish(resp, in, source)
	return resp, nil
}

func (a *assessor) publish(resp *PredictionResponse, in features.RawInput, source string) {
	if a.hermes == nil {
		return
	}
	profile := hermes.CustomerProfile{
		Tenure:          in.Tenure,
		MonthlyCharges:  in.MonthlyCharges,
		SeniorCitizen:   in.Senior,
		Contract:        string(in.Contract),
		InternetService: string(in.InternetService),
		TechSupport:     string(in.TechSupport),
	}
	now := time.Now().UTC()

	if err := a.hermes.Publish(hermes.SubjectRiskAssessed(resp.PredictionID), hermes.RiskAssessedEvent{
		PredictionID: resp.PredictionID,
		Probability:  resp.Probability,
		Risk:         string(resp.Risk),
		ModelVersion: resp.ModelVersion,
		Source:       source,
		Profile:      profile,
		Timestamp:    now,
	}); err != nil {
		metrics.EventsPublishFailed.WithLabelValues("risk_assessed").Inc()
		a.logger.Warn("failed to publish risk event", "prediction_id", resp.PredictionID, "error", err)
	}

	if resp.Risk != scoring.RiskHigh {
		return
	}
	if err := a.hermes.Publish(hermes.SubjectRetentionRequested(resp.PredictionID), hermes.RetentionRequestedEvent{
		PredictionID:       resp.PredictionID,
		Probability:        resp.Probability,
		AssignTo:           customerSuccessTeam,
		RecommendedActions: resp.Actions,
		Profile:            profile,
		Timestamp:          now,
	}); err != nil {
		metrics.EventsPublishFailed.WithLabelValues("retention_requested").Inc()
		a.logger.Warn("failed to publish retention request", "prediction_id", resp.PredictionID, "error", err)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, features.ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, features.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func statusFor(err error) int {
	if errors.Is(err, features.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
