package scoring

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/churnwatch/internal/features"
	"github.com/MikeSquared-Agency/churnwatch/internal/model"
)

// Assessment is the full outcome of one prediction.
type Assessment struct {
	Probability float64   `json:"probability"`
	Percent     string    `json:"percent"`
	Risk        RiskLevel `json:"risk"`
	Label       string    `json:"label"`
	Color       string    `json:"color"`
	Advisory    string    `json:"advisory,omitempty"`
	Actions     []string  `json:"recommended_actions,omitempty"`
}

// Predictor assembles feature rows against the classifier's schema and
// scores them. It holds only read-only state and is safe to share.
type Predictor struct {
	model      *model.Classifier
	schema     *features.Schema
	thresholds Thresholds
	logger     *slog.Logger
}

// NewPredictor derives the feature schema from the classifier and checks
// that every column the assembler writes is declared. A classifier trained
// on a different schema fails here with ErrSchemaMismatch.
func NewPredictor(m *model.Classifier, thresholds Thresholds, logger *slog.Logger) (*Predictor, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	schema, err := features.NewSchema(m.FeatureNames())
	if err != nil {
		return nil, fmt.Errorf("derive schema: %w", err)
	}
	if err := schema.Require(features.RequiredColumns()...); err != nil {
		return nil, fmt.Errorf("classifier columns: %w", err)
	}
	return &Predictor{
		model:      m,
		schema:     schema,
		thresholds: thresholds,
		logger:     logger,
	}, nil
}

func (p *Predictor) Model() *model.Classifier { return p.model }

func (p *Predictor) Schema() *features.Schema { return p.schema }

func (p *Predictor) Thresholds() Thresholds { return p.thresholds }

// Assemble builds the feature row for in.
func (p *Predictor) Assemble(in features.RawInput) (features.Row, error) {
	row, err := features.Assemble(p.schema, in)
	if err != nil {
		return features.Row{}, err
	}
	if row.Len() != p.model.NumFeatures() {
		return features.Row{}, &features.SchemaMismatchError{Expected: p.model.NumFeatures(), Got: row.Len()}
	}
	return row, nil
}

// Predict returns the churn probability for in.
func (p *Predictor) Predict(in features.RawInput) (float64, error) {
	row, err := p.Assemble(in)
	if err != nil {
		return 0, err
	}
	prob, err := p.model.PositiveProba(row.Values())
	if err != nil {
		if errors.Is(err, model.ErrFeatureCount) {
			return 0, fmt.Errorf("%w: %v", features.ErrSchemaMismatch, err)
		}
		return 0, err
	}
	p.logger.Debug("prediction computed", "probability", prob, "tenure", in.Tenure, "contract", in.Contract)
	return prob, nil
}

// Assess predicts and buckets the result.
func (p *Predictor) Assess(in features.RawInput) (Assessment, error) {
	prob, err := p.Predict(in)
	if err != nil {
		return Assessment{}, err
	}
	risk := p.thresholds.Classify(prob)
	return Assessment{
		Probability: prob,
		Percent:     FormatPercent(prob),
		Risk:        risk,
		Label:       risk.Label(),
		Color:       risk.Color(),
		Advisory:    Advisory(risk),
		Actions:     RetentionActions(risk),
	}, nil
}

// FormatPercent renders p as a percentage with two decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
