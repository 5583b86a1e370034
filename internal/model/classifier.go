package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"
)

var (
	// ErrModelUnavailable means the artifact could not be found, read or decoded.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrFeatureCount is returned when a row's width differs from the coefficient vector.
	ErrFeatureCount = errors.New("feature count mismatch")
)

// Artifact is the on-disk form of a trained binary logistic regression.
type Artifact struct {
	FeatureNames []string  `json:"feature_names_in"`
	Coef         []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
	Classes      []int     `json:"classes,omitempty"`
	Version      string    `json:"version,omitempty"`
}

// Classifier is a loaded, read-only logistic regression.
type Classifier struct {
	featureNames []string
	coef         []float64
	intercept    float64
	classes      []int
	positive     int
	version      string
	path         string
	loadedAt     time.Time
}

// Load reads and validates the artifact at path. Every failure wraps
// ErrModelUnavailable.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrModelUnavailable, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrModelUnavailable, path, err)
	}

	if err := validateArtifact(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelUnavailable, path, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrModelUnavailable, path, err)
	}

	c, err := New(a)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	c.path = path
	return c, nil
}

// New builds a Classifier from an in-memory artifact.
func New(a Artifact) (*Classifier, error) {
	if len(a.FeatureNames) == 0 {
		return nil, fmt.Errorf("%w: artifact declares no input columns", ErrModelUnavailable)
	}
	if len(a.Coef) != len(a.FeatureNames) {
		return nil, fmt.Errorf("%w: %d coefficients for %d columns", ErrModelUnavailable, len(a.Coef), len(a.FeatureNames))
	}
	for i, w := range a.Coef {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: coefficient for %q is not finite", ErrModelUnavailable, a.FeatureNames[i])
		}
	}
	if math.IsNaN(a.Intercept) || math.IsInf(a.Intercept, 0) {
		return nil, fmt.Errorf("%w: intercept is not finite", ErrModelUnavailable)
	}

	classes := a.Classes
	if len(classes) == 0 {
		classes = []int{0, 1}
	}
	if len(classes) != 2 {
		return nil, fmt.Errorf("%w: binary classifier expected, got %d classes", ErrModelUnavailable, len(classes))
	}
	positive := -1
	for i, cl := range classes {
		if cl == 1 {
			positive = i
		}
	}
	if positive < 0 || classes[0] == classes[1] {
		return nil, fmt.Errorf("%w: classes %v lack a positive class", ErrModelUnavailable, classes)
	}

	c := &Classifier{
		featureNames: append([]string(nil), a.FeatureNames...),
		coef:         append([]float64(nil), a.Coef...),
		intercept:    a.Intercept,
		classes:      append([]int(nil), classes...),
		positive:     positive,
		version:      a.Version,
		loadedAt:     time.Now(),
	}
	return c, nil
}

// FeatureNames returns the declared input columns in training order.
func (c *Classifier) FeatureNames() []string {
	return append([]string(nil), c.featureNames...)
}

func (c *Classifier) Coefficients() []float64 {
	return append([]float64(nil), c.coef...)
}

func (c *Classifier) Intercept() float64 { return c.intercept }
func (c *Classifier) Classes() []int { return append([]int(nil), c.classes...) }
func (c *Classifier) Version() string { return c.version }
func (c *Classifier) Path() string { return c.path }
func (c *Classifier) LoadedAt() time.Time { return c.loadedAt }
func (c *Classifier) NumFeatures() int { return len(c.coef) }

// DecisionFunction returns the logit w·x + b for one row.
func (c *Classifier) DecisionFunction(row []float64) (float64, error) {
	if len(row) != len(c.coef) {
		return 0, fmt.Errorf("%w: expected %d, got %d", ErrFeatureCount, len(c.coef), len(row))
	}
	z := c.intercept
	for i, v := range row {
		z += c.coef[i] * v
	}
	return z, nil
}

// PredictProba returns per-class probabilities ordered like Classes.
func (c *Classifier) PredictProba(row []float64) ([]float64, error) {
	z, err := c.DecisionFunction(row)
	if err != nil {
		return nil, err
	}
	p := Sigmoid(z)
	out := make([]float64, 2)
	out[c.positive] = p
	out[1-c.positive] = 1 - p
	return out, nil
}

// PositiveProba returns the probability of class 1.
func (c *Classifier) PositiveProba(row []float64) (float64, error) {
	proba, err := c.PredictProba(row)
	if err != nil {
		return 0, err
	}
	return proba[c.positive], nil
}

// Sigmoid is the logistic function, split by sign so large |z| does not overflow.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}
