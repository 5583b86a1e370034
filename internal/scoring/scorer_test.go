package scoring

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/MikeSquared-Agency/churnwatch/internal/features"
	"github.com/MikeSquared-Agency/churnwatch/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testColumns = []string{
	"SeniorCitizen", "tenure", "MonthlyCharges",
	"InternetService_Fiber optic", "InternetService_No",
	"OnlineSecurity_No", "OnlineBackup_No",
	"TechSupport_No internet service", "TechSupport_Yes",
	"Contract_One year", "Contract_Two year",
}

var testCoef = []float64{0.4, -0.035, 0.012, 0.9, -0.7, 0.4, 0.27, -0.1, -0.3, -0.7, -1.4}

func testClassifier(t *testing.T) *model.Classifier {
	t.Helper()
	c, err := model.New(model.Artifact{FeatureNames: testColumns, Coef: testCoef, Intercept: -0.9})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return c
}

func testPredictor(t *testing.T) *Predictor {
	t.Helper()
	p, err := NewPredictor(testClassifier(t), DefaultThresholds(), discardLogger())
	if err != nil {
		t.Fatalf("NewPredictor: %v", err)
	}
	return p
}

func scenario() features.RawInput {
	return features.RawInput{
		Tenure:          24,
		MonthlyCharges:  70.0,
		Contract:        features.ContractMonthToMonth,
		InternetService: features.InternetFiberOptic,
		TechSupport:     features.TechSupportNoInternet,
	}
}

func TestNewPredictor_SchemaMismatch(t *testing.T) {
	c, err := model.New(model.Artifact{
		FeatureNames: []string{"tenure", "MonthlyCharges", "SeniorCitizen"},
		Coef:         []float64{-0.03, 0.01, 0.4},
	})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	_, err = NewPredictor(c, DefaultThresholds(), discardLogger())
	if !errors.Is(err, features.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestNewPredictor_DuplicateColumns(t *testing.T) {
	cols := append(append([]string(nil), testColumns...), "tenure")
	coef := append(append([]float64(nil), testCoef...), 0.1)
	c, err := model.New(model.Artifact{FeatureNames: cols, Coef: coef})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	_, err = NewPredictor(c, DefaultThresholds(), discardLogger())
	if !errors.Is(err, features.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestNewPredictor_BadThresholds(t *testing.T) {
	_, err := NewPredictor(testClassifier(t), Thresholds{Medium: 0.7, High: 0.6}, discardLogger())
	if err == nil {
		t.Fatal("expected threshold validation error")
	}
}

func TestPredict_MatchesLogistic(t *testing.T) {
	p := testPredictor(t)
	got, err := p.Predict(scenario())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// -0.9 + 24*-0.035 + 70*0.012 + 0.9 - 0.1
	want := model.Sigmoid(-0.9 - 0.84 + 0.84 + 0.9 - 0.1)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestPredict_Idempotent(t *testing.T) {
	p := testPredictor(t)
	first, err := p.Predict(scenario())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _ := p.Predict(scenario())
		if again != first {
			t.Fatalf("call %d: expected %v, got %v", i, first, again)
		}
	}
}

func TestPredict_ProbabilityInRange(t *testing.T) {
	p := testPredictor(t)
	for _, tenure := range []int{features.MinTenure, 12, features.MaxTenure} {
		for _, charges := range []float64{features.MinMonthlyCharges, 70, features.MaxMonthlyCharges} {
			for _, c := range features.ContractOptions {
				for _, is := range features.InternetOptions {
					for _, ts := range features.TechSupportOptions {
						for _, senior := range []bool{false, true} {
							in := features.RawInput{
								Tenure: tenure, MonthlyCharges: charges, Senior: senior,
								Contract: c, InternetService: is, TechSupport: ts,
							}
							prob, err := p.Predict(in)
							if err != nil {
								t.Fatalf("Predict(%+v): %v", in, err)
							}
							if prob < 0 || prob > 1 {
								t.Fatalf("Predict(%+v) = %f outside [0,1]", in, prob)
							}
						}
					}
				}
			}
		}
	}
}

func TestAssess(t *testing.T) {
	p := testPredictor(t)

	high := features.RawInput{
		Tenure: 1, MonthlyCharges: 110, Senior: true,
		Contract: features.ContractMonthToMonth, InternetService: features.InternetFiberOptic,
		TechSupport: features.TechSupportNo,
	}
	a, err := p.Assess(high)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if a.Risk != RiskHigh {
		t.Fatalf("expected high risk, got %s (p=%f)", a.Risk, a.Probability)
	}
	if a.Advisory == "" || len(a.Actions) != 2 {
		t.Errorf("high risk should carry advisory and actions: %+v", a)
	}
	if a.Label != "High Risk (Red)" || a.Color != "red" {
		t.Errorf("unexpected label/color: %s/%s", a.Label, a.Color)
	}

	low := features.RawInput{
		Tenure: 72, MonthlyCharges: 20,
		Contract: features.ContractTwoYear, InternetService: features.InternetDSL,
		TechSupport: features.TechSupportYes,
	}
	a, err = p.Assess(low)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if a.Risk != RiskLow {
		t.Fatalf("expected low risk, got %s (p=%f)", a.Risk, a.Probability)
	}
	if a.Advisory != "" || a.Actions != nil {
		t.Errorf("low risk should not carry advisory: %+v", a)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[float64]string{
		0:        "0.00%",
		0.5:      "50.00%",
		0.123456: "12.35%",
		1:        "100.00%",
	}
	for p, want := range tests {
		if got := FormatPercent(p); got != want {
			t.Errorf("FormatPercent(%v) = %s, want %s", p, got, want)
		}
	}
}

func TestExplain(t *testing.T) {
	p := testPredictor(t)
	ex, err := p.Explain(scenario(), false)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}

	prob, _ := p.Predict(scenario())
	if math.Abs(ex.Probability-prob) > 1e-12 {
		t.Errorf("explain probability %f != predict %f", ex.Probability, prob)
	}

	sum := ex.Intercept
	for _, c := range ex.Contributions {
		if c.Value == 0 {
			t.Errorf("zero-valued column %s should be omitted", c.Name)
		}
		sum += c.Weighted
	}
	if math.Abs(sum-ex.Logit) > 1e-12 {
		t.Errorf("contributions sum to %f, logit %f", sum, ex.Logit)
	}
	if len(ex.Contributions) != 4 {
		t.Errorf("expected 4 non-zero columns, got %d", len(ex.Contributions))
	}
	for i := 1; i < len(ex.Contributions); i++ {
		if math.Abs(ex.Contributions[i].Weighted) > math.Abs(ex.Contributions[i-1].Weighted) {
			t.Errorf("contributions not ordered by impact at %d", i)
		}
	}

	all, _ := p.Explain(scenario(), true)
	if len(all.Contributions) != len(testColumns) {
		t.Errorf("expected %d contributions, got %d", len(testColumns), len(all.Contributions))
	}
}
