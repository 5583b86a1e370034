package scoring

import (
	"sort"

	"github.com/MikeSquared-Agency/churnwatch/internal/features"
	"github.com/MikeSquared-Agency/churnwatch/internal/model"
)

// Contribution captures one column's share of the logit.
type Contribution struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Coefficient float64 `json:"coefficient"`
	Weighted    float64 `json:"weighted"`
}

// Explanation breaks one prediction down into per-column contributions.
type Explanation struct {
	Intercept     float64        `json:"intercept"`
	Logit         float64        `json:"logit"`
	Probability   float64        `json:"probability"`
	Risk          RiskLevel      `json:"risk"`
	Contributions []Contribution `json:"contributions"`
}

// Explain scores in and reports every column's weighted contribution.
// Contributions are ordered by absolute impact, largest first; zero-valued
// columns are dropped unless includeZero is set.
func (p *Predictor) Explain(in features.RawInput, includeZero bool) (Explanation, error) {
	row, err := p.Assemble(in)
	if err != nil {
		return Explanation{}, err
	}
	names := row.Names()
	values := row.Values()
	coef := p.model.Coefficients()

	logit := p.model.Intercept()
	contribs := make([]Contribution, 0, len(names))
	for i, name := range names {
		w := values[i] * coef[i]
		logit += w
		if values[i] == 0 && !includeZero {
			continue
		}
		contribs = append(contribs, Contribution{
			Name:        name,
			Value:       values[i],
			Coefficient: coef[i],
			Weighted:    w,
		})
	}
	sort.SliceStable(contribs, func(i, j int) bool {
		return abs(contribs[i].Weighted) > abs(contribs[j].Weighted)
	})

	prob := model.Sigmoid(logit)
	return Explanation{
		Intercept:     p.model.Intercept(),
		Logit:         logit,
		Probability:   prob,
		Risk:          p.thresholds.Classify(prob),
		Contributions: contribs,
	}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
