package scoring

import (
	"fmt"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) Label() string {
	switch r {
	case RiskLow:
		return "Low Risk (Green)"
	case RiskMedium:
		return "Medium Risk (Yellow)"
	case RiskHigh:
		return "High Risk (Red)"
	}
	return string(r)
}

func (r RiskLevel) Color() string {
	switch r {
	case RiskLow:
		return "green"
	case RiskMedium:
		return "yellow"
	case RiskHigh:
		return "red"
	}
	return ""
}

// Thresholds split the probability range into buckets. Each bound belongs to
// the bucket above it.
type Thresholds struct {
	Medium float64
	High   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 0.30, High: 0.60}
}

// Validate checks 0 < Medium < High <= 1.
func (t Thresholds) Validate() error {
	if !(t.Medium > 0 && t.Medium < t.High && t.High <= 1) {
		return fmt.Errorf("risk thresholds must satisfy 0 < medium < high <= 1, got medium=%.4f high=%.4f", t.Medium, t.High)
	}
	return nil
}

// Classify maps p to a bucket:
//
//	p < medium          -> low
//	medium <= p < high  -> medium
//	p >= high           -> high
func (t Thresholds) Classify(p float64) RiskLevel {
	switch {
	case p < t.Medium:
		return RiskLow
	case p < t.High:
		return RiskMedium
	default:
		return RiskHigh
	}
}

const highRiskAdvisory = "Proactive Action Triggered: Auto-assigning to Customer Success Team " +
	"with a recommendation to offer a Contract Upgrade or a Premium Tech Support Trial."

// Advisory returns the message shown alongside a high-risk result.
func Advisory(r RiskLevel) string {
	if r == RiskHigh {
		return highRiskAdvisory
	}
	return ""
}

// RetentionActions lists the offers recommended for the Customer Success team.
func RetentionActions(r RiskLevel) []string {
	if r == RiskHigh {
		return []string{"contract_upgrade", "premium_tech_support_trial"}
	}
	return nil
}
