package hermes

import "time"

// CustomerProfile mirrors the form inputs that produced a prediction.
type CustomerProfile struct {
	Tenure          int     `json:"tenure"`
	MonthlyCharges  float64 `json:"monthly_charges"`
	SeniorCitizen   bool    `json:"senior_citizen"`
	Contract        string  `json:"contract"`
	InternetService string  `json:"internet_service"`
	TechSupport     string  `json:"tech_support"`
}

type RiskAssessedEvent struct {
	PredictionID string          `json:"prediction_id"`
	Probability  float64         `json:"probability"`
	Risk         string          `json:"risk"`
	ModelVersion string          `json:"model_version,omitempty"`
	Source       string          `json:"source"`
	Profile      CustomerProfile `json:"profile"`
	Timestamp    time.Time       `json:"timestamp"`
}

// RetentionRequestedEvent asks the Customer Success team to act on a
// high-risk customer.
type RetentionRequestedEvent struct {
	PredictionID       string          `json:"prediction_id"`
	Probability        float64         `json:"probability"`
	AssignTo           string          `json:"assign_to"`
	RecommendedActions []string        `json:"recommended_actions"`
	Profile            CustomerProfile `json:"profile"`
	Timestamp          time.Time       `json:"timestamp"`
}
