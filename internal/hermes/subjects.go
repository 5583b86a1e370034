package hermes

const (
	StreamName   = "CHURN_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

var StreamSubjects = []string{"churn.risk.>", "churn.retention.>"}

func SubjectRiskAssessed(predictionID string) string {
	return "churn.risk." + predictionID + ".assessed"
}

func SubjectRetentionRequested(predictionID string) string {
	return "churn.retention." + predictionID + ".requested"
}
