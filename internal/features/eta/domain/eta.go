package domain

import "time"

// RiskLevel grades confidence in the prediction; it is a pure function of
// the confidence percentage.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Confidence bounds and risk thresholds.
const (
	MinConfidence       = 62
	MaxConfidence       = 97
	highRiskBelow       = 75
	mediumRiskBelow     = 86
	baselineConfidence  = 94
	DefaultStableFactor = "Stable milestone progression"
)

// PredictiveEta is the live ETA prediction for a shipment. At most one
// record exists per tracking number; recomputation replaces it.
type PredictiveEta struct {
	TrackingNumber    string    `json:"tracking_number"`
	PredictedDate     time.Time `json:"predicted_date"`
	ConfidencePercent int       `json:"confidence_percent"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Factors           []string  `json:"factors"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ClampConfidence bounds a raw confidence value to [MinConfidence, MaxConfidence].
func ClampConfidence(v int) int {
	if v < MinConfidence {
		return MinConfidence
	}
	if v > MaxConfidence {
		return MaxConfidence
	}
	return v
}

// RiskForConfidence maps a confidence percentage to its risk level.
func RiskForConfidence(confidence int) RiskLevel {
	switch {
	case confidence < highRiskBelow:
		return RiskLevelHigh
	case confidence < mediumRiskBelow:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// BaselineConfidence is the starting confidence before penalties.
func BaselineConfidence() int {
	return baselineConfidence
}
