package domain

import (
	"errors"
	"time"
)

// Strategy selects the optimization weighting for a route recommendation.
type Strategy string

const (
	StrategyCost      Strategy = "Cost"
	StrategySpeed     Strategy = "Speed"
	StrategyBalanced  Strategy = "Balanced"
	StrategyLowCarbon Strategy = "Low Carbon"
)

// ErrInvalidStrategy is returned for an unrecognised optimization strategy.
var ErrInvalidStrategy = errors.New("strategy must be one of Cost, Speed, Balanced, Low Carbon")

// ValidateStrategy checks the strategy against the supported set.
func ValidateStrategy(s Strategy) error {
	switch s {
	case StrategyCost, StrategySpeed, StrategyBalanced, StrategyLowCarbon:
		return nil
	default:
		return ErrInvalidStrategy
	}
}

// RoutePlan is the immutable record of one optimization call. The latest plan
// per tracking number is the effective one.
type RoutePlan struct {
	ID                 string    `json:"id"`
	TrackingNumber     string    `json:"tracking_number"`
	Origin             string    `json:"origin"`
	Destination        string    `json:"destination"`
	Strategy           Strategy  `json:"strategy"`
	RecommendedMode    string    `json:"recommended_mode"`
	RecommendedCarrier string    `json:"recommended_carrier"`
	TransitDays        int       `json:"transit_days"`
	CostUsd            float64   `json:"cost_usd"`
	DistanceKm         float64   `json:"distance_km"`
	RiskScore          int       `json:"risk_score"`
	CO2Kg              float64   `json:"co2_kg"`
	CreatedAt          time.Time `json:"created_at"`
}
