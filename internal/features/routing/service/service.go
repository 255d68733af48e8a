package service

import (
	"context"
	"fmt"
	"sync"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/logger"
	factsdomain "freight-engine/internal/features/facts/domain"
	factsports "freight-engine/internal/features/facts/ports"
	ratesdomain "freight-engine/internal/features/rates/domain"
	"freight-engine/internal/features/routing/domain"
	"freight-engine/internal/features/routing/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultWeightKg  = 100
	defaultVolumeCbm = 1
	maxRiskScore     = 95
)

// RoutingService recommends one mode/carrier for a shipment under a stated
// optimization strategy, derived from the rate comparison engine's options.
type RoutingService struct {
	plans ports.PlanRepository
	rates ports.RateEngine
	facts factsports.FactStore
	clock clock.Clock

	// mu serializes appends to the plan collection.
	mu sync.Mutex
}

// NewRoutingService creates a new RoutingService.
func NewRoutingService(plans ports.PlanRepository, rates ports.RateEngine, facts factsports.FactStore, clk clock.Clock) *RoutingService {
	return &RoutingService{plans: plans, rates: rates, facts: facts, clock: clk}
}

// Optimize scores every rate option under the strategy and records the
// minimum-score option as the recommended plan.
func (s *RoutingService) Optimize(ctx context.Context, trackingNumber string, strategy domain.Strategy) (*domain.RoutePlan, error) {
	if err := domain.ValidateStrategy(strategy); err != nil {
		return nil, err
	}

	shipment, err := s.facts.ShipmentByTracking(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	req := ratesdomain.RateRequest{
		Origin:      shipment.Origin,
		Destination: shipment.Destination,
		WeightKg:    shipment.WeightKg,
		VolumeCbm:   shipment.VolumeCbm,
		ServiceType: ratesdomain.ServiceType(shipment.ServiceType),
	}
	if req.WeightKg <= 0 {
		req.WeightKg = defaultWeightKg
	}
	if req.VolumeCbm <= 0 {
		req.VolumeCbm = defaultVolumeCbm
	}
	if req.ServiceType != ratesdomain.ServiceTypeExpress {
		req.ServiceType = ratesdomain.ServiceTypeStandard
	}

	options := s.rates.QuoteRates(req)

	best := options[0]
	bestScore := strategyScore(strategy, best)
	for _, opt := range options[1:] {
		if score := strategyScore(strategy, opt); score < bestScore {
			best, bestScore = opt, score
		}
	}

	plan := domain.RoutePlan{
		ID:                 uuid.NewString(),
		TrackingNumber:     trackingNumber,
		Origin:             shipment.Origin,
		Destination:        shipment.Destination,
		Strategy:           strategy,
		RecommendedMode:    best.Mode,
		RecommendedCarrier: best.Carrier,
		TransitDays:        best.TransitDays,
		CostUsd:            best.PriceUsd,
		DistanceKm:         s.rates.DistanceKm(shipment.Origin, shipment.Destination),
		RiskScore:          riskScore(shipment.RiskLevel, best.Mode),
		CO2Kg:              best.CO2Kg,
		CreatedAt:          s.clock.Now(),
	}

	s.mu.Lock()
	err = s.plans.Append(ctx, plan)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("service: failed to append route plan: %w", err)
	}

	logger.Get().Info("Route plan created",
		zap.String("tracking_number", trackingNumber),
		zap.String("strategy", string(strategy)),
		zap.String("recommended_mode", plan.RecommendedMode),
		zap.Int("risk_score", plan.RiskScore),
	)

	return &plan, nil
}

// LatestPlan returns the effective plan for a tracking number.
func (s *RoutingService) LatestPlan(ctx context.Context, trackingNumber string) (*domain.RoutePlan, error) {
	plan, err := s.plans.Latest(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load route plan: %w", err)
	}
	return plan, nil
}

// strategyScore maps a rate option to a scalar; the minimum wins.
func strategyScore(strategy domain.Strategy, opt ratesdomain.RateOption) float64 {
	switch strategy {
	case domain.StrategySpeed:
		return float64(opt.TransitDays)*600 + opt.PriceUsd*0.25
	case domain.StrategyBalanced:
		return opt.PriceUsd*0.55 + float64(opt.TransitDays)*220
	case domain.StrategyLowCarbon:
		return opt.CO2Kg*2.5 + opt.PriceUsd*0.30
	default: // Cost
		return opt.PriceUsd
	}
}

// riskScore derives the plan risk from the shipment's risk profile plus a
// mode adjustment, capped at maxRiskScore.
func riskScore(level factsdomain.RiskLevel, mode string) int {
	score := 20
	switch level {
	case factsdomain.RiskLevelHigh:
		score = 70
	case factsdomain.RiskLevelMedium:
		score = 45
	}

	switch mode {
	case "Road":
		score += 8
	case "Air":
		score += 4
	}

	if score > maxRiskScore {
		score = maxRiskScore
	}
	return score
}
