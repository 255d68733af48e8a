package service

import (
	"context"
	"fmt"
	"sync"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/logger"
	"freight-engine/internal/features/eta/domain"
	"freight-engine/internal/features/eta/ports"
	factsports "freight-engine/internal/features/facts/ports"

	"go.uber.org/zap"
)

// EtaService adjusts a shipment's baseline ETA by accumulating risk offsets
// from shipment and job state, and derives a confidence percentage.
type EtaService struct {
	repo  ports.EtaRepository
	facts factsports.FactStore
	clock clock.Clock

	// mu serializes prediction upserts.
	mu sync.Mutex
}

// NewEtaService creates a new EtaService.
func NewEtaService(repo ports.EtaRepository, facts factsports.FactStore, clk clock.Clock) *EtaService {
	return &EtaService{repo: repo, facts: facts, clock: clk}
}

// Predict recomputes and upserts the live prediction for a tracking number.
func (s *EtaService) Predict(ctx context.Context, trackingNumber string) (*domain.PredictiveEta, error) {
	shipment, err := s.facts.ShipmentByTracking(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	job, err := s.facts.JobByTracking(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cargo job: %w", err)
	}

	offsetDays := 0
	var factors []string

	riskPenalty := 2
	switch shipment.RiskLevel {
	case "High":
		offsetDays++
		riskPenalty = 12
		factors = append(factors, "High risk profile")
	case "Medium":
		riskPenalty = 6
	}

	delayedPenalty := 0
	if job != nil && job.Status == "Delayed" {
		offsetDays += 2
		delayedPenalty = 10
		factors = append(factors, "Linked job delayed")
	}

	customsPenalty := 0
	if shipment.Status == "Customs" {
		offsetDays++
		customsPenalty = 6
		factors = append(factors, "Customs clearance in progress")
	}

	switch shipment.Mode {
	case "Air":
		offsetDays--
		factors = append(factors, "Air mode acceleration")
	case "Sea":
		factors = append(factors, "Ocean lane weather variability")
	}

	if len(factors) == 0 {
		factors = append(factors, domain.DefaultStableFactor)
	}

	baseline := shipment.EtaDate
	if baseline.IsZero() {
		baseline = s.clock.Now()
	}

	confidence := domain.ClampConfidence(
		domain.BaselineConfidence() - riskPenalty - customsPenalty - delayedPenalty)

	eta := domain.PredictiveEta{
		TrackingNumber:    trackingNumber,
		PredictedDate:     baseline.AddDate(0, 0, offsetDays),
		ConfidencePercent: confidence,
		RiskLevel:         domain.RiskForConfidence(confidence),
		Factors:           factors,
		UpdatedAt:         s.clock.Now(),
	}

	s.mu.Lock()
	err = s.repo.Upsert(ctx, eta)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("service: failed to upsert prediction: %w", err)
	}

	logger.Get().Info("ETA prediction updated",
		zap.String("tracking_number", trackingNumber),
		zap.Int("confidence", confidence),
		zap.String("risk_level", string(eta.RiskLevel)),
	)

	return &eta, nil
}

// Current returns the live prediction for a tracking number, or (nil, nil).
func (s *EtaService) Current(ctx context.Context, trackingNumber string) (*domain.PredictiveEta, error) {
	eta, err := s.repo.Get(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load prediction: %w", err)
	}
	return eta, nil
}
