package service

import (
	"context"
	"fmt"
	"sync"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/logger"
	"freight-engine/internal/features/alerts/domain"
	"freight-engine/internal/features/alerts/ports"

	"go.uber.org/zap"
)

// AlertService owns the exception-alert collection. It is also the
// notification sink for the other engine components: they decide that an
// exception should be raised, this service records it.
type AlertService struct {
	repo  ports.AlertRepository
	clock clock.Clock

	// mu serializes read-modify-write sequences on the alert collection.
	mu sync.Mutex
}

// NewAlertService creates a new AlertService.
func NewAlertService(repo ports.AlertRepository, clk clock.Clock) *AlertService {
	return &AlertService{repo: repo, clock: clk}
}

// Raise records a new open exception alert.
func (s *AlertService) Raise(ctx context.Context, trackingNumber string, exceptionType domain.ExceptionType, severity domain.Severity, note string) (*domain.ExceptionAlert, error) {
	alert, err := domain.NewExceptionAlert(trackingNumber, exceptionType, severity, note, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	alerts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load alerts: %w", err)
	}

	alerts = append(alerts, *alert)
	if err := s.repo.ReplaceAll(ctx, alerts); err != nil {
		return nil, fmt.Errorf("service: failed to save alert: %w", err)
	}

	logger.Get().Info("Exception alert raised",
		zap.String("tracking_number", trackingNumber),
		zap.String("type", string(exceptionType)),
		zap.String("severity", string(severity)),
	)

	return alert, nil
}

// RaiseException satisfies the alert-sink ports of the other engine
// components. Sink failures are logged, never propagated: a decision record
// must not fail because the exception log is unavailable.
func (s *AlertService) RaiseException(ctx context.Context, trackingNumber, exceptionType, severity, note string) error {
	_, err := s.Raise(ctx, trackingNumber, domain.ExceptionType(exceptionType), domain.Severity(severity), note)
	if err != nil {
		logger.Get().Error("Failed to raise exception alert",
			zap.String("tracking_number", trackingNumber),
			zap.String("type", exceptionType),
			zap.Error(err),
		)
	}
	return err
}

// List returns all exception alerts in creation order.
func (s *AlertService) List(ctx context.Context) ([]domain.ExceptionAlert, error) {
	alerts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load alerts: %w", err)
	}
	return alerts, nil
}

// Resolve marks an alert resolved. Resolving an already-resolved alert is a
// no-op and returns the alert unchanged.
func (s *AlertService) Resolve(ctx context.Context, id string) (*domain.ExceptionAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load alerts: %w", err)
	}

	for i := range alerts {
		if alerts[i].ID != id {
			continue
		}

		if alerts[i].Status == domain.AlertStatusResolved {
			return &alerts[i], nil
		}

		now := s.clock.Now()
		alerts[i].Status = domain.AlertStatusResolved
		alerts[i].ResolvedAt = &now

		if err := s.repo.ReplaceAll(ctx, alerts); err != nil {
			return nil, fmt.Errorf("service: failed to save alerts: %w", err)
		}
		return &alerts[i], nil
	}

	return nil, domain.ErrAlertNotFound
}
