package service

import (
	"context"
	"fmt"
	"sync"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/logger"
	"freight-engine/internal/core/refdata"
	"freight-engine/internal/features/telemetry/domain"
	"freight-engine/internal/features/telemetry/ports"

	"go.uber.org/zap"
)

// TelemetryService evaluates sensor readings against geofence zones and
// environmental thresholds, raising exception records when limits are crossed.
type TelemetryService struct {
	readings ports.ReadingRepository
	geofence ports.GeofenceAlertRepository
	sink     ports.AlertSink
	zones    []refdata.GeofenceZone
	clock    clock.Clock

	// mu serializes the prior-reading lookup with the append that follows.
	mu sync.Mutex
}

// NewTelemetryService creates a new TelemetryService monitoring the given zones.
func NewTelemetryService(readings ports.ReadingRepository, geofence ports.GeofenceAlertRepository, sink ports.AlertSink, zones []refdata.GeofenceZone, clk clock.Clock) *TelemetryService {
	return &TelemetryService{
		readings: readings,
		geofence: geofence,
		sink:     sink,
		zones:    zones,
		clock:    clk,
	}
}

// RecordReading persists the reading and evaluates it. Returns the number of
// geofence events raised; zero means the telemetry was saved with no alerts.
func (s *TelemetryService) RecordReading(ctx context.Context, reading domain.IoTReading) (int, error) {
	if reading.TrackingNumber == "" {
		return 0, domain.ErrMissingTrackingNumber
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = s.clock.Now()
	}

	s.mu.Lock()
	prior, err := s.readings.Latest(ctx, reading.TrackingNumber)
	if err == nil {
		err = s.readings.Append(ctx, reading)
	}
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("service: failed to record reading: %w", err)
	}

	events := 0
	exited := false

	// A transition needs a prior reading; the first-ever reading for a
	// tracking number never produces a geofence alert.
	if prior != nil {
		for _, zone := range s.zones {
			insideNow := domain.HaversineKm(reading.Lat, reading.Lng, zone.Lat, zone.Lng) <= zone.RadiusKm
			insideBefore := domain.HaversineKm(prior.Lat, prior.Lng, zone.Lat, zone.Lng) <= zone.RadiusKm

			if insideNow == insideBefore {
				continue
			}

			event := domain.GeofenceEventExited
			if insideNow {
				event = domain.GeofenceEventEntered
			} else {
				exited = true
			}

			alert := domain.NewGeofenceAlert(reading.TrackingNumber, zone.Name, event, reading.Timestamp)
			if err := s.geofence.Append(ctx, alert); err != nil {
				return events, fmt.Errorf("service: failed to save geofence alert: %w", err)
			}
			events++

			logger.Get().Info("Geofence transition detected",
				zap.String("tracking_number", reading.TrackingNumber),
				zap.String("zone", zone.Name),
				zap.String("event", string(event)),
			)
		}
	}

	if reading.TemperatureBreached() {
		note := fmt.Sprintf("Temperature reading of %.1f°C outside safe range [%.0f, %.0f]",
			reading.TemperatureC, domain.MinTemperatureC, domain.MaxTemperatureC)
		s.sink.RaiseException(ctx, reading.TrackingNumber, "Temperature Breach", "High", note)
	}

	if exited {
		s.sink.RaiseException(ctx, reading.TrackingNumber, "Geofence Exit", "Medium",
			"Shipment exited a monitored geofence zone")
	}

	return events, nil
}

// Readings returns the reading log for a tracking number.
func (s *TelemetryService) Readings(ctx context.Context, trackingNumber string) ([]domain.IoTReading, error) {
	readings, err := s.readings.List(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load readings: %w", err)
	}
	return readings, nil
}

// GeofenceAlerts returns the geofence alerts for a tracking number.
func (s *TelemetryService) GeofenceAlerts(ctx context.Context, trackingNumber string) ([]domain.GeofenceAlert, error) {
	alerts, err := s.geofence.List(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load geofence alerts: %w", err)
	}
	return alerts, nil
}
