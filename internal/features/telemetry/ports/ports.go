package ports

import (
	"context"

	"freight-engine/internal/features/telemetry/domain"
)

// TelemetryService defines the primary port for telemetry ingestion.
type TelemetryService interface {
	// RecordReading persists a reading, evaluates geofence transitions and
	// environmental thresholds, and returns the number of geofence events
	// raised.
	RecordReading(ctx context.Context, reading domain.IoTReading) (int, error)
	Readings(ctx context.Context, trackingNumber string) ([]domain.IoTReading, error)
	GeofenceAlerts(ctx context.Context, trackingNumber string) ([]domain.GeofenceAlert, error)
}

// ReadingRepository defines the secondary port for the append-only reading log.
type ReadingRepository interface {
	Append(ctx context.Context, reading domain.IoTReading) error
	// Latest returns the most recent reading for a tracking number, or (nil, nil).
	Latest(ctx context.Context, trackingNumber string) (*domain.IoTReading, error)
	List(ctx context.Context, trackingNumber string) ([]domain.IoTReading, error)
}

// GeofenceAlertRepository defines the secondary port for geofence alerts.
type GeofenceAlertRepository interface {
	Append(ctx context.Context, alert domain.GeofenceAlert) error
	List(ctx context.Context, trackingNumber string) ([]domain.GeofenceAlert, error)
}

// AlertSink accepts exception events decided by the telemetry monitor.
type AlertSink interface {
	RaiseException(ctx context.Context, trackingNumber, exceptionType, severity, note string) error
}
