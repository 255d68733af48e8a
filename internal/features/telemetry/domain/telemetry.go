package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Temperature thresholds for cold-chain breach detection, in °C.
const (
	MaxTemperatureC = 30.0
	MinTemperatureC = 2.0
)

const earthRadiusKm = 6371.0

// ErrMissingTrackingNumber is returned when a reading has no tracking number.
var ErrMissingTrackingNumber = errors.New("tracking number is required")

// IoTReading is one sensor sample from a shipment's tracker. The reading log
// is append-only.
type IoTReading struct {
	TrackingNumber string    `json:"tracking_number"`
	Timestamp      time.Time `json:"timestamp"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	TemperatureC   float64   `json:"temperature_c"`
	HumidityPct    float64   `json:"humidity_pct"`
	ShockG         float64   `json:"shock_g"`
	SealOpen       bool      `json:"seal_open"`
}

// TemperatureBreached reports whether the reading violates the cold-chain
// thresholds.
func (r IoTReading) TemperatureBreached() bool {
	return r.TemperatureC > MaxTemperatureC || r.TemperatureC < MinTemperatureC
}

// GeofenceEvent is a zone boundary transition.
type GeofenceEvent string

const (
	GeofenceEventEntered GeofenceEvent = "Entered"
	GeofenceEventExited  GeofenceEvent = "Exited"
)

// GeofenceAlert records a zone transition between two consecutive readings
// of the same shipment.
type GeofenceAlert struct {
	ID             string        `json:"id"`
	TrackingNumber string        `json:"tracking_number"`
	ZoneName       string        `json:"zone_name"`
	Event          GeofenceEvent `json:"event"`
	Timestamp      time.Time     `json:"timestamp"`
	Resolved       bool          `json:"resolved"`
}

// NewGeofenceAlert creates a zone-transition alert.
func NewGeofenceAlert(trackingNumber, zoneName string, event GeofenceEvent, at time.Time) GeofenceAlert {
	return GeofenceAlert{
		ID:             uuid.NewString(),
		TrackingNumber: trackingNumber,
		ZoneName:       zoneName,
		Event:          event,
		Timestamp:      at,
	}
}

// HaversineKm computes the great-circle distance between two coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
