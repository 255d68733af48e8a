package domain

import (
	"errors"
	"time"
)

// ErrShipmentNotFound is returned when no shipment fact exists for a
// tracking number.
var ErrShipmentNotFound = errors.New("shipment not found")

// RiskLevel classifies the commercial risk profile of a shipment.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// ShipmentFact is the engine's read-only view of a shipment held in the
// fact store. The engine never writes shipment facts.
type ShipmentFact struct {
	// TrackingNumber is the unique natural key of the shipment.
	TrackingNumber string `json:"tracking_number"`
	// Origin is the origin city/country as recorded by the booking desk.
	Origin string `json:"origin"`
	// Destination is the destination city/country.
	Destination string `json:"destination"`
	// Mode is the transport mode (Air, Sea, Road) if already assigned.
	Mode string `json:"mode"`
	// ServiceType is Express or Standard.
	ServiceType string `json:"service_type"`
	// WeightKg is the chargeable weight in kilograms.
	WeightKg float64 `json:"weight_kg"`
	// VolumeCbm is the volume in cubic meters.
	VolumeCbm float64 `json:"volume_cbm"`
	// RiskLevel is the shipment's commercial risk classification.
	RiskLevel RiskLevel `json:"risk_level"`
	// Status is the current milestone status (e.g. In Transit, Customs).
	Status string `json:"status"`
	// EtaDate is the carrier-quoted estimated arrival date.
	EtaDate time.Time `json:"eta_date"`
}

// CargoJob is the read-only view of the operational job linked to a shipment.
type CargoJob struct {
	TrackingNumber string  `json:"tracking_number"`
	Status         string  `json:"status"`
	Mode           string  `json:"mode"`
	WeightKg       float64 `json:"weight_kg"`
	VolumeCbm      float64 `json:"volume_cbm"`
}

// CustomsEntry is the read-only view of a recorded customs entry.
type CustomsEntry struct {
	TrackingNumber string  `json:"tracking_number"`
	DutyUsd        float64 `json:"duty_usd"`
}
