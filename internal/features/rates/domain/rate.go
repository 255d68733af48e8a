package domain

import "errors"

// ServiceType selects the service level for a shipment.
type ServiceType string

const (
	ServiceTypeExpress  ServiceType = "Express"
	ServiceTypeStandard ServiceType = "Standard"
)

var (
	// ErrInvalidServiceType is returned for an unrecognised service type.
	ErrInvalidServiceType = errors.New("service type must be Express or Standard")
	// ErrInvalidWeight is returned when the chargeable weight is not positive.
	ErrInvalidWeight = errors.New("weight must be greater than zero")
	// ErrInvalidVolume is returned when the volume is not positive.
	ErrInvalidVolume = errors.New("volume must be greater than zero")
)

// RateRequest describes the shipment tuple to be priced across modes.
type RateRequest struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	WeightKg    float64     `json:"weight_kg"`
	VolumeCbm   float64     `json:"volume_cbm"`
	ServiceType ServiceType `json:"service_type"`
}

// Validate rejects malformed numeric inputs before they reach the pricing
// computation.
func (r RateRequest) Validate() error {
	if r.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	if r.VolumeCbm <= 0 {
		return ErrInvalidVolume
	}
	if r.ServiceType != ServiceTypeExpress && r.ServiceType != ServiceTypeStandard {
		return ErrInvalidServiceType
	}
	return nil
}

// RateOption is one priced, timed, carbon-scored option for a transport mode.
// Options are ephemeral: recomputed on every call, never stored as
// authoritative, only embedded in downstream decision records.
type RateOption struct {
	Mode        string  `json:"mode"`
	Carrier     string  `json:"carrier"`
	TransitDays int     `json:"transit_days"`
	PriceUsd    float64 `json:"price_usd"`
	CO2Kg       float64 `json:"co2_kg"`
	Suitability string  `json:"suitability"`
}
