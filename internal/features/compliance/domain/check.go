package domain

import (
	"errors"
	"time"
)

// ComplianceStatus is the terminal outcome of a compliance check.
// Fail is a valid business result, not an error.
type ComplianceStatus string

const (
	StatusPass    ComplianceStatus = "Pass"
	StatusWarning ComplianceStatus = "Warning"
	StatusFail    ComplianceStatus = "Fail"
)

// Incoterm is a standardized international trade term.
type Incoterm string

const (
	IncotermEXW Incoterm = "EXW"
	IncotermFOB Incoterm = "FOB"
	IncotermCIF Incoterm = "CIF"
	IncotermDDP Incoterm = "DDP"
)

var (
	// ErrInvalidIncoterm is returned for an unsupported Incoterm.
	ErrInvalidIncoterm = errors.New("incoterm must be one of EXW, FOB, CIF, DDP")
	// ErrInvalidCargoValue is returned when the declared cargo value is negative.
	ErrInvalidCargoValue = errors.New("cargo value must not be negative")
)

// CheckRequest carries the facts screened by a compliance check.
type CheckRequest struct {
	// TrackingNumber optionally links the check to a shipment.
	TrackingNumber     string   `json:"tracking_number,omitempty"`
	HsCode             string   `json:"hs_code"`
	OriginCountry      string   `json:"origin_country"`
	DestinationCountry string   `json:"destination_country"`
	CargoValueUsd      float64  `json:"cargo_value_usd"`
	Incoterm           Incoterm `json:"incoterm"`
	Hazardous          bool     `json:"hazardous"`
	// Documents lists the already-supplied document names.
	Documents []string `json:"documents"`
}

// Validate rejects requests the screening steps cannot reason about.
// A malformed HS code is deliberately NOT rejected here: it is a critical
// screening finding, not a request error.
func (r CheckRequest) Validate() error {
	switch r.Incoterm {
	case IncotermEXW, IncotermFOB, IncotermCIF, IncotermDDP:
	default:
		return ErrInvalidIncoterm
	}
	if r.CargoValueUsd < 0 {
		return ErrInvalidCargoValue
	}
	return nil
}

// IncotermDutyAdjustment returns the duty multiplier for the Incoterm.
func (r CheckRequest) IncotermDutyAdjustment() float64 {
	switch r.Incoterm {
	case IncotermDDP:
		return 1.10
	case IncotermCIF:
		return 1.05
	default:
		return 1.00
	}
}

// ComplianceCheck is the immutable record of one screening invocation.
type ComplianceCheck struct {
	ID                 string           `json:"id"`
	TrackingNumber     string           `json:"tracking_number,omitempty"`
	HsCode             string           `json:"hs_code"`
	DutyUsd            float64          `json:"duty_usd"`
	Status             ComplianceStatus `json:"status"`
	Issues             []string         `json:"issues"`
	Suggestions        []string         `json:"suggestions"`
	GeneratedDocuments []string         `json:"generated_documents"`
	CreatedAt          time.Time        `json:"created_at"`
}
