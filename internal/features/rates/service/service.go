package service

import (
	"math"
	"sort"
	"time"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/money"
	"freight-engine/internal/core/refdata"
	"freight-engine/internal/features/rates/domain"
)

const (
	expressMultiplier   = 1.23
	weekendDemandFactor = 1.07
	minTransitDays      = 2
)

// RateService prices a shipment across every transport mode. It is a pure
// computation over the reference tables; the only ambient input is the
// day of week for weekend surge pricing, read from the injected clock.
type RateService struct {
	clock             clock.Clock
	defaultDistanceKm float64
}

// NewRateService creates a new RateService.
func NewRateService(clk clock.Clock, defaultDistanceKm float64) *RateService {
	return &RateService{clock: clk, defaultDistanceKm: defaultDistanceKm}
}

// DistanceKm resolves the lane distance for an origin/destination pair.
func (s *RateService) DistanceKm(origin, destination string) float64 {
	return refdata.DistanceKm(origin, destination, s.defaultDistanceKm)
}

// QuoteRates computes one RateOption per transport mode for the given
// shipment tuple, sorted ascending by price. The caller is expected to have
// validated the request; weight and volume must be positive.
func (s *RateService) QuoteRates(req domain.RateRequest) []domain.RateOption {
	distance := s.DistanceKm(req.Origin, req.Destination)

	serviceMultiplier := 1.0
	expressDiscountDays := 0.0
	if req.ServiceType == domain.ServiceTypeExpress {
		serviceMultiplier = expressMultiplier
		expressDiscountDays = 1
	}

	demandFactor := 1.0
	switch s.clock.Now().Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		demandFactor = weekendDemandFactor
	}

	options := make([]domain.RateOption, 0, len(refdata.Modes))
	for _, m := range refdata.Modes {
		price := (m.BaseFee +
			req.WeightKg*m.PerKg +
			req.VolumeCbm*m.PerCbm +
			distance*m.PerKm) * serviceMultiplier * demandFactor

		transitDays := int(math.Round(m.BaseDays + distance/2000 - expressDiscountDays))
		if transitDays < minTransitDays {
			transitDays = minTransitDays
		}

		options = append(options, domain.RateOption{
			Mode:        m.Mode,
			Carrier:     m.DefaultCarrier,
			TransitDays: transitDays,
			PriceUsd:    money.Round2(price),
			CO2Kg:       money.Round2((req.WeightKg / 1000) * distance * m.CO2PerTonKm),
			Suitability: m.Suitability,
		})
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].PriceUsd < options[j].PriceUsd
	})

	return options
}
