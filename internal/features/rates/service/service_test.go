package service

import (
	"sort"
	"testing"
	"time"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/refdata"
	"freight-engine/internal/features/rates/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midweek pins the clock to a Wednesday so the weekend surge never applies.
var midweek = clock.Fixed{Instant: time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)}

// saturday pins the clock to a weekend day.
var saturday = clock.Fixed{Instant: time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)}

func TestQuoteRates_SortedAscendingByPrice(t *testing.T) {
	svc := NewRateService(midweek, refdata.DefaultDistanceKm)

	options := svc.QuoteRates(domain.RateRequest{
		Origin:      "Dubai, UAE",
		Destination: "Mogadishu, Somalia",
		WeightKg:    500,
		VolumeCbm:   3,
		ServiceType: domain.ServiceTypeStandard,
	})

	require.Len(t, options, 3)
	assert.True(t, sort.SliceIsSorted(options, func(i, j int) bool {
		return options[i].PriceUsd < options[j].PriceUsd
	}))
	assert.Equal(t, "Sea", options[0].Mode)
}

func TestQuoteRates_TransitFloor(t *testing.T) {
	svc := NewRateService(midweek, refdata.DefaultDistanceKm)

	// Express on a short lane pushes Air's transit toward the floor.
	options := svc.QuoteRates(domain.RateRequest{
		Origin:      "Istanbul, Turkey",
		Destination: "London, UK",
		WeightKg:    10,
		VolumeCbm:   0.5,
		ServiceType: domain.ServiceTypeExpress,
	})

	for _, opt := range options {
		assert.GreaterOrEqual(t, opt.TransitDays, 2, "mode %s", opt.Mode)
	}
}

func TestQuoteRates_SeaNeverAboveAir(t *testing.T) {
	svc := NewRateService(midweek, refdata.DefaultDistanceKm)

	lanes := []domain.RateRequest{
		{Origin: "Shanghai, China", Destination: "Rotterdam, Netherlands", WeightKg: 1200, VolumeCbm: 8, ServiceType: domain.ServiceTypeStandard},
		{Origin: "Unknown", Destination: "Nowhere", WeightKg: 1, VolumeCbm: 0.1, ServiceType: domain.ServiceTypeExpress},
		{Origin: "Hamburg, Germany", Destination: "New York, USA", WeightKg: 20000, VolumeCbm: 50, ServiceType: domain.ServiceTypeStandard},
	}

	for _, req := range lanes {
		options := svc.QuoteRates(req)

		byMode := map[string]domain.RateOption{}
		for _, opt := range options {
			byMode[opt.Mode] = opt
		}
		assert.LessOrEqual(t, byMode["Sea"].PriceUsd, byMode["Air"].PriceUsd,
			"lane %s|%s", req.Origin, req.Destination)
	}
}

func TestQuoteRates_ExpressMultiplier(t *testing.T) {
	svc := NewRateService(midweek, refdata.DefaultDistanceKm)

	base := domain.RateRequest{
		Origin:      "Hamburg, Germany",
		Destination: "New York, USA",
		WeightKg:    100,
		VolumeCbm:   2,
		ServiceType: domain.ServiceTypeStandard,
	}
	express := base
	express.ServiceType = domain.ServiceTypeExpress

	standardOpts := svc.QuoteRates(base)
	expressOpts := svc.QuoteRates(express)

	byMode := func(opts []domain.RateOption, mode string) domain.RateOption {
		for _, o := range opts {
			if o.Mode == mode {
				return o
			}
		}
		t.Fatalf("mode %s missing", mode)
		return domain.RateOption{}
	}

	std := byMode(standardOpts, "Air")
	exp := byMode(expressOpts, "Air")
	assert.InDelta(t, std.PriceUsd*1.23, exp.PriceUsd, 0.01)
	assert.Equal(t, std.TransitDays-1, exp.TransitDays)
}

func TestQuoteRates_WeekendSurge(t *testing.T) {
	req := domain.RateRequest{
		Origin:      "Singapore",
		Destination: "Los Angeles, USA",
		WeightKg:    300,
		VolumeCbm:   4,
		ServiceType: domain.ServiceTypeStandard,
	}

	weekday := NewRateService(midweek, refdata.DefaultDistanceKm).QuoteRates(req)
	weekend := NewRateService(saturday, refdata.DefaultDistanceKm).QuoteRates(req)

	for i := range weekday {
		assert.InDelta(t, weekday[i].PriceUsd*1.07, weekend[i].PriceUsd, 0.01)
	}
}

func TestQuoteRates_UnknownLaneUsesDefaultDistance(t *testing.T) {
	svc := NewRateService(midweek, 1234)

	assert.Equal(t, 1234.0, svc.DistanceKm("Atlantis", "El Dorado"))
	assert.Equal(t, 3000.0, svc.DistanceKm("Dubai, UAE", "Mogadishu, Somalia"))
}

func TestQuoteRates_CO2Scaling(t *testing.T) {
	svc := NewRateService(midweek, refdata.DefaultDistanceKm)

	options := svc.QuoteRates(domain.RateRequest{
		Origin:      "Dubai, UAE",
		Destination: "Mogadishu, Somalia",
		WeightKg:    1000,
		VolumeCbm:   5,
		ServiceType: domain.ServiceTypeStandard,
	})

	for _, opt := range options {
		m, ok := refdata.ModeByName(opt.Mode)
		require.True(t, ok)
		// 1 ton over 3000 km.
		assert.InDelta(t, 3000*m.CO2PerTonKm, opt.CO2Kg, 0.01)
	}
}

func TestRateRequest_Validate(t *testing.T) {
	valid := domain.RateRequest{Origin: "A", Destination: "B", WeightKg: 1, VolumeCbm: 1, ServiceType: domain.ServiceTypeStandard}
	assert.NoError(t, valid.Validate())

	t.Run("NonPositiveWeight", func(t *testing.T) {
		req := valid
		req.WeightKg = 0
		assert.ErrorIs(t, req.Validate(), domain.ErrInvalidWeight)
	})

	t.Run("NonPositiveVolume", func(t *testing.T) {
		req := valid
		req.VolumeCbm = -2
		assert.ErrorIs(t, req.Validate(), domain.ErrInvalidVolume)
	})

	t.Run("BadServiceType", func(t *testing.T) {
		req := valid
		req.ServiceType = "Overnight"
		assert.ErrorIs(t, req.Validate(), domain.ErrInvalidServiceType)
	})
}
