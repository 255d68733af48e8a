// Package refdata holds the static and slowly-changing lookup tables consumed
// by the engine components: trade-lane distances, per-mode rate coefficients,
// duty rates by HS prefix, sanctioned-country screening terms, geofence zones
// and FX seed rates.
//
// The tables are configuration data, not business logic: values here are
// advisory defaults and are expected to be reviewed by the compliance team
// before being treated as authoritative.
package refdata

// DefaultDistanceKm is the fallback for origin/destination pairs missing
// from the distance table.
const DefaultDistanceKm = 5000.0

// distanceTable maps "origin|destination" lane keys to great-circle-ish
// trade-lane distances in kilometres.
var distanceTable = map[string]float64{
	"Shanghai, China|Rotterdam, Netherlands": 19500,
	"Dubai, UAE|Mogadishu, Somalia":          3000,
	"Singapore|Los Angeles, USA":             14100,
	"Hamburg, Germany|New York, USA":         6100,
	"Mumbai, India|Durban, South Africa":     6900,
	"Hong Kong|Sydney, Australia":            7400,
	"Istanbul, Turkey|London, UK":            2500,
	"Nairobi, Kenya|Dubai, UAE":              3500,
}

// DistanceKm returns the lane distance for the given origin and destination,
// matched verbatim, or fallback when the lane is unknown.
func DistanceKm(origin, destination string, fallback float64) float64 {
	if d, ok := distanceTable[origin+"|"+destination]; ok {
		return d
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultDistanceKm
}

// ModeCoefficients holds the pricing and emission coefficients for one
// transport mode.
type ModeCoefficients struct {
	Mode           string
	BaseFee        float64
	PerKg          float64
	PerCbm         float64
	PerKm          float64
	BaseDays       float64
	CO2PerTonKm    float64
	DefaultCarrier string
	Suitability    string
}

// Modes lists the supported transport modes in quoting order.
var Modes = []ModeCoefficients{
	{
		Mode:           "Air",
		BaseFee:        450,
		PerKg:          4.50,
		PerCbm:         60,
		PerKm:          0.18,
		BaseDays:       3,
		CO2PerTonKm:    0.55,
		DefaultCarrier: "SkyBridge Cargo",
		Suitability:    "Best for urgent, high-value or perishable freight",
	},
	{
		Mode:           "Sea",
		BaseFee:        300,
		PerKg:          0.35,
		PerCbm:         55,
		PerKm:          0.02,
		BaseDays:       28,
		CO2PerTonKm:    0.015,
		DefaultCarrier: "BlueWave Lines",
		Suitability:    "Lowest cost and carbon for bulk, non-urgent cargo",
	},
	{
		Mode:           "Road",
		BaseFee:        180,
		PerKg:          0.90,
		PerCbm:         40,
		PerKm:          0.09,
		BaseDays:       6,
		CO2PerTonKm:    0.08,
		DefaultCarrier: "TransContinental Haulage",
		Suitability:    "Flexible door-to-door option for regional lanes",
	},
}

// ModeByName returns the coefficients for a mode name, or false when unknown.
func ModeByName(name string) (ModeCoefficients, bool) {
	for _, m := range Modes {
		if m.Mode == name {
			return m, true
		}
	}
	return ModeCoefficients{}, false
}

// DefaultDutyRate applies when the HS prefix is not in the duty table.
const DefaultDutyRate = 0.10

// dutyRateByHsPrefix maps the first two digits of an HS code to an ad-valorem
// duty rate.
var dutyRateByHsPrefix = map[string]float64{
	"84": 0.03,  // machinery
	"85": 0.05,  // electronics
	"87": 0.08,  // vehicles
	"61": 0.12,  // knitted apparel
	"62": 0.12,  // woven apparel
	"90": 0.04,  // instruments
	"22": 0.15,  // beverages
	"30": 0.00,  // pharmaceuticals
	"94": 0.06,  // furniture
	"39": 0.065, // plastics
}

// DutyRate returns the duty rate for an HS code by its two-digit chapter
// prefix, falling back to DefaultDutyRate.
func DutyRate(hsCode string) float64 {
	if len(hsCode) < 2 {
		return DefaultDutyRate
	}
	if rate, ok := dutyRateByHsPrefix[hsCode[:2]]; ok {
		return rate
	}
	return DefaultDutyRate
}

// SanctionedCountryTerms are uppercase substrings screened against
// origin/destination country fields.
var SanctionedCountryTerms = []string{"IRAN", "SYRIA", "NORTH KOREA", "RUSSIA"}

// GeofenceZone is a circular virtual boundary around a geographic point.
type GeofenceZone struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

// GeofenceZones lists the monitored zones.
var GeofenceZones = []GeofenceZone{
	{ID: "zone-rtm", Name: "Port of Rotterdam", Lat: 51.95, Lng: 4.14, RadiusKm: 25},
	{ID: "zone-jea", Name: "Jebel Ali Free Zone", Lat: 25.01, Lng: 55.06, RadiusKm: 20},
	{ID: "zone-sin", Name: "Port of Singapore", Lat: 1.26, Lng: 103.84, RadiusKm: 15},
	{ID: "zone-suz", Name: "Suez Canal Zone", Lat: 30.46, Lng: 32.35, RadiusKm: 40},
	{ID: "zone-lax", Name: "Port of Los Angeles", Lat: 33.73, Lng: -118.26, RadiusKm: 18},
}

// FxSeedRates are the initial FX rates, expressed as USD per 1 unit of the
// currency. USD is always exactly 1.
var FxSeedRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.09,
	"GBP": 1.27,
	"AED": 0.27,
	"JPY": 0.0068,
	"CNY": 0.14,
	"SGD": 0.75,
	"INR": 0.012,
}
