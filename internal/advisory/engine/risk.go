package engine

// Overall status labels, derived from the risk score thresholds.
const (
	StatusLowRisk      = "Low Risk"
	StatusModerateRisk = "Moderate Risk — Acceptable"
	StatusReviewRisk   = "Moderate-High Risk — Review"
	StatusHighRisk     = "High Risk — Not Recommended"
)

// RiskWeights are the additive penalty points per factor.
type RiskWeights struct {
	Incompatible          int `yaml:"incompatible"`
	QuantitySlightlyHigh  int `yaml:"quantity_slightly_high"`
	QuantityTooHigh       int `yaml:"quantity_too_high"`
	QuantityTooLow        int `yaml:"quantity_too_low"`
	QuantityUnknown       int `yaml:"quantity_unknown"`
	NutrientOverload      int `yaml:"nutrient_overload"`
	NutrientDeficit       int `yaml:"nutrient_deficit"`
	TemperatureExtreme    int `yaml:"temperature_extreme"`
	TemperatureSuboptimal int `yaml:"temperature_suboptimal"`
	HumidityOutOfBand     int `yaml:"humidity_out_of_band"`
	MoistureLow           int `yaml:"moisture_low"`
	MoistureHigh          int `yaml:"moisture_high"`
}

// RiskBands are the numeric cut points the weights key off.
type RiskBands struct {
	NPKOverloadTotal   float64 `yaml:"npk_overload_total"`
	NPKDeficitTotal    float64 `yaml:"npk_deficit_total"`
	NPKDeficitSingle   float64 `yaml:"npk_deficit_single"`
	TemperatureHardMin float64 `yaml:"temperature_hard_min"`
	TemperatureHardMax float64 `yaml:"temperature_hard_max"`
	TemperatureSoftMin float64 `yaml:"temperature_soft_min"`
	TemperatureSoftMax float64 `yaml:"temperature_soft_max"`
	HumidityMin        float64 `yaml:"humidity_min"`
	HumidityMax        float64 `yaml:"humidity_max"`
	MoistureMin        float64 `yaml:"moisture_min"`
	MoistureMax        float64 `yaml:"moisture_max"`
}

// RiskThresholds map a score onto the four overall status labels.
type RiskThresholds struct {
	Low      int `yaml:"low"`
	Moderate int `yaml:"moderate"`
	Review   int `yaml:"review"`
}

// RiskConfig bundles the scorer's policy constants.
type RiskConfig struct {
	Weights    RiskWeights    `yaml:"weights"`
	Bands      RiskBands      `yaml:"bands"`
	Thresholds RiskThresholds `yaml:"thresholds"`
}

// DefaultRiskConfig returns the canonical scoring constants.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		Weights: RiskWeights{
			Incompatible:          25,
			QuantitySlightlyHigh:  12,
			QuantityTooHigh:       30,
			QuantityTooLow:        18,
			QuantityUnknown:       20,
			NutrientOverload:      20,
			NutrientDeficit:       15,
			TemperatureExtreme:    15,
			TemperatureSuboptimal: 8,
			HumidityOutOfBand:     5,
			MoistureLow:           10,
			MoistureHigh:          5,
		},
		Bands: RiskBands{
			NPKOverloadTotal:   90,
			NPKDeficitTotal:    20,
			NPKDeficitSingle:   20,
			TemperatureHardMin: 10,
			TemperatureHardMax: 35,
			TemperatureSoftMin: 15,
			TemperatureSoftMax: 30,
			HumidityMin:        25,
			HumidityMax:        85,
			MoistureMin:        20,
			MoistureMax:        70,
		},
		Thresholds: RiskThresholds{Low: 20, Moderate: 35, Review: 50},
	}
}

// RiskFactors are the inputs to the risk scorer. Humidity and moisture are
// nil when the caller supplied no reading; their terms are then skipped.
type RiskFactors struct {
	Compatible  bool
	Quantity    QuantityStatus
	Nitrogen    float64
	Phosphorous float64
	Potassium   float64
	Temperature float64
	Humidity    *float64
	Moisture    *float64
}

// CalculateRisk sums the independent penalty terms and clamps to [0,100].
func CalculateRisk(f RiskFactors, cfg RiskConfig) int {
	w, b := cfg.Weights, cfg.Bands
	score := 0

	if !f.Compatible {
		score += w.Incompatible
	}

	switch f.Quantity {
	case QuantityOptimal:
		// no penalty
	case QuantitySlightlyHigh:
		score += w.QuantitySlightlyHigh
	case QuantityTooHigh:
		score += w.QuantityTooHigh
	case QuantityTooLow:
		score += w.QuantityTooLow
	default:
		score += w.QuantityUnknown
	}

	total := f.Nitrogen + f.Phosphorous + f.Potassium
	if total > b.NPKOverloadTotal {
		score += w.NutrientOverload
	} else if total < b.NPKDeficitTotal && f.Nitrogen < b.NPKDeficitSingle && f.Phosphorous < b.NPKDeficitSingle {
		score += w.NutrientDeficit
	}

	// Strictly nested temperature bands: at most one applies.
	if f.Temperature < b.TemperatureHardMin || f.Temperature > b.TemperatureHardMax {
		score += w.TemperatureExtreme
	} else if f.Temperature < b.TemperatureSoftMin || f.Temperature > b.TemperatureSoftMax {
		score += w.TemperatureSuboptimal
	}

	if f.Humidity != nil && (*f.Humidity < b.HumidityMin || *f.Humidity > b.HumidityMax) {
		score += w.HumidityOutOfBand
	}

	if f.Moisture != nil {
		if *f.Moisture < b.MoistureMin {
			score += w.MoistureLow
		} else if *f.Moisture > b.MoistureMax {
			score += w.MoistureHigh
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// RiskLabel maps a score onto its qualitative overall status.
func RiskLabel(score int, t RiskThresholds) string {
	switch {
	case score <= t.Low:
		return StatusLowRisk
	case score <= t.Moderate:
		return StatusModerateRisk
	case score <= t.Review:
		return StatusReviewRisk
	default:
		return StatusHighRisk
	}
}
