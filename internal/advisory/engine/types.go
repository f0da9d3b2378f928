package engine

import "strings"

// SoilType is a soil category. Unknown values are carried through verbatim so
// callers can still evaluate them; Known reports whether the value is one of
// the reference categories.
type SoilType string

const (
	SoilSandy  SoilType = "Sandy"
	SoilLoamy  SoilType = "Loamy"
	SoilClayey SoilType = "Clayey"
	SoilBlack  SoilType = "Black"
	SoilRed    SoilType = "Red"
)

var knownSoils = []SoilType{SoilSandy, SoilLoamy, SoilClayey, SoilBlack, SoilRed}

// NormalizeSoil maps a raw soil name onto its canonical casing. Unrecognized
// names are trimmed and returned as-is.
func NormalizeSoil(raw string) SoilType {
	trimmed := strings.TrimSpace(raw)
	for _, s := range knownSoils {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return SoilType(trimmed)
}

// Known reports whether the soil is one of the reference categories.
func (s SoilType) Known() bool {
	for _, k := range knownSoils {
		if s == k {
			return true
		}
	}
	return false
}

// Grade is the static soil/fertilizer suitability label.
type Grade string

const (
	GradeExcellent Grade = "Excellent"
	GradeGood      Grade = "Good"
	GradeAverage   Grade = "Average"
)

// QuantityStatus classifies a proposed application quantity against the
// adjusted range for the fertilizer.
type QuantityStatus string

const (
	QuantityTooLow       QuantityStatus = "TooLow"
	QuantityOptimal      QuantityStatus = "Optimal"
	QuantitySlightlyHigh QuantityStatus = "SlightlyHigh"
	QuantityTooHigh      QuantityStatus = "TooHigh"
)

// Input is a single evaluation request. Humidity and moisture are optional;
// nil means the caller has no reading, which is different from zero.
type Input struct {
	Temperature    float64  `json:"temperature"`
	Humidity       *float64 `json:"humidity,omitempty"`
	Moisture       *float64 `json:"moisture,omitempty"`
	SoilType       string   `json:"soilType"`
	CropType       string   `json:"cropType"`
	FertilizerName string   `json:"fertilizerName"`
	Quantity       float64  `json:"quantity"`
	Nitrogen       float64  `json:"nitrogen"`
	Phosphorous    float64  `json:"phosphorous"`
	Potassium      float64  `json:"potassium"`
}

// Compatibility is the verdict of the compatibility evaluator.
type Compatibility struct {
	Compatible  bool   `json:"compatible"`
	Reason      string `json:"reason"`
	Alternative string `json:"alternative,omitempty"`
}

// QuantityVerdict is the verdict of the quantity evaluator. The
// recommendations it produces are merged into Result.Recommendations.
type QuantityVerdict struct {
	Status QuantityStatus `json:"status"`
	Reason string         `json:"reason"`
}

// Result is the composed advisory for one input.
type Result struct {
	Compatibility   Compatibility   `json:"compatibility"`
	Quantity        QuantityVerdict `json:"quantity"`
	RiskScore       int             `json:"riskScore"`
	OverallStatus   string          `json:"overallStatus"`
	Recommendations []string        `json:"recommendations"`
	Input           Input           `json:"input"`
}

// CropProfile holds a crop's optimal growing ranges and its commonly used
// fertilizers, ordered by preference.
type CropProfile struct {
	TemperatureMin    float64  `yaml:"temperature_min" json:"temperatureMin"`
	TemperatureMax    float64  `yaml:"temperature_max" json:"temperatureMax"`
	MoistureMin       float64  `yaml:"moisture_min" json:"moistureMin"`
	MoistureMax       float64  `yaml:"moisture_max" json:"moistureMax"`
	CommonFertilizers []string `yaml:"common_fertilizers" json:"commonFertilizers"`
}

// QuantityRange is a fertilizer's application-rate band in kg per hectare.
type QuantityRange struct {
	Min        float64 `yaml:"min" json:"min"`
	Max        float64 `yaml:"max" json:"max"`
	OptimalMin float64 `yaml:"optimal_min" json:"optimalMin"`
	OptimalMax float64 `yaml:"optimal_max" json:"optimalMax"`
	// Class groups fertilizers by dominant nutrient: nitrogen, phosphorus,
	// or compound. Drives the nutrient-balance cautions.
	Class string `yaml:"class" json:"class,omitempty"`
}
