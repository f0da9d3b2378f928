package engine

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules/rules.yaml
var rulesFS embed.FS

// CompatibilityThresholds are the historical-frequency cut points, expressed
// as percentages of matched records.
type CompatibilityThresholds struct {
	HighPct     float64 `yaml:"high_pct"`
	ModeratePct float64 `yaml:"moderate_pct"`
}

// QuantityAdjustments tunes how soil type and temperature shift the optimal
// band. Factors multiply the base optimal bounds.
type QuantityAdjustments struct {
	SandyOptimalFactor     float64 `yaml:"sandy_optimal_factor"`
	ClayeyOptimalMaxFactor float64 `yaml:"clayey_optimal_max_factor"`
	HotOptimalMinFactor    float64 `yaml:"hot_optimal_min_factor"`
	CoolOptimalMinFactor   float64 `yaml:"cool_optimal_min_factor"`
	HotTemperature         float64 `yaml:"hot_temperature"`
	CoolTemperature        float64 `yaml:"cool_temperature"`
}

// NutrientThresholds are the supplied-nutrient levels above which an excess
// caution is appended, in kg/ha.
type NutrientThresholds struct {
	NitrogenMax    float64 `yaml:"nitrogen_max"`
	PhosphorousMax float64 `yaml:"phosphorous_max"`
}

// Rules is the static reference configuration: lookup tables plus the policy
// constants of the evaluators and the risk scorer. It is versionable data,
// bundled with the binary and overridable from a file.
type Rules struct {
	SoilCompatibility    map[string]map[string]Grade `yaml:"soil_compatibility"`
	CropProfiles         map[string]CropProfile      `yaml:"crop_profiles"`
	DefaultCrop          string                      `yaml:"default_crop"`
	QuantityRanges       map[string]QuantityRange    `yaml:"quantity_ranges"`
	DefaultQuantityRange QuantityRange               `yaml:"default_quantity_range"`
	Compatibility        CompatibilityThresholds     `yaml:"compatibility"`
	Adjustments          QuantityAdjustments         `yaml:"adjustments"`
	Nutrients            NutrientThresholds          `yaml:"nutrients"`
	Risk                 RiskConfig                  `yaml:"risk"`
}

// DefaultRules parses the embedded rules file. The bundled file is part of
// the build, so failure to parse it is a programming error.
func DefaultRules() *Rules {
	data, err := rulesFS.ReadFile("rules/rules.yaml")
	if err != nil {
		panic(fmt.Sprintf("engine: embedded rules missing: %v", err))
	}
	rules, err := parseRules(data)
	if err != nil {
		panic(fmt.Sprintf("engine: embedded rules invalid: %v", err))
	}
	return rules
}

// LoadRules reads rules from path, falling back to the embedded defaults if
// the file is missing or malformed.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultRules(), fmt.Errorf("read rules %s: %w", path, err)
	}
	rules, err := parseRules(data)
	if err != nil {
		return DefaultRules(), fmt.Errorf("parse rules %s: %w", path, err)
	}
	return rules, nil
}

func parseRules(data []byte) (*Rules, error) {
	// Start from defaults so a partial file only overrides what it names.
	rules := &Rules{
		DefaultCrop:          "Maize",
		DefaultQuantityRange: QuantityRange{Min: 20, Max: 60, OptimalMin: 30, OptimalMax: 45},
		Compatibility:        CompatibilityThresholds{HighPct: 30, ModeratePct: 15},
		Adjustments: QuantityAdjustments{
			SandyOptimalFactor:     1.10,
			ClayeyOptimalMaxFactor: 0.90,
			HotOptimalMinFactor:    1.10,
			CoolOptimalMinFactor:   0.90,
			HotTemperature:         32,
			CoolTemperature:        18,
		},
		Nutrients: NutrientThresholds{NitrogenMax: 45, PhosphorousMax: 28},
		Risk:      DefaultRiskConfig(),
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, err
	}
	if len(rules.CropProfiles) == 0 {
		return nil, fmt.Errorf("rules: no crop profiles defined")
	}
	if _, ok := rules.CropProfiles[rules.DefaultCrop]; !ok {
		return nil, fmt.Errorf("rules: default crop %q has no profile", rules.DefaultCrop)
	}
	return rules, nil
}
