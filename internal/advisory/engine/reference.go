package engine

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed data/fertilizer_records.json
var datasetFS embed.FS

// UsageRecord is one historical observation: a fertilizer applied to a crop
// on a soil type. Field names follow the source dataset's column headers.
type UsageRecord struct {
	Temperature float64 `json:"Temparature"`
	Humidity    float64 `json:"Humidity"`
	Moisture    float64 `json:"Moisture"`
	SoilType    string  `json:"Soil Type"`
	CropType    string  `json:"Crop Type"`
	Nitrogen    float64 `json:"Nitrogen"`
	Potassium   float64 `json:"Potassium"`
	Phosphorous float64 `json:"Phosphorous"`
	Fertilizer  string  `json:"Fertilizer Name"`
}

func (r UsageRecord) complete() bool {
	return strings.TrimSpace(r.CropType) != "" &&
		strings.TrimSpace(r.SoilType) != "" &&
		strings.TrimSpace(r.Fertilizer) != ""
}

// ReferenceData is the immutable snapshot every evaluation reads: the static
// rule tables plus the optional historical usage dataset. Construct once,
// share freely; it is never mutated after load.
type ReferenceData struct {
	rules   *Rules
	records []UsageRecord
	skipped int
}

// NewReferenceData builds a snapshot from explicit parts. Records missing a
// crop, soil, or fertilizer are dropped. A nil rules value gets the embedded
// defaults.
func NewReferenceData(rules *Rules, records []UsageRecord) *ReferenceData {
	if rules == nil {
		rules = DefaultRules()
	}
	ref := &ReferenceData{rules: rules}
	for _, rec := range records {
		if !rec.complete() {
			ref.skipped++
			continue
		}
		ref.records = append(ref.records, rec)
	}
	return ref
}

// Load builds a snapshot from optional file overrides. Either path may be
// empty to use the bundled copy. Loading fails soft: a missing or malformed
// dataset yields a snapshot without historical data, and the returned error
// describes what was skipped so the caller can log it once.
func Load(rulesPath, datasetPath string) (*ReferenceData, error) {
	var loadErr error

	rules, err := LoadRules(rulesPath)
	if err != nil {
		loadErr = err
	}

	records, err := loadDataset(datasetPath)
	if err != nil && loadErr == nil {
		loadErr = err
	}

	return NewReferenceData(rules, records), loadErr
}

func loadDataset(path string) ([]UsageRecord, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = datasetFS.ReadFile("data/fertilizer_records.json")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var records []UsageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return records, nil
}

var (
	defaultOnce sync.Once
	defaultRef  *ReferenceData
)

// Default returns the process-wide snapshot built from the bundled rules and
// dataset. The load runs exactly once; concurrent first callers share it.
func Default() *ReferenceData {
	defaultOnce.Do(func() {
		defaultRef, _ = Load("", "")
	})
	return defaultRef
}

// Rules exposes the static tables and policy constants.
func (r *ReferenceData) Rules() *Rules { return r.rules }

// HistoricalAvailable reports whether any usable historical records loaded.
func (r *ReferenceData) HistoricalAvailable() bool { return len(r.records) > 0 }

// SkippedRecords is the count of dataset rows dropped for missing fields.
func (r *ReferenceData) SkippedRecords() int { return r.skipped }

// RecordCount is the number of usable historical records.
func (r *ReferenceData) RecordCount() int { return len(r.records) }

// StaticCompatibility looks up the soil/fertilizer grade. The second return
// is false for combinations not on file; that is data absence, not an error.
func (r *ReferenceData) StaticCompatibility(soil, fertilizer string) (Grade, bool) {
	for soilName, ferts := range r.rules.SoilCompatibility {
		if !strings.EqualFold(soilName, strings.TrimSpace(soil)) {
			continue
		}
		for fertName, grade := range ferts {
			if strings.EqualFold(fertName, strings.TrimSpace(fertilizer)) {
				return grade, true
			}
		}
	}
	return "", false
}

// FrequencyByCropSoil counts fertilizer usage across records matching both
// crop and soil, case-insensitively. Empty map when nothing matches.
func (r *ReferenceData) FrequencyByCropSoil(crop, soil string) map[string]int {
	freq := make(map[string]int)
	for _, rec := range r.records {
		if strings.EqualFold(rec.CropType, strings.TrimSpace(crop)) &&
			strings.EqualFold(rec.SoilType, strings.TrimSpace(soil)) {
			freq[rec.Fertilizer]++
		}
	}
	return freq
}

// FrequencyByCrop counts fertilizer usage across records matching the crop
// on any soil.
func (r *ReferenceData) FrequencyByCrop(crop string) map[string]int {
	freq := make(map[string]int)
	for _, rec := range r.records {
		if strings.EqualFold(rec.CropType, strings.TrimSpace(crop)) {
			freq[rec.Fertilizer]++
		}
	}
	return freq
}

// CropProfile returns the crop's profile, or the default crop's profile when
// the crop is unknown. The fallback is policy, not an error.
func (r *ReferenceData) CropProfile(crop string) CropProfile {
	for name, profile := range r.rules.CropProfiles {
		if strings.EqualFold(name, strings.TrimSpace(crop)) {
			return profile
		}
	}
	return r.rules.CropProfiles[r.rules.DefaultCrop]
}

// QuantityRange returns the fertilizer's application band, or the
// conservative default band when the fertilizer is unknown.
func (r *ReferenceData) QuantityRange(fertilizer string) QuantityRange {
	for name, rng := range r.rules.QuantityRanges {
		if strings.EqualFold(name, strings.TrimSpace(fertilizer)) {
			return rng
		}
	}
	return r.rules.DefaultQuantityRange
}

// mostFrequent returns the highest-count fertilizer in freq, breaking count
// ties alphabetically for reproducibility.
func mostFrequent(freq map[string]int) string {
	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	bestCount := 0
	for _, name := range names {
		if freq[name] > bestCount {
			best = name
			bestCount = freq[name]
		}
	}
	return best
}
