package engine

import (
	"testing"
)

func TestNewReferenceDataSkipsIncompleteRecords(t *testing.T) {
	records := []UsageRecord{
		{CropType: "Maize", SoilType: "Loamy", Fertilizer: "Urea"},
		{CropType: "Maize", SoilType: "Loamy"},
		{CropType: "", SoilType: "Loamy", Fertilizer: "DAP"},
		{CropType: "Wheat", SoilType: "Sandy", Fertilizer: "DAP"},
	}

	ref := NewReferenceData(DefaultRules(), records)
	if ref.RecordCount() != 2 {
		t.Fatalf("expected 2 usable records, got %d", ref.RecordCount())
	}
	if ref.SkippedRecords() != 2 {
		t.Fatalf("expected 2 skipped records, got %d", ref.SkippedRecords())
	}
}

func TestDefaultBundledSnapshot(t *testing.T) {
	ref := Default()
	if ref == nil {
		t.Fatal("expected bundled snapshot")
	}
	if !ref.HistoricalAvailable() {
		t.Fatal("expected bundled historical records")
	}
	if ref.SkippedRecords() != 0 {
		t.Fatalf("bundled dataset should have no malformed rows, skipped %d", ref.SkippedRecords())
	}
	if ref != Default() {
		t.Fatal("expected Default to return the same snapshot")
	}
}

func TestLoadMissingDatasetFailsSoft(t *testing.T) {
	ref, err := Load("", "/nonexistent/fertilizer_records.json")
	if err == nil {
		t.Fatal("expected a load error to report")
	}
	if ref == nil {
		t.Fatal("expected a usable snapshot despite the dataset error")
	}
	if ref.HistoricalAvailable() {
		t.Fatal("expected static-table-only mode")
	}
	if _, ok := ref.StaticCompatibility("Loamy", "Urea"); !ok {
		t.Fatal("static tables should still be loaded")
	}
}

func TestLoadMissingRulesFallsBackToEmbedded(t *testing.T) {
	ref, err := Load("/nonexistent/rules.yaml", "")
	if err == nil {
		t.Fatal("expected a rules load error to report")
	}
	if ref == nil || len(ref.Rules().CropProfiles) == 0 {
		t.Fatal("expected embedded rules fallback")
	}
}

func TestQuantityRangeFallback(t *testing.T) {
	ref := NewReferenceData(DefaultRules(), nil)

	rng := ref.QuantityRange("XYZ-9")
	want := QuantityRange{Min: 20, Max: 60, OptimalMin: 30, OptimalMax: 45}
	if rng.Min != want.Min || rng.Max != want.Max || rng.OptimalMin != want.OptimalMin || rng.OptimalMax != want.OptimalMax {
		t.Fatalf("expected generic fallback range %+v, got %+v", want, rng)
	}

	urea := ref.QuantityRange("urea")
	if urea.Min != 30 || urea.Max != 70 || urea.OptimalMin != 40 || urea.OptimalMax != 60 {
		t.Fatalf("expected case-insensitive Urea range, got %+v", urea)
	}
}

func TestCropProfileFallback(t *testing.T) {
	ref := NewReferenceData(DefaultRules(), nil)

	unknown := ref.CropProfile("Dragonfruit")
	maize := ref.CropProfile("Maize")
	if unknown.TemperatureMin != maize.TemperatureMin || unknown.MoistureMax != maize.MoistureMax {
		t.Fatalf("expected default crop profile for unknown crop, got %+v", unknown)
	}
}

func TestStaticCompatibilityUnknownCombination(t *testing.T) {
	ref := NewReferenceData(DefaultRules(), nil)

	if _, ok := ref.StaticCompatibility("Martian", "Urea"); ok {
		t.Fatal("expected no grade for unknown soil")
	}
	if _, ok := ref.StaticCompatibility("Loamy", "XYZ-9"); ok {
		t.Fatal("expected no grade for unknown fertilizer")
	}
	grade, ok := ref.StaticCompatibility("loamy", "urea")
	if !ok || grade != GradeExcellent {
		t.Fatalf("expected case-insensitive Excellent, got %q ok=%v", grade, ok)
	}
}

func TestFrequencyLookups(t *testing.T) {
	ref := NewReferenceData(DefaultRules(), []UsageRecord{
		{CropType: "Maize", SoilType: "Loamy", Fertilizer: "Urea"},
		{CropType: "Maize", SoilType: "Loamy", Fertilizer: "Urea"},
		{CropType: "Maize", SoilType: "Loamy", Fertilizer: "DAP"},
		{CropType: "Maize", SoilType: "Sandy", Fertilizer: "28-28"},
		{CropType: "Wheat", SoilType: "Loamy", Fertilizer: "Urea"},
	})

	freq := ref.FrequencyByCropSoil("maize", "LOAMY")
	if freq["Urea"] != 2 || freq["DAP"] != 1 {
		t.Fatalf("unexpected crop+soil frequency: %v", freq)
	}
	if got := ref.FrequencyByCropSoil("Maize", "Black"); len(got) != 0 {
		t.Fatalf("expected empty map for no matches, got %v", got)
	}
	cropFreq := ref.FrequencyByCrop("Maize")
	if cropFreq["Urea"] != 2 || cropFreq["28-28"] != 1 {
		t.Fatalf("unexpected crop-only frequency: %v", cropFreq)
	}
}

func TestMostFrequentTieBreaksAlphabetically(t *testing.T) {
	got := mostFrequent(map[string]int{"Urea": 2, "DAP": 2, "28-28": 1})
	if got != "DAP" {
		t.Fatalf("expected alphabetical tie-break to pick DAP, got %q", got)
	}
}
