package engine

import (
	"strings"
	"testing"
)

func usageN(crop, soil, fertilizer string, n int) []UsageRecord {
	out := make([]UsageRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, UsageRecord{CropType: crop, SoilType: soil, Fertilizer: fertilizer})
	}
	return out
}

func staticOnlyRef() *ReferenceData {
	return NewReferenceData(DefaultRules(), nil)
}

func TestCompatibilityFrequencyThresholds(t *testing.T) {
	// 20 crop+soil records; Urea share controlled per case.
	cases := []struct {
		name       string
		ureaCount  int
		compatible bool
		reasonHas  string
	}{
		{name: "exactly_30pct_highly_suitable", ureaCount: 6, compatible: true, reasonHas: "highly suitable"},
		{name: "exactly_15pct_moderately_suitable", ureaCount: 3, compatible: true, reasonHas: "moderately suitable"},
		{name: "below_15pct_incompatible", ureaCount: 2, compatible: false, reasonHas: "rarely used"},
		{name: "above_30pct_highly_suitable", ureaCount: 10, compatible: true, reasonHas: "highly suitable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := usageN("Maize", "Loamy", "Urea", tc.ureaCount)
			records = append(records, usageN("Maize", "Loamy", "DAP", 20-tc.ureaCount)...)
			ref := NewReferenceData(DefaultRules(), records)

			got := EvaluateCompatibility(Input{
				Temperature:    26,
				SoilType:       "Loamy",
				CropType:       "Maize",
				FertilizerName: "Urea",
				Quantity:       50,
			}, ref)

			if got.Compatible != tc.compatible {
				t.Fatalf("expected compatible=%v, got %v (%s)", tc.compatible, got.Compatible, got.Reason)
			}
			if !strings.Contains(got.Reason, tc.reasonHas) {
				t.Fatalf("expected reason to contain %q, got %q", tc.reasonHas, got.Reason)
			}
			if !tc.compatible && got.Alternative != "DAP" {
				t.Fatalf("expected DAP alternative, got %q", got.Alternative)
			}
		})
	}
}

func TestCompatibilityAbsentFertilizerSuggestsMostFrequent(t *testing.T) {
	records := append(usageN("Maize", "Loamy", "Urea", 3), usageN("Maize", "Loamy", "DAP", 1)...)
	ref := NewReferenceData(DefaultRules(), records)

	got := EvaluateCompatibility(Input{
		Temperature:    26,
		SoilType:       "Loamy",
		CropType:       "Maize",
		FertilizerName: "20-20",
		Quantity:       30,
	}, ref)

	if got.Compatible {
		t.Fatalf("expected incompatible for unrecorded fertilizer, got: %s", got.Reason)
	}
	if got.Alternative != "Urea" {
		t.Fatalf("expected Urea alternative, got %q", got.Alternative)
	}
}

func TestCompatibilityCropOnlyTier(t *testing.T) {
	// Records exist for the crop, but only on a different soil.
	records := append(usageN("Maize", "Sandy", "Urea", 2), usageN("Maize", "Sandy", "28-28", 3)...)
	ref := NewReferenceData(DefaultRules(), records)

	present := EvaluateCompatibility(Input{
		Temperature: 26, SoilType: "Loamy", CropType: "Maize", FertilizerName: "Urea", Quantity: 50,
	}, ref)
	if !present.Compatible {
		t.Fatalf("expected compatible via crop-only tier, got: %s", present.Reason)
	}

	absent := EvaluateCompatibility(Input{
		Temperature: 26, SoilType: "Loamy", CropType: "Maize", FertilizerName: "DAP", Quantity: 50,
	}, ref)
	if absent.Compatible {
		t.Fatalf("expected incompatible via crop-only tier, got: %s", absent.Reason)
	}
	if absent.Alternative != "28-28" {
		t.Fatalf("expected 28-28 alternative, got %q", absent.Alternative)
	}
}

func TestCompatibilityStaticGradeTier(t *testing.T) {
	ref := staticOnlyRef()

	excellent := EvaluateCompatibility(Input{
		Temperature: 26, SoilType: "Loamy", CropType: "Maize", FertilizerName: "Urea", Quantity: 50,
	}, ref)
	if !excellent.Compatible {
		t.Fatalf("expected Excellent grade to be compatible, got: %s", excellent.Reason)
	}

	// Average is compatible with a caveat, never a hard rejection.
	average := EvaluateCompatibility(Input{
		Temperature: 26, SoilType: "Red", CropType: "Maize", FertilizerName: "Urea", Quantity: 50,
	}, ref)
	if !average.Compatible {
		t.Fatalf("expected Average grade to stay compatible, got: %s", average.Reason)
	}
	if !strings.Contains(average.Reason, "average compatibility") {
		t.Fatalf("expected caveat in reason, got %q", average.Reason)
	}
}

func TestCompatibilityPermissiveFallback(t *testing.T) {
	ref := staticOnlyRef()

	got := EvaluateCompatibility(Input{
		Temperature: 26, SoilType: "", CropType: "", FertilizerName: "XYZ-9", Quantity: 30,
	}, ref)
	if !got.Compatible {
		t.Fatalf("expected permissive no-data verdict, got: %s", got.Reason)
	}
	if got.Alternative != "" {
		t.Fatalf("expected no alternative, got %q", got.Alternative)
	}
}

func TestCompatibilityWeatherAnnotationNeverFlipsVerdict(t *testing.T) {
	ref := staticOnlyRef()
	humidity := 30.0

	got := EvaluateCompatibility(Input{
		Temperature: 35, Humidity: &humidity,
		SoilType: "Loamy", CropType: "Maize", FertilizerName: "Urea", Quantity: 50,
	}, ref)
	if !got.Compatible {
		t.Fatalf("weather must not flip the verdict, got: %s", got.Reason)
	}
	if !strings.Contains(got.Reason, "hot and dry") {
		t.Fatalf("expected hot-and-dry annotation, got %q", got.Reason)
	}

	humid := 80.0
	cool := EvaluateCompatibility(Input{
		Temperature: 15, Humidity: &humid,
		SoilType: "Loamy", CropType: "Maize", FertilizerName: "Urea", Quantity: 50,
	}, ref)
	if !strings.Contains(cool.Reason, "cool weather") || !strings.Contains(cool.Reason, "fungal") {
		t.Fatalf("expected cool and humidity annotations, got %q", cool.Reason)
	}
}
