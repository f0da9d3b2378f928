package engine

import "testing"

func TestCalculateRiskTerms(t *testing.T) {
	cfg := DefaultRiskConfig()
	base := RiskFactors{
		Compatible:  true,
		Quantity:    QuantityOptimal,
		Nitrogen:    20,
		Phosphorous: 20,
		Potassium:   20,
		Temperature: 26,
	}

	cases := []struct {
		name   string
		mutate func(*RiskFactors)
		want   int
	}{
		{name: "all_clear", mutate: func(*RiskFactors) {}, want: 0},
		{name: "incompatible", mutate: func(f *RiskFactors) { f.Compatible = false }, want: 25},
		{name: "slightly_high", mutate: func(f *RiskFactors) { f.Quantity = QuantitySlightlyHigh }, want: 12},
		{name: "too_high", mutate: func(f *RiskFactors) { f.Quantity = QuantityTooHigh }, want: 30},
		{name: "too_low", mutate: func(f *RiskFactors) { f.Quantity = QuantityTooLow }, want: 18},
		{name: "unknown_status", mutate: func(f *RiskFactors) { f.Quantity = "Bogus" }, want: 20},
		{name: "npk_overload", mutate: func(f *RiskFactors) { f.Nitrogen, f.Phosphorous, f.Potassium = 40, 40, 15 }, want: 20},
		{name: "npk_deficit", mutate: func(f *RiskFactors) { f.Nitrogen, f.Phosphorous, f.Potassium = 5, 5, 5 }, want: 15},
		{name: "npk_total_just_above_deficit_band", mutate: func(f *RiskFactors) { f.Nitrogen, f.Phosphorous, f.Potassium = 10, 5, 5 }, want: 0},
		{name: "temp_extreme_cold", mutate: func(f *RiskFactors) { f.Temperature = 5 }, want: 15},
		{name: "temp_extreme_hot", mutate: func(f *RiskFactors) { f.Temperature = 36 }, want: 15},
		{name: "temp_suboptimal", mutate: func(f *RiskFactors) { f.Temperature = 12 }, want: 8},
		{name: "temp_bands_not_additive", mutate: func(f *RiskFactors) { f.Temperature = 40 }, want: 15},
		{name: "humidity_low", mutate: func(f *RiskFactors) { f.Humidity = f64(20) }, want: 5},
		{name: "humidity_high", mutate: func(f *RiskFactors) { f.Humidity = f64(90) }, want: 5},
		{name: "humidity_in_band", mutate: func(f *RiskFactors) { f.Humidity = f64(50) }, want: 0},
		{name: "moisture_low", mutate: func(f *RiskFactors) { f.Moisture = f64(10) }, want: 10},
		{name: "moisture_high", mutate: func(f *RiskFactors) { f.Moisture = f64(80) }, want: 5},
		{name: "absent_readings_skip_terms", mutate: func(f *RiskFactors) { f.Humidity, f.Moisture = nil, nil }, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := base
			tc.mutate(&f)
			if got := CalculateRisk(f, cfg); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCalculateRiskClampsAt100(t *testing.T) {
	cfg := DefaultRiskConfig()
	got := CalculateRisk(RiskFactors{
		Compatible:  false,
		Quantity:    QuantityTooHigh,
		Nitrogen:    50,
		Phosphorous: 30,
		Potassium:   30,
		Temperature: 45,
		Humidity:    f64(95),
		Moisture:    f64(5),
	}, cfg)
	if got != 100 {
		t.Fatalf("expected clamp at 100, got %d", got)
	}
}

func TestRiskLabelThresholds(t *testing.T) {
	th := DefaultRiskConfig().Thresholds
	cases := []struct {
		score int
		want  string
	}{
		{0, StatusLowRisk},
		{20, StatusLowRisk},
		{21, StatusModerateRisk},
		{30, StatusModerateRisk},
		{35, StatusModerateRisk},
		{36, StatusReviewRisk},
		{50, StatusReviewRisk},
		{51, StatusHighRisk},
		{100, StatusHighRisk},
	}
	for _, tc := range cases {
		if got := RiskLabel(tc.score, th); got != tc.want {
			t.Fatalf("score %d: expected %q, got %q", tc.score, tc.want, got)
		}
	}
}
