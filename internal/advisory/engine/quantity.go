package engine

import (
	"fmt"
	"strings"
)

const maxQuantityRecommendations = 6

// EvaluateQuantity classifies the requested quantity against the
// fertilizer's range, adjusted for soil type and temperature. It returns the
// status, a human-readable reason, and the recommendation list with the
// verdict-driven item first and contextual notes after, in trigger order.
func EvaluateQuantity(in Input, ref *ReferenceData) (QuantityStatus, string, []string) {
	rules := ref.Rules()
	rng := ref.QuantityRange(in.FertilizerName)
	adj := rules.Adjustments

	var contextual []string

	switch NormalizeSoil(in.SoilType) {
	case SoilSandy:
		// Sandy drains fast: shift the ideal band upward, warn about leaching.
		rng.OptimalMin = clampRange(rng.OptimalMin*adj.SandyOptimalFactor, rng.Min, rng.Max)
		rng.OptimalMax = clampRange(rng.OptimalMax*adj.SandyOptimalFactor, rng.Min, rng.Max)
		contextual = append(contextual, "Sandy soil leaches nutrients quickly; split the dose across applications instead of applying at once.")
	case SoilClayey:
		// Clayey retains nutrients: tighten the top of the ideal band.
		rng.OptimalMax = clampRange(rng.OptimalMax*adj.ClayeyOptimalMaxFactor, rng.OptimalMin, rng.Max)
		contextual = append(contextual, "Clayey soil retains nutrients; watch for buildup across seasons.")
	case SoilBlack:
		contextual = append(contextual, "Black soil is naturally fertile; a moderate dose is usually enough.")
	}

	if in.Temperature > adj.HotTemperature {
		rng.OptimalMin = clampRange(rng.OptimalMin*adj.HotOptimalMinFactor, rng.Min, rng.OptimalMax)
		contextual = append(contextual, "High temperature raises nutrient demand; irrigate after application.")
	} else if in.Temperature < adj.CoolTemperature {
		rng.OptimalMin = clampRange(rng.OptimalMin*adj.CoolOptimalMinFactor, rng.Min, rng.OptimalMax)
		contextual = append(contextual, "Cool weather slows uptake; apply in the warmer part of the day.")
	}

	if in.Humidity != nil {
		if *in.Humidity > 75 {
			contextual = append(contextual, "High humidity; check drainage before applying.")
		} else if *in.Humidity < 35 {
			contextual = append(contextual, "Low humidity; irrigate after application to aid absorption.")
		}
	}
	if in.Moisture != nil && *in.Moisture < 25 {
		contextual = append(contextual, "Soil moisture is low; irrigate before application.")
	}

	status, reason, primary := classifyQuantity(in.Quantity, rng)

	contextual = append(contextual, nutrientNotes(in, rng, rules.Nutrients)...)

	recs := append([]string{primary}, contextual...)
	if len(recs) > maxQuantityRecommendations {
		recs = recs[:maxQuantityRecommendations]
	}
	return status, reason, recs
}

func classifyQuantity(quantity float64, rng QuantityRange) (QuantityStatus, string, string) {
	switch {
	case quantity < rng.Min:
		return QuantityTooLow,
			fmt.Sprintf("%.0f kg/ha is %.0f kg/ha below the minimum of %.0f kg/ha.", quantity, rng.Min-quantity, rng.Min),
			fmt.Sprintf("Raise the application to around %.0f kg/ha.", rng.OptimalMin)
	case quantity < rng.OptimalMin:
		// Within the safe range but under the ideal band: acceptable, nudge up.
		return QuantityOptimal,
			fmt.Sprintf("%.0f kg/ha is within the safe range (%.0f-%.0f kg/ha) but below the ideal band.", quantity, rng.Min, rng.Max),
			fmt.Sprintf("Consider raising toward %.0f kg/ha for best response.", rng.OptimalMin)
	case quantity <= rng.OptimalMax:
		return QuantityOptimal,
			fmt.Sprintf("%.0f kg/ha sits in the ideal band of %.0f-%.0f kg/ha.", quantity, rng.OptimalMin, rng.OptimalMax),
			"Proceed with a split-dose application."
	case quantity <= rng.Max:
		return QuantitySlightlyHigh,
			fmt.Sprintf("%.0f kg/ha is above the ideal band of %.0f-%.0f kg/ha but still within the safe maximum.", quantity, rng.OptimalMin, rng.OptimalMax),
			fmt.Sprintf("Reduce toward %.0f kg/ha; the extra dose adds cost without extra yield.", rng.OptimalMax)
	default:
		return QuantityTooHigh,
			fmt.Sprintf("%.0f kg/ha exceeds the safe maximum of %.0f kg/ha.", quantity, rng.Max),
			fmt.Sprintf("Reduce to %.0f kg/ha; excess fertilizer risks runoff into waterways.", rng.OptimalMax)
	}
}

func nutrientNotes(in Input, rng QuantityRange, t NutrientThresholds) []string {
	var notes []string
	switch strings.ToLower(rng.Class) {
	case "nitrogen":
		if in.Nitrogen > t.NitrogenMax {
			notes = append(notes, fmt.Sprintf("Soil nitrogen is already %.0f kg/ha; adding a nitrogen fertilizer risks excess.", in.Nitrogen))
		}
	case "phosphorus":
		if in.Phosphorous > t.PhosphorousMax {
			notes = append(notes, fmt.Sprintf("Soil phosphorous is already %.0f kg/ha; adding a phosphate fertilizer risks excess.", in.Phosphorous))
		}
	}
	return notes
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
