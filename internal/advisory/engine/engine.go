// Package engine implements the fertilizer advisory rules: compatibility
// lookup, quantity assessment, and composite risk scoring over an immutable
// reference snapshot. Evaluation is pure and safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput marks inputs the engine refuses to evaluate. It is the
// only error Evaluate returns; every data-absence condition degrades to a
// permissive verdict instead.
var ErrInvalidInput = errors.New("invalid input")

const (
	maxRecommendations     = 8
	fallbackRecommendation = "Conditions look acceptable; follow the label rate and monitor the crop after application."
)

// Evaluate runs the full advisory pipeline for one input and returns either
// a complete result or ErrInvalidInput. Reference data is read-only; two
// calls with the same input and snapshot produce identical results.
func Evaluate(in Input, ref *ReferenceData) (Result, error) {
	if ref == nil {
		ref = Default()
	}
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return Result{}, err
	}

	compat := EvaluateCompatibility(in, ref)
	status, reason, quantityRecs := EvaluateQuantity(in, ref)

	riskCfg := ref.Rules().Risk
	score := CalculateRisk(RiskFactors{
		Compatible:  compat.Compatible,
		Quantity:    status,
		Nitrogen:    in.Nitrogen,
		Phosphorous: in.Phosphorous,
		Potassium:   in.Potassium,
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		Moisture:    in.Moisture,
	}, riskCfg)

	return Result{
		Compatibility:   compat,
		Quantity:        QuantityVerdict{Status: status, Reason: reason},
		RiskScore:       score,
		OverallStatus:   RiskLabel(score, riskCfg.Thresholds),
		Recommendations: composeRecommendations(compat, quantityRecs),
		Input:           in,
	}, nil
}

func normalizeInput(in Input) Input {
	in.SoilType = string(NormalizeSoil(in.SoilType))
	in.CropType = strings.TrimSpace(in.CropType)
	in.FertilizerName = strings.TrimSpace(in.FertilizerName)
	return in
}

func validateInput(in Input) error {
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidInput, in.Quantity)
	}
	numbers := map[string]float64{
		"temperature": in.Temperature,
		"quantity":    in.Quantity,
		"nitrogen":    in.Nitrogen,
		"phosphorous": in.Phosphorous,
		"potassium":   in.Potassium,
	}
	if in.Humidity != nil {
		numbers["humidity"] = *in.Humidity
	}
	if in.Moisture != nil {
		numbers["moisture"] = *in.Moisture
	}
	for name, v := range numbers {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, name)
		}
	}
	if in.Nitrogen < 0 || in.Phosphorous < 0 || in.Potassium < 0 {
		return fmt.Errorf("%w: nutrient levels must be non-negative", ErrInvalidInput)
	}
	return nil
}

// composeRecommendations merges the evaluators' output: verdict-driven items
// first, contextual notes after, case-insensitive dedup, capped, never empty.
func composeRecommendations(compat Compatibility, quantityRecs []string) []string {
	merged := make([]string, 0, len(quantityRecs)+2)
	if !compat.Compatible && compat.Alternative != "" {
		merged = append(merged, fmt.Sprintf("Consider using %s instead.", compat.Alternative))
	}
	merged = append(merged, quantityRecs...)

	seen := make(map[string]bool, len(merged))
	out := make([]string, 0, len(merged))
	for _, rec := range merged {
		trimmed := strings.TrimSpace(rec)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}

	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	if len(out) == 0 {
		out = append(out, fallbackRecommendation)
	}
	return out
}
