package engine

import (
	"fmt"
	"strings"
)

// EvaluateCompatibility decides whether the fertilizer suits the crop, soil,
// and weather. Historical usage statistics take priority; the static grade
// table is the fallback, and a permissive no-data verdict is the terminal
// tier. Weather only annotates the reason, it never flips the verdict.
func EvaluateCompatibility(in Input, ref *ReferenceData) Compatibility {
	note := weatherNote(in)
	thresholds := ref.Rules().Compatibility

	if ref.HistoricalAvailable() {
		freq := ref.FrequencyByCropSoil(in.CropType, in.SoilType)
		if len(freq) > 0 {
			return gradeByFrequency(in, freq, thresholds, note)
		}

		cropFreq := ref.FrequencyByCrop(in.CropType)
		if len(cropFreq) > 0 {
			if countFor(cropFreq, in.FertilizerName) > 0 {
				return Compatibility{
					Compatible: true,
					Reason: fmt.Sprintf("%s is in recorded use for %s on other soil types%s.",
						in.FertilizerName, in.CropType, note),
				}
			}
			alt := mostFrequent(cropFreq)
			return Compatibility{
				Compatible: false,
				Reason: fmt.Sprintf("No recorded use of %s for %s; %s is the most common choice for this crop%s.",
					in.FertilizerName, in.CropType, alt, note),
				Alternative: alt,
			}
		}
	}

	if grade, ok := ref.StaticCompatibility(in.SoilType, in.FertilizerName); ok {
		switch grade {
		case GradeExcellent, GradeGood:
			return Compatibility{
				Compatible: true,
				Reason: fmt.Sprintf("%s is rated %s for %s soil%s.",
					in.FertilizerName, strings.ToLower(string(grade)), in.SoilType, note),
			}
		default:
			// Average is compatible with a caveat, never a hard rejection.
			return Compatibility{
				Compatible: true,
				Reason: fmt.Sprintf("%s has average compatibility with %s soil; consider adding organic matter as an amendment%s.",
					in.FertilizerName, in.SoilType, note),
			}
		}
	}

	return Compatibility{
		Compatible: true,
		Reason: fmt.Sprintf("No compatibility data on file for %s with %s on %s soil; no restriction applies%s.",
			in.FertilizerName, in.CropType, in.SoilType, note),
	}
}

func gradeByFrequency(in Input, freq map[string]int, t CompatibilityThresholds, note string) Compatibility {
	total := 0
	for _, count := range freq {
		total += count
	}
	count := countFor(freq, in.FertilizerName)
	pct := float64(count) / float64(total) * 100

	switch {
	case pct >= t.HighPct:
		return Compatibility{
			Compatible: true,
			Reason: fmt.Sprintf("%s is highly suitable for %s on %s soil, used in %.0f%% of recorded cases%s.",
				in.FertilizerName, in.CropType, in.SoilType, pct, note),
		}
	case pct >= t.ModeratePct:
		return Compatibility{
			Compatible: true,
			Reason: fmt.Sprintf("%s is moderately suitable for %s on %s soil, used in %.0f%% of recorded cases%s.",
				in.FertilizerName, in.CropType, in.SoilType, pct, note),
		}
	case count > 0:
		alt := mostFrequent(freq)
		return Compatibility{
			Compatible: false,
			Reason: fmt.Sprintf("%s is rarely used for %s on %s soil (%.0f%% of recorded cases); %s is the usual choice%s.",
				in.FertilizerName, in.CropType, in.SoilType, pct, alt, note),
			Alternative: alt,
		}
	default:
		alt := mostFrequent(freq)
		return Compatibility{
			Compatible: false,
			Reason: fmt.Sprintf("%s has no recorded use for %s on %s soil; %s is the usual choice%s.",
				in.FertilizerName, in.CropType, in.SoilType, alt, note),
			Alternative: alt,
		}
	}
}

func countFor(freq map[string]int, fertilizer string) int {
	for name, count := range freq {
		if strings.EqualFold(name, strings.TrimSpace(fertilizer)) {
			return count
		}
	}
	return 0
}

// weatherNote builds the non-blocking weather annotation appended to the
// compatibility reason.
func weatherNote(in Input) string {
	var notes []string
	if in.Humidity != nil && in.Temperature > 30 && *in.Humidity < 40 {
		notes = append(notes, "hot and dry conditions reduce uptake efficiency")
	}
	if in.Temperature < 20 {
		notes = append(notes, "cool weather slows nutrient uptake")
	}
	if in.Humidity != nil && *in.Humidity > 70 {
		notes = append(notes, "high humidity, monitor for fungal risk")
	}
	if len(notes) == 0 {
		return ""
	}
	return " (" + strings.Join(notes, "; ") + ")"
}
