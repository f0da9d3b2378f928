package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 50, 100})
	h.Observe(5)
	h.Observe(40)
	h.Observe(250)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count = %d, want 3", snap.count)
	}
	want := []uint64{1, 2, 2}
	for i, c := range snap.counts {
		if c != want[i] {
			t.Fatalf("bucket %d = %d, want %d", i, c, want[i])
		}
	}
}

func TestRenderIncludesAllSeries(t *testing.T) {
	out := Render()
	for _, name := range []string{
		"advisory_created_total",
		"advisory_incompatible_total",
		"advisory_rejected_total",
		"advisory_duration_ms_bucket",
		"advisory_risk_score_count",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("exposition missing %s:\n%s", name, out)
		}
	}
	if !strings.Contains(out, `le="+Inf"`) {
		t.Fatalf("exposition missing +Inf bucket:\n%s", out)
	}
}
