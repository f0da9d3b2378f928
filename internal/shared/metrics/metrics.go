package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	advisoryCreatedTotal      atomic.Uint64
	advisoryIncompatibleTotal atomic.Uint64
	advisoryRejectedTotal     atomic.Uint64

	advisoryDuration = newHistogram([]float64{1, 2, 5, 10, 25, 50, 100, 250, 500})
	riskScore        = newHistogram([]float64{10, 20, 35, 50, 65, 80, 100})
)

// IncAdvisoryCreated increments the created counter.
func IncAdvisoryCreated() {
	advisoryCreatedTotal.Add(1)
}

// IncAdvisoryIncompatible increments the incompatible-verdict counter.
func IncAdvisoryIncompatible() {
	advisoryIncompatibleTotal.Add(1)
}

// IncAdvisoryRejected increments the invalid-input counter.
func IncAdvisoryRejected() {
	advisoryRejectedTotal.Add(1)
}

// ObserveAdvisoryDurationMs records an evaluation duration in milliseconds.
func ObserveAdvisoryDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	advisoryDuration.Observe(value)
}

// ObserveRiskScore records a computed risk score.
func ObserveRiskScore(value float64) {
	if value < 0 {
		value = 0
	}
	riskScore.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "advisory_created_total", "Total advisories created", advisoryCreatedTotal.Load())
	writeCounter(&buf, "advisory_incompatible_total", "Total advisories with an incompatible verdict", advisoryIncompatibleTotal.Load())
	writeCounter(&buf, "advisory_rejected_total", "Total advisory requests rejected as invalid", advisoryRejectedTotal.Load())
	writeHistogram(&buf, "advisory_duration_ms", "Advisory evaluation duration in milliseconds", advisoryDuration.Snapshot())
	writeHistogram(&buf, "advisory_risk_score", "Distribution of computed risk scores", riskScore.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	// Observe records into every bucket the value fits, so counts are
	// already cumulative.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
