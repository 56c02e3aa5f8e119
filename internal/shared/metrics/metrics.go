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
	lettersReceivedTotal  atomic.Uint64
	lettersGeneratedTotal atomic.Uint64
	lettersFailedTotal    atomic.Uint64
	membersUpsertedTotal  atomic.Uint64
	membersExpiredTotal   atomic.Uint64

	renderDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncLettersReceived increments the received-letter counter.
func IncLettersReceived() {
	lettersReceivedTotal.Add(1)
}

// IncLettersGenerated increments the generated-letter counter.
func IncLettersGenerated() {
	lettersGeneratedTotal.Add(1)
}

// IncLettersFailed increments the failed-letter counter.
func IncLettersFailed() {
	lettersFailedTotal.Add(1)
}

// AddMembersUpserted adds to the upserted-member counter.
func AddMembersUpserted(n int) {
	if n > 0 {
		membersUpsertedTotal.Add(uint64(n))
	}
}

// AddMembersExpired adds to the expiring-member counter.
func AddMembersExpired(n int) {
	if n > 0 {
		membersExpiredTotal.Add(uint64(n))
	}
}

// ObserveRenderDurationMs records one render round trip in milliseconds.
func ObserveRenderDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	renderDuration.Observe(value)
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
	writeCounter(&buf, "letters_received_total", "Total letter requests received", lettersReceivedTotal.Load())
	writeCounter(&buf, "letters_generated_total", "Total letters generated and uploaded", lettersGeneratedTotal.Load())
	writeCounter(&buf, "letters_failed_total", "Total letter requests failed", lettersFailedTotal.Load())
	writeCounter(&buf, "members_upserted_total", "Total active member rows upserted", membersUpsertedTotal.Load())
	writeCounter(&buf, "members_expired_total", "Total member rows marked expiring", membersExpiredTotal.Load())
	writeHistogram(&buf, "render_duration_ms", "Renderer round trip in milliseconds", renderDuration.Snapshot())
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
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
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

// NowMillis returns current time in milliseconds for duration measurements.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
