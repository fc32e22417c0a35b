package observability

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordRequest("/documents", "GET", 200, 5*time.Millisecond)
	metrics.RecordRequest("/documents", "GET", 200, 7*time.Millisecond)
	metrics.RecordRequest("/documents", "POST", 201, 9*time.Millisecond)
	metrics.RecordError("/documents", "POST", "VALIDATION_FAILED")

	if got := metrics.RequestTotal("/documents", "GET", 200); got != 2 {
		t.Fatalf("RequestTotal = %d, want 2", got)
	}
	if got := metrics.RequestTotal("/documents", "POST", 201); got != 1 {
		t.Fatalf("RequestTotal = %d, want 1", got)
	}
	if got := metrics.ErrorTotal("/documents", "POST", "VALIDATION_FAILED"); got != 1 {
		t.Fatalf("ErrorTotal = %d, want 1", got)
	}
	if got := metrics.ErrorTotal("/teams", "GET", "NOT_FOUND"); got != 0 {
		t.Fatalf("ErrorTotal = %d, want 0 for an unrecorded key", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/x", "GET", 200, time.Millisecond)
	metrics.RecordError("/x", "GET", "INTERNAL_ERROR")
	if metrics.RequestTotal("/x", "GET", 200) != 0 {
		t.Fatal("nil metrics should count nothing")
	}
}
