package medauth

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricSyncSuccess)

	if got := m.Value(MetricSyncSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricSyncSuccess)
	m.Inc(MetricSyncSuccess)
	m.Inc(MetricSyncSuccess)

	if got := m.Value(MetricSyncSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricDeepLinkAccepted)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricDeepLinkAccepted); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		700 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricSyncLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricSyncLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}
	for i, got := range buckets {
		if got != 1 {
			t.Errorf("bucket %d: expected 1 observation, got %d", i, got)
		}
	}
}

func TestMetricsObserveIgnoresNonLatencyIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Observe(MetricSyncSuccess, 10*time.Millisecond)

	snap := m.Snapshot()
	if buckets := snap.Histograms[MetricSyncLatency]; buckets != nil {
		for i, got := range buckets {
			if got != 0 {
				t.Fatalf("bucket %d: expected empty histogram, got %d", i, got)
			}
		}
	}
}

func TestMetricsSnapshotDisabledIsEmpty(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricLogout)

	snap := m.Snapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("expected empty counters, got %d entries", len(snap.Counters))
	}
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected empty histograms, got %d entries", len(snap.Histograms))
	}
}

func TestMetricsSnapshotCoversAllCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricSessionEstablished)
	m.Inc(MetricSyncStaleDiscarded)

	snap := m.Snapshot()
	if got := snap.Counters[MetricSessionEstablished]; got != 1 {
		t.Fatalf("expected 1 established, got %d", got)
	}
	if got := snap.Counters[MetricSyncStaleDiscarded]; got != 1 {
		t.Fatalf("expected 1 stale discard, got %d", got)
	}
	if len(snap.Counters) != int(metricIDCount) {
		t.Fatalf("expected %d counters in snapshot, got %d", metricIDCount, len(snap.Counters))
	}
}
