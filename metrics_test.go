package keycloakauth

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	// Test that NoopMetrics methods don't panic
	metrics := &NoopMetrics{}

	metrics.IncCounter("test_counter", map[string]string{"tag": "value"})
	metrics.ObserveHistogram("test_histogram", 1.5, map[string]string{"tag": "value"})
	metrics.SetGauge("test_gauge", 2.5, map[string]string{"tag": "value"})
}

func TestPrometheusMetrics(t *testing.T) {
	// A private registry avoids conflicts with other tests.
	metrics := NewPrometheusMetricsWithRegisterer(prometheus.NewRegistry())

	t.Run("IncCounter", func(t *testing.T) {
		counterName := "test_counter"
		tags := map[string]string{"tag1": "value1", "tag2": "value2"}

		metrics.IncCounter(counterName, tags)
		metrics.IncCounter(counterName, tags)

		promMetrics, ok := metrics.(*PrometheusMetrics)
		require.True(t, ok)

		counter, ok := promMetrics.counters[counterName]
		require.True(t, ok, "Counter should be registered")

		metric := &dto.Metric{}
		err := counter.With(prometheus.Labels(tags)).(prometheus.Metric).Write(metric)
		assert.NoError(t, err)
		assert.Equal(t, float64(2), *metric.Counter.Value, "Counter should be incremented to 2")
	})

	t.Run("ObserveHistogram", func(t *testing.T) {
		histName := "test_histogram"
		tags := map[string]string{"tag1": "value1"}

		metrics.ObserveHistogram(histName, 2.5, tags)

		promMetrics, ok := metrics.(*PrometheusMetrics)
		require.True(t, ok)

		hist, ok := promMetrics.histograms[histName]
		assert.True(t, ok, "Histogram should be registered")
		assert.NotNil(t, hist)
	})

	t.Run("SetGauge", func(t *testing.T) {
		gaugeName := "test_gauge"
		tags := map[string]string{"tag1": "value1"}
		value := 4.5

		metrics.SetGauge(gaugeName, value, tags)

		promMetrics, ok := metrics.(*PrometheusMetrics)
		require.True(t, ok)

		gauge, ok := promMetrics.gauges[gaugeName]
		require.True(t, ok, "Gauge should be registered")

		metric := &dto.Metric{}
		err := gauge.With(prometheus.Labels(tags)).(prometheus.Metric).Write(metric)
		assert.NoError(t, err)
		assert.Equal(t, value, *metric.Gauge.Value, "Gauge should be set to the specified value")
	})

	t.Run("concurrent registration", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				metrics.IncCounter("concurrent_counter", map[string]string{"tag": "value"})
			}()
		}
		wg.Wait()
	})
}

func TestKeys(t *testing.T) {
	testMap := map[string]string{
		"key1": "value1",
		"key2": "value2",
		"key3": "value3",
	}

	result := keys(testMap)

	// Key order is not guaranteed, only membership.
	assert.Equal(t, len(testMap), len(result), "Should return all keys")
	for _, k := range result {
		_, found := testMap[k]
		assert.True(t, found, "Each returned key should exist in the original map")
	}
}
