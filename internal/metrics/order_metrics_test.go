package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics(t *testing.T) {
	metrics := NewOrderMetrics()

	if metrics == nil {
		t.Fatal("NewOrderMetrics should not return nil")
	}
	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if metrics.ordersFailed == nil {
		t.Error("ordersFailed counter vec should not be nil")
	}
	if metrics.createDuration == nil {
		t.Error("createDuration histogram should not be nil")
	}
	if metrics.insufficientStock == nil {
		t.Error("insufficientStock counter should not be nil")
	}
	if metrics.outboxEvents == nil {
		t.Error("outboxEvents counter should not be nil")
	}
}

func TestNewOrderMetrics_RepeatedRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(registry)
	second := newOrderMetricsWithRegisterer(registry)

	first.RecordOrderCreated()
	second.RecordOrderCreated()

	if got := counterValue(t, first.ordersCreated); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestRecordOrderFailed_InsufficientStock(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordOrderFailed(ReasonInsufficientStock)
	metrics.RecordOrderFailed(ReasonCustomerNotFound)

	if got := counterValue(t, metrics.insufficientStock); got != 1 {
		t.Fatalf("expected insufficientStock counter 1, got %v", got)
	}

	failed, err := metrics.ordersFailed.GetMetricWithLabelValues(ReasonInsufficientStock)
	if err != nil {
		t.Fatalf("get labeled counter: %v", err)
	}
	if got := counterValue(t, failed); got != 1 {
		t.Fatalf("expected labeled failure counter 1, got %v", got)
	}
}

func TestRecordCreateDuration(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordCreateDuration(150 * time.Millisecond)

	var m dto.Metric
	if err := metrics.createDuration.Write(&m); err != nil {
		t.Fatalf("write histogram metric: %v", err)
	}
	if m.Histogram.GetSampleCount() != 1 {
		t.Fatalf("expected 1 histogram sample, got %d", m.Histogram.GetSampleCount())
	}
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("write counter metric: %v", err)
	}
	return m.Counter.GetValue()
}
