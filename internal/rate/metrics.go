package rate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	triggerScheduled = "scheduled"
	triggerOnDemand  = "on_demand"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics groups refresh cycle metrics.
type Metrics struct {
	RefreshTotal           *prometheus.CounterVec
	RefreshDuration        *prometheus.HistogramVec
	PublishedBases         prometheus.Gauge
	MissingProviderRates   prometheus.Counter
	HistoryAppendFailures  prometheus.Counter
	HistoryAppendedRecords prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxcross_refresh_total",
				Help: "Refresh cycles by trigger and outcome",
			},
			[]string{"trigger", "outcome"},
		),
		RefreshDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxcross_refresh_duration_seconds",
				Help:    "Duration of refresh cycles including the provider call",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"trigger"},
		),
		PublishedBases: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fxcross_published_bases",
			Help: "Number of base currencies in the published rate table",
		}),
		MissingProviderRates: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxcross_missing_provider_rates_total",
			Help: "Tracked currencies the provider returned no usable rate for",
		}),
		HistoryAppendFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxcross_history_append_failures_total",
			Help: "Failed attempts to append rate observations to history",
		}),
		HistoryAppendedRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxcross_history_appended_records_total",
			Help: "Rate observations appended to history",
		}),
	}
}
