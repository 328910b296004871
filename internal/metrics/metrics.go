package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace_sync"

// Metrics holds the Prometheus collectors of the sync pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	scansTotal           *prometheus.CounterVec
	scanDuration         *prometheus.HistogramVec
	scanLogs             *prometheus.CounterVec
	eventsTotal          *prometheus.CounterVec
	decodeSkips          *prometheus.CounterVec
	metadataResolutions  *prometheus.CounterVec
	publishFailures      prometheus.Counter
	subscriptionRestarts *prometheus.CounterVec
	checkpointBlock      *prometheus.GaugeVec
	headBlock            prometheus.Gauge
}

// New registers the collectors on registry
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		scansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Number of scans by contract and result",
		}, []string{"contract", "result"}),
		scanDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Duration of scans",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"contract"}),
		scanLogs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_logs_total",
			Help:      "Number of raw logs fetched by scans",
		}, []string{"contract"}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Number of handled events by name, source and result",
		}, []string{"event", "source", "result"}),
		decodeSkips: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_skips_total",
			Help:      "Number of logs skipped by the decoder",
		}, []string{"reason"}),
		metadataResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_resolutions_total",
			Help:      "Number of token metadata resolutions by result",
		}, []string{"result"}),
		publishFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_publish_failures_total",
			Help:      "Number of change notifications that failed to publish",
		}),
		subscriptionRestarts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscription_restarts_total",
			Help:      "Number of live subscription re-establishments",
		}, []string{"contract"}),
		checkpointBlock: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checkpoint_block",
			Help:      "Last processed block per contract",
		}, []string{"contract", "category"}),
		headBlock: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "head_block",
			Help:      "Latest chain head seen by the scanner",
		}),
	}
}

// ObserveScan records a finished scan
func (m *Metrics) ObserveScan(contract string, err error, duration time.Duration, logs int) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.scansTotal.WithLabelValues(contract, result).Inc()
	m.scanDuration.WithLabelValues(contract).Observe(duration.Seconds())
	m.scanLogs.WithLabelValues(contract).Add(float64(logs))
}

// RecordEvent records a handled event, source is "scan" or "live"
func (m *Metrics) RecordEvent(event, source string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.eventsTotal.WithLabelValues(event, source, result).Inc()
}

// RecordDecodeSkip counts a log the decoder could not map to a marketplace event
func (m *Metrics) RecordDecodeSkip(reason string) {
	if m == nil {
		return
	}
	m.decodeSkips.WithLabelValues(reason).Inc()
}

// RecordMetadataResolution counts a metadata resolution, partial when the document could not be fetched
func (m *Metrics) RecordMetadataResolution(partial bool) {
	if m == nil {
		return
	}
	result := "complete"
	if partial {
		result = "partial"
	}
	m.metadataResolutions.WithLabelValues(result).Inc()
}

// RecordPublishFailure counts a dropped change notification
func (m *Metrics) RecordPublishFailure() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

// RecordSubscriptionRestart counts a live subscription re-establishment
func (m *Metrics) RecordSubscriptionRestart(contract string) {
	if m == nil {
		return
	}
	m.subscriptionRestarts.WithLabelValues(contract).Inc()
}

// SetCheckpoint exposes the checkpoint position of a worker
func (m *Metrics) SetCheckpoint(contract, category string, block uint64) {
	if m == nil {
		return
	}
	m.checkpointBlock.WithLabelValues(contract, category).Set(float64(block))
}

// SetHead exposes the latest head block
func (m *Metrics) SetHead(block uint64) {
	if m == nil {
		return
	}
	m.headBlock.Set(float64(block))
}
