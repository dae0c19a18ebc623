package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizstart_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bizstart_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SnapshotLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizstart_snapshot_lookups_total",
			Help: "Snapshot cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	SnapshotRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizstart_snapshot_rejected_total",
			Help: "Snapshot requests rejected by validation code",
		},
		[]string{"code"},
	)

	MBTIResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizstart_mbti_results_total",
			Help: "MBTI results served by type and entry point",
		},
		[]string{"type", "source"},
	)

	InquiriesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bizstart_inquiries_received_total",
			Help: "Consultation requests stored",
		},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizstart_notifications_failed_total",
			Help: "Notification deliveries that failed by channel",
		},
		[]string{"channel"},
	)
)

const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupError = "error"

	SourceAnswers = "answers"
	SourceType    = "type"
)
