// Package metrics holds Prometheus instruments that are used across the
// engine.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PagesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "content_pages_loaded",
			Help: "Number of pages currently held in the content store.",
		})

	SnapshotWritesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_snapshot_writes_total",
			Help: "Cumulative number of successful snapshot writes.",
		})

	SnapshotWriteErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_snapshot_write_errors_total",
			Help: "Cumulative number of failed snapshot writes.",
		})

	SubmissionsReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_submissions_received_total",
			Help: "Cumulative number of accepted form submissions.",
		})

	SubmissionsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_submissions_rejected_total",
			Help: "Cumulative number of form submissions rejected by validation.",
		})

	MediaUploadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Cumulative number of media files stored.",
		})
)

func init() {
	prometheus.MustRegister(
		PagesLoaded,
		SnapshotWritesTotal,
		SnapshotWriteErrorsTotal,
		SubmissionsReceivedTotal,
		SubmissionsRejectedTotal,
		MediaUploadsTotal,
	)
}
