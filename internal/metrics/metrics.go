package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ForecastFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taoyuanwx_forecast_fetches_total",
			Help: "Total township forecast feed fetches",
		},
		[]string{"status"},
	)

	ForecastFetchLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taoyuanwx_forecast_fetch_latency_seconds",
			Help:    "Township forecast feed fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	QPFFramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taoyuanwx_qpf_frames_total",
			Help: "Total QPF raster frame fetches",
		},
		[]string{"frame", "status"},
	)

	DistrictsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taoyuanwx_districts_loaded",
			Help: "Districts present in the latest dataset",
		},
	)

	DatasetAgeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taoyuanwx_dataset_age_seconds",
			Help: "Age of the latest dataset snapshot",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taoyuanwx_http_requests_total",
			Help: "Total API requests served",
		},
		[]string{"endpoint", "status"},
	)
)
