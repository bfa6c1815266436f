package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"repolens/pkg/consts"
)

var (
	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repolens_ingest_jobs_total",
		Help: "Ingestion jobs by variant and result.",
	}, []string{consts.PromVariant, consts.PromResult})

	JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "repolens_ingest_job_duration_seconds",
		Help:    "Wall time of one ingestion job.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{consts.PromVariant})

	CacheProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repolens_processed_cache_probes_total",
		Help: "Processed-set cache probes by result.",
	}, []string{consts.PromResult})

	VectorUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repolens_vector_upserts_total",
		Help: "Vectors upserted into the index.",
	})

	JobsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repolens_jobs_enqueued_total",
		Help: "Jobs accepted by the queue.",
	}, []string{consts.PromVariant})

	RecommendationsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repolens_recommendations_total",
		Help: "Recommendation lists returned.",
	})

	HttpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repolens_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"route", "status"})
)
