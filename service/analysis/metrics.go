package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kop_documents_started_total",
		Help: "Number of document analysis runs started (including resumes)",
	})

	documentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kop_documents_completed_total",
		Help: "Number of documents fully analyzed",
	})

	documentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kop_documents_failed_total",
		Help: "Number of document analysis runs that failed",
	})

	pagesAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kop_pages_analyzed_total",
		Help: "Number of pages analyzed",
	})

	groupsDetected = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kop_groups_per_page",
		Help:    "Number of group regions detected per page",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})

	groupSimilarity = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kop_group_similarity",
		Help:    "Similarity score distribution of persisted groups",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
)
