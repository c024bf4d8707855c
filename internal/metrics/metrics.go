package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personal_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	IngestedCVsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personal_cvs_ingested_total",
			Help: "Total number of ingested CVs by outcome.",
		},
		[]string{"outcome"},
	)
	SearchesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "personal_candidate_searches_total",
			Help: "Total number of candidate searches.",
		},
	)
	RankingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "personal_ranking_duration_seconds",
			Help:    "Duration of each candidate ranking request in seconds.",
			Buckets: []float64{1, 5, 15, 30, 60, 120},
		},
	)
	IngestionStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "personal_cv_ingestion_step_duration_seconds",
			Help:       "Duration of each step in the CV ingestion process.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	EndingProjectsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "personal_projects_ending_soon",
			Help: "Number of active projects ending within the rotation horizon.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(IngestedCVsCounter)
	prometheus.MustRegister(SearchesCounter)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(IngestionStepDuration)
	prometheus.MustRegister(EndingProjectsGauge)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
