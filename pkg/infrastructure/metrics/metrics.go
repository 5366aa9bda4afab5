package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "schc"

	evaluationsTotal       = "evaluations_total"
	estimateSourceTotal    = "estimate_source_total"
	predictorFailuresTotal = "predictor_failures_total"
	referenceReloadsTotal  = "reference_reloads_total"

	// Labels
	decisionLabel = "decision"
	estimateLabel = "estimate"
	sourceLabel   = "source"
	slotLabel     = "slot"
	resultLabel   = "result"
)

var evaluationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      evaluationsTotal,
		Help:      "number of evaluated recommendations by decision",
	},
	[]string{decisionLabel},
)

var estimateSourceTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      estimateSourceTotal,
		Help:      "number of estimates resolved by each fallback tier",
	},
	[]string{estimateLabel, sourceLabel},
)

var predictorFailuresTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      predictorFailuresTotal,
		Help:      "number of predictor calls that failed and fell back to statistics",
	},
	[]string{slotLabel},
)

var referenceReloadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      referenceReloadsTotal,
		Help:      "number of reference data reloads by result",
	},
	[]string{resultLabel},
)

func IncreaseEvaluationsMetric(decision string) {
	evaluationsTotalMetric.With(prometheus.Labels{decisionLabel: decision}).Inc()
}

func IncreaseEstimateSourceMetric(estimate, source string) {
	estimateSourceTotalMetric.With(prometheus.Labels{
		estimateLabel: estimate,
		sourceLabel:   source,
	}).Inc()
}

func IncreasePredictorFailuresMetric(slot string) {
	predictorFailuresTotalMetric.With(prometheus.Labels{slotLabel: slot}).Inc()
}

func IncreaseReferenceReloadsMetric(result string) {
	referenceReloadsTotalMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(evaluationsTotalMetric)
	prometheus.MustRegister(estimateSourceTotalMetric)
	prometheus.MustRegister(predictorFailuresTotalMetric)
	prometheus.MustRegister(referenceReloadsTotalMetric)
}
