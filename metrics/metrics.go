package metrics

import (
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fwlab/gauntlet/types"
)

const (
	MetricsNamespace = "gauntlet"
)

var (
	Debug bool = true

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	unitResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "unit_results_total",
		Help:      "Count of test unit outcomes",
	}, []string{
		"campaign_id",
		"suite",
		"unit",
		"outcome",
	})

	suiteDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_duration_seconds",
		Help:      "Duration of the last pass over a suite",
	}, []string{
		"campaign_id",
		"suite",
	})

	campaignResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "campaign_results",
		Help:      "Result of the campaign",
	}, []string{
		"campaign_id",
		"result",
	})

	campaignUnitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "campaign_units_total",
		Help:      "Total number of executed test units",
	}, []string{
		"campaign_id",
	})

	campaignUnitsPassed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "campaign_units_passed",
		Help:      "Number of passed test units",
	}, []string{
		"campaign_id",
	})

	campaignUnitsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "campaign_units_failed",
		Help:      "Number of failed test units",
	}, []string{
		"campaign_id",
	})

	campaignDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "campaign_duration_seconds",
		Help:      "Wall-clock duration of the campaign",
	}, []string{
		"campaign_id",
	})

	interruptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "interrupts_total",
		Help:      "Count of interrupt signals observed",
	})
)

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordUnit counts one executed test unit outcome.
func RecordUnit(campaignID string, suite string, unit string, outcome types.Outcome) {
	if Debug {
		log.Debug("metric inc",
			"m", "unit_results_total",
			"campaign_id", campaignID,
			"suite", suite,
			"unit", unit,
			"outcome", outcome)
	}
	unitResultsTotal.WithLabelValues(campaignID, suite, unit, string(outcome)).Inc()
}

// RecordSuite records the duration of one pass over a suite.
func RecordSuite(campaignID string, suite string, duration time.Duration) {
	suiteDuration.WithLabelValues(campaignID, suite).Set(duration.Seconds())
}

// RecordInterrupt counts one observed interrupt signal.
func RecordInterrupt() {
	interruptsTotal.Inc()
}

// RecordCampaign emits the aggregate campaign result.
func RecordCampaign(campaignID string, result types.Outcome, tally types.Tally, duration time.Duration) {
	campaignResults.WithLabelValues(campaignID, string(result)).Set(1)
	campaignUnitsTotal.WithLabelValues(campaignID).Add(float64(tally.Total))
	campaignUnitsPassed.WithLabelValues(campaignID).Add(float64(tally.Passed))
	campaignUnitsFailed.WithLabelValues(campaignID).Add(float64(tally.Failed))
	campaignDuration.WithLabelValues(campaignID).Set(duration.Seconds())
}
