package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	sunquote = "sunquote"

	estimatesTotal     = "estimates_total"
	invalidInputsTotal = "invalid_inputs_total"
	leadsTotal         = "leads_total"
	netCostUsd         = "net_cost_usd"

	// Labels
	regionKnownLabel = "region_known"
	fieldLabel       = "field"
	kindLabel        = "kind"
)

/**
* Metrics definition
**/
var estimatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sunquote,
		Name:      estimatesTotal,
		Help:      "number of estimates computed, split by whether the region had stored rates",
	},
	[]string{regionKnownLabel},
)

var invalidInputsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sunquote,
		Name:      invalidInputsTotal,
		Help:      "number of rejected estimate inputs by offending field",
	},
	[]string{fieldLabel},
)

var leadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sunquote,
		Name:      leadsTotal,
		Help:      "number of accepted lead submissions by form",
	},
	[]string{kindLabel},
)

var netCostMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: sunquote,
		Name:      netCostUsd,
		Help:      "distribution of estimated net cost after incentives",
		Buckets:   []float64{-20000, -5000, 0, 5000, 10000, 20000, 40000},
	},
)

func IncreaseEstimatesTotalMetric(regionKnown bool) {
	labels := prometheus.Labels{
		regionKnownLabel: strconv.FormatBool(regionKnown),
	}
	estimatesTotalMetric.With(labels).Inc()
}

func IncreaseInvalidInputsTotalMetric(field string) {
	if field == "" {
		field = "unknown"
	}
	labels := prometheus.Labels{
		fieldLabel: field,
	}
	invalidInputsTotalMetric.With(labels).Inc()
}

func IncreaseLeadsTotalMetric(kind string) {
	labels := prometheus.Labels{
		kindLabel: kind,
	}
	leadsTotalMetric.With(labels).Inc()
}

func ObserveNetCost(usd float64) {
	netCostMetric.Observe(usd)
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimatesTotalMetric)
	prometheus.MustRegister(invalidInputsTotalMetric)
	prometheus.MustRegister(leadsTotalMetric)
	prometheus.MustRegister(netCostMetric)
}
