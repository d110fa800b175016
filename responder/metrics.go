package responder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rulesMatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "assistant_rule_matches_total",
		Help: "Assistant replies by the rule that produced them",
	},
	[]string{"rule"},
)

func recordMatch(rule string) {
	rulesMatchedTotal.WithLabelValues(rule).Inc()
}
