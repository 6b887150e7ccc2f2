package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindHint  = "hint"
	kindParse = "parse"

	outcomeOK            = "ok"
	outcomeUpstreamError = "upstream_error"
	outcomeMalformed     = "malformed_output"
)

var generationRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "escaperoom_generation_requests_total",
		Help: "Generation calls by kind and outcome",
	},
	[]string{"kind", "outcome"},
)

func observe(kind, outcome string) {
	generationRequests.WithLabelValues(kind, outcome).Inc()
}
