package reconcile

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var opsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "asodi",
		Name:      "reconcile_ops_total",
		Help:      "Reconciler operations by resource, op and outcome (ok, error, invalid).",
	},
	[]string{"resource", "op", "outcome"},
)

// errInvalid marks a create rejected by local validation.
var errInvalid = errors.New("invalid form")

func observe(resource, op string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, errInvalid):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	opsTotal.WithLabelValues(resource, op, outcome).Inc()
}
