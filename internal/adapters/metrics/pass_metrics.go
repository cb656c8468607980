package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/logic"
)

// PassMetricsCollector records what each randomisation pass did
type PassMetricsCollector struct {
	passesTotal        prometheus.Counter
	itemsAdmitted      *prometheus.CounterVec
	substitutionsTotal prometheus.Counter
	noCandidateTotal   prometheus.Counter
	unintegratedTotal  *prometheus.CounterVec
	reachableItems     prometheus.Gauge
	checkpointRounds   *prometheus.GaugeVec
}

// NewPassMetricsCollector creates a new pass metrics collector
func NewPassMetricsCollector(namespace string) *PassMetricsCollector {
	return &PassMetricsCollector{
		passesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of completed randomisation passes",
			},
		),

		// Items entering logic, by category
		itemsAdmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "items_admitted_total",
				Help:      "Total number of items admitted into logic by category",
			},
			[]string{"category"},
		),

		substitutionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "substitutions_total",
				Help:      "Total number of ingredient slots that were substituted",
			},
		),

		noCandidateTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "no_candidate_total",
				Help:      "Total number of ingredient slots left unchanged for lack of a candidate",
			},
		),

		unintegratedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unintegrated_total",
				Help:      "Total number of items that kept their vanilla recipe by reason",
			},
			[]string{"reason"},
		),

		reachableItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reachable_items",
				Help:      "Number of items in logic at the end of the last pass",
			},
		),

		checkpointRounds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkpoint_rounds",
				Help:      "Admission rounds each checkpoint needed in the last pass",
			},
			[]string{"checkpoint"},
		),
	}
}

// Register registers all pass metrics with the given registry
func (c *PassMetricsCollector) Register(registry prometheus.Registerer) error {
	return registerAll(registry,
		c.passesTotal,
		c.itemsAdmitted,
		c.substitutionsTotal,
		c.noCandidateTotal,
		c.unintegratedTotal,
		c.reachableItems,
		c.checkpointRounds,
	)
}

// ItemEntered counts an item entering logic
func (c *PassMetricsCollector) ItemEntered(item *catalogue.Item) {
	c.itemsAdmitted.WithLabelValues(string(item.Category)).Inc()
}

// RecordPass records the totals of a finished pass
func (c *PassMetricsCollector) RecordPass(report *progression.Report) {
	if report == nil {
		return
	}

	c.passesTotal.Inc()
	c.substitutionsTotal.Add(float64(report.Substitutions))
	c.reachableItems.Set(float64(report.Admitted))

	for _, warning := range report.Warnings {
		var noCandidate *logic.NoCandidateFound
		if errors.As(warning, &noCandidate) {
			c.noCandidateTotal.Inc()
		}
	}

	for _, u := range report.Unintegrated {
		c.unintegratedTotal.WithLabelValues(reasonLabel(u.Reason)).Inc()
	}

	for _, cp := range report.Checkpoints {
		c.checkpointRounds.WithLabelValues(cp.Name).Set(float64(cp.Iterations))
	}
}

// reasonLabel keeps label values short and stable
func reasonLabel(reason string) string {
	switch reason {
	case progression.ReasonNeverAdmitted:
		return "never_admitted"
	case progression.ReasonNotRandomised:
		return "not_randomised"
	case progression.ReasonUnreachableIngredient:
		return "unreachable_ingredient"
	case progression.ReasonCycle:
		return "cycle"
	default:
		return "other"
	}
}
