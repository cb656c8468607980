package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultNamespace prefixes every metric when the config leaves it empty
	DefaultNamespace = "randomiser"
	// Subsystem for pass metrics
	subsystem = "pass"
)

// Collector owns the Prometheus registry the randomiser metrics live on.
// Each collector has its own registry so several can coexist in one process.
type Collector struct {
	registry *prometheus.Registry
	Pass     *PassMetricsCollector
	Requests *RequestMetricsCollector
}

// NewCollector creates the pass and request collectors and registers them
func NewCollector(namespace string) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		Pass:     NewPassMetricsCollector(namespace),
		Requests: NewRequestMetricsCollector(namespace),
	}

	if err := c.Pass.Register(c.registry); err != nil {
		return nil, err
	}
	if err := c.Requests.Register(c.registry); err != nil {
		return nil, err
	}

	return c, nil
}

// Registry returns the registry backing this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteToTextfile dumps every metric in the Prometheus text format. The file
// is written atomically so a node exporter never sees a partial dump.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

func registerAll(registry prometheus.Registerer, collectors ...prometheus.Collector) error {
	if registry == nil {
		return nil // Metrics not enabled
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}
