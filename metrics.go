// FILE: lixenwraith/settings/metrics.go
package settings

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reasons attached to ignored files.
const (
	reasonUnreadable = "unreadable"
	reasonInvalid    = "invalid"
)

// Metrics counts loader activity.
type Metrics struct {
	filesLoaded  prometheus.Counter
	filesIgnored *prometheus.CounterVec
	warnings     prometheus.Counter
	envOverrides *prometheus.CounterVec
}

// NewMetrics creates the loader counters and registers them on reg.
// A nil registerer keeps the counters on a private registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		filesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "settings",
			Name:      "files_loaded_total",
			Help:      "Configuration files parsed and merged.",
		}),
		filesIgnored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settings",
			Name:      "files_ignored_total",
			Help:      "Configuration files skipped, by reason.",
		}, []string{"reason"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "settings",
			Name:      "warnings_total",
			Help:      "Warnings recorded while loading configuration.",
		}),
		envOverrides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settings",
			Name:      "environment_overrides_total",
			Help:      "Settings taken from environment variables.",
		}, []string{"variable"}),
	}

	for _, c := range []prometheus.Collector{m.filesLoaded, m.filesIgnored, m.warnings, m.envOverrides} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}
