// Package status publishes runtime counters for the debug status line
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry holds named counters and gauges
// Writers cache the pointer once; reads and writes after that are lock-free
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// Len returns the number of registered metrics
func (r *Registry) Len() int {
	return r.Counters.Count() + r.Gauges.Count()
}

// Line formats every metric as "name value", counters first, each group sorted
func (r *Registry) Line() string {
	var parts []string
	r.Counters.Range(func(key string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s %d", key, v.Load()))
	})
	r.Gauges.Range(func(key string, g *Gauge) {
		parts = append(parts, fmt.Sprintf("%s %.0f", key, g.Get()))
	})
	return strings.Join(parts, "  ")
}
