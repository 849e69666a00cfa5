package observability

import (
	"sort"
	"sync"
	"time"
)

// RouteUsage holds the per-outcome request counts for one matched route.
type RouteUsage struct {
	Route        string `json:"route"`
	Served       uint64 `json:"served"`
	Unauthorized uint64 `json:"unauthorized"`
	Forbidden    uint64 `json:"forbidden"`
	Aborted      uint64 `json:"aborted"`
}

// UsageSnapshot is a point-in-time copy of the collected counters.
type UsageSnapshot struct {
	Since  time.Time    `json:"since"`
	Total  uint64       `json:"total"`
	Routes []RouteUsage `json:"routes"`
}

// UsageCollector tallies request outcomes per route in process memory.
// Counters reset on restart.
// TODO: expose through Prometheus once the deployment gets a scrape target.
type UsageCollector struct {
	mu      sync.Mutex
	started time.Time
	total   uint64
	byRoute map[string]*RouteUsage
}

// NewUsageCollector creates an empty collector.
func NewUsageCollector() *UsageCollector {
	return &UsageCollector{
		started: time.Now().UTC(),
		byRoute: make(map[string]*RouteUsage),
	}
}

// Record tallies one completed request. A zero status means the request
// ended without a response being written.
func (c *UsageCollector) Record(route string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	usage, ok := c.byRoute[route]
	if !ok {
		usage = &RouteUsage{Route: route}
		c.byRoute[route] = usage
	}

	switch {
	case status == 0:
		usage.Aborted++
	case status == 401:
		usage.Unauthorized++
	case status == 403:
		usage.Forbidden++
	default:
		usage.Served++
	}
	c.total++
}

// Snapshot copies the counters, routes sorted by path.
func (c *UsageCollector) Snapshot() UsageSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	routes := make([]RouteUsage, 0, len(c.byRoute))
	for _, usage := range c.byRoute {
		routes = append(routes, *usage)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Route < routes[j].Route })

	return UsageSnapshot{
		Since:  c.started,
		Total:  c.total,
		Routes: routes,
	}
}
