package breeze

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks client request counters using lock-free atomics. All
// methods are safe for concurrent use.
type Metrics struct {
	requestsTotal  atomic.Uint64
	requestsFailed atomic.Uint64

	// Timing, stored as nanoseconds.
	requestTimeTotal atomic.Uint64
	requestTimeMin   atomic.Uint64
	requestTimeMax   atomic.Uint64

	// Per-endpoint counters (map access guarded by sync.Map).
	endpoints sync.Map // map[string]*endpointMetrics
}

type endpointMetrics struct {
	requests atomic.Uint64
	failed   atomic.Uint64
	total    atomic.Uint64 // nanoseconds
}

// NewMetrics creates an empty Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// First recorded duration becomes the minimum.
	m.requestTimeMin.Store(^uint64(0))
	return m
}

// RecordRequest records one completed API request.
func (m *Metrics) RecordRequest(endpoint string, d time.Duration, ok bool) {
	ns := uint64(d.Nanoseconds())

	m.requestsTotal.Add(1)
	if !ok {
		m.requestsFailed.Add(1)
	}
	m.requestTimeTotal.Add(ns)
	storeMin(&m.requestTimeMin, ns)
	storeMax(&m.requestTimeMax, ns)

	em := m.endpoint(endpoint)
	em.requests.Add(1)
	if !ok {
		em.failed.Add(1)
	}
	em.total.Add(ns)
}

func (m *Metrics) endpoint(name string) *endpointMetrics {
	if v, ok := m.endpoints.Load(name); ok {
		return v.(*endpointMetrics)
	}
	v, _ := m.endpoints.LoadOrStore(name, &endpointMetrics{})
	return v.(*endpointMetrics)
}

func storeMin(dst *atomic.Uint64, v uint64) {
	for {
		cur := dst.Load()
		if v >= cur || dst.CompareAndSwap(cur, v) {
			return
		}
	}
}

func storeMax(dst *atomic.Uint64, v uint64) {
	for {
		cur := dst.Load()
		if v <= cur || dst.CompareAndSwap(cur, v) {
			return
		}
	}
}

// EndpointStats holds per-endpoint request counters.
type EndpointStats struct {
	Requests uint64
	Failed   uint64
	Total    time.Duration
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Requests  uint64
	Failed    uint64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
	Endpoints map[string]EndpointStats
}

// Snapshot returns a consistent-enough copy of the counters for
// reporting.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		Requests:  m.requestsTotal.Load(),
		Failed:    m.requestsFailed.Load(),
		TotalTime: time.Duration(m.requestTimeTotal.Load()),
		MaxTime:   time.Duration(m.requestTimeMax.Load()),
		Endpoints: make(map[string]EndpointStats),
	}
	if min := m.requestTimeMin.Load(); min != ^uint64(0) {
		s.MinTime = time.Duration(min)
	}
	m.endpoints.Range(func(k, v any) bool {
		em := v.(*endpointMetrics)
		s.Endpoints[k.(string)] = EndpointStats{
			Requests: em.requests.Load(),
			Failed:   em.failed.Load(),
			Total:    time.Duration(em.total.Load()),
		}
		return true
	})
	return s
}
