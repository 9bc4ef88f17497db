package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Registry holds the process-wide counters served by the admin stats endpoint.
type Registry struct {
	StartedAt time.Time

	Requests     Counter
	ClientErrors Counter
	ServerErrors Counter
}

func NewRegistry() *Registry {
	return &Registry{StartedAt: time.Now()}
}

// Snapshot is the JSON shape returned to the admin dashboard.
type Snapshot struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	Requests      uint64 `json:"requests"`
	ClientErrors  uint64 `json:"client_errors"`
	ServerErrors  uint64 `json:"server_errors"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds: int64(time.Since(r.StartedAt).Seconds()),
		Requests:      r.Requests.Load(),
		ClientErrors:  r.ClientErrors.Load(),
		ServerErrors:  r.ServerErrors.Load(),
	}
}
