package monitor

import "time"

// Status is a point-in-time snapshot of dependency health. BufferSize counts
// operations waiting in the offline buffer for replay.
type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}

// Healthy reports whether both primary stores are reachable. The buffer is
// deliberately excluded: a degraded buffer does not block request serving.
func (s Status) Healthy() bool {
	return s.PostgreSQL && s.Redis
}
