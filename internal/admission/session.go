package admission

import "time"

// Session is an admission lease: the right to be counted among the currently
// active operators. It stays alive as long as heartbeats keep arriving.
type Session struct {
	ID            string    `json:"id"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// Result is the outcome of a TryEnter call. Position is only set on
// rejection and is a best-effort count (active + 1), not a FIFO ticket.
type Result struct {
	Allowed   bool   `json:"allowed"`
	SessionID string `json:"session_id,omitempty"`
	Active    int    `json:"active"`
	Max       int    `json:"max"`
	Position  int    `json:"position,omitempty"`
}

// Status is the read-only view returned by Controller.Status.
type Status struct {
	Active int `json:"active"`
	Max    int `json:"max"`
}
