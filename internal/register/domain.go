package register

import (
	"math"
	"time"
)

// EventKind identifies the type of a drawer event.
type EventKind string

const (
	// KindOpen records the opening of the cash drawer.
	KindOpen EventKind = "open"
	// KindClose records the closing of the cash drawer.
	KindClose EventKind = "close"
)

// Event is an immutable fact appended to the drawer ledger. Events are never
// updated or deleted; the full sequence is the only source of truth for
// drawer state.
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Operator  string    `json:"operator"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// DrawerState is the state derived from folding the event log. It is never
// stored; callers obtain it from Service.Current.
type DrawerState struct {
	Open          bool      `json:"open"`
	SessionID     string    `json:"session_id,omitempty"`
	Operator      string    `json:"operator,omitempty"`
	OpenedAt      time.Time `json:"opened_at,omitempty"`
	OpeningAmount float64   `json:"opening_amount,omitempty"`
}

// Reduce folds the event sequence in insertion order into the current drawer
// state. An open event sets the state from its fields; a close event resets
// it. The result depends only on the sequence contents and order.
func Reduce(events []Event) DrawerState {
	var state DrawerState
	for _, evt := range events {
		switch evt.Kind {
		case KindOpen:
			state = DrawerState{
				Open:          true,
				SessionID:     evt.ID,
				Operator:      evt.Operator,
				OpenedAt:      evt.Timestamp,
				OpeningAmount: evt.Amount,
			}
		case KindClose:
			state = DrawerState{}
		}
	}
	return state
}

// LineItem is one product line in a sale.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       float64 `json:"qty"`
}

// Sale represents a completed sale. Immutable once written.
type Sale struct {
	ID        string     `json:"id"`
	Operator  string     `json:"operator"`
	Method    string     `json:"method"`
	CashGiven float64    `json:"cash_given"`
	Change    float64    `json:"change"`
	Items     []LineItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	Tax       float64    `json:"tax"`
	Total     float64    `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}

// SaleInput is the payload accepted by Service.RecordSale.
type SaleInput struct {
	Operator  string     `json:"operator"`
	Method    string     `json:"method"`
	CashGiven float64    `json:"cash_given"`
	Change    float64    `json:"change"`
	Items     []LineItem `json:"items"`
}

// toNum coerces negative or non-finite values to 0 instead of rejecting
// them, matching how the rest of the system treats bad numeric input.
func toNum(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
