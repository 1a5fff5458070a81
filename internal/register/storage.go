package register

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrEmptyID is returned when trying to store a record with an empty ID.
var ErrEmptyID = errors.New("empty record ID")

// EventLog is the append-only persistence primitive for drawer events.
// ReadAll returns events in insertion order; the returned slice is a snapshot
// taken at call time.
type EventLog interface {
	Append(evt Event) error
	ReadAll() ([]Event, error)
}

// SaleLog stores completed sales.
type SaleLog interface {
	Append(sale *Sale) error
	Read(id string) (*Sale, error)
	ReadAll() ([]*Sale, error)
}

// LocalEventLog provides an in-memory implementation of EventLog.
type LocalEventLog struct {
	mu     sync.Mutex
	events []Event
}

// NewLocalEventLog instantiates an empty in-memory event log.
func NewLocalEventLog() *LocalEventLog {
	return &LocalEventLog{}
}

// Append adds an event to the end of the log.
// Returns ErrEmptyID if the event has an empty ID.
func (l *LocalEventLog) Append(evt Event) error {
	if evt.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
	return nil
}

// ReadAll returns a copy of the full event sequence in insertion order.
func (l *LocalEventLog) ReadAll() ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out, nil
}

// LocalSaleLog provides an in-memory implementation of SaleLog.
type LocalSaleLog struct {
	mu    sync.Mutex
	byID  map[string]*Sale
	order []string
}

// NewLocalSaleLog instantiates a new LocalSaleLog with an empty index.
func NewLocalSaleLog() *LocalSaleLog {
	return &LocalSaleLog{
		byID: map[string]*Sale{},
	}
}

// Append stores a sale. Returns ErrEmptyID if the sale has an empty ID.
func (l *LocalSaleLog) Append(sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[sale.ID]; !ok {
		l.order = append(l.order, sale.ID)
	}
	l.byID[sale.ID] = sale
	return nil
}

// Read retrieves a sale by ID. Returns ErrNotFound if the sale is not found.
func (l *LocalSaleLog) Read(id string) (*Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// ReadAll retrieves all sales in insertion order.
func (l *LocalSaleLog) ReadAll() ([]*Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sales := make([]*Sale, 0, len(l.order))
	for _, id := range l.order {
		sales = append(sales, l.byID[id])
	}
	return sales, nil
}
