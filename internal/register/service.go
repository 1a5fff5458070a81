package register

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAlreadyOpen is returned when opening a drawer that is already open.
var ErrAlreadyOpen = errors.New("register already open")

// ErrNotOpen is returned when closing a drawer that is not open.
var ErrNotOpen = errors.New("register not open")

// ErrRegisterClosed is returned when recording a sale with no open drawer.
var ErrRegisterClosed = errors.New("register closed")

// ErrValidation is returned for structurally invalid input.
var ErrValidation = errors.New("invalid input")

// Catalog is the boundary to the product store. RecordSale uses it to
// decrement stock; the register does not own product lifecycle.
type Catalog interface {
	AdjustStock(productID string, delta float64) error
}

// UserValidator checks that an operator exists in the auth service.
type UserValidator interface {
	Exists(username string) (bool, error)
}

// Service provides drawer session management and sale recording over an
// append-only event log. Drawer state is always derived by folding the log;
// it is never cached between calls.
type Service struct {
	events  EventLog
	sales   SaleLog
	catalog Catalog
	users   UserValidator
	logger  *zap.Logger

	// mu makes each check-then-append pair atomic so that, for example, two
	// concurrent Open calls cannot both observe a closed drawer.
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewService creates a new Service. catalog and users may be nil, in which
// case stock adjustment and operator validation are skipped.
func NewService(events EventLog, sales SaleLog, catalog Catalog, users UserValidator, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		events:  events,
		sales:   sales,
		catalog: catalog,
		users:   users,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Current derives the drawer state from a fresh read of the full event log.
// No side effects; safe to call arbitrarily often.
func (s *Service) Current() (DrawerState, error) {
	events, err := s.events.ReadAll()
	if err != nil {
		return DrawerState{}, fmt.Errorf("failed to read event log: %w", err)
	}
	return Reduce(events), nil
}

// Open appends an open event and returns it. Fails with ErrAlreadyOpen if the
// drawer is already open. Negative or non-finite amounts are coerced to 0.
func (s *Service) Open(operator string, openingAmount float64) (*Event, error) {
	if operator == "" {
		return nil, fmt.Errorf("%w: operator is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.Current()
	if err != nil {
		return nil, err
	}
	if state.Open {
		return nil, ErrAlreadyOpen
	}

	evt := Event{
		ID:        s.newID(),
		Kind:      KindOpen,
		Operator:  operator,
		Amount:    toNum(openingAmount),
		Timestamp: s.now(),
	}

	if err := s.events.Append(evt); err != nil {
		s.logger.Error("failed to append open event", zap.String("event_id", evt.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	s.logger.Info("register opened", zap.String("event_id", evt.ID), zap.String("operator", operator), zap.Float64("amount", evt.Amount))
	return &evt, nil
}

// Close appends a close event and returns it. Fails with ErrNotOpen if the
// drawer is not open.
func (s *Service) Close(operator string, closingAmount float64) (*Event, error) {
	if operator == "" {
		return nil, fmt.Errorf("%w: operator is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.Current()
	if err != nil {
		return nil, err
	}
	if !state.Open {
		return nil, ErrNotOpen
	}

	evt := Event{
		ID:        s.newID(),
		Kind:      KindClose,
		Operator:  operator,
		Amount:    toNum(closingAmount),
		Timestamp: s.now(),
	}

	if err := s.events.Append(evt); err != nil {
		s.logger.Error("failed to append close event", zap.String("event_id", evt.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	s.logger.Info("register closed", zap.String("event_id", evt.ID), zap.String("operator", operator), zap.Float64("amount", evt.Amount))
	return &evt, nil
}

// RecordSale computes totals for the line items and persists the sale. Fails
// with ErrRegisterClosed unless the event-log fold reports an open drawer at
// call time. Stock decrements are best effort: an adjustment failure is
// logged and does not fail the sale.
func (s *Service) RecordSale(input SaleInput) (*Sale, error) {
	if input.Operator == "" {
		return nil, fmt.Errorf("%w: operator is required", ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", ErrValidation)
	}

	if s.users != nil {
		exists, err := s.users.Exists(input.Operator)
		if err != nil {
			s.logger.Error("error validating operator", zap.String("operator", input.Operator), zap.Error(err))
			return nil, fmt.Errorf("error validating operator")
		}
		if !exists {
			return nil, fmt.Errorf("%w: operator not found", ErrValidation)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.Current()
	if err != nil {
		return nil, err
	}
	if !state.Open {
		return nil, ErrRegisterClosed
	}

	items := make([]LineItem, 0, len(input.Items))
	var subtotal float64
	for _, it := range input.Items {
		line := LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     toNum(it.Price),
			Qty:       toNum(it.Qty),
		}
		if line.Qty == 0 {
			line.Qty = 1
		}
		items = append(items, line)
		subtotal += line.Price * line.Qty
	}

	tax := taxFromSubtotal(subtotal)

	method := input.Method
	if method == "" {
		method = "cash"
	}

	sale := &Sale{
		ID:        s.newID(),
		Operator:  input.Operator,
		Method:    method,
		CashGiven: toNum(input.CashGiven),
		Change:    toNum(input.Change),
		Items:     items,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal + tax,
		Timestamp: s.now(),
	}

	if err := s.sales.Append(sale); err != nil {
		s.logger.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	if s.catalog != nil {
		for _, line := range items {
			if err := s.catalog.AdjustStock(line.ProductID, -line.Qty); err != nil {
				s.logger.Warn("failed to adjust stock", zap.String("product_id", line.ProductID), zap.Error(err))
			}
		}
	}

	s.logger.Info("sale recorded", zap.String("sale_id", sale.ID), zap.String("operator", sale.Operator), zap.Float64("total", sale.Total))
	return sale, nil
}

// GetSale retrieves a sale by ID. Returns ErrNotFound if no sale matches.
func (s *Service) GetSale(id string) (*Sale, error) {
	return s.sales.Read(id)
}

// ListEvents returns drawer events whose timestamp falls within the given
// day-granularity window, sorted newest first. Nil bounds are unbounded.
func (s *Service) ListEvents(from, to *time.Time) ([]Event, error) {
	events, err := s.events.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}

	out := make([]Event, 0, len(events))
	for _, evt := range events {
		if inDayRange(evt.Timestamp, from, to) {
			out = append(out, evt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// ListSales returns sales whose timestamp falls within the given
// day-granularity window, sorted newest first. Nil bounds are unbounded.
func (s *Service) ListSales(from, to *time.Time) ([]*Sale, error) {
	sales, err := s.sales.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sales: %w", err)
	}

	out := make([]*Sale, 0, len(sales))
	for _, sale := range sales {
		if inDayRange(sale.Timestamp, from, to) {
			out = append(out, sale)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// inDayRange reports whether ts falls inside [start of from's day, end of
// to's day]. The upper bound includes the entirety of the to calendar day.
func inDayRange(ts time.Time, from, to *time.Time) bool {
	if from != nil {
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
		if ts.Before(start) {
			return false
		}
	}
	if to != nil {
		end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
		if !ts.Before(end) {
			return false
		}
	}
	return true
}
