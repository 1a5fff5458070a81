package register

import (
	"errors"
	"math"
	"testing"
	"time"

	"pos_register/internal/catalog"

	"go.uber.org/zap/zaptest"
)

// fakeValidator implements UserValidator for tests.
type fakeValidator struct {
	exists bool
	err    error
}

func (f *fakeValidator) Exists(username string) (bool, error) {
	return f.exists, f.err
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewLocalEventLog(), NewLocalSaleLog(), nil, nil, zaptest.NewLogger(t))
}

func TestNewService(t *testing.T) {
	svc := newTestService(t)

	if svc == nil {
		t.Fatal("NewService returned nil")
	}
	if svc.events == nil {
		t.Error("Service event log was not initialized")
	}
	if svc.logger == nil {
		t.Error("Service logger was not initialized")
	}
}

func TestCurrent_EmptyLog(t *testing.T) {
	svc := newTestService(t)

	state, err := svc.Current()
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if state.Open {
		t.Error("expected closed state for empty log")
	}
}

func TestOpenCloseRoundTrip(t *testing.T) {
	svc := newTestService(t)

	evt, err := svc.Open("cajero", 1000)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if evt.Kind != KindOpen {
		t.Errorf("expected open event, got %q", evt.Kind)
	}

	state, err := svc.Current()
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if !state.Open {
		t.Fatal("expected open state after Open")
	}
	if state.Operator != "cajero" {
		t.Errorf("expected operator 'cajero', got %q", state.Operator)
	}
	if state.OpeningAmount != 1000 {
		t.Errorf("expected opening amount 1000, got %v", state.OpeningAmount)
	}
	if state.SessionID != evt.ID {
		t.Errorf("expected session id %q, got %q", evt.ID, state.SessionID)
	}

	if _, err := svc.Close("cajero", 1000); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	state, err = svc.Current()
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if state.Open {
		t.Error("expected closed state after Close")
	}
}

func TestOpen_AlreadyOpen(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Open("cajero", 500); err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}

	_, err := svc.Open("admin", 200)
	if !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestClose_NotOpen(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Close("cajero", 0)
	if !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}

	// Also closed again after a full open/close cycle.
	if _, err := svc.Open("cajero", 0); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := svc.Close("cajero", 0); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	_, err = svc.Close("cajero", 0)
	if !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen on second Close, got %v", err)
	}
}

func TestOpen_CoercesNegativeAmount(t *testing.T) {
	svc := newTestService(t)

	evt, err := svc.Open("cajero", -500)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if evt.Amount != 0 {
		t.Errorf("expected negative amount coerced to 0, got %v", evt.Amount)
	}

	state, _ := svc.Current()
	if state.OpeningAmount != 0 {
		t.Errorf("expected opening amount 0, got %v", state.OpeningAmount)
	}
}

func TestRecordSale_RegisterClosed(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RecordSale(SaleInput{
		Operator: "cajero",
		Items:    []LineItem{{ProductID: "P-0001", Price: 1000, Qty: 1}},
	})
	if !errors.Is(err, ErrRegisterClosed) {
		t.Errorf("expected ErrRegisterClosed, got %v", err)
	}
}

func TestRecordSale_TotalsAndStock(t *testing.T) {
	catalogService := catalog.NewService(catalog.NewLocalStorage(), zaptest.NewLogger(t))
	if _, err := catalogService.Upsert(catalog.Product{ID: "P-0001", Name: "Producto Demo", Price: 1200, Stock: 10}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	svc := NewService(NewLocalEventLog(), NewLocalSaleLog(), catalogService, nil, zaptest.NewLogger(t))
	if _, err := svc.Open("cajero", 1000); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	sale, err := svc.RecordSale(SaleInput{
		Operator: "cajero",
		Items: []LineItem{
			{ProductID: "P-0001", Price: 1200, Qty: 1},
			{ProductID: "P-0002", Price: 1100, Qty: 2},
		},
	})
	if err != nil {
		t.Fatalf("RecordSale returned error: %v", err)
	}

	if sale.Subtotal != 3400 {
		t.Errorf("expected subtotal 3400, got %v", sale.Subtotal)
	}
	if sale.Tax != 646 {
		t.Errorf("expected tax 646, got %v", sale.Tax)
	}
	if sale.Total != 4046 {
		t.Errorf("expected total 4046, got %v", sale.Total)
	}
	if sale.Method != "cash" {
		t.Errorf("expected default method 'cash', got %q", sale.Method)
	}

	prod, err := catalogService.Get("P-0001")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if prod.Stock != 9 {
		t.Errorf("expected stock 9 after selling 1, got %v", prod.Stock)
	}

	// Selling more than remaining stock floors at 0.
	if _, err := svc.RecordSale(SaleInput{
		Operator: "cajero",
		Items:    []LineItem{{ProductID: "P-0001", Price: 1200, Qty: 15}},
	}); err != nil {
		t.Fatalf("RecordSale returned error: %v", err)
	}
	prod, _ = catalogService.Get("P-0001")
	if prod.Stock != 0 {
		t.Errorf("expected stock floored at 0, got %v", prod.Stock)
	}
}

func TestRecordSale_CoercesBadNumbers(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Open("cajero", 0); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	sale, err := svc.RecordSale(SaleInput{
		Operator:  "cajero",
		CashGiven: math.Inf(1),
		Change:    -100,
		Items: []LineItem{
			{ProductID: "P-0001", Price: -500, Qty: 2},
			{ProductID: "P-0002", Price: 800},
		},
	})
	if err != nil {
		t.Fatalf("RecordSale returned error: %v", err)
	}

	// Negative price coerces to 0; missing qty defaults to 1.
	if sale.Subtotal != 800 {
		t.Errorf("expected subtotal 800, got %v", sale.Subtotal)
	}
	if sale.CashGiven != 0 {
		t.Errorf("expected cash given coerced to 0, got %v", sale.CashGiven)
	}
	if sale.Change != 0 {
		t.Errorf("expected change coerced to 0, got %v", sale.Change)
	}
}

func TestRecordSale_Validation(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Open("cajero", 0); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	_, err := svc.RecordSale(SaleInput{Items: []LineItem{{ProductID: "P-0001", Price: 100, Qty: 1}}})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for missing operator, got %v", err)
	}

	_, err = svc.RecordSale(SaleInput{Operator: "cajero"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty items, got %v", err)
	}
}

func TestRecordSale_OperatorNotFound(t *testing.T) {
	svc := NewService(NewLocalEventLog(), NewLocalSaleLog(), nil, &fakeValidator{exists: false}, zaptest.NewLogger(t))
	if _, err := svc.Open("cajero", 0); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	_, err := svc.RecordSale(SaleInput{
		Operator: "ghost",
		Items:    []LineItem{{ProductID: "P-0001", Price: 100, Qty: 1}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown operator, got %v", err)
	}
}

func TestGetSale_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetSale("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReduce_Deterministic(t *testing.T) {
	events := []Event{
		{ID: "e1", Kind: KindOpen, Operator: "a", Amount: 100, Timestamp: time.Unix(1, 0)},
		{ID: "e2", Kind: KindClose, Operator: "a", Amount: 90, Timestamp: time.Unix(2, 0)},
		{ID: "e3", Kind: KindOpen, Operator: "b", Amount: 200, Timestamp: time.Unix(3, 0)},
	}

	first := Reduce(events)
	second := Reduce(events)

	if first != second {
		t.Errorf("expected identical folds, got %+v and %+v", first, second)
	}
	if !first.Open || first.Operator != "b" || first.OpeningAmount != 200 {
		t.Errorf("unexpected folded state: %+v", first)
	}
}

func TestListEvents_DayRange(t *testing.T) {
	svc := newTestService(t)

	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 3, 11, 23, 30, 0, 0, time.Local)
	day3 := time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local)

	clock := day1
	svc.now = func() time.Time { return clock }

	if _, err := svc.Open("cajero", 100); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	clock = day2
	if _, err := svc.Close("cajero", 100); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	clock = day3
	if _, err := svc.Open("cajero", 200); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)

	events, err := svc.ListEvents(&from, &to)
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	// The to bound covers the whole of March 11, so the 23:30 close is in.
	if len(events) != 2 {
		t.Fatalf("expected 2 events in range, got %d", len(events))
	}
	// Newest first.
	if !events[0].Timestamp.After(events[1].Timestamp) {
		t.Error("expected events sorted newest first")
	}

	all, err := svc.ListEvents(nil, nil)
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 events unbounded, got %d", len(all))
	}
}
