package catalog

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestUpsertAndGet(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	prod, err := svc.Upsert(Product{ID: "P-0001", Name: "Producto Demo", Price: 1000, Stock: 10, Barcode: "780000000001"})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if prod.Price != 1000 || prod.Stock != 10 {
		t.Errorf("unexpected product after upsert: %+v", prod)
	}

	got, err := svc.Get("P-0001")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Producto Demo" {
		t.Errorf("expected name 'Producto Demo', got %q", got.Name)
	}

	if _, err := svc.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Upsert(Product{Name: "no id"}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}
}

func TestUpsert_CoercesNegativeNumbers(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	prod, err := svc.Upsert(Product{ID: "P-0001", Price: -500, Stock: -3})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if prod.Price != 0 {
		t.Errorf("expected negative price coerced to 0, got %v", prod.Price)
	}
	if prod.Stock != 0 {
		t.Errorf("expected negative stock coerced to 0, got %v", prod.Stock)
	}
}

func TestAdjustStock_FloorsAtZero(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	if _, err := svc.Upsert(Product{ID: "P-0001", Stock: 10}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if err := svc.AdjustStock("P-0001", -3); err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	prod, _ := svc.Get("P-0001")
	if prod.Stock != 7 {
		t.Errorf("expected stock 7, got %v", prod.Stock)
	}

	if err := svc.AdjustStock("P-0001", -15); err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	prod, _ = svc.Get("P-0001")
	if prod.Stock != 0 {
		t.Errorf("expected stock floored at 0, got %v", prod.Stock)
	}

	if err := svc.AdjustStock("missing", -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByBarcode(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	if _, err := svc.Upsert(Product{ID: "P-0001", Barcode: "780000000001"}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if _, err := svc.Upsert(Product{ID: "P-0002"}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	prod, err := svc.FindByBarcode(" 780000000001 ")
	if err != nil {
		t.Fatalf("FindByBarcode returned error: %v", err)
	}
	if prod.ID != "P-0001" {
		t.Errorf("expected P-0001, got %q", prod.ID)
	}

	if _, err := svc.FindByBarcode("999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	if _, err := svc.Upsert(Product{ID: "P-0001"}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if err := svc.Remove("P-0001"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := svc.Remove("P-0001"); err != nil {
		t.Errorf("expected second Remove to be a no-op, got %v", err)
	}
	if _, err := svc.Get("P-0001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}
}
