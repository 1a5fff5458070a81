package catalog

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Service provides product catalog operations on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new catalog Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Upsert creates or replaces a product, coercing numeric fields.
func (s *Service) Upsert(prod Product) (*Product, error) {
	if prod.ID == "" {
		return nil, ErrEmptyID
	}

	dto := &Product{
		ID:      prod.ID,
		Name:    prod.Name,
		Price:   toNum(prod.Price),
		Stock:   toNum(prod.Stock),
		Barcode: strings.TrimSpace(prod.Barcode),
		Expiry:  prod.Expiry,
	}

	if err := s.storage.Set(dto); err != nil {
		s.logger.Error("failed to save product", zap.String("product_id", dto.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return dto, nil
}

// Get retrieves a product by ID. Returns ErrNotFound if no product matches.
func (s *Service) Get(id string) (*Product, error) {
	return s.storage.Read(id)
}

// List returns all products sorted by ID.
func (s *Service) List() ([]*Product, error) {
	products, err := s.storage.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

// Remove deletes a product by ID. Removing an absent ID is a no-op.
func (s *Service) Remove(id string) error {
	return s.storage.Delete(id)
}

// FindByBarcode returns the first product whose barcode matches.
// Returns ErrNotFound when no product carries that barcode.
func (s *Service) FindByBarcode(code string) (*Product, error) {
	code = strings.TrimSpace(code)
	products, err := s.storage.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	for _, p := range products {
		if p.Barcode != "" && p.Barcode == code {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

// AdjustStock adds delta to the product's stock, flooring the result at 0.
// Returns ErrNotFound when the product does not exist.
func (s *Service) AdjustStock(productID string, delta float64) error {
	prod, err := s.storage.Read(productID)
	if err != nil {
		return err
	}

	next := prod.Stock + delta
	if next < 0 {
		next = 0
	}
	prod.Stock = next

	if err := s.storage.Set(prod); err != nil {
		s.logger.Error("failed to save stock adjustment", zap.String("product_id", productID), zap.Error(err))
		return fmt.Errorf("failed to save stock adjustment: %w", err)
	}

	return nil
}
