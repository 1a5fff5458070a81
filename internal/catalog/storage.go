package catalog

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a product with the given ID is not found.
var ErrNotFound = errors.New("product not found")

// ErrEmptyID is returned when trying to store a product with an empty ID.
var ErrEmptyID = errors.New("empty product ID")

// Storage is the main interface for the catalog storage layer.
type Storage interface {
	Set(prod *Product) error
	Read(id string) (*Product, error)
	GetAll() ([]*Product, error)
	Delete(id string) error
}

// LocalStorage provides an in-memory implementation for storing products.
type LocalStorage struct {
	mu sync.Mutex
	m  map[string]*Product
}

// NewLocalStorage instantiates a new LocalStorage with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Product{},
	}
}

// Set stores or replaces a product.
// Returns ErrEmptyID if the product has an empty ID.
func (l *LocalStorage) Set(prod *Product) error {
	if prod.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[prod.ID] = prod
	return nil
}

// Read retrieves a product by ID. Returns ErrNotFound if not found.
func (l *LocalStorage) Read(id string) (*Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetAll retrieves all products from the local storage.
func (l *LocalStorage) GetAll() ([]*Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	products := make([]*Product, 0, len(l.m))
	for _, p := range l.m {
		products = append(products, p)
	}
	return products, nil
}

// Delete removes a product by ID. Removing an absent ID is a no-op.
func (l *LocalStorage) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.m, id)
	return nil
}
