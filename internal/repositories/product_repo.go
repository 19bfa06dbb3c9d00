package repositories

import (
	"errors"

	"tienda/internal/models"
)

// Sentinel errors returned by repository implementations. Callers classify
// failures with errors.Is; the wrapping error keeps the driver detail.
var (
	// ErrNotFound indicates the requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateKey indicates a unique constraint (title or slug) was violated.
	ErrDuplicateKey = errors.New("duplicate key")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	FindPage(limit, offset int) ([]models.Product, error)
	FindByID(id string) (*models.Product, error)
	FindByTitleOrSlug(term string) (*models.Product, error)
	// Update persists the product's scalar fields, leaving the stored image
	// set untouched.
	Update(product *models.Product) error
	// Save persists the product together with any attached image records.
	Save(product *models.Product) error
	Delete(product *models.Product) error
	DeleteImagesByProduct(productID string) error
	DeleteAll() error
	// Transaction runs fn against a repository bound to a single database
	// transaction: commit if fn returns nil, rollback otherwise. Every exit
	// path, panics included, releases the transaction.
	Transaction(fn func(ProductRepository) error) error
}
