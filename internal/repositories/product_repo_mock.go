package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"tienda/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It enforces the same uniqueness rules as the database schema and gives
// Transaction snapshot semantics, so service-level behavior (duplicate
// classification, rollback on failure) can be exercised without a database.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string // insertion order, the "default order" of FindPage
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product, enforcing title and slug uniqueness.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	assignImageIDs(product)
	if err := r.checkUnique(product); err != nil {
		return err
	}
	r.products[product.ID] = cloneProduct(*product)
	r.order = append(r.order, product.ID)
	return nil
}

// FindPage returns one page of products in insertion order.
func (r *MockProductRepository) FindPage(limit, offset int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page := make([]models.Product, 0, limit)
	for i := offset; i < len(r.order) && len(page) < limit; i++ {
		page = append(page, cloneProduct(r.products[r.order[i]]))
	}
	return page, nil
}

// FindByID returns a product by its ID.
func (r *MockProductRepository) FindByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	p := cloneProduct(product)
	return &p, nil
}

// FindByTitleOrSlug returns the first product (in an implementation-defined
// order) whose lowercased title or slug equals the term.
func (r *MockProductRepository) FindByTitleOrSlug(term string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := r.products[id]
		if strings.ToLower(p.Title) == term || p.Slug == term {
			c := cloneProduct(p)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("product with term %s: %w", term, ErrNotFound)
}

// Update replaces the stored scalar fields, keeping the stored image set.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	if err := r.checkUnique(product); err != nil {
		return err
	}
	updated := cloneProduct(*product)
	updated.Images = existing.Images
	r.products[product.ID] = updated
	return nil
}

// Save replaces the stored product, images included.
func (r *MockProductRepository) Save(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	assignImageIDs(product)
	if err := r.checkUnique(product); err != nil {
		return err
	}
	if _, ok := r.products[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// Delete removes a product and its images.
func (r *MockProductRepository) Delete(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	delete(r.products, product.ID)
	for i, id := range r.order {
		if id == product.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteImagesByProduct clears the image set of the given product.
func (r *MockProductRepository) DeleteImagesByProduct(productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return nil
	}
	product.Images = nil
	r.products[productID] = product
	return nil
}

// DeleteAll removes every product.
func (r *MockProductRepository) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[string]models.Product)
	r.order = nil
	return nil
}

// Transaction runs fn against a snapshot copy of the store. The snapshot is
// swapped in only when fn succeeds, so a failing fn leaves the repository
// exactly as it was.
func (r *MockProductRepository) Transaction(fn func(ProductRepository) error) error {
	r.mu.Lock()
	tx := &MockProductRepository{
		products: make(map[string]models.Product, len(r.products)),
		order:    append([]string(nil), r.order...),
	}
	for id, p := range r.products {
		tx.products[id] = cloneProduct(p)
	}
	r.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	r.mu.Lock()
	r.products = tx.products
	r.order = tx.order
	r.mu.Unlock()
	return nil
}

// checkUnique enforces the title and slug unique indexes. Caller holds the lock.
func (r *MockProductRepository) checkUnique(product *models.Product) error {
	for id, p := range r.products {
		if id == product.ID {
			continue
		}
		if p.Title == product.Title {
			return fmt.Errorf("%w: title %q already exists", ErrDuplicateKey, product.Title)
		}
		if p.Slug == product.Slug {
			return fmt.Errorf("%w: slug %q already exists", ErrDuplicateKey, product.Slug)
		}
	}
	return nil
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]models.ProductImage(nil), p.Images...)
	p.Sizes = append([]string(nil), p.Sizes...)
	return p
}
