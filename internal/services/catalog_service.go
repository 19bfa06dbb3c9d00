package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes catalog change events. A nil publisher disables
// event publication; failures to publish never fail the operation itself.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CatalogService handles business logic for the product catalog: CRUD on
// products and their image sets, slug invariants, and error classification.
type CatalogService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewCatalogService creates a new CatalogService. events may be nil.
func NewCatalogService(repo repositories.ProductRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		repo:   repo,
		events: events,
	}
}

// Create persists a new product with zero or more images and returns its
// plain projection. The slug is derived from the title when absent and
// normalized in every case.
func (s *CatalogService) Create(input CreateProductInput) (*ProductResponse, error) {
	product := models.Product{
		Title:       input.Title,
		Description: input.Description,
		Slug:        models.NormalizeSlug(input.Slug, input.Title),
		Sizes:       input.Sizes,
		Gender:      input.Gender,
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	for _, url := range input.Images {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, s.handleDBError(err)
	}

	s.publish("product.created", product.ID)
	return toProductResponse(&product), nil
}

// FindAll returns one page of products as plain projections. Limit defaults
// to 10 when unset; offset defaults to 0.
func (s *CatalogService) FindAll(pagination Pagination) ([]ProductResponse, error) {
	limit := pagination.Limit
	if limit == 0 {
		limit = DefaultPageLimit
	}

	products, err := s.repo.FindPage(limit, pagination.Offset)
	if err != nil {
		return nil, s.handleDBError(err)
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *toProductResponse(&products[i]))
	}
	return responses, nil
}

// FindOne resolves the term and returns the matching product with its image
// entities. A syntactically valid UUID is looked up by ID only: a miss is
// reported as not found, never retried as a text match. Any other term is
// matched case-insensitively against title and slug.
func (s *CatalogService) FindOne(term string) (*models.Product, error) {
	var product *models.Product
	var err error

	if _, uuidErr := uuid.Parse(term); uuidErr == nil {
		product, err = s.repo.FindByID(term)
	} else {
		product, err = s.repo.FindByTitleOrSlug(strings.ToLower(term))
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Term: term}
		}
		return nil, s.handleDBError(err)
	}
	return product, nil
}

// FindOnePlain is FindOne with the image set flattened to URL strings.
func (s *CatalogService) FindOnePlain(term string) (*ProductResponse, error) {
	product, err := s.FindOne(term)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update applies a partial update to the product with the given ID. When the
// input carries an image list the whole stored image set is replaced inside
// one transaction together with the field update; a failure anywhere rolls
// the transaction back, so no half-updated state is ever observable. When no
// image list is supplied the stored images are left untouched. Returns the
// plain projection of the updated product from a fresh read.
func (s *CatalogService) Update(id string, input UpdateProductInput) (*ProductResponse, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Term: id}
		}
		return nil, s.handleDBError(err)
	}

	mergeProduct(product, input)
	product.Slug = models.NormalizeSlug(product.Slug, product.Title)

	if input.Images == nil {
		err = s.repo.Update(product)
	} else {
		err = s.repo.Transaction(func(tx repositories.ProductRepository) error {
			if txErr := tx.DeleteImagesByProduct(id); txErr != nil {
				return txErr
			}
			product.Images = nil
			for _, url := range input.Images {
				product.Images = append(product.Images, models.ProductImage{URL: url})
			}
			return tx.Save(product)
		})
	}
	if err != nil {
		return nil, s.handleDBError(err)
	}

	s.publish("product.updated", id)
	return s.FindOnePlain(id)
}

// Remove resolves the product and deletes it together with its images.
func (s *CatalogService) Remove(id string) error {
	product, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(product); err != nil {
		return s.handleDBError(err)
	}
	s.publish("product.removed", product.ID)
	return nil
}

// DeleteAllProducts unconditionally removes every product. Used by the
// reseed flow only.
func (s *CatalogService) DeleteAllProducts() error {
	if err := s.repo.DeleteAll(); err != nil {
		return s.handleDBError(err)
	}
	return nil
}

// handleDBError classifies a persistence failure: uniqueness violations
// become client-input errors carrying the constraint detail, everything else
// is logged here and replaced by an opaque internal error.
func (s *CatalogService) handleDBError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return &DuplicateError{Detail: err.Error()}
	}
	log.Printf("catalog: unexpected database error: %v", err)
	return ErrInternal
}

// publish emits a catalog change event. Publish failures are logged and
// swallowed: event delivery is best-effort and must not fail the operation.
func (s *CatalogService) publish(routingKey, productID string) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]string{"product_id": productID})
	if err != nil {
		log.Printf("catalog: failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish("catalog", routingKey, body); err != nil {
		log.Printf("catalog: failed to publish %s event for product %s: %v", routingKey, productID, err)
	}
}

// mergeProduct copies the supplied partial fields onto the existing product.
func mergeProduct(product *models.Product, input UpdateProductInput) {
	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Sizes != nil {
		product.Sizes = input.Sizes
	}
	if input.Gender != nil {
		product.Gender = *input.Gender
	}
}
