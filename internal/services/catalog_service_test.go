package services_test

import (
	"errors"
	"fmt"
	"testing"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepo is a testify mock of repositories.ProductRepository.
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepo) FindPage(limit, offset int) ([]models.Product, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepo) FindByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepo) FindByTitleOrSlug(term string) (*models.Product, error) {
	args := m.Called(term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepo) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepo) Save(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepo) Delete(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepo) DeleteImagesByProduct(productID string) error {
	args := m.Called(productID)
	return args.Error(0)
}

func (m *MockProductRepo) DeleteAll() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockProductRepo) Transaction(fn func(repositories.ProductRepository) error) error {
	args := m.Called(fn)
	return args.Error(0)
}

// MockEventPublisher is a testify mock of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func TestCatalogService_Create_NormalizesSlug(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	created, err := service.Create(services.CreateProductInput{
		Title:  "Men's T-Shirt",
		Sizes:  []string{"S", "M"},
		Gender: models.GenderMen,
	})
	assert.NoError(t, err)
	assert.Equal(t, "mens_t-shirt", created.Slug)
	assert.Equal(t, float64(0), created.Price)
	assert.Equal(t, 0, created.Stock)

	// An explicit slug is normalized too.
	created, err = service.Create(services.CreateProductInput{
		Title:  "Another Shirt",
		Slug:   "Another's SLUG",
		Sizes:  []string{"S"},
		Gender: models.GenderUnisex,
	})
	assert.NoError(t, err)
	assert.Equal(t, "anothers_slug", created.Slug)
}

func TestCatalogService_Create_ProjectsImages(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	created, err := service.Create(services.CreateProductInput{
		Title:  "Hoodie",
		Sizes:  []string{"M"},
		Gender: models.GenderUnisex,
		Images: []string{"front.jpg", "back.jpg"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"front.jpg", "back.jpg"}, created.Images)

	stored, err := service.FindOne(created.ID)
	assert.NoError(t, err)
	assert.Len(t, stored.Images, 2)
}

func TestCatalogService_Create_DuplicateTitle(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	input := services.CreateProductInput{
		Title:  "Unique Jacket",
		Sizes:  []string{"L"},
		Gender: models.GenderWomen,
	}
	_, err := service.Create(input)
	assert.NoError(t, err)

	// The second create must classify as a client-input duplicate error, not
	// an opaque internal one.
	_, err = service.Create(input)
	var duplicate *services.DuplicateError
	assert.ErrorAs(t, err, &duplicate)
	assert.Contains(t, duplicate.Detail, "Unique Jacket")
	assert.NotErrorIs(t, err, services.ErrInternal)
}

func TestCatalogService_FindOne_UUIDNeverFallsThrough(t *testing.T) {
	mockRepo := new(MockProductRepo)
	service := services.NewCatalogService(mockRepo, nil)

	const term = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	mockRepo.On("FindByID", term).
		Return(nil, fmt.Errorf("product with ID %s: %w", term, repositories.ErrNotFound)).Once()

	_, err := service.FindOne(term)
	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, term, notFound.Term)

	// A valid UUID must never be retried as a title/slug match.
	mockRepo.AssertNotCalled(t, "FindByTitleOrSlug", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_FindOne_TextTermIsLowercased(t *testing.T) {
	mockRepo := new(MockProductRepo)
	service := services.NewCatalogService(mockRepo, nil)

	product := &models.Product{ID: "id-1", Title: "Kid Hoodie", Slug: "kid_hoodie"}
	mockRepo.On("FindByTitleOrSlug", "kid hoodie").Return(product, nil).Once()

	found, err := service.FindOne("Kid Hoodie")
	assert.NoError(t, err)
	assert.Equal(t, product, found)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_FindAll_Defaults(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	for i := 0; i < 12; i++ {
		_, err := service.Create(services.CreateProductInput{
			Title:  fmt.Sprintf("Product %02d", i),
			Sizes:  []string{"M"},
			Gender: models.GenderUnisex,
		})
		assert.NoError(t, err)
	}

	// Zero pagination falls back to limit 10, offset 0.
	page, err := service.FindAll(services.Pagination{})
	assert.NoError(t, err)
	assert.Len(t, page, 10)

	page, err = service.FindAll(services.Pagination{Limit: 5, Offset: 10})
	assert.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestCatalogService_Update_WithoutImagesKeepsImageSet(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	created, err := service.Create(services.CreateProductInput{
		Title:  "Bomber Jacket",
		Sizes:  []string{"M", "L"},
		Gender: models.GenderMen,
		Images: []string{"a.jpg", "b.jpg"},
	})
	assert.NoError(t, err)

	newTitle := "Bomber Jacket V2"
	updated, err := service.Update(created.ID, services.UpdateProductInput{Title: &newTitle})
	assert.NoError(t, err)
	assert.Equal(t, "Bomber Jacket V2", updated.Title)
	// Slug is re-normalized from its stored value, not re-derived from the
	// new title.
	assert.Equal(t, "bomber_jacket", updated.Slug)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, updated.Images)
}

func TestCatalogService_Update_ReplacesImageSet(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	created, err := service.Create(services.CreateProductInput{
		Title:  "Puffer Jacket",
		Sizes:  []string{"S"},
		Gender: models.GenderWomen,
		Images: []string{"old1.jpg", "old2.jpg"},
	})
	assert.NoError(t, err)

	updated, err := service.Update(created.ID, services.UpdateProductInput{
		Images: []string{"new.jpg"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"new.jpg"}, updated.Images)

	reread, err := service.FindOnePlain(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"new.jpg"}, reread.Images)
}

// failingSaveRepo wraps a repository so that any Save inside a transaction
// fails after the image deletion already ran.
type failingSaveRepo struct {
	repositories.ProductRepository
}

func (r *failingSaveRepo) Save(product *models.Product) error {
	return errors.New("simulated save failure")
}

func (r *failingSaveRepo) Transaction(fn func(repositories.ProductRepository) error) error {
	return r.ProductRepository.Transaction(func(tx repositories.ProductRepository) error {
		return fn(&failingSaveRepo{tx})
	})
}

func TestCatalogService_Update_RollsBackImageReplacement(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	created, err := service.Create(services.CreateProductInput{
		Title:  "Scoop Neck Tee",
		Sizes:  []string{"XS"},
		Gender: models.GenderWomen,
		Images: []string{"keep1.jpg", "keep2.jpg"},
	})
	assert.NoError(t, err)

	// Same store, but every Save inside a transaction fails after the image
	// deletion already happened.
	failing := services.NewCatalogService(&failingSaveRepo{repo}, nil)
	_, err = failing.Update(created.ID, services.UpdateProductInput{
		Images: []string{"lost.jpg"},
	})
	assert.ErrorIs(t, err, services.ErrInternal)

	// The failed transaction must not be observable: original image set intact.
	reread, err := service.FindOnePlain(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"keep1.jpg", "keep2.jpg"}, reread.Images)
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	title := "whatever"
	_, err := service.Update("f47ac10b-58cc-4372-a567-0e02b2c3d479", services.UpdateProductInput{Title: &title})
	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCatalogService_Remove(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	created, err := service.Create(services.CreateProductInput{
		Title:  "Graffiti Hoodie",
		Sizes:  []string{"M"},
		Gender: models.GenderUnisex,
	})
	assert.NoError(t, err)

	assert.NoError(t, service.Remove(created.ID))

	_, err = service.FindOne(created.ID)
	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCatalogService_DeleteAllProducts(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil)

	for i := 0; i < 3; i++ {
		_, err := service.Create(services.CreateProductInput{
			Title:  fmt.Sprintf("Doomed %d", i),
			Sizes:  []string{"M"},
			Gender: models.GenderUnisex,
		})
		assert.NoError(t, err)
	}

	assert.NoError(t, service.DeleteAllProducts())

	// Empty page regardless of the prior window.
	page, err := service.FindAll(services.Pagination{Limit: 100, Offset: 0})
	assert.NoError(t, err)
	assert.Empty(t, page)
}

func TestCatalogService_InternalErrorsAreOpaque(t *testing.T) {
	mockRepo := new(MockProductRepo)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("FindPage", 10, 0).Return(nil, errors.New("connection refused")).Once()

	_, err := service.FindAll(services.Pagination{})
	assert.ErrorIs(t, err, services.ErrInternal)
	assert.NotContains(t, err.Error(), "connection refused")
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_PublishesEvents(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	events := new(MockEventPublisher)
	service := services.NewCatalogService(repo, events)

	events.On("Publish", "catalog", "product.created", mock.Anything).Return(nil).Once()

	created, err := service.Create(services.CreateProductInput{
		Title:  "Event Shirt",
		Sizes:  []string{"M"},
		Gender: models.GenderMen,
	})
	assert.NoError(t, err)
	events.AssertExpectations(t)

	// A publish failure never fails the operation itself.
	events.On("Publish", "catalog", "product.removed", mock.Anything).
		Return(errors.New("broker down")).Once()
	assert.NoError(t, service.Remove(created.ID))
	events.AssertExpectations(t)
}
