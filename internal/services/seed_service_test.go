package services_test

import (
	"testing"

	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestSeedService_RunSeed(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	catalog := services.NewCatalogService(repo, nil)
	seed := services.NewSeedService(catalog)

	assert.NoError(t, seed.RunSeed())

	page, err := catalog.FindAll(services.Pagination{Limit: 100})
	assert.NoError(t, err)
	assert.NotEmpty(t, page)

	// Seeded rows go through Create, so the slug invariant holds everywhere.
	for _, p := range page {
		assert.NotContains(t, p.Slug, " ")
		assert.NotContains(t, p.Slug, "'")
	}

	// Reseeding wipes the catalog first, so it never trips the unique
	// title constraint.
	before := len(page)
	assert.NoError(t, seed.RunSeed())
	page, err = catalog.FindAll(services.Pagination{Limit: 100})
	assert.NoError(t, err)
	assert.Len(t, page, before)
}
