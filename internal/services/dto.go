package services

import "tienda/internal/models"

// Pagination carries the page window for list operations. Both values must
// be non-negative; zero values fall back to the defaults (limit 10, offset 0).
type Pagination struct {
	Limit  int `query:"limit" validate:"gte=0"`
	Offset int `query:"offset" validate:"gte=0"`
}

// DefaultPageLimit is used when no limit is supplied.
const DefaultPageLimit = 10

// CreateProductInput is the shape accepted by CatalogService.Create. Types
// and ranges are enforced by the validation layer before the service runs.
type CreateProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductInput is a partial update: nil fields are left unchanged.
// A non-nil Images list replaces the whole stored image set; a nil one
// leaves the stored images untouched.
type UpdateProductInput struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// ProductResponse is the plain projection read operations expose: image
// entities flattened to their URL strings.
type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Images      []string `json:"images"`
}

func toProductResponse(p *models.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Gender:      p.Gender,
		Images:      p.ImageURLs(),
	}
}
