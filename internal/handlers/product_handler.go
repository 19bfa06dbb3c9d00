package handlers

import (
	"errors"
	"fmt"
	"log"

	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public (read) product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
}

// RegisterProtectedRoutes registers the mutating product routes, intended to
// sit behind the auth middleware.
func (h *ProductHandler) RegisterProtectedRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.catalog.Create(input)
	if err != nil {
		return catalogErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleListProducts returns one page of products. limit and offset are
// optional query parameters and must be non-negative.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var pagination services.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination query",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(pagination); err != nil {
		return validationErrorResponse(c, err)
	}

	products, err := h.catalog.FindAll(pagination)
	if err != nil {
		return catalogErrorResponse(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by UUID, title, or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	term := c.Params("term")
	product, err := h.catalog.FindOnePlain(term)
	if err != nil {
		return catalogErrorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.catalog.Update(id, input)
	if err != nil {
		return catalogErrorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.catalog.Remove(id); err != nil {
		return catalogErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product removed",
	})
}

// catalogErrorResponse maps the catalog error taxonomy onto HTTP statuses:
// not-found → 404, duplicate constraint → 400 with the constraint detail,
// anything else → opaque 500.
func catalogErrorResponse(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Error(),
		})
	}
	var duplicate *services.DuplicateError
	if errors.As(err, &duplicate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": duplicate.Detail,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": services.ErrInternal.Error(),
	})
}

// validationErrorResponse renders validator.v10 failures field by field.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
