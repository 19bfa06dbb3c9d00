package handlers

import (
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FilesHandler serves static product image files.
type FilesHandler struct {
	files *services.FilesService
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(files *services.FilesService) *FilesHandler {
	return &FilesHandler{
		files: files,
	}
}

// RegisterRoutes registers the file routes.
func (h *FilesHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/files/product/:imageName", h.HandleGetProductImage)
}

// HandleGetProductImage resolves and serves one product image by name.
func (h *FilesHandler) HandleGetProductImage(c *fiber.Ctx) error {
	imageName := c.Params("imageName")
	path, err := h.files.StaticProductImage(imageName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.SendFile(path)
}
