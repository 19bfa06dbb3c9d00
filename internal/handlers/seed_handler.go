package handlers

import (
	"log"

	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SeedHandler exposes the catalog reseed flow.
type SeedHandler struct {
	seed *services.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seed *services.SeedService) *SeedHandler {
	return &SeedHandler{
		seed: seed,
	}
}

// RegisterRoutes registers the seed route.
func (h *SeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/seed", h.HandleRunSeed)
}

// HandleRunSeed wipes the catalog and inserts the bundled seed products.
func (h *SeedHandler) HandleRunSeed(c *fiber.Ctx) error {
	if err := h.seed.RunSeed(); err != nil {
		log.Printf("Error running seed: %v", err)
		return catalogErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "SEED EXECUTED",
	})
}
