package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qoloner/qoloner-api/internal/models"
	"github.com/qoloner/qoloner-api/internal/utils"
)

// ReferenceHandler serves the static enums clients render as form options
// and filter presets.
type ReferenceHandler struct{}

// NewReferenceHandler constructs a ReferenceHandler.
func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// GetCategories returns the listing category enum and the catalog filter
// presets. The two lists diverge and are kept separate on purpose.
func (h *ReferenceHandler) GetCategories(c *gin.Context) {
	utils.Success(c, 200, "Categories retrieved successfully", gin.H{
		"categories":    models.ListingCategories,
		"filterPresets": models.CatalogCategories,
	})
}

// GetCities returns the Kazakhstani city enum used by registration and the
// catalog city filter.
func (h *ReferenceHandler) GetCities(c *gin.Context) {
	utils.Success(c, 200, "Cities retrieved successfully", gin.H{
		"cities": models.Cities,
	})
}
