package handler

import (
	"database/sql"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qoloner/qoloner-api/internal/models"
	"github.com/qoloner/qoloner-api/internal/service"
	"github.com/qoloner/qoloner-api/internal/utils"
)

// CatalogHandler handles catalog browsing endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
	paymentService *service.PaymentService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, paymentService *service.PaymentService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, paymentService: paymentService}
}

// GetProducts returns the catalog page matching the filter state.
// Defaults mirror the catalog view: all categories, all cities, price
// 0..50000, page 1.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	filter := models.CatalogFilter{
		Category: c.Query("category"),
		City:     c.Query("city"),
		MinPrice: 0,
		MaxPrice: models.DefaultMaxPrice,
	}
	if v := c.Query("price_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.MinPrice = n
		}
	}
	if v := c.Query("price_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.MaxPrice = n
		}
	}

	page := 1
	limit := 50
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), filter, page, limit)
	if err != nil {
		// Store errors surface verbatim; the caller retries manually.
		utils.Error(c, 500, "STORE_ERROR", err.Error())
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
	}, page, limit, total)
}

// GetProduct returns one product joined with the owning master's profile.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, 400, "INVALID_ID", "Некорректный идентификатор товара")
		return
	}

	detail, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Товар не найден")
			return
		}
		utils.Error(c, 500, "STORE_ERROR", err.Error())
		return
	}

	utils.Success(c, 200, "Product retrieved successfully", gin.H{
		"product": detail,
	})
}

// GetPaymentInstruction returns the Kaspi transfer payload for a product.
func (h *CatalogHandler) GetPaymentInstruction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, 400, "INVALID_ID", "Некорректный идентификатор товара")
		return
	}

	detail, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Товар не найден")
			return
		}
		utils.Error(c, 500, "STORE_ERROR", err.Error())
		return
	}

	utils.Success(c, 200, "Payment instruction ready", gin.H{
		"payment": h.paymentService.BuildInstruction(detail),
	})
}
