package api

import (
	"errors"
	"net/http"

	"pos_register/internal/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// catalogHandler implements HTTP handlers for the product catalog.
type catalogHandler struct {
	catalogService *catalog.Service
	logger         *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *catalog.Service, logger *zap.Logger) *catalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// handleUpsert handles the POST /products endpoint.
func (h *catalogHandler) handleUpsert(ctx *gin.Context) {
	var req catalog.Product

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	prod, err := h.catalogService.Upsert(req)
	if err != nil {
		h.logger.Error("failed to upsert product", zap.Error(err), zap.String("product_id", req.ID))
		if errors.Is(err, catalog.ErrEmptyID) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upsert product"})
		return
	}

	ctx.JSON(http.StatusOK, prod)
}

// handleList handles the GET /products endpoint.
func (h *catalogHandler) handleList(ctx *gin.Context) {
	products, err := h.catalogService.List()
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": products})
}

// handleGet handles the GET /products/:id endpoint.
func (h *catalogHandler) handleGet(ctx *gin.Context) {
	prod, err := h.catalogService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("failed to get product", zap.Error(err), zap.String("product_id", ctx.Param("id")))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		return
	}

	ctx.JSON(http.StatusOK, prod)
}

// handleRemove handles the DELETE /products/:id endpoint.
func (h *catalogHandler) handleRemove(ctx *gin.Context) {
	if err := h.catalogService.Remove(ctx.Param("id")); err != nil {
		h.logger.Error("failed to remove product", zap.Error(err), zap.String("product_id", ctx.Param("id")))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove product"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleFindByBarcode handles the GET /products/barcode/:code endpoint.
func (h *catalogHandler) handleFindByBarcode(ctx *gin.Context) {
	prod, err := h.catalogService.FindByBarcode(ctx.Param("code"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("failed to find product by barcode", zap.Error(err), zap.String("barcode", ctx.Param("code")))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find product"})
		return
	}

	ctx.JSON(http.StatusOK, prod)
}
