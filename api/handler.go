package api

import (
	"errors"
	"net/http"
	"time"

	"pos_register/internal/register"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// registerHandler holds the register service and implements HTTP handlers for
// drawer and sale operations.
type registerHandler struct {
	registerService *register.Service
	logger          *zap.Logger
}

// NewRegisterHandler creates a new register handler.
func NewRegisterHandler(registerService *register.Service, logger *zap.Logger) *registerHandler {
	return &registerHandler{
		registerService: registerService,
		logger:          logger,
	}
}

// handleOpen handles the POST /register/open endpoint.
func (h *registerHandler) handleOpen(ctx *gin.Context) {
	var req struct {
		Operator      string  `json:"operator"`
		OpeningAmount float64 `json:"opening_amount"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	evt, err := h.registerService.Open(req.Operator, req.OpeningAmount)
	if err != nil {
		h.logger.Error("failed to open register", zap.Error(err), zap.String("operator", req.Operator))
		switch {
		case errors.Is(err, register.ErrAlreadyOpen):
			ctx.JSON(http.StatusConflict, gin.H{"error": "register already open"})
		case errors.Is(err, register.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open register"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, evt)
}

// handleClose handles the POST /register/close endpoint.
func (h *registerHandler) handleClose(ctx *gin.Context) {
	var req struct {
		Operator      string  `json:"operator"`
		ClosingAmount float64 `json:"closing_amount"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	evt, err := h.registerService.Close(req.Operator, req.ClosingAmount)
	if err != nil {
		h.logger.Error("failed to close register", zap.Error(err), zap.String("operator", req.Operator))
		switch {
		case errors.Is(err, register.ErrNotOpen):
			ctx.JSON(http.StatusConflict, gin.H{"error": "register not open"})
		case errors.Is(err, register.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close register"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, evt)
}

// handleCurrent handles the GET /register/current endpoint.
func (h *registerHandler) handleCurrent(ctx *gin.Context) {
	state, err := h.registerService.Current()
	if err != nil {
		h.logger.Error("failed to derive register state", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to derive register state"})
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// handleListEvents handles the GET /register/events endpoint.
func (h *registerHandler) handleListEvents(ctx *gin.Context) {
	from, to, err := parseRangeQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.registerService.ListEvents(from, to)
	if err != nil {
		h.logger.Error("failed to list register events", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list register events"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": events})
}

// handleCreateSale handles the POST /sales endpoint.
func (h *registerHandler) handleCreateSale(ctx *gin.Context) {
	var req register.SaleInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.registerService.RecordSale(req)
	if err != nil {
		h.logger.Error("failed to record sale", zap.Error(err), zap.String("operator", req.Operator))
		switch {
		case errors.Is(err, register.ErrRegisterClosed):
			ctx.JSON(http.StatusConflict, gin.H{"error": "register closed, open it before selling"})
		case errors.Is(err, register.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record sale"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleGetSale handles the GET /sales/:id endpoint.
func (h *registerHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.registerService.GetSale(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, register.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		h.logger.Error("failed to get sale", zap.Error(err), zap.String("sale_id", ctx.Param("id")))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get sale"})
		return
	}

	ctx.JSON(http.StatusOK, sale)
}

// handleListSales handles the GET /sales endpoint.
func (h *registerHandler) handleListSales(ctx *gin.Context) {
	from, to, err := parseRangeQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sales, err := h.registerService.ListSales(from, to)
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": sales})
}

// parseRangeQuery reads the optional from/to date bounds (YYYY-MM-DD).
func parseRangeQuery(ctx *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if v := ctx.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return nil, nil, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
		from = &t
	}
	if v := ctx.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return nil, nil, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
		to = &t
	}
	return from, to, nil
}
