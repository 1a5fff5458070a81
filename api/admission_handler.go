package api

import (
	"net/http"

	"pos_register/internal/admission"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// admissionHandler implements HTTP handlers for operator session admission.
type admissionHandler struct {
	controller *admission.Controller
	logger     *zap.Logger
}

// NewAdmissionHandler creates a new admission handler.
func NewAdmissionHandler(controller *admission.Controller, logger *zap.Logger) *admissionHandler {
	return &admissionHandler{
		controller: controller,
		logger:     logger,
	}
}

// handleEnter handles the POST /sessions endpoint. A rejected entry is
// reported with 429 and the approximate queue position.
func (h *admissionHandler) handleEnter(ctx *gin.Context) {
	res, err := h.controller.TryEnter()
	if err != nil {
		h.logger.Error("failed to admit session", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to admit session"})
		return
	}

	if !res.Allowed {
		ctx.JSON(http.StatusTooManyRequests, res)
		return
	}

	ctx.JSON(http.StatusCreated, res)
}

// handleHeartbeat handles the POST /sessions/:id/heartbeat endpoint.
// Heartbeats for purged sessions are accepted silently.
func (h *admissionHandler) handleHeartbeat(ctx *gin.Context) {
	if err := h.controller.Heartbeat(ctx.Param("id")); err != nil {
		h.logger.Error("failed to heartbeat session", zap.Error(err), zap.String("session_id", ctx.Param("id")))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to heartbeat session"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleLeave handles the DELETE /sessions/:id endpoint. Idempotent.
func (h *admissionHandler) handleLeave(ctx *gin.Context) {
	if err := h.controller.Leave(ctx.Param("id")); err != nil {
		h.logger.Error("failed to remove session", zap.Error(err), zap.String("session_id", ctx.Param("id")))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleStatus handles the GET /sessions/status endpoint.
func (h *admissionHandler) handleStatus(ctx *gin.Context) {
	status, err := h.controller.Status()
	if err != nil {
		h.logger.Error("failed to read session status", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read session status"})
		return
	}

	ctx.JSON(http.StatusOK, status)
}
