package api

import (
	"net/http"

	"pos_register/internal/admission"
	"pos_register/internal/catalog"
	"pos_register/internal/config"
	"pos_register/internal/register"
	"pos_register/internal/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InitRoutes registers all endpoints on the given Gin engine using the
// environment configuration. It initializes the storage, services, and
// handlers, then binds each HTTP method and path to the appropriate handler
// function.
func InitRoutes(e *gin.Engine) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	InitRoutes2(e, cfg)
	return nil
}

// InitRoutes2 registers all endpoints with an explicit configuration, so
// tests can point the operator validation at a mock auth service.
func InitRoutes2(e *gin.Engine, cfg config.Config) {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	catalogStorage := catalog.NewLocalStorage()
	catalogService := catalog.NewService(catalogStorage, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)

	var validator register.UserValidator
	if cfg.AuthServiceURL != "" {
		validator = users.NewClient(cfg.AuthServiceURL)
	}

	eventLog := register.NewLocalEventLog()
	saleLog := register.NewLocalSaleLog()
	registerService := register.NewService(eventLog, saleLog, catalogService, validator, logger)
	registerHandler := NewRegisterHandler(registerService, logger)

	sessionStore := admission.NewLocalStore()
	admissionController := admission.NewController(sessionStore, logger, cfg.MaxActiveSessions, cfg.SessionIdleExpiry)
	admissionHandler := NewAdmissionHandler(admissionController, logger)

	e.POST("/register/open", registerHandler.handleOpen)
	e.POST("/register/close", registerHandler.handleClose)
	e.GET("/register/current", registerHandler.handleCurrent)
	e.GET("/register/events", registerHandler.handleListEvents)

	e.POST("/sales", registerHandler.handleCreateSale)
	e.GET("/sales/:id", registerHandler.handleGetSale)
	e.GET("/sales", registerHandler.handleListSales)

	e.POST("/sessions", admissionHandler.handleEnter)
	e.POST("/sessions/:id/heartbeat", admissionHandler.handleHeartbeat)
	e.DELETE("/sessions/:id", admissionHandler.handleLeave)
	e.GET("/sessions/status", admissionHandler.handleStatus)

	e.POST("/products", catalogHandler.handleUpsert)
	e.GET("/products", catalogHandler.handleList)
	e.GET("/products/:id", catalogHandler.handleGet)
	e.DELETE("/products/:id", catalogHandler.handleRemove)
	e.GET("/products/barcode/:code", catalogHandler.handleFindByBarcode)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
