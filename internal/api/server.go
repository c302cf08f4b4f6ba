package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"woosync/internal/api/handlers"
	"woosync/internal/api/middleware"
	"woosync/internal/config"
	"woosync/internal/connectors/splash"
	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/multilang"
	"woosync/internal/services/attributes"
	"woosync/internal/services/variants"
	"woosync/internal/store"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, st store.Store, ml multilang.Translator, notifier variants.Notifier) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Catalog services
	products := variants.NewService(st, ml, logger, notifier)
	reconciler := variants.NewReconciler(st, ml, logger, products)
	groups := attributes.NewGroupResolver(st, ml, logger)
	values := attributes.NewValueResolver(st, ml, logger)

	// Protocol objects
	productObj := splash.NewProductObject(st, ml, logger, products, reconciler, notifier)
	orderObj := splash.NewOrderObject(st, logger)
	customerObj := splash.NewThirdPartyObject(st, logger)

	registry := splash.NewRegistry()
	registry.Register(productObj)
	registry.Register(orderObj)
	registry.Register(customerObj)
	registry.Register(splash.NewPostObject(st, ml, logger, models.PostTypePost, "Post"))
	registry.Register(splash.NewPostObject(st, ml, logger, models.PostTypePage, "Page"))

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productObj, products, logger)
	attributeHandler := handlers.NewAttributeHandler(st, groups, values, logger)
	orderHandler := handlers.NewOrderHandler(orderObj, logger)
	customerHandler := handlers.NewCustomerHandler(customerObj, logger)
	objectHandler := handlers.NewObjectHandler(registry, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Products
		productRoutes := v1.Group("/products")
		{
			productRoutes.GET("", productHandler.List)
			productRoutes.GET("/:id", productHandler.Get)
			productRoutes.GET("/:id/checksum", productHandler.Checksum)
			productRoutes.POST("", productHandler.Create)
			productRoutes.PUT("/:id", productHandler.Update)
			productRoutes.DELETE("/:id", productHandler.Delete)
		}

		// Attribute groups
		attributeRoutes := v1.Group("/attributes")
		{
			attributeRoutes.GET("", attributeHandler.List)
			attributeRoutes.GET("/:code", attributeHandler.Get)
			attributeRoutes.GET("/:code/terms", attributeHandler.Terms)
			attributeRoutes.POST("", attributeHandler.Create)
		}

		// Generic protocol object interface
		objectRoutes := v1.Group("/objects")
		{
			objectRoutes.GET("", objectHandler.Types)
			objectRoutes.GET("/:type/fields", objectHandler.Fields)
			objectRoutes.GET("/:type/records", objectHandler.List)
			objectRoutes.GET("/:type/records/:id", objectHandler.Get)
			objectRoutes.POST("/:type/records", objectHandler.Create)
			objectRoutes.PUT("/:type/records/:id", objectHandler.Update)
			objectRoutes.DELETE("/:type/records/:id", objectHandler.Delete)
		}

		// Orders
		orderRoutes := v1.Group("/orders")
		{
			orderRoutes.GET("", orderHandler.List)
			orderRoutes.GET("/:id", orderHandler.Get)
		}

		// Customers
		customerRoutes := v1.Group("/customers")
		{
			customerRoutes.GET("", customerHandler.List)
			customerRoutes.GET("/:id", customerHandler.Get)
			customerRoutes.POST("", customerHandler.Create)
			customerRoutes.PUT("/:id", customerHandler.Update)
			customerRoutes.DELETE("/:id", customerHandler.Delete)
		}
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
