// Package http exposes the application services over gin. Handlers parse and
// validate request bodies into DTOs, invoke one service method, and map
// application errors to HTTP status codes.
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/dvillela/ecommerce-api/internal/apperrors"
	"github.com/dvillela/ecommerce-api/internal/metrics"
	"github.com/dvillela/ecommerce-api/internal/patterns"
	"github.com/dvillela/ecommerce-api/internal/service"
)

// Handler handles HTTP requests for the application.
type Handler struct {
	products *service.ProductService
	orders   *service.OrderService
	circuit  *patterns.CircuitBreakerWrapper
	bulkhead *patterns.Bulkhead
}

// NewHandler creates a Handler over the application services and the
// database guard exposed for diagnostics.
func NewHandler(products *service.ProductService, orders *service.OrderService, circuit *patterns.CircuitBreakerWrapper, bulkhead *patterns.Bulkhead) *Handler {
	return &Handler{products: products, orders: orders, circuit: circuit, bulkhead: bulkhead}
}

// Router builds the gin engine with all routes and middleware registered.
func (h *Handler) Router(serviceName string) *gin.Engine {
	router := gin.Default()
	router.Use(metrics.PrometheusMiddleware(serviceName))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/circuit-status", h.getCircuitStatus)

	router.POST("/products", h.createProduct)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.PATCH("/products/:id", h.updateProduct)
	router.DELETE("/products/:id", h.deleteProduct)

	router.POST("/orders/create", h.createOrder)
	router.POST("/orders", h.createOrder)
	router.GET("/orders", h.listOrders)
	router.DELETE("/orders/:id", h.deleteOrder)

	return router
}

func (h *Handler) createProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validationf("invalid request: %s", err.Error()))
		return
	}

	product, err := h.products.Create(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *Handler) listProducts(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		respondError(c, apperrors.Validationf("skip must be an integer"))
		return
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		respondError(c, apperrors.Validationf("limit must be an integer"))
		return
	}

	products, err := h.products.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validationf("invalid request: %s", err.Error()))
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.products.DeleteByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "product deleted"})
}

func (h *Handler) createOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validationf("invalid request: %s", err.Error()))
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Create(c.Request.Context(), items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.Validationf("order id must be an integer"))
		return
	}

	if err := h.orders.DeleteByID(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "order deleted"})
}

// getCircuitStatus returns the state of the database guard.
func (h *Handler) getCircuitStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"database_circuit": gin.H{
			"name":  "Database",
			"state": h.circuit.GetState(),
			"value": h.circuit.GetStateValue(),
		},
		"database_bulkhead": gin.H{
			"name": h.bulkhead.GetName(),
		},
	})
}

// respondError maps an application error to its HTTP status and error body.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed: ", err)
	}
	c.JSON(appErr.Status, ErrorResponse{Code: appErr.Code, Message: appErr.Message})
}

func productID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validationf("product id must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.DefaultQuery(name, strconv.Itoa(fallback))
	return strconv.Atoi(raw)
}
