package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/wb_shop/internal/ports"
	"github.com/Gunvolt24/wb_shop/pkg/httpx"
)

// Handler — HTTP-обработчики поверх сервисного слоя.
type Handler struct {
	products ports.ProductCatalog
	orders   ports.OrderManager
	users    ports.UserAuth
	log      ports.Logger
}

// NewHandler — DI-конструктор.
func NewHandler(products ports.ProductCatalog, orders ports.OrderManager, users ports.UserAuth, log ports.Logger) *Handler {
	return &Handler{products: products, orders: orders, users: users, log: log}
}

// NewRouter — сборка маршрутов.
//
// Публичные: /ping, /metrics, /auth/register, /auth/login.
// Остальное — за Bearer-токеном сессии (authRequired).
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}

	api := r.Group("/")
	api.Use(h.authRequired())
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.POST("/products", h.createProduct)
		api.PUT("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.POST("/orders", h.placeOrder)
		api.GET("/orders/history", h.orderHistory)
		api.POST("/orders/import", h.importOrders)
	}

	return r
}
