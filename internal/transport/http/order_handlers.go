package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/usecase"
	"github.com/Gunvolt24/wb_shop/pkg/httpx"
)

// Лимит размера CSV-файла импорта.
const maxImportSize = 32 << 20 // 32 MiB

// Границы пагинации истории заказов.
const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// placeOrderRequest — тело POST /orders. Пользователь берётся из сессии.
type placeOrderRequest struct {
	Items []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items with positive product_id and quantity are required"})
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	userID := sessionUserID(c)
	if err := h.orders.PlaceOrder(c.Request.Context(), userID, items); err != nil {
		h.log.Errorf(c.Request.Context(), "place order failed user_id=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": len(items)})
}

func (h *Handler) orderHistory(c *gin.Context) {
	userID := sessionUserID(c)

	history, err := h.orders.OrderHistory(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "order history failed user_id=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Пагинация применяется после выборки: история отдаётся из кэша целиком.
	limit, offset := httpx.ParseLimitOffset(c, defaultHistoryLimit, maxHistoryLimit)
	if offset >= len(history) {
		c.JSON(http.StatusOK, []domain.OrderHistory{})
		return
	}
	end := offset + limit
	if end > len(history) {
		end = len(history)
	}
	c.JSON(http.StatusOK, history[offset:end])
}

// importOrders — POST /orders/import, multipart-поле "file" с CSV.
// Построчные отказы — в теле ответа 200; сбой потока — 400.
func (h *Handler) importOrders(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	outcome, err := h.orders.ImportCsv(c.Request.Context(), http.MaxBytesReader(c.Writer, file, maxImportSize))
	if errors.Is(err, usecase.ErrCSVParse) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed csv"})
		return
	}
	if err != nil {
		h.log.Errorf(c.Request.Context(), "csv import failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, outcome)
}
