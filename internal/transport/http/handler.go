package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderService описывает операции заказов, доступные по HTTP.
type OrderService interface {
	CreateOrder(ctx context.Context, customerID string, requested []domain.RequestedProduct) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error)
}

// Handler обслуживает HTTP API заказов.
type Handler struct {
	service OrderService
	logger  *log.Entry
}

// NewHandler создаёт HTTP handler поверх сервиса заказов.
func NewHandler(service OrderService, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	return &Handler{service: service, logger: logger}
}

type orderProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int32  `json:"quantity"`
}

// createOrderRequest различает отсутствующий список товаров и пустой:
// nil-указатель означает, что поле products не было передано вовсе.
type createOrderRequest struct {
	CustomerID string                 `json:"customer_id" binding:"required"`
	Products   *[]orderProductRequest `json:"products"`
}

type orderItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Quantity   int32  `json:"quantity"`
	PriceMinor int64  `json:"price_minor"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	AmountMinor int64               `json:"amount_minor"`
	Items       []orderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceMinor: item.PriceMinor,
		})
	}
	return orderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		AmountMinor: order.AmountMinor,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
}

// CreateOrder обрабатывает POST /api/v1/orders.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var requested []domain.RequestedProduct
	if req.Products != nil {
		requested = make([]domain.RequestedProduct, 0, len(*req.Products))
		for _, product := range *req.Products {
			requested = append(requested, domain.RequestedProduct{
				ProductID: product.ProductID,
				Quantity:  product.Quantity,
			})
		}
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req.CustomerID, requested)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// GetOrder обрабатывает GET /api/v1/orders/:id.
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// ListCustomerOrders обрабатывает GET /api/v1/customers/:id/orders.
func (h *Handler) ListCustomerOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		h.writeError(c, err)
		return
	}

	responses := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, gin.H{"orders": responses})
}

// writeError переводит доменные ошибки в HTTP-статусы.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductsRequired),
		errors.Is(err, domain.ErrQuantityInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsInsufficientStock(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
