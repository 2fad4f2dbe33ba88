package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/tiffincrm/internal/service"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// OrderHandler serves /api/orders.
type OrderHandler struct {
	responder
	service *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(svc *service.OrderService, r responder) *OrderHandler {
	return &OrderHandler{responder: r, service: svc}
}

type orderLinePayload struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type placeOrderPayload struct {
	CustomerID      int64              `json:"customer_id" binding:"required,gt=0"`
	DeliveryAddress string             `json:"delivery_address"`
	Items           []orderLinePayload `json:"items" binding:"required,min=1"`
}

func (p placeOrderPayload) request() types.PlaceOrderRequest {
	req := types.PlaceOrderRequest{CustomerID: p.CustomerID, DeliveryAddress: p.DeliveryAddress}
	for _, it := range p.Items {
		req.Lines = append(req.Lines, types.OrderLine{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}
	return req
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// List returns orders, narrowed by the optional ?status= query.
func (h *OrderHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var (
			orders []types.Order
			err    error
		)
		if raw := c.Query("status"); raw != "" {
			orders, err = h.service.ByStatus(ctx, raw)
		} else {
			orders, err = h.service.List(ctx, types.OrderFilter{})
		}
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.list(c, orders, len(orders))
	}
}

// ByStatus returns orders in the :status path parameter.
func (h *OrderHandler) ByStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()
		orders, err := h.service.ByStatus(ctx, c.Param("status"))
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.list(c, orders, len(orders))
	}
}

// ByCustomer returns orders placed by the :customerId path parameter.
func (h *OrderHandler) ByCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "customerId")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		orders, err := h.service.ByCustomer(ctx, id)
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.list(c, orders, len(orders))
	}
}

// Get returns one order with its items.
func (h *OrderHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		order, err := h.service.Get(ctx, id)
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusOK, order, "")
	}
}

// Create places an order.
func (h *OrderHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p placeOrderPayload
		if !h.bindJSON(c, &p) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		order, err := h.service.PlaceOrder(ctx, p.request())
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusCreated, order, "Order created successfully")
	}
}

// UpdateStatus sets an order's status.
func (h *OrderHandler) UpdateStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		var p statusPayload
		if !h.bindJSON(c, &p) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		order, err := h.service.UpdateStatus(ctx, id, p.Status)
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusOK, order, "Order status updated successfully")
	}
}

// Delete removes an order and its items.
func (h *OrderHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		if err := h.service.Delete(ctx, id); err != nil {
			h.respondErr(c, err)
			return
		}
		h.message(c, "Order deleted successfully")
	}
}
