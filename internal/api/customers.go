package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/tiffincrm/internal/service"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// CustomerHandler serves /api/customers.
type CustomerHandler struct {
	responder
	service *service.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(svc *service.CustomerService, r responder) *CustomerHandler {
	return &CustomerHandler{responder: r, service: svc}
}

// customerPayload is the body of create and update. Required fields are
// checked by the service so blank and missing values share one message.
type customerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Plan    string `json:"plan"`
}

func (p customerPayload) input() types.CustomerInput {
	return types.CustomerInput{Name: p.Name, Phone: p.Phone, Address: p.Address, Plan: types.Plan(p.Plan)}
}

// List returns all customers.
func (h *CustomerHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()
		customers, err := h.service.List(ctx)
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.list(c, customers, len(customers))
	}
}

// Search returns customers matching the :term path parameter.
func (h *CustomerHandler) Search() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()
		customers, err := h.service.Search(ctx, c.Param("term"))
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.list(c, customers, len(customers))
	}
}

// Get returns one customer.
func (h *CustomerHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		customer, err := h.service.Get(ctx, id)
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusOK, customer, "")
	}
}

// Create adds a customer.
func (h *CustomerHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p customerPayload
		if !h.bindJSON(c, &p) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		customer, err := h.service.Create(ctx, p.input())
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusCreated, customer, "Customer created successfully")
	}
}

// Update replaces a customer's fields.
func (h *CustomerHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		var p customerPayload
		if !h.bindJSON(c, &p) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		customer, err := h.service.Update(ctx, id, p.input())
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusOK, customer, "Customer updated successfully")
	}
}

// Delete removes a customer without orders.
func (h *CustomerHandler) Delete() gin.HandlerFunc {
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
		h.message(c, "Customer deleted successfully")
	}
}
