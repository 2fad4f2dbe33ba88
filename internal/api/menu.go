package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/tiffincrm/internal/service"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// MenuHandler serves /api/menu.
type MenuHandler struct {
	responder
	service *service.MenuService
}

// NewMenuHandler constructs a MenuHandler.
func NewMenuHandler(svc *service.MenuService, r responder) *MenuHandler {
	return &MenuHandler{responder: r, service: svc}
}

// menuPayload is the body of create and update. A missing available keeps
// the stored flag on update.
type menuPayload struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Available *bool   `json:"available"`
}

func (p menuPayload) input() types.MenuItemInput {
	return types.MenuItemInput{Name: p.Name, Price: p.Price, Category: p.Category, Available: p.Available}
}

// List returns the menu, narrowed by the optional ?category= query.
func (h *MenuHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respondList(c, types.MenuFilter{Category: c.Query("category")})
	}
}

// Available returns orderable items.
func (h *MenuHandler) Available() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respondList(c, types.MenuFilter{AvailableOnly: true})
	}
}

// ByCategory returns the items in the :category path parameter.
func (h *MenuHandler) ByCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respondList(c, types.MenuFilter{Category: c.Param("category")})
	}
}

func (h *MenuHandler) respondList(c *gin.Context, filter types.MenuFilter) {
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.service.List(ctx, filter)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	h.list(c, items, len(items))
}

// Get returns one menu item.
func (h *MenuHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		item, err := h.service.Get(ctx, id)
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusOK, item, "")
	}
}

// Create adds a menu item.
func (h *MenuHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p menuPayload
		if !h.bindJSON(c, &p) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		item, err := h.service.Create(ctx, p.input())
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusCreated, item, "Menu item created successfully")
	}
}

// Update replaces a menu item's fields.
func (h *MenuHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		var p menuPayload
		if !h.bindJSON(c, &p) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		item, err := h.service.Update(ctx, id, p.input())
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.ok(c, http.StatusOK, item, "Menu item updated successfully")
	}
}

// Delete removes a menu item.
func (h *MenuHandler) Delete() gin.HandlerFunc {
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
		h.message(c, "Menu item deleted successfully")
	}
}

// ToggleAvailability flips a menu item's available flag.
func (h *MenuHandler) ToggleAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		item, err := h.service.ToggleAvailability(ctx, id)
		if err != nil {
			h.respondErr(c, err)
			return
		}
		state := "disabled"
		if item.Available {
			state = "enabled"
		}
		h.ok(c, http.StatusOK, item, "Menu item "+state+" successfully")
	}
}
