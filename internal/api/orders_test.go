package api

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

func TestOrderEndpoints(t *testing.T) {
	a := setupAPI(t)
	c := a.createCustomer(t, gin.H{"name": "Alice", "phone": "9990001111", "address": "A St", "plan": "Weekly"})
	dal := a.createMenuItem(t, gin.H{"name": "Dal Rice", "price": 80, "category": "Lunch"})

	var placed types.Order
	t.Run("dal rice scenario", func(t *testing.T) {
		w, env := a.do(t, http.MethodPost, "/api/orders", gin.H{
			"customer_id": c.ID,
			"items":       []gin.H{{"menu_item_id": dal.ID, "quantity": 3}},
		})
		require.Equal(t, http.StatusCreated, w.Code, env.Error)
		assert.Equal(t, "Order created successfully", env.Message)
		env.decode(t, &placed)
		assert.InDelta(t, 240.0, placed.TotalAmount, 0.001)

		w, env = a.do(t, http.MethodGet, "/api/orders/"+strconv.FormatInt(placed.ID, 10), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got types.Order
		env.decode(t, &got)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Quantity)
		assert.InDelta(t, 80.0, got.Items[0].Price, 0.001)
		assert.InDelta(t, 240.0, got.Items[0].TotalPrice, 0.001)
		assert.Equal(t, "A St", got.DeliveryAddress)
		assert.Equal(t, "9990001111", got.CustomerPhone)
	})

	t.Run("payload validation", func(t *testing.T) {
		tests := []struct {
			name    string
			body    any
			wantMsg string
		}{
			{"missing customer", gin.H{"items": []gin.H{{"menu_item_id": dal.ID, "quantity": 1}}}, "customer_id is required"},
			{"empty items", gin.H{"customer_id": c.ID, "items": []gin.H{}}, "items must contain at least 1 entry"},
			{"zero quantity", gin.H{"customer_id": c.ID, "items": []gin.H{{"menu_item_id": dal.ID, "quantity": 0}}}, "Invalid item at index 0: menu_item_id and quantity are required"},
			{"negative quantity", gin.H{"customer_id": c.ID, "items": []gin.H{{"menu_item_id": dal.ID, "quantity": 1}, {"menu_item_id": dal.ID, "quantity": -1}}}, "Invalid item at index 1"},
			{"missing menu item id", gin.H{"customer_id": c.ID, "items": []gin.H{{"quantity": 2}}}, "Invalid item at index 0"},
			{"fractional quantity", `{"customer_id": 1, "items": [{"menu_item_id": 1, "quantity": 1.5}]}`, "items.quantity must be a whole number"},
			{"empty body", "", "Request body is required"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w, env := a.do(t, http.MethodPost, "/api/orders", tt.body)
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, env.Error, tt.wantMsg)
			})
		}
	})

	t.Run("lookups fail with not found", func(t *testing.T) {
		w, env := a.do(t, http.MethodPost, "/api/orders", gin.H{
			"customer_id": c.ID,
			"items":       []gin.H{{"menu_item_id": 9999, "quantity": 1}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Menu item with ID 9999 not found", env.Error)

		w, env = a.do(t, http.MethodPost, "/api/orders", gin.H{
			"customer_id": 9999,
			"items":       []gin.H{{"menu_item_id": dal.ID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Customer not found", env.Error)

		w, env = a.do(t, http.MethodPost, "/api/orders", gin.H{
			"customer_id": 9999,
			"items":       []gin.H{{"menu_item_id": dal.ID, "quantity": 0}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code, "unknown customer is reported before bad lines")
		assert.Equal(t, "Customer not found", env.Error)
	})

	t.Run("unavailable item is rejected without writes", func(t *testing.T) {
		off := a.createMenuItem(t, gin.H{"name": "Fish Fry", "price": 150, "category": "Lunch", "available": false})
		_, before := a.do(t, http.MethodGet, "/api/orders", nil)

		w, env := a.do(t, http.MethodPost, "/api/orders", gin.H{
			"customer_id": c.ID,
			"items":       []gin.H{{"menu_item_id": dal.ID, "quantity": 1}, {"menu_item_id": off.ID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, `Menu item "Fish Fry" is not available`, env.Error)

		_, after := a.do(t, http.MethodGet, "/api/orders", nil)
		assert.Equal(t, *before.Count, *after.Count)
	})

	t.Run("status update", func(t *testing.T) {
		path := "/api/orders/" + strconv.FormatInt(placed.ID, 10) + "/status"
		w, env := a.do(t, http.MethodPatch, path, gin.H{"status": "Out for Delivery"})
		require.Equal(t, http.StatusOK, w.Code, env.Error)
		assert.Equal(t, "Order status updated successfully", env.Message)

		w, env = a.do(t, http.MethodPatch, path, gin.H{"status": "Teleported"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Error, "Status must be one of:")

		w, env = a.do(t, http.MethodPatch, path, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "status is required", env.Error)

		w, env = a.do(t, http.MethodGet, "/api/orders/status/"+url.PathEscape("Out for Delivery"), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []types.Order
		env.decode(t, &list)
		ids := make([]int64, 0, len(list))
		for _, o := range list {
			ids = append(ids, o.ID)
		}
		assert.Contains(t, ids, placed.ID)

		w, env = a.do(t, http.MethodGet, "/api/orders?status=Delivered", nil)
		require.Equal(t, http.StatusOK, w.Code)
		env.decode(t, &list)
		for _, o := range list {
			assert.Equal(t, types.StatusDelivered, o.Status)
		}

		w, _ = a.do(t, http.MethodGet, "/api/orders/status/Lost", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("by customer and delete", func(t *testing.T) {
		w, env := a.do(t, http.MethodGet, "/api/orders/customer/"+strconv.FormatInt(c.ID, 10), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []types.Order
		env.decode(t, &list)
		require.Len(t, list, 1)

		path := "/api/orders/" + strconv.FormatInt(placed.ID, 10)
		w, env = a.do(t, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Order deleted successfully", env.Message)

		w, env = a.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Order not found", env.Error)
	})
}
