package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/internal/service"
)

// Deps are the collaborators of the router.
type Deps struct {
	Customers *service.CustomerService
	Menu      *service.MenuService
	Orders    *service.OrderService
	DB        Pinger
	Logger    *logger.Logger

	// Production hides 5xx messages and enables StaticDir.
	Production bool
	// StaticDir holds the prebuilt browser bundle.
	StaticDir   string
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware and every route. It
// fails when CORSOrigins holds an origin the CORS middleware rejects.
func NewRouter(d Deps) (*gin.Engine, error) {
	useJSONFieldNames()

	var corsHandler gin.HandlerFunc
	if len(d.CORSOrigins) > 0 {
		cc := corsConfig(d.CORSOrigins)
		if err := cc.Validate(); err != nil {
			return nil, fmt.Errorf("cors origins %q: %w", d.CORSOrigins, err)
		}
		corsHandler = cors.New(cc)
	}

	log := d.Logger.WithComponent("api")
	r := responder{logger: log, production: d.Production}

	engine := gin.New()
	engine.HandleMethodNotAllowed = false
	engine.Use(log.Middleware())
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered", "request_id", logger.RequestID(c), "panic", recovered)
		detail := internalErrorMessage
		if !d.Production {
			detail = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Something went wrong!",
			"error":   detail,
		})
	}))
	if corsHandler != nil {
		engine.Use(corsHandler)
	}

	customers := NewCustomerHandler(d.Customers, r)
	menu := NewMenuHandler(d.Menu, r)
	orders := NewOrderHandler(d.Orders, r)

	api := engine.Group("/api")
	{
		api.GET("/health", NewHealthHandler(d.DB, r).Check())
		api.POST("/auth/login", NewAuthHandler(r).Login())

		api.GET("/customers", customers.List())
		api.POST("/customers", customers.Create())
		api.GET("/customers/search/:term", customers.Search())
		api.GET("/customers/:id", customers.Get())
		api.PUT("/customers/:id", customers.Update())
		api.DELETE("/customers/:id", customers.Delete())

		api.GET("/menu", menu.List())
		api.POST("/menu", menu.Create())
		api.GET("/menu/available", menu.Available())
		api.GET("/menu/category/:category", menu.ByCategory())
		api.GET("/menu/:id", menu.Get())
		api.PUT("/menu/:id", menu.Update())
		api.DELETE("/menu/:id", menu.Delete())
		api.PATCH("/menu/:id/toggle-availability", menu.ToggleAvailability())

		api.GET("/orders", orders.List())
		api.POST("/orders", orders.Create())
		api.GET("/orders/status/:status", orders.ByStatus())
		api.GET("/orders/customer/:customerId", orders.ByCustomer())
		api.GET("/orders/:id", orders.Get())
		api.PATCH("/orders/:id/status", orders.UpdateStatus())
		api.DELETE("/orders/:id", orders.Delete())
	}

	staticDir := ""
	if d.Production {
		staticDir = d.StaticDir
	}
	engine.NoRoute(notFound(staticDir))
	return engine, nil
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
}
