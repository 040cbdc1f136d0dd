package routes

import (
	"net/http"

	"garage_admin/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing      = "/ping"
	PathAuth      = "/auth"
	PathCustomers = "/customers"
	PathVehicles  = "/vehicles"
	PathServices  = "/services"
	PathJobItems  = "/jobitems"
	PathJobCards  = "/jobcards"
	PathInvoices  = "/invoices"
	PathPayments  = "/payments"
)

// crudRoutes is the handler set of one plain resource.
type crudRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type garageHandlers struct {
	auth      *handlers.AuthHandler
	customers crudRoutes
	vehicles  crudRoutes
	services  crudRoutes
	jobItems  crudRoutes
	jobCards  crudRoutes
	payments  crudRoutes
	invoices  *handlers.InvoiceHandler
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/login", h.Login)
		auth.GET("/me", h.Me)
	}
}

func addCrudRoutes(rg *gin.RouterGroup, path string, h crudRoutes) {
	g := rg.Group(path)
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

// addGarageRoutes mounts the public and session-protected routes on rg.
func addGarageRoutes(rg *gin.RouterGroup, h garageHandlers) {
	addPingRoutes(rg)
	addAuthRoutes(rg, h.auth)

	protected := rg.Group("", h.auth.RequireSession())
	addCrudRoutes(protected, PathCustomers, h.customers)
	addCrudRoutes(protected, PathVehicles, h.vehicles)
	addCrudRoutes(protected, PathServices, h.services)
	addCrudRoutes(protected, PathJobItems, h.jobItems)
	addCrudRoutes(protected, PathJobCards, h.jobCards)
	addCrudRoutes(protected, PathPayments, h.payments)
	addCrudRoutes(protected, PathInvoices, h.invoices)
	protected.POST(PathInvoices+"/:id/settle", h.invoices.Settle)
}
