// Package api assembles the gin engine: middleware stack, route
// groups, and the handler wiring.
package api

import (
	"database/sql"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	h "ticketing/internal/http/handlers"
	"ticketing/internal/http/middleware"
	"ticketing/internal/services"
)

// Deps carries everything the router needs.
type Deps struct {
	DB       *sql.DB
	Auth     *services.AuthService
	Users    *services.UserService
	Events   *services.EventService
	Tickets  *services.TicketService
	Seats    *services.SeatService
	Payments *services.PaymentService
	Docs     *services.DocsService
}

// NewRouter builds the engine.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	system := &h.SystemHandler{DB: d.DB}
	auth := &h.AuthHandler{Auth: d.Auth}
	users := &h.UserHandler{Users: d.Users}
	events := &h.EventHandler{Events: d.Events}
	tickets := &h.TicketHandler{Tickets: d.Tickets, Docs: d.Docs}
	seats := &h.SeatHandler{Seats: d.Seats}
	payments := &h.PaymentHandler{Payments: d.Payments}

	requireAuth := middleware.RequireAuth(d.Auth)

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/refresh", auth.Refresh)
		authGroup.POST("/logout", auth.Logout)
		authGroup.GET("/me", requireAuth, auth.Me)

		userGroup := api.Group("/users", requireAuth)
		userGroup.GET("", middleware.RequireAdmin(), users.List)
		userGroup.GET("/:id", users.Get)
		userGroup.PATCH("/:id", users.Update)

		eventGroup := api.Group("/events")
		eventGroup.GET("", events.List)
		eventGroup.GET("/:id", events.Get)
		eventGroup.GET("/:id/seats", seats.Available)
		eventGroup.POST("", requireAuth, events.Create)
		eventGroup.PATCH("/:id", requireAuth, events.Update)
		eventGroup.DELETE("/:id", requireAuth, events.Delete)

		ticketGroup := api.Group("/tickets", requireAuth)
		ticketGroup.GET("", tickets.ListMine)
		ticketGroup.GET("/:id", tickets.Get)
		ticketGroup.GET("/:id/e-ticket", tickets.ETicket)
		ticketGroup.POST("", tickets.Create)

		seatGroup := api.Group("/seats", requireAuth)
		seatGroup.POST("", middleware.RequireAdmin(), seats.Create)
		seatGroup.POST("/:id/reserve", seats.Reserve)

		paymentGroup := api.Group("/payments", requireAuth)
		paymentGroup.POST("", payments.Create)
		paymentGroup.PUT("/:id/status", middleware.RequireAdmin(), payments.UpdateStatus)
	}

	return r
}
