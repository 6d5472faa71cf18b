package api

import (
	ticketDelivery "helpdesk-backend/internal/tickets/delivery"
	"helpdesk-backend/internal/tickets/usecase"
	"helpdesk-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	config        *config.Config
	ticketHandler *ticketDelivery.TicketHandler
}

func NewHandler(syncUc usecase.SyncUsecase, ticketUc usecase.TicketUsecase, cfg *config.Config) *Handler {
	return &Handler{
		config:        cfg,
		ticketHandler: ticketDelivery.NewTicketHandler(syncUc, ticketUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.ticketHandler)

	return r.Run(addr)
}
