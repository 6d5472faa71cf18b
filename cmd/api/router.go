package api

import (
	"net/http"

	ticketDelivery "helpdesk-backend/internal/tickets/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, ticketHandler *ticketDelivery.TicketHandler) {
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Mailbox synchronization
		sync := api.Group("/sync")
		{
			sync.POST("", ticketHandler.Sync)
			sync.GET("/last", ticketHandler.LastSync)
		}

		// Inbox triage
		inbox := api.Group("/inbox")
		{
			inbox.GET("", ticketHandler.ListInbox)
			inbox.POST("/:messageId/discard", ticketHandler.Discard)
			inbox.POST("/:messageId/convert", ticketHandler.Convert)
		}

		// Ticket management
		tickets := api.Group("/tickets")
		{
			tickets.GET("", ticketHandler.ListTickets)
			tickets.GET("/search", ticketHandler.Search)
			tickets.GET("/:id", ticketHandler.GetTicket)
			tickets.PATCH("/:id", ticketHandler.UpdateField)
			tickets.POST("/:id/reply", ticketHandler.Reply)
			tickets.POST("/:id/confirmation", ticketHandler.SendConfirmation)
			tickets.GET("/:id/thread", ticketHandler.Thread)
			tickets.GET("/:id/attachments", ticketHandler.Attachments)
		}

		// Dropdown lookups
		api.GET("/lookups", ticketHandler.Lookups)
	}
}
