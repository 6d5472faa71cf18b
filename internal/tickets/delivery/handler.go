package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk-backend/internal/tickets/dto"
	"helpdesk-backend/internal/tickets/usecase"
	"helpdesk-backend/pkg/graph"
)

type TicketHandler struct {
	syncUsecase   usecase.SyncUsecase
	ticketUsecase usecase.TicketUsecase
}

func NewTicketHandler(syncUc usecase.SyncUsecase, ticketUc usecase.TicketUsecase) *TicketHandler {
	return &TicketHandler{
		syncUsecase:   syncUc,
		ticketUsecase: ticketUc,
	}
}

func (h *TicketHandler) Sync(c *gin.Context) {
	force := c.Query("force") == "true"
	result, err := h.syncUsecase.SyncMailbox(c.Request.Context(), force)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(result))
}

func (h *TicketHandler) LastSync(c *gin.Context) {
	entry, err := h.syncUsecase.LastSync()
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, dto.OKMessage("no successful sync yet", nil))
		return
	}
	c.JSON(http.StatusOK, dto.OK(entry))
}

func (h *TicketHandler) ListInbox(c *gin.Context) {
	limit, offset := pagination(c)
	var status *int
	if s := c.Query("status"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("status must be an integer"))
			return
		}
		status = &parsed
	}

	tickets, err := h.ticketUsecase.ListInbox(limit, offset, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(tickets))
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	ticket, err := h.ticketUsecase.GetTicket(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, dto.Error("ticket not found"))
		return
	}
	c.JSON(http.StatusOK, dto.OK(ticket))
}

func (h *TicketHandler) Discard(c *gin.Context) {
	messageID := c.Param("messageId")
	ticket, err := h.ticketUsecase.Discard(messageID)
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, dto.Error("message not found"))
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("message discarded", ticket))
}

func (h *TicketHandler) Convert(c *gin.Context) {
	messageID := c.Param("messageId")
	ticket, err := h.ticketUsecase.ConvertToTicket(messageID)
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, dto.Error("message not found"))
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("message converted to ticket", ticket))
}

func (h *TicketHandler) UpdateField(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	var req dto.UpdateTicketFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	ticket, err := h.ticketUsecase.UpdateTicketField(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, dto.Error("ticket not found"))
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("ticket updated", ticket))
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	limit, offset := pagination(c)
	view := c.DefaultQuery("view", "all")

	var technicianID *int
	if t := c.Query("technician_id"); t != "" {
		parsed, err := strconv.Atoi(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("technician_id must be an integer"))
			return
		}
		technicianID = &parsed
	}

	tickets, err := h.ticketUsecase.ListTickets(view, limit, offset, technicianID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(tickets))
}

func (h *TicketHandler) Search(c *gin.Context) {
	var req dto.TicketFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}
	tickets, err := h.ticketUsecase.Filter(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(tickets))
}

func (h *TicketHandler) Lookups(c *gin.Context) {
	lookups, err := h.ticketUsecase.Lookups()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(lookups))
}

func (h *TicketHandler) Reply(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}
	if err := h.ticketUsecase.Reply(c.Request.Context(), id, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("reply sent", nil))
}

func (h *TicketHandler) SendConfirmation(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	if err := h.ticketUsecase.SendConfirmation(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("confirmation sent", nil))
}

func (h *TicketHandler) Thread(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	messages, err := h.ticketUsecase.ConversationThread(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(messages))
}

func (h *TicketHandler) Attachments(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	attachments, err := h.ticketUsecase.Attachments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(attachments))
}

func ticketID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func respondError(c *gin.Context, err error) {
	var validation *dto.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, dto.Error(validation.Error()))
		return
	}
	var authErr *graph.AuthError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusBadGateway, dto.Error(authErr.Error()))
		return
	}
	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, dto.Error(apiErr.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.Error(err.Error()))
}
