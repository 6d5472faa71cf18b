package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk-backend/internal/tickets/domain"
)

type ticketRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewTicketRepository(db *gorm.DB, retry *Retrier) TicketRepository {
	return &ticketRepository{db: db, retry: retry}
}

// GetKnownMessageIDs covers both ticket rows and reply rows; a message
// already recorded as reply history must not be resolved again.
func (r *ticketRepository) GetKnownMessageIDs() (map[string]struct{}, error) {
	var ticketIDs, replyIDs []string
	err := r.retry.Do("ticket.known_message_ids", func() error {
		if err := r.db.Model(&domain.Ticket{}).Pluck("message_id", &ticketIDs).Error; err != nil {
			return err
		}
		return r.db.Model(&domain.TicketReply{}).Pluck("message_id", &replyIDs).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load known message ids: %w", err)
	}
	known := make(map[string]struct{}, len(ticketIDs)+len(replyIDs))
	for _, id := range ticketIDs {
		known[id] = struct{}{}
	}
	for _, id := range replyIDs {
		known[id] = struct{}{}
	}
	return known, nil
}

func (r *ticketRepository) GetByID(id uint) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.retry.Do("ticket.get_by_id", func() error {
		return r.db.First(&ticket, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket %d: %w", id, err)
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByMessageID(messageID string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.retry.Do("ticket.get_by_message_id", func() error {
		return r.db.Where("message_id = ?", messageID).First(&ticket).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket by message id: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByConversationID(conversationID string) (*domain.Ticket, error) {
	if conversationID == "" {
		return nil, nil
	}
	var ticket domain.Ticket
	err := r.retry.Do("ticket.get_by_conversation_id", func() error {
		return r.db.Where("conversation_id = ?", conversationID).
			Order("created_at DESC").First(&ticket).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket by conversation id: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) FindBySubjectAndSender(subject, fromEmail string, days int) (*domain.Ticket, error) {
	if subject == "" {
		return nil, nil
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	var ticket domain.Ticket
	err := r.retry.Do("ticket.find_by_subject_and_sender", func() error {
		return r.db.Where("subject LIKE ?", "%"+subject+"%").
			Where("from_email = ?", fromEmail).
			Where("status = ?", domain.StatusOpen).
			Where("created_at >= ?", cutoff).
			Order("created_at DESC").First(&ticket).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket by subject and sender: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) FindRecentBySender(fromEmail string, days int) (*domain.Ticket, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var ticket domain.Ticket
	err := r.retry.Do("ticket.find_recent_by_sender", func() error {
		return r.db.Where("from_email = ?", fromEmail).
			Where("created_at >= ?", cutoff).
			Order("created_at DESC").First(&ticket).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recent ticket by sender: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) Insert(ticket *domain.Ticket) error {
	err := r.retry.Do("ticket.insert", func() error {
		return r.db.Create(ticket).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

func (r *ticketRepository) UpdateByMessageID(messageID string, fields map[string]interface{}) (*domain.Ticket, error) {
	var updated int64
	err := r.retry.Do("ticket.update_by_message_id", func() error {
		result := r.db.Model(&domain.Ticket{}).Where("message_id = ?", messageID).Updates(fields)
		updated = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket by message id: %w", err)
	}
	if updated == 0 {
		return nil, nil
	}
	return r.GetByMessageID(messageID)
}

func (r *ticketRepository) AppendReply(reply *domain.TicketReply) error {
	err := r.retry.Do("ticket.append_reply", func() error {
		return r.db.Create(reply).Error
	})
	if err != nil {
		return fmt.Errorf("failed to append reply: %w", err)
	}
	return nil
}

func (r *ticketRepository) TouchLastActivity(ticketID uint) error {
	err := r.retry.Do("ticket.touch_last_activity", func() error {
		return r.db.Model(&domain.Ticket{}).Where("id = ?", ticketID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return fmt.Errorf("failed to touch ticket %d: %w", ticketID, err)
	}
	return nil
}

func (r *ticketRepository) ListInbox(limit, offset int, status *int) ([]*domain.Ticket, error) {
	query := r.db.Where("is_ticket = ?", 0).Where("active = ?", 1)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var tickets []*domain.Ticket
	err := r.retry.Do("ticket.list_inbox", func() error {
		return query.Order("received_date DESC").Limit(limit).Offset(offset).Find(&tickets).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}
	return tickets, nil
}

// viewScope narrows a ticket query to one of the console views.
func viewScope(query *gorm.DB, view string, technicianID *int) *gorm.DB {
	switch view {
	case "unassigned":
		return query.Where("assigned_to IS NULL")
	case "open":
		return query.Where("status = ?", domain.StatusOpen)
	case "in-progress":
		return query.Where("status = ?", domain.StatusInProgress)
	case "completed":
		return query.Where("status = ?", domain.StatusCompleted)
	case "technician":
		if technicianID != nil {
			return query.Where("assigned_to = ?", *technicianID)
		}
	}
	return query
}

func (r *ticketRepository) ListTickets(view string, limit, offset int, technicianID *int) ([]*domain.Ticket, error) {
	query := viewScope(r.db.Where("is_ticket = ?", 1).Where("active = ?", 1), view, technicianID)
	var tickets []*domain.Ticket
	err := r.retry.Do("ticket.list_tickets", func() error {
		return query.Order("received_date DESC").Limit(limit).Offset(offset).Find(&tickets).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

func (r *ticketRepository) Filter(filter TicketFilter) ([]*domain.Ticket, error) {
	query := viewScope(r.db.Where("is_ticket = ?", 1).Where("active = ?", 1), filter.View, filter.AssignedTo)
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("subject LIKE ? OR from_email LIKE ? OR body_preview LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.SupportType != nil {
		query = query.Where("support_type = ?", *filter.SupportType)
	}
	if filter.TicketType != nil {
		query = query.Where("ticket_type = ?", *filter.TicketType)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	var tickets []*domain.Ticket
	err := r.retry.Do("ticket.filter", func() error {
		return query.Order("received_date DESC").Limit(limit).Offset(filter.Offset).Find(&tickets).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter tickets: %w", err)
	}
	return tickets, nil
}
