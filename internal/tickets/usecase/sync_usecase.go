package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"helpdesk-backend/internal/tickets/domain"
	"helpdesk-backend/internal/tickets/dto"
	"helpdesk-backend/internal/tickets/repository"
)

// SyncUsecase drives one mailbox synchronization run end to end.
type SyncUsecase interface {
	// SyncMailbox pulls the mailbox, reconciles it against the store and
	// returns the run's stats together with the current stored listing.
	// Catastrophic failures are recorded in the sync log and degrade to
	// serving the last known stored data instead of propagating.
	SyncMailbox(ctx context.Context, force bool) (*dto.SyncResult, error)
	// LastSync returns the most recent successful run, or nil.
	LastSync() (*domain.SyncLog, error)
}

type syncUsecase struct {
	tokenManager *TokenManager
	provider     domain.MailProvider
	spam         *SpamFilter
	resolver     *ThreadResolver
	tickets      repository.TicketRepository
	syncLogs     repository.SyncLogRepository
	targetFolder string
}

func NewSyncUsecase(
	tokenManager *TokenManager,
	provider domain.MailProvider,
	spam *SpamFilter,
	resolver *ThreadResolver,
	tickets repository.TicketRepository,
	syncLogs repository.SyncLogRepository,
	targetFolder string,
) SyncUsecase {
	return &syncUsecase{
		tokenManager: tokenManager,
		provider:     provider,
		spam:         spam,
		resolver:     resolver,
		tickets:      tickets,
		syncLogs:     syncLogs,
		targetFolder: targetFolder,
	}
}

func (u *syncUsecase) SyncMailbox(ctx context.Context, force bool) (*dto.SyncResult, error) {
	known, err := u.tickets.GetKnownMessageIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot known messages: %w", err)
	}

	syncType := domain.SyncTypeIncremental
	if force || len(known) == 0 {
		syncType = domain.SyncTypeFull
	}

	logID, err := u.syncLogs.Create(syncType)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync log: %w", err)
	}

	stats, runErr := u.run(ctx, known)

	status := domain.SyncStatusSuccess
	errorMessage := ""
	if runErr != nil {
		status = domain.SyncStatusFailed
		errorMessage = runErr.Error()
		log.Printf("[Sync] run %s failed: %v", logID, runErr)
	}
	if err := u.syncLogs.Finalize(logID, stats, status, errorMessage); err != nil {
		log.Printf("[Sync] failed to finalize log %s: %v", logID, err)
	}

	// Success or not, the caller gets the stored listing. A failed run
	// serves the last known data instead of an error.
	tickets, err := u.tickets.ListInbox(100, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored listing: %w", err)
	}
	return &dto.SyncResult{
		SyncLogID: logID,
		SyncType:  syncType,
		Status:    status,
		Stats:     stats,
		Tickets:   tickets,
	}, nil
}

// run executes the fetch-and-reconcile loop. It returns an error only for
// catastrophic conditions: credential issuance failure or a fetch that
// yielded nothing at all.
func (u *syncUsecase) run(ctx context.Context, known map[string]struct{}) (domain.SyncStats, error) {
	var stats domain.SyncStats

	token, err := u.tokenManager.EnsureValidToken(ctx)
	if err != nil {
		return stats, fmt.Errorf("authentication failed: %w", err)
	}

	folderID, err := u.provider.GetFolderID(ctx, token, u.targetFolder)
	if err != nil {
		log.Printf("[Sync] folder %q not resolved: %v", u.targetFolder, err)
		return stats, nil
	}

	messages, err := u.provider.ListMessages(ctx, token, folderID)
	if err != nil {
		return stats, fmt.Errorf("mailbox fetch failed: %w", err)
	}

	for _, msg := range messages {
		if err := u.processMessage(msg, known, &stats); err != nil {
			log.Printf("[Sync] skipping message %s: %v", msg.MessageID, err)
		}
	}
	return stats, nil
}

func (u *syncUsecase) processMessage(msg domain.MailMessage, known map[string]struct{}, stats *domain.SyncStats) error {
	if msg.MessageID == "" {
		return fmt.Errorf("message without id")
	}
	if u.spam.IsSpam(msg) {
		return nil
	}

	if _, seen := known[msg.MessageID]; seen {
		return u.reconcileKnown(msg, stats)
	}

	parent, err := u.resolver.Resolve(msg)
	if err != nil {
		return err
	}
	if parent != nil {
		reply := &domain.TicketReply{
			ID:           uuid.New().String(),
			TicketID:     parent.ID,
			MessageID:    msg.MessageID,
			FromEmail:    msg.FromEmail,
			FromName:     msg.FromName,
			Subject:      msg.Subject,
			BodyContent:  msg.BodyContent,
			ReceivedDate: msg.ReceivedDate,
			Direction:    domain.ReplyDirectionInbound,
			CreatedAt:    time.Now(),
		}
		if err := u.tickets.AppendReply(reply); err != nil {
			return err
		}
		if err := u.tickets.TouchLastActivity(parent.ID); err != nil {
			return err
		}
		known[msg.MessageID] = struct{}{}
		stats.RepliesProcessed++
		return nil
	}

	now := time.Now()
	ticket := &domain.Ticket{
		MessageID:        msg.MessageID,
		ConversationID:   msg.ConversationID,
		Subject:          msg.Subject,
		FromEmail:        msg.FromEmail,
		FromName:         msg.FromName,
		ReceivedDate:     msg.ReceivedDate,
		BodyPreview:      msg.BodyPreview,
		BodyContent:      msg.BodyContent,
		ContentHash:      Fingerprint(msg.Subject, msg.BodyPreview, msg.FromEmail),
		Status:           domain.StatusOpen,
		HasAttachments:   msg.HasAttachments,
		AttachmentsCount: msg.AttachmentsCount,
		Active:           1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.tickets.Insert(ticket); err != nil {
		return err
	}
	known[msg.MessageID] = struct{}{}
	stats.New++
	return nil
}

func (u *syncUsecase) reconcileKnown(msg domain.MailMessage, stats *domain.SyncStats) error {
	existing, err := u.tickets.GetByMessageID(msg.MessageID)
	if err != nil {
		return err
	}
	if existing == nil {
		// Already recorded as reply history; nothing to reconcile.
		stats.Unchanged++
		return nil
	}

	hash := Fingerprint(msg.Subject, msg.BodyPreview, msg.FromEmail)
	if existing.ContentHash == hash {
		stats.Unchanged++
		return nil
	}

	_, err = u.tickets.UpdateByMessageID(msg.MessageID, map[string]interface{}{
		"subject":           msg.Subject,
		"from_email":        msg.FromEmail,
		"from_name":         msg.FromName,
		"body_preview":      msg.BodyPreview,
		"body_content":      msg.BodyContent,
		"content_hash":      hash,
		"has_attachments":   msg.HasAttachments,
		"attachments_count": msg.AttachmentsCount,
		"updated_at":        time.Now(),
	})
	if err != nil {
		return err
	}
	stats.Updated++
	return nil
}

func (u *syncUsecase) LastSync() (*domain.SyncLog, error) {
	return u.syncLogs.LastSuccessful()
}
