package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-backend/internal/tickets/domain"
	"helpdesk-backend/pkg/graph"
)

func validTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{active: &domain.GraphToken{
		ID:        1,
		Token:     "valid-token",
		ExpiresAt: time.Now().Add(time.Hour),
		Active:    true,
	}}
}

func newSyncForTest(repo *fakeTicketRepo, logs *fakeSyncLogRepo, provider *fakeProvider, tokens *fakeTokenRepo, issuer *fakeIssuer) SyncUsecase {
	manager := NewTokenManager(tokens, issuer)
	spam := newTestSpamFilter()
	resolver := NewThreadResolver(repo, 7)
	return NewSyncUsecase(manager, provider, spam, resolver, repo, logs, "inbox")
}

func TestSyncMailboxInsertsNewTickets(t *testing.T) {
	repo := &fakeTicketRepo{}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{
		folderID: "folder-1",
		messages: []domain.MailMessage{
			{MessageID: "m-1", ConversationID: "conv-1", Subject: "Printer broken", FromEmail: "maria@example.com", BodyPreview: "it jams"},
			{MessageID: "m-2", ConversationID: "conv-2", Subject: "Invoice overdue", FromEmail: "pedro@example.com", BodyPreview: "help"},
		},
	}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, domain.SyncTypeFull, result.SyncType)
	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, domain.SyncStats{New: 2}, result.Stats)
	require.Len(t, repo.tickets, 2)
	assert.Equal(t, Fingerprint("Printer broken", "it jams", "maria@example.com"), repo.tickets[0].ContentHash)

	call, ok := logs.finalized["full-log"]
	require.True(t, ok, "sync log must be finalized")
	assert.Equal(t, domain.SyncStatusSuccess, call.status)
	assert.Equal(t, 2, call.stats.New)
}

func TestSyncMailboxSecondRunIsIdempotent(t *testing.T) {
	repo := &fakeTicketRepo{}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{
		folderID: "folder-1",
		messages: []domain.MailMessage{
			{MessageID: "m-1", ConversationID: "conv-1", Subject: "Printer broken", FromEmail: "maria@example.com", BodyPreview: "it jams"},
			{MessageID: "m-2", ConversationID: "conv-2", Subject: "Invoice overdue", FromEmail: "pedro@example.com", BodyPreview: "help"},
		},
	}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	_, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, domain.SyncTypeIncremental, result.SyncType)
	assert.Equal(t, domain.SyncStats{Unchanged: 2}, result.Stats)
	assert.Len(t, repo.tickets, 2)
}

func TestSyncMailboxUpdatesEditedMessage(t *testing.T) {
	repo := &fakeTicketRepo{}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{
		folderID: "folder-1",
		messages: []domain.MailMessage{
			{MessageID: "m-1", ConversationID: "conv-1", Subject: "Printer broken", FromEmail: "maria@example.com", BodyPreview: "it jams"},
		},
	}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	_, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	provider.messages[0].BodyPreview = "it jams and leaks toner"
	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, domain.SyncStats{Updated: 1}, result.Stats)
	assert.Equal(t,
		Fingerprint("Printer broken", "it jams and leaks toner", "maria@example.com"),
		repo.tickets[0].ContentHash)
}

func TestSyncMailboxAppendsThreadReply(t *testing.T) {
	repo := &fakeTicketRepo{
		tickets: []*domain.Ticket{{
			ID:             1,
			MessageID:      "m-1",
			ConversationID: "conv-1",
			Subject:        "Printer broken",
			FromEmail:      "maria@example.com",
			ContentHash:    Fingerprint("Printer broken", "it jams", "maria@example.com"),
			Status:         domain.StatusOpen,
			CreatedAt:      time.Now(),
		}},
		nextID: 1,
	}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{
		folderID: "folder-1",
		messages: []domain.MailMessage{
			{MessageID: "m-2", ConversationID: "conv-1", Subject: "RE: Printer broken", FromEmail: "maria@example.com", BodyContent: "still broken"},
		},
	}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, domain.SyncStats{RepliesProcessed: 1}, result.Stats)
	require.Len(t, repo.replies, 1)
	assert.Equal(t, uint(1), repo.replies[0].TicketID)
	assert.Equal(t, domain.ReplyDirectionInbound, repo.replies[0].Direction)
	assert.Equal(t, []uint{1}, repo.touched)
	// No second ticket row for the reply.
	assert.Len(t, repo.tickets, 1)
}

func TestSyncMailboxDropsSpam(t *testing.T) {
	repo := &fakeTicketRepo{}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{
		folderID: "folder-1",
		messages: []domain.MailMessage{
			{MessageID: "m-1", Subject: "[!!Spam] You won", FromEmail: "maria@example.com"},
			{MessageID: "m-2", Subject: "Real problem", FromEmail: "noreply@vendor.example.com"},
			{MessageID: "m-3", Subject: "Real problem", FromEmail: "pedro@example.com"},
		},
	}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, domain.SyncStats{New: 1}, result.Stats)
	require.Len(t, repo.tickets, 1)
	assert.Equal(t, "m-3", repo.tickets[0].MessageID)
}

func TestSyncMailboxSkipsMalformedMessage(t *testing.T) {
	repo := &fakeTicketRepo{}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{
		folderID: "folder-1",
		messages: []domain.MailMessage{
			{MessageID: "", Subject: "No id", FromEmail: "ghost@example.com"},
			{MessageID: "m-2", Subject: "Valid", FromEmail: "pedro@example.com"},
		},
	}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	// The broken message is skipped, the batch continues.
	assert.Equal(t, domain.SyncStats{New: 1}, result.Stats)
	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
}

func TestSyncMailboxAuthFailureServesLastKnownData(t *testing.T) {
	repo := &fakeTicketRepo{
		tickets: []*domain.Ticket{{ID: 1, MessageID: "m-1", Subject: "Stored", Status: domain.StatusOpen}},
		nextID:  1,
	}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{folderID: "folder-1"}
	issuer := &fakeIssuer{err: &graph.AuthError{StatusCode: 401, Body: "invalid_client"}}
	uc := newSyncForTest(repo, logs, provider, &fakeTokenRepo{}, issuer)

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err, "auth failure must degrade, not propagate")

	assert.Equal(t, domain.SyncStatusFailed, result.Status)
	assert.Equal(t, domain.SyncStats{}, result.Stats)
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "Stored", result.Tickets[0].Subject)

	call, ok := logs.finalized["incremental-log"]
	require.True(t, ok, "failed run still finalizes its log")
	assert.Equal(t, domain.SyncStatusFailed, call.status)
	assert.Contains(t, call.errorMessage, "authentication failed")
}

func TestSyncMailboxFetchFailureFailsRun(t *testing.T) {
	repo := &fakeTicketRepo{}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{folderID: "folder-1", listErr: errors.New("connection reset")}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, domain.SyncStatusFailed, result.Status)
	call := logs.finalized["full-log"]
	assert.Contains(t, call.errorMessage, "mailbox fetch failed")
}

func TestSyncMailboxFolderFailureYieldsZeroDelta(t *testing.T) {
	repo := &fakeTicketRepo{}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{folderErr: errors.New("folder not found")}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	result, err := uc.SyncMailbox(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, domain.SyncStats{}, result.Stats)
}

func TestSyncMailboxForceRunsFullSync(t *testing.T) {
	repo := &fakeTicketRepo{
		tickets: []*domain.Ticket{{ID: 1, MessageID: "m-1", Status: domain.StatusOpen}},
		nextID:  1,
	}
	logs := &fakeSyncLogRepo{}
	provider := &fakeProvider{folderID: "folder-1"}
	uc := newSyncForTest(repo, logs, provider, validTokenRepo(), &fakeIssuer{})

	result, err := uc.SyncMailbox(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncTypeFull, result.SyncType)
}
