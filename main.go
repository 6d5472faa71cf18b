package main

import (
	"log"

	api "helpdesk-backend/cmd/api"
	"helpdesk-backend/internal/tickets/domain"
	"helpdesk-backend/internal/tickets/repository"
	"helpdesk-backend/internal/tickets/usecase"
	"helpdesk-backend/pkg/config"
	"helpdesk-backend/pkg/database"
	"helpdesk-backend/pkg/graph"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&domain.GraphToken{},
		&domain.Ticket{},
		&domain.TicketReply{},
		&domain.SyncLog{},
		&domain.TicketStatus{},
		&domain.Technician{},
		&domain.Priority{},
		&domain.SupportType{},
		&domain.TicketType{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	retry := repository.NewRetrier(cfg.StoreRetryAttempts, cfg.StoreRetryBackoff)
	tokenRepo := repository.NewTokenRepository(db, retry)
	ticketRepo := repository.NewTicketRepository(db, retry)
	syncLogRepo := repository.NewSyncLogRepository(db, retry)
	lookupRepo := repository.NewLookupRepository(db, retry)

	// Initialize the mail provider and credential issuer
	issuer := graph.NewIssuer(cfg.MicrosoftLoginURL, cfg.MicrosoftTenantID, cfg.MicrosoftClientID, cfg.MicrosoftClientSecret, cfg.MicrosoftScopes)
	provider := graph.NewClient(cfg.GraphBaseURL, cfg.MailboxUser, cfg.SyncPageSize, cfg.SyncMaxPages)

	// Initialize use cases (dependency injection)
	tokenManager := usecase.NewTokenManager(tokenRepo, issuer)
	spamFilter := usecase.NewSpamFilter(cfg.SpamSenderPrefixes, cfg.SpamSubjectMarkers)
	resolver := usecase.NewThreadResolver(ticketRepo, cfg.RecentWindowDays)
	syncUc := usecase.NewSyncUsecase(tokenManager, provider, spamFilter, resolver, ticketRepo, syncLogRepo, cfg.TargetFolder)
	ticketUc := usecase.NewTicketUsecase(ticketRepo, lookupRepo, tokenManager, provider, cfg.MailboxUser)

	// Initialize HTTP handler
	handler := api.NewHandler(syncUc, ticketUc, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
