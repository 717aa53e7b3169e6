package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/geevapp/geev/api/routes"
	"github.com/geevapp/geev/internal/config"
	"github.com/geevapp/geev/internal/handlers"
	"github.com/geevapp/geev/internal/repositories"
	mongorepo "github.com/geevapp/geev/internal/repositories/mongodb"
	"github.com/geevapp/geev/internal/services"
	"github.com/geevapp/geev/pkg/ledgerapi"
	"github.com/geevapp/geev/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database()

	// Repositories
	var giveawayRepo repositories.GiveawayRepository = mongorepo.NewGiveawayRepository(db)
	var participantRepo repositories.ParticipantRepository = mongorepo.NewParticipantRepository(db)
	var feeRepo repositories.FeeRepository = mongorepo.NewFeeRepository(db)
	var requestRepo repositories.HelpRequestRepository = mongorepo.NewHelpRequestRepository(db)
	var contributionRepo repositories.ContributionRepository = mongorepo.NewContributionRepository(db)
	var configRepo repositories.ConfigRepository = mongorepo.NewConfigRepository(db)
	var profileRepo repositories.ProfileRepository = mongorepo.NewProfileRepository(db)
	var accountRepo repositories.AccountRepository = mongorepo.NewAccountRepository(db)
	var eventRepo repositories.EventRepository = mongorepo.NewEventRepository(db)

	// Shared primitives
	ledgerClient := ledgerapi.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.APIKey, cfg.Ledger.EscrowAccount, cfg.Ledger.MockLedger)
	gate := services.NewAccessGate(configRepo)
	guard := services.NewReentrancyGuard()
	draw := services.NewCryptoDrawSource()
	eventService := services.NewEventService(eventRepo)

	// Services
	giveawayService := services.NewGiveawayService(giveawayRepo, participantRepo, feeRepo, configRepo, gate, guard, ledgerClient, draw, eventService, cfg.Fees.DefaultBps)
	mutualAidService := services.NewMutualAidService(requestRepo, contributionRepo, gate, guard, ledgerClient, eventService)
	adminService := services.NewAdminService(configRepo, feeRepo, gate, ledgerClient, eventService)
	authService := services.NewAuthService(accountRepo, cfg)
	profileService := services.NewProfileService(profileRepo)

	// Handlers
	h := &routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Giveaway:  handlers.NewGiveawayHandler(giveawayService),
		MutualAid: handlers.NewMutualAidHandler(mutualAidService),
		Admin:     handlers.NewAdminHandler(adminService),
		Profile:   handlers.NewProfileHandler(profileService),
		Event:     handlers.NewEventHandler(eventService),
	}

	router := routes.SetupRouter(cfg, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
