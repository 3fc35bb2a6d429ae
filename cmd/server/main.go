package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zhingPin/gsoe-contracts/internal/config"
	"github.com/zhingPin/gsoe-contracts/internal/handlers"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/registry"
	"github.com/zhingPin/gsoe-contracts/internal/services"
	"github.com/zhingPin/gsoe-contracts/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := store.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	assetRepo := store.NewAssetRepository(db)
	listingRepo := store.NewListingRepository(db)
	payoutRepo := store.NewPayoutRepository(db)
	configRepo := store.NewConfigRepository(db)
	roleRepo := store.NewRoleRepository(db)

	if err := bootstrap(cfg.Market, configRepo, roleRepo); err != nil {
		log.Fatalf("Failed to bootstrap marketplace: %v", err)
	}

	reg := registry.NewPostgresRegistry(db, cfg.Market.OperatorAccount)
	sink := services.NewLoggingSink()

	// Event feed
	hub := handlers.NewHub()
	go hub.Run()

	// Services
	authService := services.NewAuthService(cfg.Auth)
	assetService := services.NewAssetService(assetRepo)
	minterService := services.NewMinterService(roleRepo, configRepo, listingRepo, reg, sink, hub, cfg.Market.OperatorAccount)
	marketService := services.NewMarketService(listingRepo, configRepo, reg, sink, hub, cfg.Market.OperatorAccount)
	payoutService := services.NewPayoutService(payoutRepo, sink, hub)
	adminService := services.NewAdminService(roleRepo, configRepo)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/auth/login", handlers.Login(authService))
	r.Get("/ws", handlers.ServeWs(hub))

	r.Get("/assets", handlers.GetAllAssets(assetService))
	r.Get("/assets/{id}", handlers.GetAsset(assetService))
	r.Get("/batches/{id}", handlers.GetBatch(assetService))

	r.Get("/listings", handlers.GetAllListings(marketService))
	r.Get("/listings/{id}", handlers.GetListing(marketService))

	r.Get("/market/fees", handlers.GetFees(adminService))
	r.Get("/market/earnings", handlers.GetEarnings(payoutService))
	r.Get("/roles/{account}", handlers.GetRoles(adminService))

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(authService))

		r.Post("/mint", handlers.MintBatch(minterService))
		r.Post("/mint-and-list", handlers.MintAndList(minterService))

		r.Post("/listings", handlers.CreateListing(marketService))
		r.Post("/listings/{id}/buy", handlers.BuyListing(marketService))
		r.Delete("/listings/{id}", handlers.DelistListing(marketService))
		r.Post("/approvals", handlers.SetApproval(marketService))

		r.Get("/me/assets", handlers.GetMyAssets(assetService))
		r.Get("/me/balance", handlers.GetPendingBalance(payoutService))
		r.Post("/me/withdraw", handlers.Withdraw(payoutService))
		r.Get("/me/withdrawals", handlers.GetWithdrawals(payoutService))

		r.Route("/admin", func(r chi.Router) {
			r.Put("/fees/platform-percent", handlers.SetPlatformFeePercent(adminService))
			r.Put("/fees/listing", handlers.SetListingFee(adminService))
			r.Put("/fees/mint", handlers.SetMintFee(adminService))
			r.Put("/fees/recipient", handlers.SetFeeRecipient(adminService))
			r.Post("/roles/grant", handlers.GrantRole(adminService))
			r.Post("/roles/revoke", handlers.RevokeRole(adminService))
		})
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Marketplace server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

// bootstrap seeds the fee configuration and the initial role grants on a
// fresh deployment. Reruns are no-ops.
func bootstrap(market config.MarketConfig, configRepo *store.ConfigRepository, roleRepo *store.RoleRepository) error {
	listingFee, err := models.ParseAmount(market.ListingFee)
	if err != nil {
		return fmt.Errorf("invalid listing fee %q: %w", market.ListingFee, err)
	}
	mintFee, err := models.ParseAmount(market.MintFeePerUnit)
	if err != nil {
		return fmt.Errorf("invalid mint fee %q: %w", market.MintFeePerUnit, err)
	}

	seed := models.MarketConfig{
		PlatformFeePercent: market.PlatformFeePercent,
		ListingFee:         listingFee,
		MintFeePerUnit:     mintFee,
		FeeRecipient:       market.FeeRecipient,
		UpdatedBy:          market.AdminAccount,
	}
	if err := seed.Validate(); err != nil {
		return err
	}
	if err := configRepo.EnsureDefaults(seed); err != nil {
		return err
	}

	// The admin account starts with both capabilities so a fresh
	// deployment can mint and administer itself
	if market.AdminAccount != "" {
		if err := roleRepo.Grant(models.RoleAdmin, market.AdminAccount, "bootstrap"); err != nil {
			return err
		}
		if err := roleRepo.Grant(models.RoleMinter, market.AdminAccount, "bootstrap"); err != nil {
			return err
		}
	}

	return nil
}
