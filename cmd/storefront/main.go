package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/HarshalRajendraPatil/wcommerce-client/config"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/session"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/store"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/logger"
)

const clientVersion = "0.1.0"

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	sessions := session.NewStore(cfg.SessionFile)

	// The store is wired into the transport hooks after construction; the
	// hooks close over this pointer.
	var st *store.Store

	client := api.New(cfg, sessions, api.Hooks{
		OnSessionExpired: func() {
			log.Warn().Msg("Session expired, signing out")
			if st != nil {
				st.HandleSessionExpired()
			}
		},
		OnError: func(message string) {
			// Stand-in for the UI toast layer.
			log.Error().Str("toast", message).Msg("Request failed")
		},
	})

	st = store.New(client, store.Options{
		TaxRate:      cfg.TaxRate,
		DashboardTTL: cfg.DashboardCacheTTL,
	})

	logger.ClientStart("wcommerce-storefront", clientVersion, cfg.APIBaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Restore session from durable storage on boot
	if err := st.RestoreSession(); err != nil {
		log.Warn().Err(err).Msg("Could not restore session")
	}

	// Public data first; authenticated slices only with a live session.
	if err := st.FetchCategoryTree(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to load categories")
	}

	if st.Snapshot().Auth.Authenticated {
		if err := st.FetchCart(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to load cart")
		}
		if err := st.FetchWishlist(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to load wishlist")
		}
	}

	unsubscribe := st.Subscribe(func(s store.State) {
		log.Debug().
			Bool("authenticated", s.Auth.Authenticated).
			Bool("cart_loading", s.Cart.Loading).
			Msg("State changed")
	})
	defer unsubscribe()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	cancel()
	logger.ClientStop("wcommerce-storefront")
}
