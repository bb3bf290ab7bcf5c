package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/config"
	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/export"
	vyaparxHttp "github.com/MrJamesThe3rd/vyaparx/internal/http"
	campaignHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/campaign"
	customerHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/customer"
	deliveryHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/delivery"
	exportHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/importcsv"
	intakeHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/intake"
	invoiceHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/invoice"
	notificationHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/notification"
	paymentHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/payment"
	productHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/product"
	uiHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/ui"
	voiceHandler "github.com/MrJamesThe3rd/vyaparx/internal/http/voice"
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/importer"
	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/marketing"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	lang, err := i18n.Parse(cfg.App.DefaultLanguage)
	if err != nil {
		slog.Error("invalid default language", "error", err)
		os.Exit(1)
	}

	opts := []store.Option{store.WithLanguage(lang)}
	if cfg.App.DemoData {
		opts = append(opts, store.WithDemoData())
	}

	st := store.New(opts...)
	st.Subscribe(func(s store.State) {
		slog.Debug("state committed", "revision", s.Revision, "view", s.ActiveView)
	})

	var (
		billingService   = billing.NewService(st)
		deliveryService  = delivery.NewService(st)
		intakeService    = intake.NewService(st)
		marketingService = marketing.NewService(st)
		importService    = importer.NewService(st)
		exportService    = export.NewService(st)
	)

	matcher := voice.NewMatcher(voice.DefaultTables(), voice.Config{
		SuggestionThreshold: cfg.Voice.SuggestionThreshold,
		MaxSuggestions:      cfg.Voice.MaxSuggestions,
	})
	assistant := voice.NewAssistant(matcher, st, voice.NewSpeaker(nil), voice.NewTypedRecognizer())

	router := vyaparxHttp.New(vyaparxHttp.Handlers{
		Customers:     customerHandler.NewHandler(st),
		Products:      productHandler.NewHandler(st),
		Invoices:      invoiceHandler.NewHandler(st, billingService, deliveryService),
		Payments:      paymentHandler.NewHandler(st),
		Deliveries:    deliveryHandler.NewHandler(st, deliveryService),
		Intake:        intakeHandler.NewHandler(st, intakeService),
		Campaigns:     campaignHandler.NewHandler(st, marketingService),
		Notifications: notificationHandler.NewHandler(st),
		UI:            uiHandler.NewHandler(st),
		Voice:         voiceHandler.NewHandler(assistant, matcher, st),
		Import:        importHandler.NewHandler(importService),
		Export:        exportHandler.NewHandler(exportService, st),
	}, vyaparxHttp.Options{
		Timeout:            cfg.Server.Timeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "port", cfg.Addr(), "language", lang, "demo_data", cfg.App.DemoData)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
