package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/blu-networking/blu-backend/api"
	"github.com/blu-networking/blu-backend/api/routes"
	"github.com/blu-networking/blu-backend/internal/auth"
	"github.com/blu-networking/blu-backend/internal/chapters"
	"github.com/blu-networking/blu-backend/internal/emails"
	"github.com/blu-networking/blu-backend/internal/events"
	"github.com/blu-networking/blu-backend/internal/goals"
	"github.com/blu-networking/blu-backend/internal/leads"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/internal/messages"
	"github.com/blu-networking/blu-backend/internal/minutes"
	"github.com/blu-networking/blu-backend/internal/spotlights"
	"github.com/blu-networking/blu-backend/internal/stats"
	"github.com/blu-networking/blu-backend/internal/tips"
	"github.com/blu-networking/blu-backend/pkg/auth/session"
	"github.com/blu-networking/blu-backend/pkg/config"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/blu-networking/blu-backend/pkg/mailer"
	"github.com/blu-networking/blu-backend/pkg/metrics"
	"github.com/blu-networking/blu-backend/pkg/migrate"
	"github.com/blu-networking/blu-backend/pkg/openai"
	"github.com/blu-networking/blu-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	mailClient := mailer.NewClient(cfg.SendGrid)
	emailSender, err := emails.NewSender(mailClient, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create email sender", err)
		os.Exit(1)
	}

	memberService, err := members.NewService(members.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create members service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		SessionManager: sessionManager,
		Emails:         emailSender,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	chapterService, err := chapters.NewService(chapters.ServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create chapters service", err)
		os.Exit(1)
	}

	eventService, err := events.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}
	leadService, err := leads.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create leads service", err)
		os.Exit(1)
	}
	goalService, err := goals.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create goals service", err)
		os.Exit(1)
	}
	spotlightService, err := spotlights.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create spotlights service", err)
		os.Exit(1)
	}
	messageService, err := messages.NewService(dbClient, emailSender)
	if err != nil {
		logg.Error(context.Background(), "failed to create messages service", err)
		os.Exit(1)
	}
	minutesService, err := minutes.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create minutes service", err)
		os.Exit(1)
	}
	statsService, err := stats.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	// tips run degraded when no OpenAI key is configured
	var tipsService tips.Service
	if llm, err := openai.NewClient(cfg.OpenAI); err != nil {
		logg.Warn(context.Background(), "openai client unavailable, networking tips disabled")
	} else {
		tipsService, err = tips.NewService(llm)
		if err != nil {
			logg.Error(context.Background(), "failed to create tips service", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := api.NewServer(addr, routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Registry:    registry,
		HTTPMetrics: httpMetrics,
		Sessions:    sessionManager,
		AuthService: authService,
		Members:     memberService,
		Chapters:    chapterService,
		Events:      eventService,
		Leads:       leadService,
		Goals:       goalService,
		Spotlights:  spotlightService,
		Messages:    messageService,
		Minutes:     minutesService,
		Stats:       statsService,
		Tips:        tipsService,
		Notifier:    emailSender,
	}))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
