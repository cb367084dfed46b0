package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-campaign/internal/booking"
	"voice-campaign/internal/campaign"
	"voice-campaign/internal/config"
	"voice-campaign/internal/httpapi"
	"voice-campaign/internal/keepalive"
	"voice-campaign/internal/leads"
	"voice-campaign/internal/ledger"
	"voice-campaign/internal/notify"
	"voice-campaign/internal/summary"
	"voice-campaign/internal/telephony"
	"voice-campaign/pkg/logger"
	"voice-campaign/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local .env is optional; deployed environments inject real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ledgerStore, summaryStore, cleanup, err := openStores(rootCtx, cfg)
	if err != nil {
		log.Error("store init failed", "backend", cfg.Store.Backend, "err", err)
		os.Exit(1)
	}
	defer cleanup()

	provider := telephony.NewVapiProvider(cfg.Vapi.APIKey, telephony.VapiOptions{
		BaseURL: cfg.Vapi.BaseURL,
	})

	window, err := campaign.NewWindow(cfg.Window.Start, cfg.Window.End, cfg.Window.Timezone)
	if err != nil {
		log.Error("call window init failed", "err", err)
		os.Exit(1)
	}

	mailer := notify.NewMailgunNotifier(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, notify.MailgunOptions{
		BaseURL: cfg.Mailgun.BaseURL,
	})
	qualification := notify.NewQualification(mailer, cfg.Campaign.RecruiterEmail, log)

	scheduler, err := newScheduler(cfg)
	if err != nil {
		log.Error("scheduler init failed", "err", err)
		os.Exit(1)
	}
	trigger := booking.NewTrigger(scheduler, window.Location(), log)
	if scheduler != nil {
		log.Info("booking enabled", "scheduler", scheduler.Name())
	}

	stats := campaign.NewStats()
	runner := campaign.NewRunner(
		campaign.RunnerConfig{
			AgentID:      cfg.Vapi.AgentID,
			PhoneID:      cfg.Vapi.PhoneID,
			CallCooldown: cfg.Campaign.CallCooldown,
			IdleSleep:    cfg.Campaign.IdleSleep,
			ErrorBackoff: cfg.Campaign.ErrorBackoff,
			RingConfirm:  cfg.Campaign.RingConfirm,
		},
		window,
		leads.NewQueue(cfg.Files.Leads, ledgerStore),
		provider,
		campaign.NewPoller(provider, cfg.Campaign.PollInterval, cfg.Campaign.PollAttempts, log),
		campaign.NewRecorder(ledgerStore, summaryStore, log),
		qualification,
		trigger,
		stats,
		log,
	)

	go func() {
		if err := runner.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("campaign runner stopped", "err", err)
		}
	}()

	if cfg.App.KeepAliveURL != "" {
		pinger := keepalive.NewPinger(cfg.App.KeepAliveURL, 0, log)
		go pinger.Run(rootCtx)
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	registerRoutes(r, httpapi.Handlers{Stats: stats})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("orchestrator listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

// openStores builds the ledger and summary stores for the configured backend.
// The returned cleanup is always safe to call.
func openStores(ctx context.Context, cfg config.Config) (ledger.Store, summary.Store, func(), error) {
	if cfg.Store.Backend != "postgres" {
		return ledger.NewFileStore(cfg.Files.Ledger), summary.NewFileStore(cfg.Files.Summary), func() {}, nil
	}

	db, err := utils.OpenPostgres(ctx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		return nil, nil, func() {}, err
	}
	cleanup := func() { _ = db.Close() }

	ls := ledger.NewPostgresStore(db)
	if err := ls.EnsureSchema(ctx); err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}
	ss := summary.NewPostgresStore(db)
	if err := ss.EnsureSchema(ctx); err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}
	return ls, ss, cleanup, nil
}

func newScheduler(cfg config.Config) (booking.SchedulerService, error) {
	switch cfg.Booking.Scheduler {
	case "tidycal":
		return booking.NewTidyCalScheduler(cfg.Booking.TidyCalToken, cfg.Booking.TidyCalBookingTypeID, booking.TidyCalOptions{}), nil
	case "calendly":
		return booking.NewCalendlyScheduler(cfg.Booking.CalendlyToken, cfg.Booking.CalendlyEventTypeURI, booking.CalendlyOptions{}), nil
	case "none", "":
		return nil, nil
	default:
		return nil, errors.New("unknown scheduler " + cfg.Booking.Scheduler)
	}
}
