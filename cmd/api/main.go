package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
	"github.com/BruksfildServices01/pharma-scheduler/internal/cancelflow"
	"github.com/BruksfildServices01/pharma-scheduler/internal/config"
	"github.com/BruksfildServices01/pharma-scheduler/internal/dates"
	dbpkg "github.com/BruksfildServices01/pharma-scheduler/internal/db"
	"github.com/BruksfildServices01/pharma-scheduler/internal/export"
	"github.com/BruksfildServices01/pharma-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/pharma-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/pharma-scheduler/internal/logging"
	"github.com/BruksfildServices01/pharma-scheduler/internal/routes"
	"github.com/BruksfildServices01/pharma-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/pharma-scheduler/internal/usecase/appointment"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "pharma-scheduler",
		Short:        "Pharmacy delivery and visit scheduler",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads config, logger and an initialized agenda store.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, *infraRepo.AppointmentXLSXStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg)

	store := infraRepo.NewAppointmentXLSXStore(cfg.AgendaFile, log)
	if err := store.Init(ctx); err != nil {
		return nil, log, nil, fmt.Errorf("init agenda %s: %w", cfg.AgendaFile, err)
	}
	return cfg, log, store, nil
}

func newExporter(ctx context.Context, cfg *config.Config, store *infraRepo.AppointmentXLSXStore, log zerolog.Logger) (*export.S3Exporter, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}
	client, err := export.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return export.NewS3Exporter(
		client,
		store,
		cfg.S3Bucket,
		cfg.S3Prefix,
		timezone.Clock(cfg.Timezone),
		log,
	), nil
}

// ======================================================
// serve
// ======================================================

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	now := timezone.Clock(cfg.Timezone)

	if cfg.SeedSampleData {
		n, err := ucAppointment.NewSeedSampleData(store, now).Execute(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("sample data not loaded")
		} else if n > 0 {
			log.Info().Int("rows", n).Msg("sample data loaded")
		}
	}

	// Audit
	auditDB, err := dbpkg.NewAuditDB(cfg, log)
	if err != nil {
		return err
	}
	dispatcher := audit.NewNop()
	if auditDB != nil {
		dispatcher = audit.NewDispatcher(audit.New(auditDB), log)
	}
	defer dispatcher.Close()

	// Sessions
	var sessions cancelflow.SessionStore = cancelflow.NewMemorySessionStore(cfg.SessionTTL, now)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		sessions = cancelflow.NewRedisSessionStore(client, cfg.SessionTTL)
		log.Info().Msg("cancellation sessions stored in redis")
	}

	var exporter handlers.Exporter
	exp, err := newExporter(ctx, cfg, store, log)
	if err != nil {
		return err
	}
	if exp != nil {
		exporter = exp
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Store:    store,
		AuditDB:  auditDB,
		Audit:    dispatcher,
		Sessions: sessions,
		Exporter: exporter,
		Log:      log,
		Now:      now,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("agenda", store.Path()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ======================================================
// seed
// ======================================================

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample services into an empty agenda",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, store, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			n, err := ucAppointment.NewSeedSampleData(store, timezone.Clock(cfg.Timezone)).Execute(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "agenda is not empty, nothing loaded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d sample services into %s\n", n, store.Path())
			return nil
		},
	}
}

// ======================================================
// export
// ======================================================

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Upload a copy of the agenda to S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, store, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			exp, err := newExporter(cmd.Context(), cfg, store, log)
			if err != nil {
				return err
			}
			if exp == nil {
				return errors.New("S3_BUCKET is not set")
			}

			res, err := exp.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s (%d bytes)\n", res.Bucket, res.Key, res.Size)
			return nil
		},
	}
}

// ======================================================
// check
// ======================================================

func checkCmd() *cobra.Command {
	var date, hm string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Tell whether a date and time can be booked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			now := timezone.NowIn(cfg.Timezone)
			date = dates.ResolveRelative(date, now)

			d := cfg.Schedule.ValidateAppointment(date, hm, now)
			if !d.OK {
				return fmt.Errorf("%s: %s", d.Reason, d.Message)
			}

			slots := cfg.Schedule.AvailableSlots(date, now, 30*time.Minute)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is bookable (%s, %d free slots that day)\n",
				date, hm, dates.FormatLong(date), len(slots))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD, hoy or mañana")
	cmd.Flags().StringVar(&hm, "time", "", "time as HH:MM")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}
