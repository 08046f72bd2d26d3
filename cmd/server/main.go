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
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/api/handler"
	"github.com/mpcbarbosa/SeniorCare/internal/api/router"
	"github.com/mpcbarbosa/SeniorCare/internal/assistant"
	"github.com/mpcbarbosa/SeniorCare/internal/metrics"
	"github.com/mpcbarbosa/SeniorCare/internal/notify"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	"github.com/mpcbarbosa/SeniorCare/pkg/database"
	"github.com/mpcbarbosa/SeniorCare/pkg/jwt"
	applogger "github.com/mpcbarbosa/SeniorCare/pkg/logger"
	"github.com/mpcbarbosa/SeniorCare/pkg/redis"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "seniorcare",
		Short:        "SeniorCare API server",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file (default ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, db *gorm.DB, logger *zap.Logger) error {
				return database.RunMigrations(db, cfg.Database.Driver, logger)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, db *gorm.DB, logger *zap.Logger) error {
				if cfg.Database.Driver != config.DriverPostgres {
					return errors.New("migration versions are tracked for postgres only")
				}
				version, dirty, err := database.MigrationVersion(db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %v\n", version, dirty)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, db *gorm.DB, logger *zap.Logger) error {
				if cfg.Database.Driver != config.DriverPostgres {
					return errors.New("rollback is supported for postgres only")
				}
				if err := database.RollbackMigration(db); err != nil {
					return err
				}
				logger.Info("rolled back one migration")
				return nil
			})
		},
	})

	return cmd
}

// withDB loads config, logger and database for a one-shot command.
func withDB(fn func(cfg *config.Config, db *gorm.DB, logger *zap.Logger) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB(db)

	return fn(cfg, db, logger)
}

func runServer() error {
	// 1. config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("timezone", cfg.Adherence.Timezone),
	)

	// 3. database and schema
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB(db)

	if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DriverSQLite {
		if err := database.RunMigrations(db, cfg.Database.Driver, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// 4. Redis is optional; without it logout cannot revoke tokens and rate
	// limiting stays per-process.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without token blacklist", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// 5. notification channels
	hub := notify.NewHub(logger)
	channels := []notify.Channel{hub}
	if cfg.Notify.SMSEnabled || cfg.Notify.EmailEnabled {
		awsCfg, err := notify.LoadAWS(context.Background(), &cfg.Notify)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		if cfg.Notify.SMSEnabled {
			channels = append(channels, notify.NewSMSFromConfig(awsCfg, &cfg.Notify))
		}
		if cfg.Notify.EmailEnabled {
			channels = append(channels, notify.NewEmailFromConfig(awsCfg, &cfg.Notify))
		}
	}

	// 6. companion assistant
	responder, err := assistant.New(&cfg.Assistant, logger)
	if err != nil {
		return fmt.Errorf("init assistant: %w", err)
	}

	// 7. wiring: repository -> service -> handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	m := metrics.New()

	deps := service.Deps{
		Config:    cfg,
		Repo:      repository.NewRepository(db),
		JWT:       jwtMgr,
		Clock:     clock.NewSystem(cfg.Adherence.Location()),
		Channels:  channels,
		Responder: responder,
		Metrics:   m,
		Logger:    logger,
	}
	if rdb != nil {
		deps.Revoker = rdb
	}
	svc := service.NewService(deps)
	h := handler.NewHandler(svc, hub, cfg.Server.CORS.AllowOrigins, logger)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, jwtMgr, rdb, m, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
