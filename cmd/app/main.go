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

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger.Init(configs.AppEnv)
	defer logger.Sync()
	l := logger.L()

	gormDB := mustOpenDatabase(configs)
	if gormDB != nil {
		defer func() { _ = postgres.Close(gormDB) }()
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, l)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("failed to build jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, configs.HTTPPort, l)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.LookupEnv)
	if err != nil {
		log.Fatal(err)
	}
	if config.IsProduction() {
		log.SetLevel(log.WARN)
	} else {
		log.SetLevel(log.DEBUG)
	}
	return config
}

func mustOpenDatabase(config cmd.Config) *gorm.DB {
	if config.HistoryStore != cmd.HistoryStorePostgres {
		return nil
	}

	db, err := postgres.Open(config.DSN(), postgres.DefaultPoolConfig)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, l *zap.Logger) {
	e, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("failed to build http server: %v", err)
	}

	go func() {
		l.Info("http server listening", zap.String("port", port))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("http server shutdown failed", zap.Error(err))
	}
	l.Info("http server stopped")
}
