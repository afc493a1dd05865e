package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/amiskov/simple-ledger/pkg/config"
	"github.com/amiskov/simple-ledger/pkg/logger"
	"github.com/amiskov/simple-ledger/pkg/middleware"
	"github.com/amiskov/simple-ledger/pkg/operation"
	"github.com/amiskov/simple-ledger/pkg/server"
)

func main() {
	cfg := config.ParseServer()

	log := logger.Run(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var svc *operation.Service
	if cfg.DatabaseURI != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURI)
		if err != nil {
			log.Fatalf("unable to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("unable to reach PostgreSQL: %v", err)
		}

		repo := operation.NewRepo(db)
		if err := repo.Init(ctx); err != nil {
			log.Fatalf("unable to prepare schema: %v", err)
		}
		svc = operation.NewService(repo, time.Now)
	} else {
		log.Warn("DATABASE_URI is empty, operations are kept in memory")
		svc = operation.NewService(operation.NewMemRepo(), time.Now)
	}

	router := server.NewRouter(server.NewHandler(svc), middleware.NewLoggingMiddleware(log))
	srv := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown failed: %v", err)
		}
	}()

	log.Infof("serving at http://%s/", cfg.RunAddress)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped: %v", err)
	}
}
