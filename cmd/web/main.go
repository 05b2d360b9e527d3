package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcqreview/internal/app"
	"mcqreview/internal/db"
	"mcqreview/internal/donestate"
)

func main() {
	if err := run(); err != nil {
		log.Printf("server stopped: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dbConn *sql.DB
	if cfg.DoneBackend == app.DoneBackendPostgres {
		dbConn, err = db.OpenPostgres(ctx, db.PostgresConfig{
			DSN:             cfg.DBDSN,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifeMins) * time.Minute,
		})
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := donestate.NewPostgresBackend(dbConn).EnsureSchema(ctx); err != nil {
			return err
		}
	}

	r := app.NewRouter(cfg, dbConn)

	log.Printf("mcqreview listening on %s (data=%s, done backend=%s)", cfg.HTTPAddr, cfg.DataDir, cfg.DoneBackend)
	return app.Serve(ctx, cfg.HTTPAddr, r)
}
