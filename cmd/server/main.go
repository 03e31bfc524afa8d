// Command server runs the favicon registry HTTP service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rise-and-shine/iconreg/admin"
	"github.com/rise-and-shine/iconreg/cfgloader"
	"github.com/rise-and-shine/iconreg/favicon"
	"github.com/rise-and-shine/iconreg/filestore/miniowr"
	"github.com/rise-and-shine/iconreg/http/handler"
	"github.com/rise-and-shine/iconreg/http/server"
	"github.com/rise-and-shine/iconreg/http/server/middleware"
	"github.com/rise-and-shine/iconreg/logger"
	"github.com/rise-and-shine/iconreg/pg"
	"github.com/rise-and-shine/iconreg/tracing"
)

// Config is the full application configuration, loaded from
// ./config/${ENVIRONMENT}.yaml.
type Config struct {
	Logger   logger.Config  `yaml:"logger"`
	Tracing  tracing.Config `yaml:"tracing"`
	Server   server.Config  `yaml:"server"`
	Postgres pg.Config      `yaml:"postgres"`
	Minio    miniowr.Config `yaml:"minio"`
	Admin    admin.Config   `yaml:"admin"`
}

func main() {
	cfg := cfgloader.MustLoad[Config]()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	log = log.Named("iconreg")

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() { _ = shutdownTracer() }()

	db, err := pg.NewBunDB(cfg.Postgres)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := favicon.NewRepo(db)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatalx(err)
	}

	store, err := miniowr.New(cfg.Minio)
	if err != nil {
		log.Fatalx(err)
	}

	sessions, err := admin.New(cfg.Admin)
	if err != nil {
		log.Fatalx(err)
	}

	favicons := favicon.NewService(repo, store, log)

	srv := server.NewHTTPServer(cfg.Server, []server.Middleware{
		middleware.NewRecoveryMW(log),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(cfg.Server.HandleTimeout),
		middleware.NewLoggerMW(log),
		middleware.NewErrorHandlerMW(cfg.Server.HideErrorDetails),
	})

	h := handler.New(favicons, sessions, store, log)
	srv.RegisterRouter(h.Register)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	log.Infof("listening on %s", cfg.Server.Address())

	select {
	case err := <-errCh:
		log.Fatalx(err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	if err := srv.Stop(); err != nil {
		log.Errorx(err)
	}
}
