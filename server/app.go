package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"nexus/config"
	"nexus/internal/api"
	"nexus/internal/auth"
	"nexus/internal/db"
	"nexus/internal/health"
	"nexus/internal/logs"
	"nexus/internal/middleware"
	"nexus/internal/models"
	"nexus/internal/repo"
	"nexus/internal/seed"
	"nexus/internal/telemetry"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Logging */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) DB */
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Server{},
		&models.ServerMetric{},
		&models.CRMLead{},
		&models.CloudFile{},
		&models.HostingPlan{},
		&models.HostingOrder{},
		&models.Alert{},
		&models.SiteTemplate{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := seed.Run(context.Background(), a.db); err != nil {
		log.Fatalf("catalog seed failed: %v", err)
	}

	/* 3) Stores + auth */
	users := repo.NewUserStore(a.db)
	tokens := auth.NewTokens(a.cfg.Auth.Secret, a.cfg.TokenTTL())
	authSvc := auth.NewService(users, tokens, a.cfg.Auth.BcryptCost)

	h := api.New(a.cfg, authSvc,
		repo.NewServerStore(a.db),
		repo.NewLeadStore(a.db),
		repo.NewFileStore(a.db),
		repo.NewHostingStore(a.db),
		repo.NewAlertStore(a.db),
		repo.NewTemplateStore(a.db),
	)

	/* 4) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
	)

	/* 5) Routes */
	health.RegisterRoutesWithDB(a.Router, a.db) // /healthz, /readyz
	h.RegisterRoutes(a.Router)
	telemetry.RegisterRoutes(a.Router, telemetry.NewHandler(telemetry.DefaultInterval))

	/* (optional) dump the known routes to the log at startup */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	// Hard timeouts matter in production.
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	return nil
}
