package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"touchsync.io/touchsync-web/internal/catalog"
	"touchsync.io/touchsync-web/internal/cms"
	"touchsync.io/touchsync-web/internal/config"
	handlersPkg "touchsync.io/touchsync-web/internal/handlers"
	"touchsync.io/touchsync-web/internal/i18n"
	"touchsync.io/touchsync-web/internal/inquiry"
	mw "touchsync.io/touchsync-web/internal/middleware"
	"touchsync.io/touchsync-web/internal/observability"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode is set in main() from TOUCHSYNC_WEB_DEV (or DEV)
	devMode   bool
	tmplCache *templateSet

	i18nBundle    *i18n.Bundle
	catalogSource *catalog.Source
	inquiryDesk   *inquiry.Desk
	cmsClient     *cms.Client
	siteCfg       config.SiteConfig
	analytics     handlersPkg.Analytics
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("web: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var (
		addr        string
		tmplPath    string
		pubPath     string
		catalogPath string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr(), "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.Paths.Templates, "templates directory")
	flag.StringVar(&pubPath, "public", cfg.Paths.Public, "public assets directory")
	flag.StringVar(&catalogPath, "catalog", cfg.Paths.CatalogFile, "catalog YAML file (embedded dataset when empty)")
	flag.Parse()

	logger, err := observability.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	templatesDir = tmplPath
	publicDir = pubPath
	devMode = cfg.Site.DevMode
	siteCfg = cfg.Site
	analytics = handlersPkg.AnalyticsFromConfig(cfg.Analytics)
	mw.ConfigureSession(cfg.Session.SigningKey, cfg.Site.IsProduction())

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			return fmt.Errorf("parse templates: %w", err)
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(cfg.Paths.Locales, cfg.I18n.Fallback, cfg.I18n.Supported)
	if err != nil {
		return fmt.Errorf("load i18n: %w", err)
	}

	var dataset *catalog.Catalog
	if catalogPath != "" {
		dataset, err = catalog.LoadFile(catalogPath)
	} else {
		dataset, err = catalog.Default()
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	catalogSource = catalog.NewSource(dataset)

	inquiryDesk = inquiry.NewDesk(
		inquiry.WithDelay(cfg.Contact.SubmitDelay),
		inquiry.WithTTL(cfg.Contact.IdleTTL),
		inquiry.WithLogger(logger.Named("inquiry")),
	)

	cmsClient = cms.NewClient(cfg.CMS.BaseURL,
		cms.WithContentDir(cfg.Paths.Content),
		cms.WithFallbackLang(cfg.I18n.Fallback),
		cms.WithCacheTTL(cfg.CMS.CacheTTL),
		cms.WithLogger(logger.Named("cms")),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(logger, cfg.Server.RequestTimeout),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("web listening",
			zap.String("addr", addr),
			zap.Bool("dev_mode", devMode),
			zap.String("env", cfg.Site.Environment),
			zap.Int("products", catalogSource.Current().Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error { return inquiryDesk.Run(gctx) })

	if devMode && catalogPath != "" {
		g.Go(func() error {
			return catalogSource.Watch(gctx, catalogPath, logger.Named("catalog"))
		})
	}

	return g.Wait()
}
