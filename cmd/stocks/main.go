package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quotepicker/stocks/internal/config"
	"github.com/quotepicker/stocks/internal/connectivity"
	"github.com/quotepicker/stocks/internal/controller"
	"github.com/quotepicker/stocks/internal/iex"
	"github.com/quotepicker/stocks/internal/logger"
	"github.com/quotepicker/stocks/internal/telegram"
	"github.com/quotepicker/stocks/internal/tui"
	"github.com/quotepicker/stocks/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Init logger
	var logOut io.Writer
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.New(cfg.Logging.Level, logOut)
	log.Info("starting stocks", "ui", cfg.UI.Mode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init services
	client := iex.NewClient(
		iex.WithTimeout(cfg.IEXTimeout()),
		iex.WithLogoRequired(cfg.IEX.LogoRequired),
		iex.WithLogoCache(uint(cfg.IEX.LogoCacheSize), cfg.LogoCacheTTL()),
		iex.WithLogger(log),
	)
	checker := connectivity.NewChecker(cfg.Connectivity.ProbeAddress, cfg.ConnectivityTimeout())
	bot := telegram.NewBot(cfg, log)

	var renderers controller.Multi
	if bot.Enabled() {
		renderers = append(renderers, bot)
	}

	var (
		program     *tea.Program
		tuiRenderer *tui.Renderer
	)

	// renderers is passed by pointer: the screen needs ctrl and joins the list afterwards.
	ctrl := controller.New(client, checker, &renderers, log, controller.Options{
		RefreshInterval: cfg.RefreshInterval(),
	})

	if cfg.UI.Mode == config.UIModeTUI {
		program = tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
		tuiRenderer = tui.NewRenderer(program)
		renderers = append(renderers, tuiRenderer)
	}

	var webServer *web.Server
	if cfg.Web.Enabled {
		webServer = web.NewServer(ctrl, cfg, log)
		go func() {
			if err := webServer.Start(); err != nil {
				log.Error("web server error", "error", err)
			}
		}()
	}

	go bot.Run(ctx, ctrl)

	// Init may talk to the screen, which only reads messages once the
	// program runs, so it starts in the background.
	go func() {
		if err := ctrl.Init(ctx); err != nil {
			log.Error("controller init failed", "error", err)
		}
		if tuiRenderer != nil {
			tuiRenderer.SetCompanies(ctrl.Companies())
		}
		ctrl.Run(ctx)
	}()

	if program != nil {
		if _, err := program.Run(); err != nil && ctx.Err() == nil {
			log.Error("terminal ui error", "error", err)
		}
		log.Info("terminal ui closed")
	} else {
		// Wait for shutdown signal
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info("shutdown signal received", "signal", sig.String())
	}

	// Graceful shutdown
	cancel()

	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Error("web server shutdown error", "error", err)
		}
	}

	log.Info("stocks stopped")
}
