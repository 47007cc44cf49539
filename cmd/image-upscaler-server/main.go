package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	upscaler "github.com/menta2k/image-upscaler"
	"github.com/menta2k/image-upscaler/internal/backend"
	"github.com/menta2k/image-upscaler/internal/config"
	"github.com/menta2k/image-upscaler/internal/server"
)

func main() {
	var configPath, addr, backendName, modelPath, url, libraryPath string
	var verbose bool

	flag.StringVar(&configPath, "config", "", "path to config file (default: "+config.GetConfigPath()+")")
	flag.StringVar(&addr, "addr", "", "listen address (overrides config)")
	flag.StringVar(&backendName, "backend", "", "upscaling backend: onnx, remote, or naive (overrides config)")
	flag.StringVar(&modelPath, "model", "", "path to ONNX model file (overrides config)")
	flag.StringVar(&url, "url", "", "upscaling server URL for remote backend (overrides config)")
	flag.StringVar(&libraryPath, "lib", "", "path to onnxruntime shared library (overrides config)")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := loadConfig(configPath, logger)
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if backendName != "" {
		cfg.Engine.Backend = backendName
	}
	if modelPath != "" {
		cfg.Engine.ModelPath = modelPath
	}
	if url != "" {
		cfg.Engine.URL = url
	}
	if libraryPath != "" {
		cfg.Engine.LibraryPath = libraryPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	handle, err := backend.NewHandle(cfg.Engine)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(upscaler.New(handle), cfg.Server.MaxUploadMB, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Routes(),
	}

	go func() {
		logger.Info("starting server",
			"addr", cfg.Server.Addr,
			"backend", cfg.Engine.Backend,
			"version", upscaler.GetVersion())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// loadConfig reads the config file if one exists, falling back to defaults.
// An explicitly named file that cannot be read is fatal; a missing default
// file is not.
func loadConfig(path string, logger *slog.Logger) *config.Config {
	explicit := path != ""
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		if explicit {
			log.Fatalf("failed to load config %s: %v", path, err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("ignoring unreadable config file", "path", path, "error", err)
		}
		return config.Default()
	}
	logger.Debug("loaded config", "path", path)
	return cfg
}
