package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"roostaboosta/internal/config"
	"roostaboosta/internal/ipc"
	"roostaboosta/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", filepath.Join(cfg.Paths.LogDir, "roostad.log")},
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	d, cleanup, err := bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed", logging.Error(err))
		return
	}
	defer cleanup()
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, logger, cancel)
	if err != nil {
		logger.Error("start ipc server", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("roostad shutting down")
}
