package main

import (
	"companion/app/config"
	"companion/app/service/supervisor"
	"companion/app/util/mylog"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, supervisor.New)

	slog.Info("Supervisor started",
		"port", cfg.Supervisor.Port,
		"command", cfg.Supervisor.Command)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err := do.MustInvoke[*supervisor.Service](di).Run(appCtx); err != nil &&
		!errors.Is(err, context.Canceled) {
		slog.Error("Supervisor stopped", "error", err)
	}
}
