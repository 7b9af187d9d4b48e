package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"dqx0.com/go/fedora/httpx"
	"dqx0.com/go/fedora/internal/obs"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := obs.NewLogger(obs.LogConfig{Level: cfg.LogLevel, Development: cfg.Dev, Prefix: "fedora-echo"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	rec := obs.NewRecorder()
	s := &httpx.Server{
		Addr:           cfg.Addr,
		Handler:        newMux(rec),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: cfg.MaxHeader,
		MaxBodyBytes:   cfg.MaxBody,
		Logger:         log,
		Meter:          rec,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(sctx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	if err := s.ListenAndServe(); err != nil && !errors.Is(err, httpx.ErrServerClosed) {
		log.Error("serve", zap.Error(err))
		os.Exit(1)
	}
	log.Info("stopped")
}
