package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codelens/internal/explain"
	"codelens/internal/gate"
	"codelens/internal/web"
)

// main launches codelensd.
func main() {
	os.Exit(run())
}

// run executes codelensd and returns an exit code.
func run() int {
	configPath := flag.String("config", "config.yaml", "path to codelensd config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	maxBodyBytes, err := gate.ParseByteSize(cfg.Gate.BodySizeLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: gate.body_size_limit: %v\n", err)
		return 1
	}

	provider, err := explain.ProviderFromEnv(cfg.LLM.Model, cfg.LLM.BaseURL, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "provider error: %v\n", err)
		return 1
	}

	uiHandler, err := web.NewHandler(web.Config{Title: cfg.Web.Title})
	if err != nil {
		fmt.Fprintf(os.Stderr, "web handler error: %v\n", err)
		return 1
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	mux.Handle("/api/explain", explain.NewHandler(explain.Config{
		Provider: provider,
		Logger:   logger,
	}))
	mux.Handle("/", uiHandler)

	requestGate := gate.New(gate.Config{
		MaxBodyBytes:    maxBodyBytes,
		MaxRequests:     cfg.Gate.MaxRequests,
		Window:          time.Duration(cfg.Gate.WindowMs) * time.Millisecond,
		AllowedOrigin:   cfg.Gate.AllowedOrigin,
		SecurityHeaders: cfg.securityHeadersEnabled(),
		Logger:          logger,
	})
	defer requestGate.Close()

	server := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: requestGate.Wrap(mux),
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	return 0
}
