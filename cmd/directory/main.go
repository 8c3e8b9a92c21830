package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ristkey/internal/directory"
	"ristkey/internal/httpclient"
)

const shutdownTimeout = 5 * time.Second

type config struct {
	Addr   string
	Data   string // badger directory; empty keeps records in memory
	APIKey string
}

func main() {
	logger := log.New(os.Stderr, "directory ", log.LstdFlags)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Getenv, logger)
	stop()
	if err != nil {
		logger.Print(err)
		os.Exit(1)
	}
}

func parseConfig(args []string, getenv func(string) string) (config, error) {
	fs := flag.NewFlagSet("directory", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "listen address")
	data := fs.String("data", "", "badger data directory (default: in memory)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return config{Addr: *addr, Data: *data, APIKey: getenv(httpclient.APIKeyEnv)}, nil
}

// newServer picks the record store and builds the HTTP server over it.
// The caller closes the store after the server has shut down.
func newServer(cfg config, logger *log.Logger) (*http.Server, directory.RecordStore, error) {
	var store directory.RecordStore = directory.NewMemoryStore()
	if cfg.Data != "" {
		bs, err := directory.OpenBadgerStore(cfg.Data, logger)
		if err != nil {
			return nil, nil, err
		}
		store = bs
	}
	if cfg.APIKey == "" {
		logger.Println("warning: API_KEY not set, registration is unauthenticated")
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      directory.NewServer(store, cfg.APIKey, logger).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return srv, store, nil
}

func run(ctx context.Context, args []string, getenv func(string) string, logger *log.Logger) error {
	cfg, err := parseConfig(args, getenv)
	if err != nil {
		return err
	}
	srv, store, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Printf("close store: %v", err)
		}
	}()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	logger.Printf("key directory listening on %s", ln.Addr())
	return serve(ctx, srv, ln)
}

// serve runs srv on ln until ctx is done, then waits for in-flight requests
// to finish before returning.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
