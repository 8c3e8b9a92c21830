package main

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ristkey/internal/directory"
	"ristkey/internal/domain"
)

var quiet = log.New(io.Discard, "", 0)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, config{Addr: ":8080"}, cfg)

	cfg, err = parseConfig([]string{"-addr", "127.0.0.1:9000", "-data", "/tmp/keys"}, env(map[string]string{"API_KEY": "tok"}))
	require.NoError(t, err)
	assert.Equal(t, config{Addr: "127.0.0.1:9000", Data: "/tmp/keys", APIKey: "tok"}, cfg)

	_, err = parseConfig([]string{"-bogus"}, env(nil))
	require.Error(t, err)
}

func TestNewServer_StoreSelection(t *testing.T) {
	_, store, err := newServer(config{Addr: ":0"}, quiet)
	require.NoError(t, err)
	assert.IsType(t, &directory.MemoryStore{}, store)
	require.NoError(t, store.Close())

	srv, store, err := newServer(config{Addr: ":0", Data: t.TempDir()}, quiet)
	require.NoError(t, err)
	assert.IsType(t, &directory.BadgerStore{}, store)
	assert.Equal(t, 15*time.Second, srv.ReadTimeout)
	assert.Equal(t, 15*time.Second, srv.WriteTimeout)
	require.NoError(t, store.Close())
}

func TestNewServer_APIKeyGuardsRegistration(t *testing.T) {
	srv, store, err := newServer(config{Addr: ":0", APIKey: "tok"}, quiet)
	require.NoError(t, err)
	defer store.Close()

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/keys", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServe_DrainsInFlightRequests(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		_, _ = io.WriteString(w, "done")
	})}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln) }()

	body := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			body <- err.Error()
			return
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body <- string(b)
	}()

	<-entered
	cancel()
	select {
	case err := <-served:
		t.Fatalf("serve returned with a request in flight: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, "done", <-body)
	assert.NoError(t, <-served)
}

func TestRun_ClosesBadgerStoreOnShutdown(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, []string{"-addr", "127.0.0.1:0", "-data", dir}, env(nil), quiet) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	// The directory lock is released only after Close.
	s, err := directory.OpenBadgerStore(dir, quiet)
	require.NoError(t, err)
	defer s.Close()
	_, ok, err := s.Lookup(domain.Username("nobody"))
	require.NoError(t, err)
	assert.False(t, ok)
}
