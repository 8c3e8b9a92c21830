package directory_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ristkey/internal/crypto/keycodec"
	"ristkey/internal/directory"
	"ristkey/internal/domain"
	"ristkey/internal/httpclient"
)

var quiet = log.New(io.Discard, "", 0)

func keyFor(n uint64) domain.PublicKey {
	g := keycodec.Default().Group()
	return keycodec.PublicKeyFromPoint(keycodec.DerivePublicKey(g.NewScalarFromUint64(n)))
}

func newTestDirectory(t *testing.T, store directory.RecordStore, apiKey string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(directory.NewServer(store, apiKey, quiet).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, base, apiKey string) *directory.Client {
	t.Helper()
	hc, err := httpclient.WithAPIKey(apiKey)
	require.NoError(t, err)
	return directory.NewClient(base, hc)
}

func TestClient_RegisterAndLookup(t *testing.T) {
	srv := newTestDirectory(t, directory.NewMemoryStore(), "")
	c := newClient(t, srv.URL, "")
	ctx := context.Background()

	rec := domain.KeyRecord{Username: "alice", PublicKey: keyFor(7)}
	stored, err := c.RegisterKey(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, rec.Username, stored.Username)
	assert.Equal(t, rec.PublicKey, stored.PublicKey)
	assert.NotZero(t, stored.RegisteredAt)

	got, err := c.LookupKey(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestClient_LookupMissing(t *testing.T) {
	srv := newTestDirectory(t, directory.NewMemoryStore(), "")
	c := newClient(t, srv.URL, "")

	_, err := c.LookupKey(context.Background(), "nobody")
	var se *httpclient.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "not found", se.Body)
}

func TestClient_UsernameIsPathEscaped(t *testing.T) {
	srv := newTestDirectory(t, directory.NewMemoryStore(), "")
	c := newClient(t, srv.URL+"/", "")
	ctx := context.Background()

	rec := domain.KeyRecord{Username: "bob smith/ops", PublicKey: keyFor(9)}
	_, err := c.RegisterKey(ctx, rec)
	require.NoError(t, err)

	got, err := c.LookupKey(ctx, rec.Username)
	require.NoError(t, err)
	assert.Equal(t, rec.PublicKey, got.PublicKey)
}

func TestClient_RejectsInvalidKeyFromServer(t *testing.T) {
	bad := base58.Encode(append(make([]byte, 31), 0x10))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"username":"mallory","public_key":"`+bad+`"}`)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, "").LookupKey(context.Background(), "mallory")
	require.Error(t, err)
	assert.True(t, errors.Is(err, keycodec.ErrInvalidPoint), "got %v", err)
}

func TestServer_RegisterRequiresBearer(t *testing.T) {
	srv := newTestDirectory(t, directory.NewMemoryStore(), "s3cret")
	rec := domain.KeyRecord{Username: "carol", PublicKey: keyFor(3)}

	for _, key := range []string{"", "wrong"} {
		_, err := newClient(t, srv.URL, key).RegisterKey(context.Background(), rec)
		var se *httpclient.StatusError
		require.ErrorAs(t, err, &se, "key %q", key)
		assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	}

	_, err := newClient(t, srv.URL, "s3cret").RegisterKey(context.Background(), rec)
	require.NoError(t, err)

	// Lookups stay public.
	_, err = newClient(t, srv.URL, "").LookupKey(context.Background(), "carol")
	require.NoError(t, err)
}

func TestServer_RegisterValidation(t *testing.T) {
	h := directory.NewServer(directory.NewMemoryStore(), "", quiet).Handler()
	bad := base58.Encode(append(make([]byte, 31), 0x10))

	cases := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{`, "invalid json"},
		{"empty username", `{"username":"  ","public_key":"` + keyFor(1).String() + `"}`, "username required"},
		{"leading space", `{"username":" alice","public_key":"` + keyFor(1).String() + `"}`, "whitespace"},
		{"trailing newline", `{"username":"alice\n","public_key":"` + keyFor(1).String() + `"}`, "whitespace"},
		{"bad alphabet", `{"username":"dave","public_key":"0OIl"}`, keycodec.ErrInvalidEncoding.Error()},
		{"short key", `{"username":"dave","public_key":"7bWpTW"}`, keycodec.ErrInvalidLength.Error()},
		{"off-group key", `{"username":"dave","public_key":"` + bad + `"}`, keycodec.ErrInvalidPoint.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/keys", strings.NewReader(tc.body)))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.want)
		})
	}
}

func TestServer_ReRegistration(t *testing.T) {
	srv := newTestDirectory(t, directory.NewMemoryStore(), "")
	c := newClient(t, srv.URL, "")
	ctx := context.Background()

	first, err := c.RegisterKey(ctx, domain.KeyRecord{Username: "erin", PublicKey: keyFor(5)})
	require.NoError(t, err)

	again, err := c.RegisterKey(ctx, domain.KeyRecord{Username: "erin", PublicKey: keyFor(5)})
	require.NoError(t, err)
	assert.Equal(t, first, again)

	_, err = c.RegisterKey(ctx, domain.KeyRecord{Username: "erin", PublicKey: keyFor(6)})
	var se *httpclient.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.StatusCode)
}

func TestServer_HealthAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	h := directory.NewServer(directory.NewMemoryStore(), "", log.New(&buf, "", 0)).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Contains(t, buf.String(), "GET /health")
	assert.Contains(t, buf.String(), " 200 2B ")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/keys/alice", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStores_InsertLookup(t *testing.T) {
	badger, err := directory.OpenBadgerStore("", nil)
	require.NoError(t, err)

	stores := map[string]directory.RecordStore{
		"memory": directory.NewMemoryStore(),
		"badger": badger,
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			_, ok, err := s.Lookup("frank")
			require.NoError(t, err)
			assert.False(t, ok)

			rec := domain.KeyRecord{Username: "frank", PublicKey: keyFor(11), RegisteredAt: time.Now().Unix()}
			got, created, err := s.Insert(rec)
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, rec, got)

			dup := rec
			dup.RegisteredAt++
			got, created, err = s.Insert(dup)
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, rec, got)

			_, _, err = s.Insert(domain.KeyRecord{Username: "frank", PublicKey: keyFor(12)})
			assert.ErrorIs(t, err, directory.ErrConflict)

			got, ok, err = s.Lookup("frank")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, rec, got)
		})
	}
}

func TestBadgerStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := directory.OpenBadgerStore(dir, quiet)
	require.NoError(t, err)
	rec := domain.KeyRecord{Username: "grace", PublicKey: keyFor(13), RegisteredAt: 1700000000}
	_, _, err = s.Insert(rec)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = directory.OpenBadgerStore(dir, quiet)
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.Lookup("grace")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestMemoryStore_ConcurrentInsert(t *testing.T) {
	assertSingleCreate(t, directory.NewMemoryStore(), "heidi")
}

func TestBadgerStore_ConcurrentInsert(t *testing.T) {
	s, err := directory.OpenBadgerStore("", nil)
	require.NoError(t, err)
	defer s.Close()

	for round := 0; round < 10; round++ {
		assertSingleCreate(t, s, domain.Username(fmt.Sprintf("ivan-%d", round)))
	}
}

// assertSingleCreate races 64 identical registrations and expects exactly one
// creation and no errors.
func assertSingleCreate(t *testing.T, s directory.RecordStore, username domain.Username) {
	t.Helper()
	start := make(chan struct{})
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, ok, err := s.Insert(domain.KeyRecord{Username: username, PublicKey: keyFor(21)})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()
	assert.Equal(t, 1, created, "username %s", username)
}
