package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ristkey/internal/domain"
	"ristkey/internal/httpclient"
)

// Client talks to a key directory over HTTP.
type Client struct {
	base string
	http *httpclient.Client
}

// NewClient returns a client for the directory at base, e.g. http://127.0.0.1:8080.
func NewClient(base string, hc *httpclient.Client) *Client {
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

type registerRequest struct {
	Username  domain.Username  `json:"username"`
	PublicKey domain.PublicKey `json:"public_key"`
}

// RegisterKey publishes rec and returns the record the directory stored.
func (c *Client) RegisterKey(ctx context.Context, rec domain.KeyRecord) (domain.KeyRecord, error) {
	req := registerRequest{Username: rec.Username, PublicKey: rec.PublicKey}
	out, err := httpclient.TakeData[domain.KeyRecord](ctx, c.http, http.MethodPost, c.base+"/keys", req)
	if err != nil {
		return domain.KeyRecord{}, fmt.Errorf("register %q: %w", rec.Username, err)
	}
	return out, nil
}

// LookupKey fetches the record for username. The response key is validated
// while decoding, so a malformed key from the server is an error.
func (c *Client) LookupKey(ctx context.Context, username domain.Username) (domain.KeyRecord, error) {
	u := c.base + "/keys/" + url.PathEscape(username.String())
	out, err := httpclient.TakeData[domain.KeyRecord](ctx, c.http, http.MethodGet, u, nil)
	if err != nil {
		return domain.KeyRecord{}, fmt.Errorf("lookup %q: %w", username, err)
	}
	if out.Username != username {
		return domain.KeyRecord{}, fmt.Errorf("lookup %q: directory answered for %q", username, out.Username)
	}
	return out, nil
}

var _ domain.DirectoryClient = (*Client)(nil)
