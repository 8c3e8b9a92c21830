package app

import (
	"log"

	"ristkey/internal/httpclient"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string // config directory, e.g. $HOME/.ristkey
	RelayURL string // directory base URL, e.g. http://127.0.0.1:8080
	APIKey   string // bearer token for the directory; empty sends none

	// HTTP tunes retries and timeouts; the zero value uses httpclient.DefaultConfig.
	HTTP   httpclient.Config
	Logger *log.Logger // optional; traces HTTP attempts
}
