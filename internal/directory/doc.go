// Package directory implements the key directory: an HTTP JSON service that
// binds usernames to ristretto255 public keys, the record stores behind it,
// and the client used by the CLI.
//
// HTTP API
//
//	POST /keys
//	    Register {"username": ..., "public_key": "<base58>"}. The key must
//	    decode under the strict codec rules. Re-registering the same key is
//	    idempotent (200); a different key for a taken username is 409.
//
//	GET /keys/{username}
//	    Return the record for {username}, or 404.
//
//	GET /health
//	    Liveness probe.
//
// When the server is configured with an API key, POST /keys requires
// `Authorization: Bearer <key>`. Non-2xx responses carry a short plain-text
// error message, which the client surfaces verbatim.
package directory
