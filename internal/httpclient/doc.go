// Package httpclient builds the outbound HTTP client shared by ristkey's
// network code.
//
// The client retries transient failures (connection errors, 429 and 5xx) with
// exponential backoff and jitter between a lower and an upper bound, injects
// an `Authorization: Bearer` header when an API key is configured, and logs
// every attempt. TakeData sends a request and decodes a JSON body; any 4xx or
// 5xx response becomes a *StatusError carrying the raw response body text.
package httpclient
