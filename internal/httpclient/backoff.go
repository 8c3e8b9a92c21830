package httpclient

import (
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"
)

// jitterFactor spreads each wait by up to ±30%.
const jitterFactor = 0.3

// JitterBackoff waits min·2^attempt with ±30% jitter, never outside [min, max].
// A Retry-After header on 429/503 responses takes precedence, capped at max.
func JitterBackoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
		if d, ok := retryAfter(resp); ok {
			if d > max {
				return max
			}
			return d
		}
	}

	backoff := float64(min) * math.Pow(2, float64(attemptNum))
	if backoff > float64(max) || math.IsInf(backoff, 0) {
		backoff = float64(max)
	}
	backoff += backoff * jitterFactor * (rand.Float64()*2 - 1)

	wait := time.Duration(backoff)
	if wait < min {
		wait = min
	}
	if wait > max {
		wait = max
	}
	return wait
}

func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
