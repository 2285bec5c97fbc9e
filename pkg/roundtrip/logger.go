// Package roundtrip contains http.RoundTripper middlewares used by the
// outbound client.
//
// Provided middlewares:
//   - WithLogger: Attaches a per-hop request ID to the context and logs every
//     hop (including redirects) with its status and latency.
package roundtrip

import (
	"net/http"
	"purl/pkg/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDKey is the log field carrying the per-hop request ID.
const RequestIDKey = "request_id"

// Func allows using a function as an http.RoundTripper.
type Func func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f Func) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// WithLogger returns a RoundTripper that logs each hop sent through next at
// debug level. The request itself is never modified, and hops pass straight
// through when debug logging is off.
func WithLogger(next http.RoundTripper) http.RoundTripper {
	return Func(func(r *http.Request) (*http.Response, error) {
		if !logger.IsDebug(r.Context()) {
			return next.RoundTrip(r)
		}
		ctx := logger.WithFields(r.Context(), zap.String(RequestIDKey, uuid.New().String()))

		logger.Debug(ctx, "Sending request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.Redacted()),
			zap.String("user_agent", r.UserAgent()),
		)

		start := time.Now()
		resp, err := next.RoundTrip(r)
		if err != nil {
			logger.Debug(ctx, "Request failed",
				zap.Error(err),
				zap.Float64("latency", time.Since(start).Seconds()),
			)

			return nil, err
		}

		logger.Debug(ctx, "Response received",
			zap.Int("status_code", resp.StatusCode),
			zap.String("proto", resp.Proto),
			zap.Float64("latency", time.Since(start).Seconds()),
			zap.String("location", resp.Header.Get("Location")),
		)

		return resp, nil
	})
}
