// Package transport builds the outbound HTTP client and enforces the
// secure-by-default transport policy: plain HTTP only on request, mandatory
// TLS verification, capped redirects and an optional single upstream proxy.
package transport

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/http"
	"net/url"
	"purl/internal/config"
	"purl/pkg/logger"
	"purl/pkg/roundtrip"
	"purl/pkg/serrors"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a whole request including redirects and body.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRedirects is the number of redirects followed before failing.
	DefaultMaxRedirects = 5
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "curl/8.0"
)

// Options configure NewClient. Timeout is the only bound applied by
// default; the per-phase timeouts stay disabled unless set explicitly.
type Options struct {
	Timeout               time.Duration
	DialTimeout           time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	MaxRedirects          int

	// Proxy is an upstream proxy URL (http, https, socks5 or socks5h) used for
	// all traffic. Empty means a direct connection; environment proxies are
	// never consulted.
	Proxy string
	// AllowInsecure permits following redirects to plain HTTP locations.
	AllowInsecure bool
	// RootCAs overrides the system trust store. Verification itself cannot be disabled.
	RootCAs *x509.CertPool
}

// DefaultOptions returns the built-in policy.
func DefaultOptions() Options {
	return Options{
		Timeout:      DefaultTimeout,
		MaxRedirects: DefaultMaxRedirects,
	}
}

// NewOptions constructs Options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Timeout:               cfg.HTTP.Timeout,
		DialTimeout:           cfg.HTTP.DialTimeout,
		TLSHandshakeTimeout:   cfg.HTTP.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.HTTP.ResponseHeaderTimeout,
		MaxRedirects:          cfg.HTTP.MaxRedirects,
	}
}

// NewClient builds the constrained client. A malformed or unsupported proxy
// is an error of kind serrors.ErrTransport.
func NewClient(opts Options) (*http.Client, error) {
	proxy, err := proxyFunc(opts.Proxy)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrTransport, err, "could not build HTTP client")
	}

	dialer := &net.Dialer{Timeout: opts.DialTimeout}
	tr := &http.Transport{
		Proxy:       proxy,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,
		DisableKeepAlives: true,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    opts.RootCAs,
		},
		TLSHandshakeTimeout:   opts.TLSHandshakeTimeout,
		ResponseHeaderTimeout: opts.ResponseHeaderTimeout,
	}

	return &http.Client{
		Transport:     roundtrip.WithLogger(tr),
		Timeout:       opts.Timeout,
		CheckRedirect: redirectPolicy(opts.MaxRedirects, opts.AllowInsecure),
	}, nil
}

// redirectPolicy follows at most maxRedirects hops and re-applies the gate on
// every hop so an https origin cannot bounce the client onto plain HTTP.
func redirectPolicy(maxRedirects int, allowInsecure bool) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > maxRedirects {
			logger.Warn(req.Context(), "Redirect limit reached", zap.Int("max_redirects", maxRedirects))

			return errors.Errorf("stopped after %d redirects", maxRedirects)
		}
		if _, err := Gate(req.URL, allowInsecure); err != nil {
			logger.Warn(req.Context(), "Refusing redirect", zap.String("location", req.URL.Redacted()))

			return errors.Wrap(err, "refusing redirect")
		}

		return nil
	}
}

func proxyFunc(raw string) (func(*http.Request) (*url.URL, error), error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	// a bare host:port is an HTTP proxy
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid proxy URL %q", raw)
	}
	if u.Host == "" {
		return nil, errors.Errorf("invalid proxy URL %q: missing host", raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "socks5":
	case "socks5h":
		// net/http's SOCKS5 dialer already hands host names to the proxy
		u.Scheme = "socks5"
	default:
		return nil, errors.Errorf("unsupported proxy scheme %q", u.Scheme)
	}

	return http.ProxyURL(u), nil
}
