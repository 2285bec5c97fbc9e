// Package purl runs one fetch invocation: sanitize the input, apply the
// transport gate, fetch and render. Every failure is returned as a
// serrors.Error; nothing in here terminates the process.
package purl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"purl/internal/fetcher"
	"purl/internal/sanitizer"
	"purl/internal/transport"
	"purl/pkg/domain"
	"purl/pkg/logger"
	"purl/pkg/serrors"

	"go.uber.org/zap"
)

// Request holds the arguments of a single invocation.
type Request struct {
	// URL is the raw user input.
	URL string
	// AllowInsecure permits plain HTTP targets.
	AllowInsecure bool
	// Proxy is an optional upstream proxy URL.
	Proxy string
	// ShowHeaders prints the response headers before the body.
	ShowHeaders bool
}

// FetcherFactory builds the fetcher once the target has passed the gate, so
// a bad proxy is only reported for URLs that would otherwise be fetched.
type FetcherFactory func(req Request) (fetcher.Fetcher, error)

// Runner executes invocations. Out receives the fetched content, errOut the
// advisory warnings.
type Runner struct {
	sanitizer  *sanitizer.Sanitizer
	newFetcher FetcherFactory
	out        io.Writer
	errOut     io.Writer
}

// New constructs a Runner.
func New(s *sanitizer.Sanitizer, newFetcher FetcherFactory, out, errOut io.Writer) *Runner {
	return &Runner{
		sanitizer:  s,
		newFetcher: newFetcher,
		out:        out,
		errOut:     errOut,
	}
}

// Run performs the invocation described by req.
func (r *Runner) Run(ctx context.Context, req Request) error {
	res, err := r.sanitizer.SanitizeWithReport(req.URL)
	if err != nil {
		return err
	}
	target := res.String()
	ctx = logger.WithFields(ctx, zap.String("url", res.URL.Redacted()))
	logger.Debug(ctx, "sanitized URL", zap.Strings("removed_params", res.Removed))

	insecure, err := transport.Gate(res.URL, req.AllowInsecure)
	if err != nil {
		return err
	}
	if insecure {
		if _, err := fmt.Fprintln(r.errOut, transport.InsecureWarning); err != nil {
			return serrors.Wrap(serrors.ErrInternal, err, "could not write warning")
		}
	}

	f, err := r.newFetcher(req)
	if err != nil {
		return err
	}

	resp, err := f.Fetch(ctx, target)
	if err != nil {
		return err
	}
	logger.Info(ctx, "fetched URL",
		zap.Int("status_code", resp.Status),
		zap.String("final_url", redact(resp.URL)),
		zap.Int("body_bytes", len(resp.Body)),
	)

	if err := render(r.out, resp, req.ShowHeaders); err != nil {
		return serrors.Wrap(serrors.ErrInternal, err, "could not write output")
	}

	return nil
}

// redact hides any userinfo password in raw. Unparsable input is dropped.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	return u.Redacted()
}

// render writes the optional header block followed by the body and a newline.
func render(w io.Writer, resp *domain.Response, showHeaders bool) error {
	bw := bufio.NewWriter(w)
	if showHeaders {
		for _, h := range resp.Headers {
			_, _ = fmt.Fprintf(bw, "%s: %s\n", h.Name, h.Value)
		}
		_, _ = fmt.Fprintln(bw)
	}
	_, _ = fmt.Fprintln(bw, resp.Body)

	return bw.Flush()
}
