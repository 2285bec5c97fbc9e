package fetcher

import (
	"context"
	"errors"
	"net/http"
	"purl/pkg/domain"
	"purl/pkg/serrors"
	"sort"
	"strings"
)

// Client is the net/http backed Fetcher. Transport policy (timeouts,
// redirects, TLS, proxy) lives in the injected *http.Client.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Ensure Client conforms to the Fetcher interface at compile time.
var _ Fetcher = (*Client)(nil)

// New constructs a Client sending userAgent with every request.
func New(httpClient *http.Client, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Fetch issues one GET to URL with Accept: text/plain and Connection: close.
// Transport failures are serrors.ErrTransport (or serrors.ErrInsecureBlocked
// when a redirect tried to leave TLS); an unreadable body is serrors.ErrDecode.
// Non-2xx statuses are returned as regular responses.
func (c *Client) Fetch(ctx context.Context, URL string) (*domain.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrTransport, err, "could not create request for %s", URL)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Connection", "close")
	req.Close = true

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := serrors.ErrTransport
		if errors.Is(err, serrors.ErrInsecureBlocked) {
			kind = serrors.ErrInsecureBlocked
		}

		return nil, serrors.Wrap(kind, err, "could not fetch URL %s", URL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrDecode, err, "could not read response body from %s", URL)
	}

	finalURL := URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &domain.Response{
		URL:     finalURL,
		Status:  resp.StatusCode,
		Proto:   resp.Proto,
		Headers: collectHeaders(resp.Header),
		Body:    body,
	}, nil
}

// collectHeaders flattens h into one entry per value, with names in lower
// case as they appear on the wire. net/http does not keep the wire order of
// header names, so names are sorted; values of a repeated header keep their
// received order.
func collectHeaders(h http.Header) []domain.Header {
	values := make(map[string][]string, len(h))
	names := make([]string, 0, len(h))
	for key, vs := range h {
		name := strings.ToLower(key)
		if _, ok := values[name]; !ok {
			names = append(names, name)
		}
		values[name] = append(values[name], vs...)
	}
	sort.Strings(names)

	headers := make([]domain.Header, 0, len(names))
	for _, name := range names {
		for _, value := range values[name] {
			if !printable(value) {
				value = domain.BinaryHeaderValue
			}
			headers = append(headers, domain.Header{Name: name, Value: value})
		}
	}

	return headers
}

// printable reports whether v holds only visible ASCII, spaces and tabs.
func printable(v string) bool {
	for i := 0; i < len(v); i++ {
		if c := v[i]; c != '\t' && (c < 0x20 || c >= 0x7f) {
			return false
		}
	}

	return true
}
