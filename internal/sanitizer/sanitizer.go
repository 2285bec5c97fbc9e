// Package sanitizer turns user input into a fetchable URL: it defaults the
// scheme to https, normalizes the authority and strips tracking parameters
// from the query.
package sanitizer

import (
	"net"
	"net/url"
	"purl/internal/config"
	"purl/pkg/serrors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"golang.org/x/net/idna"
)

// Options configure which query parameters are stripped.
type Options struct {
	// Denylist selects the tracking parameters. A zero Denylist strips nothing.
	Denylist Denylist
}

// NewOptions constructs Options from the default denylist extended by the
// configured keys and prefixes.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Denylist: DefaultDenylist().With(cfg.Sanitizer.ExtraKeys, cfg.Sanitizer.ExtraPrefixes),
	}
}

// Sanitizer normalizes URLs. It holds no mutable state and is safe for concurrent use.
type Sanitizer struct {
	denylist Denylist
}

// New creates a Sanitizer.
func New(opts Options) *Sanitizer {
	return &Sanitizer{denylist: opts.Denylist}
}

// Result is a sanitized URL together with the keys that were stripped from it.
type Result struct {
	URL     *url.URL
	Removed []string
}

// String returns the serialized sanitized URL.
func (r Result) String() string { return r.URL.String() }

// Sanitize sanitizes raw with the default denylist.
func Sanitize(raw string) (string, error) {
	return New(Options{Denylist: DefaultDenylist()}).Sanitize(raw)
}

// Sanitize returns the sanitized form of raw:
//   - https:// is prepended unless raw already starts with http:// or https://
//   - scheme and host are lower-cased, IDN hosts converted to punycode
//   - an empty path becomes "/"
//   - denylisted query pairs are removed, the rest re-encoded in order
//   - the query is omitted entirely when no pair remains
//
// Userinfo, port, path and fragment are kept. Errors are of kind
// serrors.ErrInvalidURL.
func (s *Sanitizer) Sanitize(raw string) (string, error) {
	res, err := s.SanitizeWithReport(raw)
	if err != nil {
		return "", err
	}

	return res.String(), nil
}

// SanitizeWithReport is Sanitize returning the parsed URL and the stripped keys.
func (s *Sanitizer) SanitizeWithReport(raw string) (Result, error) {
	withScheme := withDefaultScheme(strings.TrimSpace(raw))

	u, err := url.Parse(withScheme)
	if err != nil {
		return Result{}, serrors.Wrap(serrors.ErrInvalidURL, err, "invalid URL: %s", withScheme)
	}
	if err := normalizeAuthority(u); err != nil {
		return Result{}, serrors.Wrap(serrors.ErrInvalidURL, err, "invalid URL: %s", withScheme)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	kept, removed := s.filter(parsePairs(u.RawQuery))
	u.RawQuery = encodePairs(kept)
	u.ForceQuery = false

	return Result{URL: u, Removed: removed}, nil
}

func (s *Sanitizer) filter(pairs []pair) ([]pair, []string) {
	kept := make([]pair, 0, len(pairs))
	var removed []string
	for _, p := range pairs {
		if s.denylist.IsTracking(p.key) {
			removed = append(removed, p.key)

			continue
		}
		kept = append(kept, p)
	}

	return kept, removed
}

func withDefaultScheme(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}

	return "https://" + raw
}

// normalizeAuthority validates and canonicalizes u.Host.
func normalizeAuthority(u *url.URL) error {
	host, port := u.Hostname(), u.Port()
	if host == "" {
		return errors.New("missing host")
	}
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > 65535 {
			return errors.Errorf("invalid port %q", port)
		}
	}

	if !isASCII(host) {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return errors.Errorf("invalid host %q: %v", host, err)
		}
		host = ascii
	}
	host = strings.ToLower(host)

	switch {
	case port != "":
		u.Host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		u.Host = "[" + host + "]"
	default:
		u.Host = host
	}

	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
