package transport

import (
	"net/url"
	"purl/pkg/serrors"
)

// InsecureWarning is the advisory printed when a plain HTTP target is allowed.
const InsecureWarning = "Warning: Insecure HTTP request. Your traffic may be visible to attackers."

// Gate applies the transport policy to u before any network activity.
// It returns insecure=true when u is plain HTTP and allowInsecure permits it;
// plain HTTP without allowInsecure is serrors.ErrInsecureBlocked and any
// scheme other than http or https is serrors.ErrInvalidURL.
func Gate(u *url.URL, allowInsecure bool) (insecure bool, err error) {
	switch u.Scheme {
	case "https":
		return false, nil
	case "http":
		if !allowInsecure {
			return false, serrors.With(serrors.ErrInsecureBlocked,
				"HTTP is insecure. Use --unsecured (-u) to allow it: %s", u.Redacted())
		}

		return true, nil
	default:
		return false, serrors.With(serrors.ErrInvalidURL, "unsupported scheme %q", u.Scheme)
	}
}
