package sanitizer

import "strings"

// Denylist describes which query keys are tracking parameters. Matching is
// case-insensitive on the key; values are never inspected.
type Denylist struct {
	// Keys are matched exactly.
	Keys []string
	// Prefixes are matched against the start of the key.
	Prefixes []string
}

// DefaultDenylist returns the built-in set of analytics and attribution parameters.
func DefaultDenylist() Denylist {
	return Denylist{
		Keys:     []string{"fbclid", "gclid", "mc_cid", "mc_eid", "ref", "trk", "aff", "igshid", "scid"},
		Prefixes: []string{"utm_"},
	}
}

// With returns a copy of d extended by keys and prefixes.
func (d Denylist) With(keys, prefixes []string) Denylist {
	return Denylist{
		Keys:     append(append([]string(nil), d.Keys...), keys...),
		Prefixes: append(append([]string(nil), d.Prefixes...), prefixes...),
	}
}

// IsTracking reports whether key is denylisted.
func (d Denylist) IsTracking(key string) bool {
	key = strings.ToLower(key)
	for _, k := range d.Keys {
		if key == strings.ToLower(k) {
			return true
		}
	}
	for _, p := range d.Prefixes {
		if p != "" && strings.HasPrefix(key, strings.ToLower(p)) {
			return true
		}
	}

	return false
}
