package domain

// BinaryHeaderValue replaces header values that are not printable text.
const BinaryHeaderValue = "<binary>"

// Header is a single response header line.
type Header struct {
	Name  string
	Value string
}

// Response is the outcome of a completed fetch.
type Response struct {
	// URL is the final URL after redirects.
	URL string
	// Status is the HTTP status code; non-2xx statuses are still responses.
	Status int
	// Proto is the protocol version, e.g. "HTTP/1.1".
	Proto string
	// Headers are the response headers, one entry per value.
	Headers []Header
	// Body is the full response body decoded to UTF-8.
	Body string
}
