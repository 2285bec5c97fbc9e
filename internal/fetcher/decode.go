package fetcher

import (
	"io"
	"mime"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// decodeBody reads r fully and converts it to UTF-8 using the charset named
// in contentType. Missing or unknown charsets are treated as UTF-8 and
// invalid sequences are replaced with U+FFFD.
func decodeBody(r io.Reader, contentType string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "read")
	}

	if enc := encodingFor(contentType); enc != nil {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", errors.Wrap(err, "decode")
		}
		raw = decoded
	}

	return strings.ToValidUTF8(string(raw), "\uFFFD"), nil
}

// encodingFor returns nil for UTF-8, unknown or absent charsets.
func encodingFor(contentType string) encoding.Encoding {
	if contentType == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	label := params["charset"]
	if label == "" {
		return nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return nil
	}

	return enc
}
