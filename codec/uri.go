package codec

import (
	"errors"
	"net/url"

	wirebind "github.com/reoring/wirebind"
)

var errRelativeURI = errors.New("uri has no scheme")

// URI converts absolute URI strings such as document URIs. Relative
// references are rejected.
func URI() wirebind.Converter[*url.URL] {
	return Transform(wirebind.String(), "uri", parseURI, func(u *url.URL) (string, error) {
		if u == nil {
			return "", errors.New("nil uri")
		}
		return u.String(), nil
	})
}

func parseURI(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, errRelativeURI
	}
	return u, nil
}
