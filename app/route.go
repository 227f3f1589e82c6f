package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrBadRoute is returned by ParseRoute for locations it does not know.
var ErrBadRoute = errors.New("unknown route")

// Route is a location in the browser:
//
//	/
//	/repo/:name
//	/repo/:name/:sha1
//	/repo/:name/:sha1/:path+
type Route struct {
	Repo string
	SHA1 string
	Path []string
}

// ParseRoute parses a location. Segments are percent-decoded.
func ParseRoute(s string) (Route, error) {
	trimmed := strings.Trim(s, "/")
	if trimmed == "" {
		return Route{}, nil
	}

	raw := strings.Split(trimmed, "/")
	if raw[0] != "repo" || len(raw) < 2 {
		return Route{}, fmt.Errorf("%w: %q", ErrBadRoute, s)
	}

	segments := make([]string, 0, len(raw)-1)
	for _, seg := range raw[1:] {
		dec, err := url.PathUnescape(seg)
		if err != nil {
			return Route{}, fmt.Errorf("%w: %q: %v", ErrBadRoute, s, err)
		}
		if dec == "" {
			return Route{}, fmt.Errorf("%w: %q: empty segment", ErrBadRoute, s)
		}
		segments = append(segments, dec)
	}

	r := Route{Repo: segments[0]}
	if len(segments) > 1 {
		r.SHA1 = segments[1]
	}
	if len(segments) > 2 {
		r.Path = segments[2:]
	}
	return r, nil
}

func (r Route) String() string {
	if r.Repo == "" {
		return "/"
	}
	parts := []string{"", "repo", url.PathEscape(r.Repo)}
	if r.SHA1 != "" {
		parts = append(parts, url.PathEscape(r.SHA1))
		for _, seg := range r.Path {
			parts = append(parts, url.PathEscape(seg))
		}
	}
	return strings.Join(parts, "/")
}
