package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size used when no limit parameter is supplied.
	DefaultLimit = 100
	// MaxLimit caps the page size a client may request.
	MaxLimit = 1000
)

// Params holds offset pagination parameters extracted from query strings.
type Params struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// DefaultParams returns the default pagination window.
func DefaultParams() Params {
	return Params{Skip: 0, Limit: DefaultLimit}
}

// FromRequest extracts skip/limit parameters from an HTTP request.
// Malformed or negative values fall back to the defaults; limits above
// MaxLimit are clamped rather than rejected.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if skip := r.URL.Query().Get("skip"); skip != "" {
		if v, err := strconv.Atoi(skip); err == nil && v >= 0 {
			p.Skip = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v >= 1 {
			p.Limit = v
			if p.Limit > MaxLimit {
				p.Limit = MaxLimit
			}
		}
	}

	return p
}
