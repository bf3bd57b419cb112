// Package route models the storefront's in-app location: a path plus the
// query parameters that carry shareable view state, and a history stack
// that distinguishes pushes from replaces.
package route

import (
	"net/url"
	"strings"
)

// Route paths.
const (
	Home     = "/"
	Foods    = "/foods"
	Cart     = "/cart"
	Orders   = "/orders"
	Profile  = "/profile"
	Login    = "/login"
	Activity = "/activity"
)

// Recognised query parameters.
const (
	ParamSearch  = "search"
	ParamCuisine = "cuisine"
	ParamType    = "type"
)

// Search domains carried by ParamType.
const (
	TypeFood       = "food"
	TypeRestaurant = "restaurant"
)

// Known reports whether path is one of the fixed routes.
func Known(path string) bool {
	switch path {
	case Home, Foods, Cart, Orders, Profile, Login, Activity:
		return true
	}
	return false
}

// Location is a path plus its query parameters.
type Location struct {
	Path  string
	Query url.Values
}

// New returns a Location for path with no query.
func New(path string) Location {
	return Location{Path: path, Query: url.Values{}}
}

// Parse reads "/foods?search=pizza". Unknown paths fall back to Home.
func Parse(raw string) Location {
	raw = strings.TrimSpace(raw)
	path, query, _ := strings.Cut(raw, "?")
	if path == "" {
		path = Home
	}
	if !Known(path) {
		path = Home
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		values = url.Values{}
	}
	return Location{Path: path, Query: values}
}

// Get returns the first value of key.
func (l Location) Get(key string) string {
	if l.Query == nil {
		return ""
	}
	return l.Query.Get(key)
}

// With returns a copy of l with key set to value. An empty value deletes
// the key.
func (l Location) With(key, value string) Location {
	out := Location{Path: l.Path, Query: cloneValues(l.Query)}
	if value == "" {
		out.Query.Del(key)
		return out
	}
	out.Query.Set(key, value)
	return out
}

// WithPath returns a copy of l pointing at path with the same query.
func (l Location) WithPath(path string) Location {
	return Location{Path: path, Query: cloneValues(l.Query)}
}

// QueryString encodes the query with keys in sorted order.
func (l Location) QueryString() string {
	if len(l.Query) == 0 {
		return ""
	}
	return l.Query.Encode()
}

func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = Home
	}
	if qs := l.QueryString(); qs != "" {
		return path + "?" + qs
	}
	return path
}

// Equal compares path and encoded query.
func (l Location) Equal(other Location) bool {
	return l.Path == other.Path && l.QueryString() == other.QueryString()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
