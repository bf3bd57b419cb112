package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeSession struct {
	mu          sync.Mutex
	token       string
	invalidated []string
}

func (f *fakeSession) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) Invalidate(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.invalidated = append(f.invalidated, reason)
}

func (f *fakeSession) invalidations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.invalidated)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBase {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBase)
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestClient_FetchFoodsEncodesPresentFiltersOnly(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/foods" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"f1","name":"Pizza","price":12.5,"cuisine":"Italian","restaurant":"r1"}]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := testContext(t)

	foods, err := c.FetchFoods(ctx, FoodQuery{Search: " pizza "})
	if err != nil {
		t.Fatalf("FetchFoods returned error: %v", err)
	}
	if len(foods) != 1 || foods[0].ID() != "f1" || foods[0].Restaurant.Name != "r1" {
		t.Fatalf("foods = %#v, want one pizza from r1", foods)
	}
	if gotQuery.Get("search") != " pizza " {
		t.Fatalf("search = %q, want %q", gotQuery.Get("search"), " pizza ")
	}
	if _, ok := gotQuery["cuisine"]; ok {
		t.Fatalf("cuisine param present for blank filter: %v", gotQuery)
	}
	for header, want := range map[string]string{
		"Cache-Control": "no-cache",
		"Pragma":        "no-cache",
		"Expires":       "0",
		"Accept":        "application/json",
		"User-Agent":    defaultUserAgent,
	} {
		if got := gotHeaders.Get(header); got != want {
			t.Fatalf("%s = %q, want %q", header, got, want)
		}
	}
	if gotHeaders.Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID missing")
	}
	if gotHeaders.Get("Authorization") != "" {
		t.Fatalf("menu request carried Authorization header")
	}

	if _, err := c.FetchFoods(ctx, FoodQuery{}); err != nil {
		t.Fatalf("FetchFoods returned error: %v", err)
	}
	if len(gotQuery) != 0 {
		t.Fatalf("query = %v, want no params for empty filters", gotQuery)
	}
}

func TestClient_AuthenticatedEndpointsSendBearer(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	auth := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		auth[r.URL.Path] = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/users/profile":
			_ = json.NewEncoder(w).Encode(Profile{ID: "u1", Username: "ada"})
		case "/api/orders/my-orders":
			_ = json.NewEncoder(w).Encode([]Order{{ID: "o1"}, {ID: "o2"}})
		case "/api/restaurants":
			if r.URL.Query().Get("search") != "taco" {
				http.Error(w, "bad search", http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode([]Restaurant{{ID: "r1", Name: "Taco Town"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	sess := &fakeSession{token: "tok-123"}
	c, err := NewClient(server.URL, WithSession(sess))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := testContext(t)

	profile, err := c.FetchProfile(ctx)
	if err != nil {
		t.Fatalf("FetchProfile returned error: %v", err)
	}
	if profile.Username != "ada" {
		t.Fatalf("profile = %#v, want ada", profile)
	}
	orders, err := c.FetchMyOrders(ctx)
	if err != nil {
		t.Fatalf("FetchMyOrders returned error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("len(orders) = %d, want 2", len(orders))
	}
	restaurants, err := c.SearchRestaurants(ctx, "taco")
	if err != nil {
		t.Fatalf("SearchRestaurants returned error: %v", err)
	}
	if len(restaurants) != 1 || restaurants[0].Name != "Taco Town" {
		t.Fatalf("restaurants = %#v", restaurants)
	}

	mu.Lock()
	defer mu.Unlock()
	for _, path := range []string{"/api/users/profile", "/api/orders/my-orders"} {
		if auth[path] != "Bearer tok-123" {
			t.Fatalf("%s Authorization = %q, want bearer", path, auth[path])
		}
	}
	if auth["/api/restaurants"] != "" {
		t.Fatalf("restaurant search carried Authorization %q", auth["/api/restaurants"])
	}
}

func TestClient_InvalidTokenInvalidatesSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		invalidate bool
	}{
		{name: "401 invalid token", status: http.StatusUnauthorized, body: `{"message":"Invalid Token"}`, invalidate: true},
		{name: "400 invalid token", status: http.StatusBadRequest, body: `{"message":"Invalid Token"}`, invalidate: true},
		{name: "401 other message", status: http.StatusUnauthorized, body: `{"message":"Token expired"}`},
		{name: "403 invalid token", status: http.StatusForbidden, body: `{"message":"Invalid Token"}`},
		{name: "400 case differs", status: http.StatusBadRequest, body: `{"message":"invalid token"}`},
		{name: "500 no body", status: http.StatusInternalServerError, body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			sess := &fakeSession{token: "tok"}
			c, err := NewClient(server.URL, WithSession(sess))
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchProfile(testContext(t))
			if err == nil {
				t.Fatalf("FetchProfile returned nil error for status %d", tt.status)
			}
			var want int
			if tt.invalidate {
				want = 1
			}
			if got := sess.invalidations(); got != want {
				t.Fatalf("invalidations = %d, want %d", got, want)
			}
			if IsInvalidSession(err) != tt.invalidate {
				t.Fatalf("IsInvalidSession = %v, want %v", IsInvalidSession(err), tt.invalidate)
			}
		})
	}
}

func TestClient_InterceptorAppliesToUnauthenticatedCalls(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid Token"}`))
	}))
	t.Cleanup(server.Close)

	sess := &fakeSession{token: "tok"}
	c, err := NewClient(server.URL, WithSession(sess))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchFoods(testContext(t), FoodQuery{}); err == nil {
		t.Fatalf("FetchFoods returned nil error")
	}
	if sess.invalidations() != 1 {
		t.Fatalf("invalidations = %d, want 1", sess.invalidations())
	}
}

func TestClient_DecodeErrorIsWrapped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchFoods(testContext(t), FoodQuery{})
	if err == nil {
		t.Fatalf("FetchFoods returned nil error for malformed body")
	}
	if got := err.Error(); len(got) < len("decode response") || got[:len("decode response")] != "decode response" {
		t.Fatalf("error = %q, want decode response prefix", got)
	}
}

func TestClient_RequestHonoursTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	start := time.Now()
	err = c.Request(context.Background(), http.MethodGet, "/slow", RequestOptions{Timeout: 50 * time.Millisecond}, nil)
	if err == nil {
		t.Fatalf("Request returned nil error, want timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Request took %v, want it to stop near the 50ms timeout", elapsed)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_OnlyFoodsCarryADeadline(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	deadlines := map[string]bool{}
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		_, has := r.Context().Deadline()
		mu.Lock()
		deadlines[r.URL.Path] = has
		mu.Unlock()
		body := "[]"
		if r.URL.Path == "/api/users/profile" {
			body = `{"username":"ana"}`
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}, nil
	})

	c, err := NewClient("http://api.test", WithHTTPClient(&http.Client{Transport: transport}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if def, _ := NewClient("http://api.test"); def.http.Timeout != 0 {
		t.Fatalf("default http.Client timeout = %v, want none", def.http.Timeout)
	}

	ctx := context.Background()
	if _, err := c.FetchFoods(ctx, FoodQuery{}); err != nil {
		t.Fatalf("FetchFoods returned error: %v", err)
	}
	if _, err := c.FetchProfile(ctx); err != nil {
		t.Fatalf("FetchProfile returned error: %v", err)
	}
	if _, err := c.FetchMyOrders(ctx); err != nil {
		t.Fatalf("FetchMyOrders returned error: %v", err)
	}
	if _, err := c.SearchRestaurants(ctx, "lu"); err != nil {
		t.Fatalf("SearchRestaurants returned error: %v", err)
	}

	want := map[string]bool{
		"/api/foods":            true,
		"/api/users/profile":    false,
		"/api/orders/my-orders": false,
		"/api/restaurants":      false,
	}
	for path, has := range want {
		if deadlines[path] != has {
			t.Fatalf("%s deadline = %v, want %v", path, deadlines[path], has)
		}
	}
}

func TestClient_ImageURL(t *testing.T) {
	c, err := NewClient("http://api.test:5000/ignored")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	tests := map[string]string{
		"":                          "",
		"/uploads/pizza.png":        "http://api.test:5000/uploads/pizza.png",
		"uploads/pizza.png":         "http://api.test:5000/uploads/pizza.png",
		"https://cdn.test/a.png":    "https://cdn.test/a.png",
	}
	for in, want := range tests {
		if got := c.ImageURL(in); got != want {
			t.Fatalf("ImageURL(%q) = %q, want %q", in, got, want)
		}
	}
}
