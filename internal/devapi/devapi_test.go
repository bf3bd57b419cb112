package devapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/foodbites/internal/api"
)

type guard struct {
	token       string
	invalidated []string
}

func (g *guard) Token() string { return g.token }

func (g *guard) Invalidate(reason string) {
	g.token = ""
	g.invalidated = append(g.invalidated, reason)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New("test-secret", zerolog.Nop())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func newClient(t *testing.T, base string, g *guard) *api.Client {
	t.Helper()
	c, err := api.NewClient(base, api.WithSession(g))
	require.NoError(t, err)
	return c
}

func TestNewRejectsEmptySecret(t *testing.T) {
	_, err := New("  ", zerolog.Nop())
	require.Error(t, err)
}

func TestFoodsFilters(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t, ts.URL, &guard{})
	ctx := context.Background()

	all, err := c.FetchFoods(ctx, api.FoodQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 13)

	italian, err := c.FetchFoods(ctx, api.FoodQuery{Cuisine: "italian"})
	require.NoError(t, err)
	assert.Len(t, italian, 4)
	for _, f := range italian {
		assert.Equal(t, "Italian", f.Cuisine)
		assert.Equal(t, "Luigi's Trattoria", f.Restaurant.Name)
	}

	pizza, err := c.FetchFoods(ctx, api.FoodQuery{Cuisine: "Italian", Search: "PIZZA"})
	require.NoError(t, err)
	require.Len(t, pizza, 2)
	assert.Equal(t, "f01", pizza[0].ID())

	byCategory, err := c.FetchFoods(ctx, api.FoodQuery{Search: "curry"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Chicken Tikka Masala", byCategory[0].Name)

	salad, err := c.FetchFoods(ctx, api.FoodQuery{Search: "caesar"})
	require.NoError(t, err)
	require.Len(t, salad, 1)
	assert.Equal(t, "Patty Shack", salad[0].Restaurant.Name)
	assert.Empty(t, salad[0].Restaurant.ID)
}

func TestRestaurantSearch(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t, ts.URL, &guard{})

	got, err := c.SearchRestaurants(context.Background(), "downtown")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Luigi's Trattoria", got[0].Name)
}

func TestAccountWithValidToken(t *testing.T) {
	srv, ts := newTestServer(t)
	token, err := srv.IssueToken("ana", time.Hour)
	require.NoError(t, err)
	c := newClient(t, ts.URL, &guard{token: token})
	ctx := context.Background()

	profile, err := c.FetchProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)

	orders, err := c.FetchMyOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "out_for_delivery", orders[1].Status)
	assert.InDelta(t, 17.5, orders[1].TotalAmount, 0.001)
}

func TestUserWithoutOrdersGetsEmptyList(t *testing.T) {
	srv, ts := newTestServer(t)
	token, err := srv.IssueToken("ben", time.Hour)
	require.NoError(t, err)

	orders, err := newClient(t, ts.URL, &guard{token: token}).FetchMyOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestInvalidTokenInvalidatesSession(t *testing.T) {
	srv, ts := newTestServer(t)

	other, err := New("other-secret", zerolog.Nop())
	require.NoError(t, err)
	forged, err := other.IssueToken("ana", time.Hour)
	require.NoError(t, err)

	expired, err := srv.IssueToken("ana", -time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{"forged": forged, "expired": expired, "garbage": "not-a-jwt"} {
		t.Run(name, func(t *testing.T) {
			g := &guard{token: token}
			_, err := newClient(t, ts.URL, g).FetchProfile(context.Background())
			require.Error(t, err)
			assert.True(t, api.IsInvalidSession(err))
			assert.Equal(t, []string{api.InvalidTokenMessage}, g.invalidated)
			assert.Empty(t, g.token)
		})
	}
}

func TestMissingTokenIsNotAnInvalidation(t *testing.T) {
	_, ts := newTestServer(t)
	g := &guard{}

	_, err := newClient(t, ts.URL, g).FetchMyOrders(context.Background())
	require.Error(t, err)
	assert.False(t, api.IsInvalidSession(err))
	assert.Equal(t, msgNoToken, api.MessageOf(err, ""))
	assert.Empty(t, g.invalidated)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	srv, _ := newTestServer(t)
	_, err := srv.IssueToken("nobody", time.Hour)
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestLoginIssuesUsableToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/users/login", "application/json",
		strings.NewReader(`{"username":"ana","password":"ana-password"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)

	profile, err := newClient(t, ts.URL, &guard{token: body.Token}).FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", profile.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, ts := newTestServer(t)

	for name, payload := range map[string]string{
		"wrong password": `{"username":"ana","password":"nope"}`,
		"unknown user":   `{"username":"zed","password":"zed-password"}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/users/login", "application/json", strings.NewReader(payload))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	resp, err := http.Post(ts.URL+"/api/users/login", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
