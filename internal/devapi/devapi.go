// Package devapi is a small in-process stand-in for the foodbites backend.
// It serves seeded foods, restaurants, a profile and orders with the same
// paths and payload shapes, so the client can be run and tested without the
// real service. Tokens are HS256 JWTs signed with the server's secret.
package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/five82/foodbites/internal/api"
)

// Messages the backend sends for rejected credentials.
const (
	msgNoToken = "Not authorized, no token"
	msgUnknown = "User not found"
	msgBadCred = "Invalid username or password"
)

// loginTTL is the lifetime of tokens issued by the login route.
const loginTTL = 24 * time.Hour

type userKey struct{}

type user struct {
	profile  api.Profile
	orders   []api.Order
	password []byte // bcrypt hash
}

// Server holds the seed data and the token secret.
type Server struct {
	secret      []byte
	log         zerolog.Logger
	now         func() time.Time
	foods       []api.Food
	restaurants []api.Restaurant
	users       map[string]user
}

// New builds a Server with the default seed data.
func New(secret string, log zerolog.Logger) (*Server, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("token secret is empty")
	}
	foods, restaurants, users := seed()
	for name, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(name+"-password"), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}
		u.password = hash
		users[name] = u
	}
	return &Server{
		secret:      []byte(secret),
		log:         log,
		now:         time.Now,
		foods:       foods,
		restaurants: restaurants,
		users:       users,
	}, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/foods", s.handleFoods)
	r.Get("/api/restaurants", s.handleRestaurants)
	r.Post("/api/users/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/api/users/profile", s.handleProfile)
		r.Get("/api/orders/my-orders", s.handleMyOrders)
	})
	return r
}

// IssueToken signs a token for username valid for ttl.
func (s *Server) IssueToken(username string, ttl time.Duration) (string, error) {
	u, ok := s.users[username]
	if !ok {
		return "", fmt.Errorf("unknown user %q", username)
	}
	now := s.now()
	claims := jwt.MapClaims{
		"id":       u.profile.ID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Usernames lists the seeded accounts.
func (s *Server) Usernames() []string {
	out := make([]string, 0, len(s.users))
	for name := range s.users {
		out = append(out, name)
	}
	return out
}

func (s *Server) handleFoods(w http.ResponseWriter, r *http.Request) {
	cuisine := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("cuisine")))
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

	out := make([]api.Food, 0, len(s.foods))
	for _, f := range s.foods {
		if cuisine != "" && strings.ToLower(f.Cuisine) != cuisine {
			continue
		}
		if search != "" && !containsAny(search, f.Name, f.Description, f.Category) {
			continue
		}
		out = append(out, f)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	out := make([]api.Restaurant, 0, len(s.restaurants))
	for _, rest := range s.restaurants {
		if search != "" && !containsAny(search, rest.Name, rest.Location, rest.Cuisine) {
			continue
		}
		out = append(out, rest)
	}
	writeJSON(w, http.StatusOK, out)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin exchanges a seeded account's password for a token. Each seed
// account's password is "<username>-password".
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	u, ok := s.users[strings.TrimSpace(req.Username)]
	if !ok || bcrypt.CompareHashAndPassword(u.password, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, msgBadCred)
		return
	}
	token, err := s.IssueToken(u.profile.Username, loginTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"_id":      u.profile.ID,
		"username": u.profile.Username,
		"email":    u.profile.Email,
		"token":    token,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u := r.Context().Value(userKey{}).(user)
	writeJSON(w, http.StatusOK, u.profile)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	u := r.Context().Value(userKey{}).(user)
	orders := u.orders
	if orders == nil {
		orders = []api.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// requireToken rejects requests without a valid bearer token the way the
// real backend does: 401 with {"message": "Invalid Token"}.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeError(w, http.StatusUnauthorized, msgNoToken)
			return
		}
		username, err := s.verify(strings.TrimSpace(raw))
		if err != nil {
			s.log.Debug().Err(err).Msg("rejected token")
			writeError(w, http.StatusUnauthorized, api.InvalidTokenMessage)
			return
		}
		u, ok := s.users[username]
		if !ok {
			writeError(w, http.StatusNotFound, msgUnknown)
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) verify(raw string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", errors.New("token has no username")
	}
	return username, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("devapi request")
	})
}

func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
