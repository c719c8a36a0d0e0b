// Package backendtest serves an in-memory imitation of the supplier REST API
// for tests. It issues real JWT access tokens, rotates opaque refresh tokens
// and counts every routed request.
package backendtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/supplykz/supplier-console/models"
)

// DefaultPassword is the password of every seeded account
const DefaultPassword = "Secret123"

// Seeded account emails
const (
	OwnerEmail    = "owner@astanafoods.kz"
	ManagerEmail  = "manager@astanafoods.kz"
	SalesEmail    = "sales@astanafoods.kz"
	ConsumerEmail = "chef@dastarkhan.kz"
)

// Account is a user known to the fake backend
type Account struct {
	ID          int64
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string
	Active      bool
	CompanyLogo *string
}

func (a *Account) response() map[string]any {
	out := map[string]any{
		"id":         a.ID,
		"email":      a.Email,
		"first_name": a.FirstName,
		"last_name":  a.LastName,
		"role":       a.Role,
		"is_active":  a.Active,
		"created_at": "2024-01-15T09:30:00",
	}
	if a.CompanyLogo != nil {
		out["company_logo"] = *a.CompanyLogo
	}
	return out
}

// Server is the fake backend
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	secret        []byte
	accessTTL     time.Duration
	generation    int
	nextID        int64
	accounts      map[string]*Account
	refreshTokens map[string]int64
	hits          map[string]int

	rejectConsumers  bool
	failRefresh      bool
	omitRefreshToken bool
	failCurrentUser  bool
	userDelay        time.Duration

	supplier   models.SupplierProfile
	links      map[int64]*models.Link
	orders     map[int64]*models.Order
	complaints map[int64]*models.Complaint
	sessions   map[int64]*models.ChatSession
	messages   map[int64][]models.ChatMessage
	products   map[int64]*models.Product
}

// New starts a seeded fake backend that is closed when the test ends
func New(t testing.TB) *Server {
	s := &Server{
		secret:        []byte("backendtest-secret"),
		accessTTL:     15 * time.Minute,
		nextID:        1000,
		accounts:      make(map[string]*Account),
		refreshTokens: make(map[string]int64),
		hits:          make(map[string]int),
		links:         make(map[int64]*models.Link),
		orders:        make(map[int64]*models.Order),
		complaints:    make(map[int64]*models.Complaint),
		sessions:      make(map[int64]*models.ChatSession),
		messages:      make(map[int64][]models.ChatMessage),
		products:      make(map[int64]*models.Product),
	}
	s.seed()
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root the client should use
func (s *Server) BaseURL() string {
	return s.URL + "/api/v1"
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countHits)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/refresh", s.handleRefresh)
		r.Post("/auth/reset-password", s.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/users/me", s.handleCurrentUser)
			r.Put("/users/me", s.handleUpdateUser)
			r.Patch("/users/me/password", s.handleChangePassword)

			r.Get("/links/incoming", s.handleListLinks)
			r.Patch("/links/{id}/status", s.handleUpdateLink)

			r.Get("/orders", s.handleListOrders)
			r.Get("/orders/{id}", s.handleGetOrder)
			r.Patch("/orders/{id}/status", s.handleUpdateOrder)

			r.Get("/complaints", s.handleListComplaints)
			r.Get("/complaints/{id}", s.handleGetComplaint)
			r.Patch("/complaints/{id}/status", s.handleUpdateComplaint)

			r.Get("/chats/sessions", s.handleListSessions)
			r.Post("/chats/sessions", s.handleCreateSession)
			r.Get("/chats/sessions/{id}/messages", s.handleListMessages)
			r.Post("/chats/sessions/{id}/messages", s.handleSendMessage)

			r.Get("/suppliers/staff", s.handleListStaff)
			r.Delete("/suppliers/staff/{id}", s.handleRemoveStaff)
			r.Patch("/suppliers/staff/{id}/deactivate", s.handleDeactivateStaff)

			r.Get("/suppliers/me", s.handleGetSupplier)
			r.Put("/suppliers/me", s.handleUpdateSupplier)
			r.Patch("/suppliers/me/deactivate", s.handleDeactivateSupplier)
			r.Delete("/suppliers/me", s.handleDeleteSupplier)

			r.Get("/products/me", s.handleListProducts)
			r.Post("/products", s.handleCreateProduct)
			r.Put("/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeleteProduct)
		})
	})
	return r
}

// countHits records METHOD plus the matched route pattern after routing
func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		s.mu.Lock()
		s.hits[r.Method+" "+pattern]++
		s.mu.Unlock()
	})
}

// Hits returns how often METHOD+pattern was served, e.g. Hits("POST", "/api/v1/auth/refresh")
func (s *Server) Hits(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+pattern]
}

// TotalHits returns the number of requests served
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// ExpireAccessTokens invalidates every access token issued so far
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// RevokeRefreshTokens invalidates every refresh token issued so far
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens = make(map[string]int64)
}

// SetFailRefresh makes /auth/refresh answer 401
func (s *Server) SetFailRefresh(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRefresh = fail
}

// SetOmitRefreshToken makes /auth/refresh answer without a refresh_token
func (s *Server) SetOmitRefreshToken(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitRefreshToken = omit
}

// SetFailCurrentUser makes GET /users/me answer 500
func (s *Server) SetFailCurrentUser(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCurrentUser = fail
}

// SetCurrentUserDelay slows GET /users/me down
func (s *Server) SetCurrentUserDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userDelay = d
}

// SetRejectConsumers makes login refuse consumer accounts from the web client
func (s *Server) SetRejectConsumers(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectConsumers = reject
}

// AddAccount registers an extra account and returns it
func (s *Server) AddAccount(a Account) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.newID()
	}
	if a.Password == "" {
		a.Password = DefaultPassword
	}
	a.Active = true
	s.accounts[a.Email] = &a
	return &a
}

// UpdateAccount changes a seeded account in place
func (s *Server) UpdateAccount(email string, fn func(a *Account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[email]; ok {
		fn(a)
	}
}

// IssueTokens mints a valid token pair for an account without a login call
func (s *Server) IssueTokens(email string) models.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		panic(fmt.Sprintf("backendtest: unknown account %s", email))
	}
	pair, err := s.issueTokens(a)
	if err != nil {
		panic(err)
	}
	return pair
}

// Order returns a copy of an order's current state
func (s *Server) Order(id int64) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.orders[id]
}

// Link returns a copy of a link's current state
func (s *Server) Link(id int64) models.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.links[id]
}

// Complaint returns a copy of a complaint's current state
func (s *Server) Complaint(id int64) models.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.complaints[id]
}

// HasProduct reports whether a product exists
func (s *Server) HasProduct(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.products[id]
	return ok
}

// Messages returns a copy of a session's messages
func (s *Server) Messages(sessionID int64) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages[sessionID]...)
}

func (s *Server) newID() int64 {
	s.nextID++
	return s.nextID
}

func sortedValues[T any](m map[int64]*T, keep func(*T) bool) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		if keep == nil || keep(m[k]) {
			out = append(out, *m[k])
		}
	}
	return out
}
