package backendtest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/supplykz/supplier-console/models"
)

type contextKey string

const accountKey contextKey = "account"

const clientTypeHeader = "X-Client-Type"

func accountFromContext(ctx context.Context) *Account {
	a, _ := ctx.Value(accountKey).(*Account)
	return a
}

// issueTokens must be called with s.mu held
func (s *Server) issueTokens(a *Account) (models.TokenPair, error) {
	now := time.Now()
	claims := models.AccessClaims{
		Role: a.Role,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(a.ID, 10),
			ID:        fmt.Sprintf("%d:%s", s.generation, uuid.NewString()),
			Issuer:    "backendtest",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh := uuid.NewString()
	s.refreshTokens[refresh] = a.ID
	return models.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authenticate resolves the account behind an access token, must be called with s.mu held
func (s *Server) authenticate(raw string) (*Account, bool) {
	claims := &models.AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.Type != "access" {
		return nil, false
	}

	gen, _, ok := strings.Cut(claims.ID, ":")
	if !ok || gen != strconv.Itoa(s.generation) {
		return nil, false
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, false
	}
	for _, a := range s.accounts {
		if a.ID == id && a.Active {
			return a, true
		}
	}
	return nil, false
}

// requireAuth rejects requests without a valid, current access token
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeUnauthorized(w)
			return
		}

		s.mu.Lock()
		a, ok := s.authenticate(token)
		s.mu.Unlock()
		if !ok {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, a)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[strings.ToLower(req.Email)]
	if !ok || a.Password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if !a.Active {
		writeDetail(w, http.StatusBadRequest, "Inactive user")
		return
	}
	if s.rejectConsumers && a.Role == string(models.RoleConsumer) && r.Header.Get(clientTypeHeader) == "web" {
		writeDetail(w, http.StatusForbidden, "Consumers must sign in with the mobile app")
		return
	}

	pair, err := s.issueTokens(a)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeOK(w, pair)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email            string `json:"email"`
		Password         string `json:"password"`
		FirstName        string `json:"first_name"`
		LastName         string `json:"last_name"`
		Role             string `json:"role"`
		OrganizationName string `json:"organization_name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []string{"body", "email"}, "msg": "field required", "type": "value_error.missing"},
			},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(req.Email)
	if _, exists := s.accounts[email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	a := &Account{
		ID:        s.newID(),
		Email:     email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Active:    true,
	}
	s.accounts[email] = a

	pair, err := s.issueTokens(a)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, pair)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failRefresh {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	accountID, ok := s.refreshTokens[req.RefreshToken]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	var account *Account
	for _, a := range s.accounts {
		if a.ID == accountID {
			account = a
		}
	}
	if account == nil || !account.Active {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	pair, err := s.issueTokens(account)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.omitRefreshToken {
		// the caller keeps using its current refresh token
		delete(s.refreshTokens, pair.RefreshToken)
		pair.RefreshToken = ""
	} else {
		delete(s.refreshTokens, req.RefreshToken)
	}
	writeOK(w, pair)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[strings.ToLower(req.Email)]
	if !ok {
		writeNotFound(w, "User")
		return
	}
	a.Password = req.NewPassword
	writeOK(w, map[string]string{"message": "Password updated successfully"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail, delay := s.failCurrentUser, s.userDelay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if fail {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeOK(w, s.userBody(accountFromContext(r.Context())))
}

// userBody must be called with s.mu held
func (s *Server) userBody(a *Account) map[string]any {
	body := a.response()
	if models.ParseRole(a.Role).IsSupplierStaff() {
		supplier := map[string]any{"company_name": s.supplier.CompanyName}
		if s.supplier.CompanyLogo != nil {
			supplier["company_logo"] = *s.supplier.CompanyLogo
		}
		body["supplier"] = supplier
	}
	return body
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserProfileUpdate
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := accountFromContext(r.Context())
	if req.FirstName != nil {
		a.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		a.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != a.Email {
		if _, taken := s.accounts[*req.Email]; taken {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		delete(s.accounts, a.Email)
		a.Email = *req.Email
		s.accounts[a.Email] = a
	}
	writeOK(w, s.userBody(a))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordChange
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := accountFromContext(r.Context())
	if a.Password != req.CurrentPassword {
		writeDetail(w, http.StatusBadRequest, "Incorrect current password")
		return
	}
	a.Password = req.NewPassword
	writeOK(w, map[string]string{"message": "Password changed successfully"})
}
