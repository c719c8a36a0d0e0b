package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/utils"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Email            string      `json:"email"`
	Password         string      `json:"password"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	Role             models.Role `json:"role"`
	OrganizationName string      `json:"organization_name,omitempty"`
}

// NewOwnerSignup builds the only registration this console performs: a supplier owner
func NewOwnerSignup(form utils.SignupForm) SignupRequest {
	return SignupRequest{
		Email:            form.Email,
		Password:         form.Password,
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Role:             models.RoleSupplierOwner,
		OrganizationName: form.CompanyName,
	}
}

// AuthService wraps the authentication endpoints
type AuthService struct {
	api    APIClient
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(api APIClient, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, logger: logger}
}

// Login exchanges credentials for a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := s.api.Post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &pair); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, WrapError(ErrorTypeExternal, "login response missing access token", nil)
	}
	return &pair, nil
}

// Signup registers an account and returns its token pair
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := s.api.Post(ctx, "/auth/signup", req, &pair); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, WrapError(ErrorTypeExternal, "signup response missing access token", nil)
	}
	return &pair, nil
}

// RefreshToken exchanges a refresh token for a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	body := map[string]string{"refresh_token": refreshToken}
	if err := s.api.Post(ctx, "/auth/refresh", body, &pair); err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return &pair, nil
}

// CurrentUser fetches the signed-in user
func (s *AuthService) CurrentUser(ctx context.Context) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := s.api.Get(ctx, "/users/me", nil, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

// ResetPassword sets a new password for the account with the given email
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{"email": email, "new_password": newPassword}
	if err := s.api.Post(ctx, "/auth/reset-password", body, nil); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	s.logger.Info("password reset requested")
	return nil
}
