package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/peoplecore/hrms-backend-go/internal/domain/auth"
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		jwtService:     jwtService,
	}
}

func toUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		EmployeeID:     u.EmployeeID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           string(u.Role),
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

// Login implements auth.AuthService. Unknown email and wrong password return
// the same error so the endpoint does not leak which accounts exist.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// Refresh implements auth.AuthService. The presented refresh token is revoked
// so it cannot be replayed after rotation.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		if errors.Is(err, jwxjwt.ErrTokenExpired()) {
			return auth.LoginResponse{}, auth.ErrTokenExpired
		}
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := token.Get("type")
	if tokenType != "refresh" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	userID, ok := token.Get("user_id")
	if !ok {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	userIDStr, ok := userID.(string)
	if !ok || userIDStr == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userIDStr)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, err
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(u)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.LoginResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.OrganizationID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         toUserResponse(u),
	}, nil
}
