package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
	"github.com/herahealth/portal-api/pkg/auth"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/security"
)

const refreshTokenExpiry = 7 * 24 * time.Hour

type Service struct {
	profileRepo repository.ProfileRepository
	tokenRepo   repository.TokenRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
}

func NewService(profileRepo repository.ProfileRepository, tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
	}
}

// Register creates an identity and its profile row. The role flag is fixed
// at signup.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, error) {
	existing, _ := s.profileRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("password does not meet requirements")
	}

	fullName := req.FullName
	profile := &model.Profile{
		Base: model.Base{
			ID: uuid.New(),
		},
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     &fullName,
		IsDoctor:     req.IsDoctor,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// Login verifies credentials and issues a token pair. Unknown email and bad
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if err := s.hasher.Compare(profile.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.issueTokens(ctx, profile.ID, profile.Email)
}

// Refresh rotates the refresh token and returns a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	hash := hashToken(refreshToken)
	userID, err := s.tokenRepo.ValidateRefreshToken(ctx, hash)
	if err != nil || userID != claims.UserID {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, hash); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, claims.UserID, claims.Email)
}

// ValidateToken resolves the identity behind an access token.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateAccessToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID, email string) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokenRepo.StoreRefreshToken(ctx, userID, hashToken(refreshToken), time.Now().Add(refreshTokenExpiry)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
