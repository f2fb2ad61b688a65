package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/herahealth/portal-api/internal/model"
	authsvc "github.com/herahealth/portal-api/internal/service/auth"
	profilesvc "github.com/herahealth/portal-api/internal/service/profile"
)

const (
	ContextUserID  = "user_id"
	ContextEmail   = "email"
	ContextProfile = "profile"
)

type AuthMiddleware struct {
	authService    *authsvc.Service
	profileService *profilesvc.Service
}

func NewAuthMiddleware(authService *authsvc.Service, profileService *profilesvc.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService:    authService,
		profileService: profileService,
	}
}

// Authenticate verifies the bearer token and resolves the caller's profile.
// A failed profile lookup does not fail the request; the identity stands and
// handlers see a missing profile.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing authorization header",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid authorization format",
			})
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		profile, err := m.profileService.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Warn().
				Err(err).
				Str("user_id", claims.UserID.String()).
				Msg("profile lookup failed, continuing without profile")
		} else {
			c.Set(ContextProfile, profile)
		}

		c.Next()
	}
}

// RequireDoctor gates doctor-only routes. An identity without a resolved
// profile has no doctor powers.
func (m *AuthMiddleware) RequireDoctor() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := GetProfile(c)
		if profile == nil || !profile.IsDoctor {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "doctor access required",
			})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated caller's ID, or uuid.Nil when the
// route is unauthenticated.
func GetUserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetProfile returns the resolved profile or nil.
func GetProfile(c *gin.Context) *model.Profile {
	v, ok := c.Get(ContextProfile)
	if !ok {
		return nil
	}
	profile, ok := v.(*model.Profile)
	if !ok {
		return nil
	}
	return profile
}
