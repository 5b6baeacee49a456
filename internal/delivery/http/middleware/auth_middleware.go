package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/pkg/jwt"
	"go-hospital-encounter/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleIDKey    contextKey = "role_id"
	TokenIDKey   contextKey = "token_id"
)

// TokenStore answers whether an access token is still live. Tokens are
// issued and revoked by the identity service; this service only reads.
type TokenStore interface {
	IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
}

// RedisTokenStore reads the access token keys written by the identity service.
type RedisTokenStore struct {
	redisClient *redis.Client
}

func NewRedisTokenStore(redisClient *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{redisClient: redisClient}
}

func (s *RedisTokenStore) IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	tokenKey := fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
	exists, err := s.redisClient.Exists(ctx, tokenKey).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore TokenStore
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore TokenStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Check the token has not been revoked
		active, err := m.tokenStore.IsActive(r.Context(), claims.UserID, claims.TokenID)
		if err != nil {
			response.Error(w, http.StatusServiceUnavailable, "Failed to validate token", nil)
			return
		}
		if !active {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext builds the acting user from the values set by Authenticate.
func ActorFromContext(ctx context.Context) (entity.Actor, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return entity.Actor{}, false
	}
	roleID, ok := GetRoleIDFromContext(ctx)
	if !ok {
		return entity.Actor{}, false
	}
	return entity.Actor{UserID: userID, RoleID: roleID}, true
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleIDFromContext extracts role ID from context
func GetRoleIDFromContext(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(RoleIDKey).(int)
	return roleID, ok
}
