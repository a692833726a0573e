package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resortbook/constants"
	apperrors "resortbook/errors"
	"resortbook/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type UserInfo struct {
	UserID uint        `json:"userid"`
	Role   models.Role `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// ExpiresAtTime is the expiry as a time.Time.
func (c *Claims) ExpiresAtTime() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// RevocationStore remembers logged-out token ids until they would expire anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisRevocationStore struct {
	rdb *redis.Client
}

func NewRedisRevocationStore(rdb *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{rdb: rdb}
}

func revokedKey(jti string) string {
	return constants.CacheKeyRevokedToken + ":" + jti
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
}

func NewTokenService(secret string, ttl time.Duration, revoked RevocationStore) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, revoked: revoked}
}

func (s *TokenService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserInfo: UserInfo{UserID: user.ID, Role: user.Role},
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies signature, expiry and revocation. Every failure is
// reported as Unauthenticated.
func (s *TokenService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, apperrors.Unauthenticated("Unauthenticated.")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthenticated, "Unauthenticated.", err)
	}
	if claims.UserInfo.UserID == 0 || claims.Id == "" {
		return nil, apperrors.Unauthenticated("Unauthenticated.")
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.Id)
		if err != nil {
			return nil, apperrors.Internal("Could not verify token", err)
		}
		if revoked {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthenticated, "Unauthenticated.", apperrors.ErrTokenRevoked)
		}
	}
	return claims, nil
}

// RevokeToken invalidates the token until its natural expiry.
func (s *TokenService) RevokeToken(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return errors.New("no claims to revoke")
	}
	if s.revoked == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.Id, claims.ExpiresAtTime())
}
