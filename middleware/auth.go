package middleware

import (
	"context"
	"strings"

	"resortbook/constants"
	"resortbook/models"
	"resortbook/policy"
	"resortbook/response"
	"resortbook/services"
	"resortbook/types"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (types.Principal, *services.Claims, error)
}

// AuthMiddleware requires a valid bearer token and, when roles are given,
// one of those roles.
func AuthMiddleware(auth Authenticator, roles ...models.Role) gin.HandlerFunc {
	return authenticate(auth, bearerFromHeader, roles)
}

// WebsocketAuthMiddleware also accepts the token as ?token=, since browsers
// cannot set headers on a websocket handshake.
func WebsocketAuthMiddleware(auth Authenticator, roles ...models.Role) gin.HandlerFunc {
	return authenticate(auth, func(c *gin.Context) string {
		if token := bearerFromHeader(c); token != "" {
			return token
		}
		return c.Query("token")
	}, roles)
}

func bearerFromHeader(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func authenticate(auth Authenticator, tokenFrom func(*gin.Context) string, roles []models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			response.Unauthorized(c)
			return
		}

		principal, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}

		if len(roles) > 0 && !hasRole(principal, roles) {
			response.Forbidden(c, "Unauthorized. Admin access required.")
			return
		}

		c.Set(constants.ContextPrincipal, principal)
		c.Set(constants.ContextClaims, claims)
		c.Next()
	}
}

// RoleMiddleware checks the role of an already authenticated request.
func RoleMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Unauthorized(c)
			return
		}
		if !hasRole(principal, roles) {
			response.Forbidden(c, "Unauthorized. Admin access required.")
			return
		}
		c.Next()
	}
}

func hasRole(p types.Principal, roles []models.Role) bool {
	for _, role := range roles {
		switch role {
		case models.RoleAdmin:
			if policy.IsAdmin(p) {
				return true
			}
		default:
			if p.Role == role {
				return true
			}
		}
	}
	return false
}

func CurrentPrincipal(c *gin.Context) (types.Principal, bool) {
	v, ok := c.Get(constants.ContextPrincipal)
	if !ok {
		return types.Principal{}, false
	}
	p, ok := v.(types.Principal)
	return p, ok
}

func CurrentClaims(c *gin.Context) *services.Claims {
	v, ok := c.Get(constants.ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.Claims)
	return claims
}
