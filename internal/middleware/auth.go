package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tasklist-be/internal/apperrors"
	"tasklist-be/internal/jwt"
)

const (
	contextKeyUserID = "user_id"
	contextKeyEmail  = "email"
)

// Identity is the verified caller injected by AuthMiddleware.
type Identity struct {
	UserID int64
	Email  string
}

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and injects
// the verified identity for downstream handlers.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(apperrors.Response(apperrors.Unauthorized("missing bearer token")))
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(apperrors.Response(apperrors.Unauthorized("invalid or expired token")))
			return
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyEmail, claims.Email)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := c.Get(contextKeyUserID)
	if !ok {
		return Identity{}, false
	}
	id, ok := userID.(int64)
	if !ok || id <= 0 {
		return Identity{}, false
	}
	return Identity{UserID: id, Email: c.GetString(contextKeyEmail)}, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
