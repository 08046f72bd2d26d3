package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/pkg/jwt"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// Context keys set by Identity.
const (
	IdentityKey = "identity"
	ClaimsKey   = "claims"
)

// Blacklist reports revoked token IDs. The Redis client satisfies it.
type Blacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Identity verifies the access token from "Authorization: Bearer <token>"
// and stores the caller as a model.Identity. Websocket upgrades may pass
// the token as ?token= since browsers cannot set headers on them.
// A nil blacklist skips the revocation check.
func Identity(jwtMgr *jwt.Manager, blacklist Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, response.CodeUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(raw)
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, response.CodeUnauthorized, "wrong token type")
			c.Abort()
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis errors let the request through, like the rate limiter.
			if err == nil && revoked {
				response.Unauthorized(c, response.CodeUnauthorized, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(IdentityKey, model.Identity{
			SubjectID: claims.SubjectID,
			Kind:      model.SubjectKind(claims.SubjectKind),
		})
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if c.IsWebsocket() {
			if t := c.Query("token"); t != "" {
				return t, true
			}
		}
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// SubjectAuth lets through only callers of the given kinds.
func SubjectAuth(kinds ...model.SubjectKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(IdentityKey)
		if !exists {
			response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
			c.Abort()
			return
		}

		id := v.(model.Identity)
		for _, k := range kinds {
			if id.Kind == k {
				c.Next()
				return
			}
		}

		response.Forbidden(c, response.CodeForbidden, "this account type cannot use this endpoint")
		c.Abort()
	}
}
