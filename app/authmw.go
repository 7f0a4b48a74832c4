package app

import (
	"net/http"

	"go_crm_backend/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired. Every downstream data access takes
// its tenancy scope from CtxTeamID; nothing else may set it.
const (
	CtxUserID = "userID"
	CtxTeamID = "teamID"
	CtxRole   = "role"
)

// AuthRequired gates a request on a valid access-token cookie and
// attaches the auth context before any handler logic runs.
func AuthRequired(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(auth.AccessCookie)
		if err != nil || ck.Value == "" {
			abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		claims, err := tokens.VerifyAccess(ck.Value)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxTeamID, claims.TeamID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole runs after AuthRequired and rejects roles outside the
// allowed set.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	}
}

func GetUserID(c *gin.Context) string { return ctxString(c, CtxUserID) }
func GetTeamID(c *gin.Context) string { return ctxString(c, CtxTeamID) }
func GetRole(c *gin.Context) string   { return ctxString(c, CtxRole) }

func ctxString(c *gin.Context, key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, H{"error": H{"code": code, "message": message}})
}
