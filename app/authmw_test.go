package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go_crm_backend/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(tokens *auth.Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/", AuthRequired(tokens))
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, H{
			"userId": GetUserID(c),
			"teamId": GetTeamID(c),
			"role":   GetRole(c),
		})
	})
	protected.GET("/admin-only", RequireRole("owner", "admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"ok": true})
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, path, accessToken string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accessToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: accessToken})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredNoCookie(t *testing.T) {
	r := newAuthRouter(auth.NewTokens("s1", "s2"))

	w := doGet(t, r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuthRequiredBadToken(t *testing.T) {
	r := newAuthRouter(auth.NewTokens("s1", "s2"))

	w := doGet(t, r, "/whoami", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredWrongSecret(t *testing.T) {
	other := auth.NewTokens("other-secret", "s2")
	tok, err := other.IssueAccess("u1", "t1", "member")
	require.NoError(t, err)

	r := newAuthRouter(auth.NewTokens("s1", "s2"))
	w := doGet(t, r, "/whoami", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredSetsContext(t *testing.T) {
	tokens := auth.NewTokens("s1", "s2")
	tok, err := tokens.IssueAccess("u1", "t1", "member")
	require.NoError(t, err)

	w := doGet(t, newAuthRouter(tokens), "/whoami", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u1","teamId":"t1","role":"member"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokens("s1", "s2")
	r := newAuthRouter(tokens)

	memberTok, err := tokens.IssueAccess("u1", "t1", "member")
	require.NoError(t, err)
	w := doGet(t, r, "/admin-only", memberTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	adminTok, err := tokens.IssueAccess("u2", "t1", "admin")
	require.NoError(t, err)
	w = doGet(t, r, "/admin-only", adminTok)
	assert.Equal(t, http.StatusOK, w.Code)

	ownerTok, err := tokens.IssueAccess("u3", "t1", "owner")
	require.NoError(t, err)
	w = doGet(t, r, "/admin-only", ownerTok)
	assert.Equal(t, http.StatusOK, w.Code)
}
