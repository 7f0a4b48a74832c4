package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_crm_backend/app"
	"go_crm_backend/auth"
	"go_crm_backend/db"
	"go_crm_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiHarness struct {
	router *gin.Engine
	repo   *db.Repo
	tokens *auth.Tokens
	teamID string
	cookie *http.Cookie
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(conn))

	repo := db.NewRepo(conn)
	tokens := auth.NewTokens("access-secret", "refresh-secret")

	owner, team, err := repo.RegisterOwner(t.Context(), "owner@acme.test", "hash", "Owner", "Acme")
	require.NoError(t, err)

	access, err := tokens.IssueAccess(owner.ID, team.ID, owner.Role)
	require.NoError(t, err)

	r := gin.New()
	cc := GetCompanyController(repo)
	grp := r.Group("/api/v1/companies", app.AuthRequired(tokens))
	grp.GET("", cc.List)
	grp.POST("", cc.Create)
	grp.GET("/:id", cc.Get)
	grp.PUT("/:id", cc.Update)
	grp.DELETE("/:id", cc.Delete)

	return &apiHarness{
		router: r,
		repo:   repo,
		tokens: tokens,
		teamID: team.ID,
		cookie: &http.Cookie{Name: auth.AccessCookie, Value: access},
	}
}

func (h *apiHarness) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.AddCookie(h.cookie)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCompaniesRequireAuth(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodGet, "/api/v1/companies", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decode(t, w)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestCompaniesListEnvelope(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/companies", `{"name":"Globex","domain":"globex.example"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	data, ok := created["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Globex", data["name"])
	assert.NotEmpty(t, data["id"])

	w = h.do(t, http.MethodGet, "/api/v1/companies", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	items, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)

	page, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, page["total"])
	assert.EqualValues(t, 50, page["limit"])
	assert.Equal(t, false, page["hasMore"])
	assert.Nil(t, page["cursor"])
}

func TestCompaniesListBadLimit(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodGet, "/api/v1/companies?limit=abc", "", true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	details, ok := errObj["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "limit")
}

func TestCompaniesCreateMissingName(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/companies", `{"domain":"x.example"}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	details, ok := errObj["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "name")
}

func TestCompaniesForeignIDLooksMissing(t *testing.T) {
	h := newAPIHarness(t)

	// A company created under another team must 404 through this team's
	// session, on every verb.
	_, rivalTeam, err := h.repo.RegisterOwner(t.Context(), "owner@rival.test", "hash", "Rival", "Rival Co")
	require.NoError(t, err)

	foreign := &models.Company{Name: "Secret Co"}
	require.NoError(t, h.repo.CreateCompany(t.Context(), rivalTeam.ID, foreign))

	for _, tc := range []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"Taken Over"}`},
		{http.MethodDelete, ""},
	} {
		w := h.do(t, tc.method, "/api/v1/companies/"+foreign.ID, tc.body, true)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s should 404", tc.method)
		body := decode(t, w)
		errObj := body["error"].(map[string]any)
		assert.Equal(t, "NOT_FOUND", errObj["code"])
		assert.Equal(t, "Company not found", errObj["message"])
	}
}

func TestCompaniesUpdatePartial(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/companies", `{"name":"Before","industry":"saas"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["data"].(map[string]any)["id"].(string)

	w = h.do(t, http.MethodPut, "/api/v1/companies/"+id, `{"name":"After"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "After", data["name"])
	assert.Equal(t, "saas", data["industry"], "unspecified fields stay put")
}

func TestCompaniesDelete(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/companies", `{"name":"Doomed"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["data"].(map[string]any)["id"].(string)

	w = h.do(t, http.MethodDelete, "/api/v1/companies/"+id, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Company deleted")

	w = h.do(t, http.MethodGet, "/api/v1/companies/"+id, "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
