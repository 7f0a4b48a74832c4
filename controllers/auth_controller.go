package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go_crm_backend/app"
	"go_crm_backend/auth"
	"go_crm_backend/db"
	"go_crm_backend/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	repo     *db.Repo
	tokens   *auth.Tokens
	sessions *session.Store
	cfg      app.Config
}

func GetAuthController(repo *db.Repo, tokens *auth.Tokens, sessions *session.Store, cfg app.Config) *AuthController {
	return &AuthController{repo: repo, tokens: tokens, sessions: sessions, cfg: cfg}
}

// POST /api/v1/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name" binding:"required,max=100"`
		TeamName string `json:"teamName" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		internal(c, err)
		return
	}

	user, team, err := ac.repo.RegisterOwner(c.Request.Context(), in.Email, string(hash), in.Name, in.TeamName)
	if errors.Is(err, db.ErrEmailTaken) {
		fail(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email is already registered")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}

	if err := ac.signIn(c, user.ID, user.TeamID, user.Role); err != nil {
		internal(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"data": app.H{"user": user, "team": team}})
}

// POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	user, err := ac.repo.FindUserByEmail(c.Request.Context(), strings.ToLower(in.Email))
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	if err := ac.signIn(c, user.ID, user.TeamID, user.Role); err != nil {
		internal(c, err)
		return
	}
	okData(c, user)
}

// POST /api/v1/auth/refresh
// Re-issues the access cookie while the backing session record exists;
// deleting the session is the only revocation mechanism.
func (ac *AuthController) Refresh(c *gin.Context) {
	ck, err := c.Request.Cookie(auth.RefreshCookie)
	if err != nil || ck.Value == "" {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	sessionID, err := ac.tokens.VerifyRefresh(ck.Value)
	if err != nil {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	sess, err := ac.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session expired")
		return
	}

	user, err := ac.repo.FindUserByID(c.Request.Context(), sess.UserID)
	if err != nil {
		_ = ac.sessions.Delete(c.Request.Context(), sessionID)
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session expired")
		return
	}

	access, err := ac.tokens.IssueAccess(user.ID, user.TeamID, user.Role)
	if err != nil {
		internal(c, err)
		return
	}
	ac.setCookie(c, auth.AccessCookie, access, int(auth.AccessTokenTTL.Seconds()))
	okData(c, user)
}

// POST /api/v1/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(auth.RefreshCookie); err == nil && ck.Value != "" {
		if sessionID, err := ac.tokens.VerifyRefresh(ck.Value); err == nil {
			_ = ac.sessions.Delete(c.Request.Context(), sessionID)
		}
	}
	ac.setCookie(c, auth.AccessCookie, "", -1)
	ac.setCookie(c, auth.RefreshCookie, "", -1)
	okMessage(c, "Logged out")
}

// GET /api/v1/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.repo.FindUserByID(c.Request.Context(), app.GetUserID(c))
	if err != nil {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	team, err := ac.repo.GetTeam(c.Request.Context(), user.TeamID)
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, app.H{"user": user, "team": team})
}

// POST /api/v1/auth/accept-invite
func (ac *AuthController) AcceptInvite(c *gin.Context) {
	var in struct {
		Token    string `json:"token" binding:"required"`
		Name     string `json:"name" binding:"required,max=100"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		internal(c, err)
		return
	}

	user, err := ac.repo.AcceptInvite(c.Request.Context(), in.Token, in.Name, string(hash))
	switch {
	case errors.Is(err, db.ErrInviteInvalid):
		fail(c, http.StatusBadRequest, "INVITE_INVALID", "Invite is invalid or expired")
		return
	case errors.Is(err, db.ErrEmailTaken):
		fail(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email is already registered")
		return
	case err != nil:
		internal(c, err)
		return
	}

	if err := ac.signIn(c, user.ID, user.TeamID, user.Role); err != nil {
		internal(c, err)
		return
	}
	createdData(c, user)
}

// signIn creates the refresh session and sets both auth cookies.
func (ac *AuthController) signIn(c *gin.Context, userID, teamID, role string) error {
	sessionID := uuid.NewString()
	if err := ac.sessions.Create(c.Request.Context(), sessionID, userID); err != nil {
		return err
	}

	access, err := ac.tokens.IssueAccess(userID, teamID, role)
	if err != nil {
		return err
	}
	refresh, err := ac.tokens.IssueRefresh(sessionID)
	if err != nil {
		return err
	}

	ac.setCookie(c, auth.AccessCookie, access, int(auth.AccessTokenTTL.Seconds()))
	ac.setCookie(c, auth.RefreshCookie, refresh, int(auth.RefreshTokenTTL.Seconds()))
	return nil
}

func (ac *AuthController) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ac.cfg.WebOrigin, "https://"),
	})
}
