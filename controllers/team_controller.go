package controllers

import (
	"errors"

	"go_crm_backend/app"
	"go_crm_backend/db"
	"go_crm_backend/session"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	repo     *db.Repo
	sessions *session.Store
}

func GetTeamController(repo *db.Repo, sessions *session.Store) *TeamController {
	return &TeamController{repo: repo, sessions: sessions}
}

// GET /api/v1/teams/me
func (tc *TeamController) GetTeam(c *gin.Context) {
	team, err := tc.repo.GetTeam(c.Request.Context(), app.GetTeamID(c))
	if err != nil {
		notFound(c, "Team")
		return
	}
	okData(c, team)
}

// PUT /api/v1/teams/me (owner/admin)
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required,min=1,max=100"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	team, err := tc.repo.UpdateTeamName(c.Request.Context(), app.GetTeamID(c), in.Name)
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, team)
}

// GET /api/v1/teams/members
func (tc *TeamController) ListMembers(c *gin.Context) {
	members, err := tc.repo.ListMembers(c.Request.Context(), app.GetTeamID(c))
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, members)
}

// POST /api/v1/teams/invite (owner/admin)
func (tc *TeamController) InviteUser(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role" binding:"omitempty,oneof=admin member viewer"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}
	if in.Role == "" {
		in.Role = "member"
	}

	invite, err := tc.repo.InviteUser(c.Request.Context(), app.GetTeamID(c), in.Email, in.Role)
	if err != nil {
		var te *db.TeamError
		if errors.As(err, &te) {
			failTeamError(c, te)
			return
		}
		internal(c, err)
		return
	}

	// The token is returned so the frontend can build the invite link.
	okData(c, app.H{
		"id":        invite.ID,
		"email":     invite.Email,
		"role":      invite.Role,
		"token":     invite.Token,
		"expiresAt": invite.ExpiresAt,
	})
}

// GET /api/v1/teams/invites (owner/admin)
func (tc *TeamController) ListInvites(c *gin.Context) {
	invites, err := tc.repo.PendingInvites(c.Request.Context(), app.GetTeamID(c))
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, invites)
}

// DELETE /api/v1/teams/invites/:id (owner/admin)
func (tc *TeamController) CancelInvite(c *gin.Context) {
	err := tc.repo.CancelInvite(c.Request.Context(), app.GetTeamID(c), c.Param("id"))
	if err != nil {
		var te *db.TeamError
		if errors.As(err, &te) {
			failTeamError(c, te)
			return
		}
		internal(c, err)
		return
	}
	okMessage(c, "Invite cancelled")
}

// DELETE /api/v1/teams/members/:id (owner/admin)
func (tc *TeamController) RemoveMember(c *gin.Context) {
	removed, err := tc.repo.RemoveMember(
		c.Request.Context(), app.GetTeamID(c), c.Param("id"), app.GetUserID(c))
	if err != nil {
		var te *db.TeamError
		if errors.As(err, &te) {
			failTeamError(c, te)
			return
		}
		internal(c, err)
		return
	}

	// A removed member must not keep refreshing tokens.
	_ = tc.sessions.RevokeAllForUser(c.Request.Context(), removed.ID)
	okMessage(c, "Member removed")
}

// PUT /api/v1/teams/members/:id/role (owner/admin)
func (tc *TeamController) UpdateMemberRole(c *gin.Context) {
	var in struct {
		Role string `json:"role" binding:"required,oneof=admin member viewer"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	user, err := tc.repo.UpdateMemberRole(
		c.Request.Context(), app.GetTeamID(c), c.Param("id"), in.Role, app.GetUserID(c))
	if err != nil {
		var te *db.TeamError
		if errors.As(err, &te) {
			failTeamError(c, te)
			return
		}
		internal(c, err)
		return
	}
	okData(c, user)
}
