package controllers

import (
	"net/http"
	"strings"

	"go_crm_backend/app"
	"go_crm_backend/db"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	repo *db.Repo
}

func GetUserController(repo *db.Repo) *UserController {
	return &UserController{repo: repo}
}

// GET /api/v1/users/me
func (uc *UserController) Me(c *gin.Context) {
	user, err := uc.repo.FindUserByID(c.Request.Context(), app.GetUserID(c))
	if err != nil {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	okData(c, user)
}

// PUT /api/v1/users/me
func (uc *UserController) UpdateMe(c *gin.Context) {
	var in struct {
		Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
		Email *string `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = strings.ToLower(*in.Email)
	}

	user, err := uc.repo.UpdateProfile(c.Request.Context(), app.GetUserID(c), updates)
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, user)
}
