package controllers

import (
	"errors"
	"strconv"
	"time"

	"go_crm_backend/app"
	"go_crm_backend/db"
	"go_crm_backend/listquery"
	"go_crm_backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var activitySpec = listquery.Spec{
	DefaultSort: "dueAt",
	SortColumns: map[string]string{
		"title":       "title",
		"type":        "type",
		"dueAt":       "due_at",
		"createdAt":   "created_at",
		"completedAt": "completed_at",
	},
	Includes: []string{"deal", "contact"},
}

type ActivityController struct {
	repo *db.Repo
}

func GetActivityController(repo *db.Repo) *ActivityController {
	return &ActivityController{repo: repo}
}

// GET /api/v1/activities
func (ac *ActivityController) List(c *gin.Context) {
	vals := c.Request.URL.Query()
	q, errs := listquery.Parse(vals, activitySpec)

	f := db.ActivityFilter{
		Type:      vals.Get("type"),
		DealID:    vals.Get("dealId"),
		ContactID: vals.Get("contactId"),
		UserID:    vals.Get("userId"),
		Completed: vals.Get("completed"),
	}
	if f.Type != "" && !models.ValidActivityType(f.Type) {
		errs = errs.Add("type", "must be one of call, email, meeting, task")
	}
	if f.Completed != "" && f.Completed != "true" && f.Completed != "false" {
		errs = errs.Add("completed", "must be \"true\" or \"false\"")
	}
	if raw := vals.Get("dueBefore"); raw != "" {
		t, ok := listquery.ParseDate(raw)
		if !ok {
			errs = errs.Add("dueBefore", "must be a valid date")
		} else {
			f.DueBefore = &t
		}
	}
	if raw := vals.Get("dueAfter"); raw != "" {
		t, ok := listquery.ParseDate(raw)
		if !ok {
			errs = errs.Add("dueAfter", "must be a valid date")
		} else {
			f.DueAfter = &t
		}
	}
	if errs != nil {
		failValidation(c, errs)
		return
	}

	activities, page, err := ac.repo.ListActivities(c.Request.Context(), app.GetTeamID(c), f, q)
	if err != nil {
		internal(c, err)
		return
	}
	okList(c, activities, page)
}

// GET /api/v1/activities/upcoming?days=N
func (ac *ActivityController) Upcoming(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	activities, err := ac.repo.UpcomingActivities(
		c.Request.Context(), app.GetTeamID(c), app.GetUserID(c), days)
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, activities)
}

// GET /api/v1/activities/overdue
func (ac *ActivityController) Overdue(c *gin.Context) {
	activities, err := ac.repo.OverdueActivities(
		c.Request.Context(), app.GetTeamID(c), app.GetUserID(c))
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, activities)
}

// GET /api/v1/activities/:id
func (ac *ActivityController) Get(c *gin.Context) {
	q, _ := listquery.Parse(c.Request.URL.Query(), activitySpec)
	activity, err := ac.repo.GetActivity(c.Request.Context(), app.GetTeamID(c), c.Param("id"), q)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Activity")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, activity)
}

// POST /api/v1/activities
func (ac *ActivityController) Create(c *gin.Context) {
	var in struct {
		Type        string     `json:"type" binding:"required,oneof=call email meeting task"`
		Title       string     `json:"title" binding:"required,max=200"`
		Description *string    `json:"description" binding:"omitempty,max=2000"`
		DueAt       *time.Time `json:"dueAt"`
		DealID      *string    `json:"dealId" binding:"omitempty,uuid"`
		ContactID   *string    `json:"contactId" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	activity := &models.Activity{
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		DueAt:       in.DueAt,
		DealID:      in.DealID,
		ContactID:   in.ContactID,
	}
	// The assignee is always the authenticated user.
	if err := ac.repo.CreateActivity(c.Request.Context(), app.GetTeamID(c), app.GetUserID(c), activity); err != nil {
		internal(c, err)
		return
	}
	createdData(c, activity)
}

// PUT /api/v1/activities/:id
func (ac *ActivityController) Update(c *gin.Context) {
	var in struct {
		Type        *string    `json:"type" binding:"omitempty,oneof=call email meeting task"`
		Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
		Description *string    `json:"description" binding:"omitempty,max=2000"`
		DueAt       *time.Time `json:"dueAt"`
		DealID      *string    `json:"dealId" binding:"omitempty,uuid"`
		ContactID   *string    `json:"contactId" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	updates := map[string]any{}
	if in.Type != nil {
		updates["type"] = *in.Type
	}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.DueAt != nil {
		updates["due_at"] = *in.DueAt
	}
	if in.DealID != nil {
		updates["deal_id"] = *in.DealID
	}
	if in.ContactID != nil {
		updates["contact_id"] = *in.ContactID
	}

	activity, err := ac.repo.UpdateActivity(c.Request.Context(), app.GetTeamID(c), c.Param("id"), updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Activity")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, activity)
}

// POST /api/v1/activities/:id/toggle
func (ac *ActivityController) Toggle(c *gin.Context) {
	activity, err := ac.repo.ToggleActivity(c.Request.Context(), app.GetTeamID(c), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Activity")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, activity)
}

// DELETE /api/v1/activities/:id
func (ac *ActivityController) Delete(c *gin.Context) {
	err := ac.repo.DeleteActivity(c.Request.Context(), app.GetTeamID(c), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Activity")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okMessage(c, "Activity deleted")
}
