package controllers

import (
	"errors"

	"go_crm_backend/app"
	"go_crm_backend/db"
	"go_crm_backend/listquery"
	"go_crm_backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var dealSpec = listquery.Spec{
	DefaultSort: "-createdAt",
	SortColumns: map[string]string{
		"title":       "title",
		"value":       "value",
		"stage":       "stage",
		"probability": "probability",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	},
	Includes: []string{"company", "contact"},
}

type DealController struct {
	repo *db.Repo
}

func GetDealController(repo *db.Repo) *DealController {
	return &DealController{repo: repo}
}

// GET /api/v1/deals
func (dc *DealController) List(c *gin.Context) {
	vals := c.Request.URL.Query()
	q, errs := listquery.Parse(vals, dealSpec)

	f := db.DealFilter{
		Search:    vals.Get("search"),
		Stage:     vals.Get("stage"),
		CompanyID: vals.Get("companyId"),
		ContactID: vals.Get("contactId"),
		OwnerID:   vals.Get("ownerId"),
	}
	if f.Stage != "" && !models.ValidDealStage(f.Stage) {
		errs = errs.Add("stage", "must be one of lead, qualified, proposal, negotiation, won, lost")
	}
	if errs != nil {
		failValidation(c, errs)
		return
	}

	deals, page, err := dc.repo.ListDeals(c.Request.Context(), app.GetTeamID(c), f, q)
	if err != nil {
		internal(c, err)
		return
	}
	okList(c, deals, page)
}

// GET /api/v1/deals/pipeline
func (dc *DealController) Pipeline(c *gin.Context) {
	pipeline, err := dc.repo.DealsByStage(c.Request.Context(), app.GetTeamID(c))
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, pipeline)
}

// GET /api/v1/deals/:id
func (dc *DealController) Get(c *gin.Context) {
	q, _ := listquery.Parse(c.Request.URL.Query(), dealSpec)
	deal, err := dc.repo.GetDeal(c.Request.Context(), app.GetTeamID(c), c.Param("id"), q)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Deal")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, deal)
}

type dealInput struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Value       *float64 `json:"value" binding:"omitempty,gte=0"`
	Stage       *string  `json:"stage" binding:"omitempty,oneof=lead qualified proposal negotiation won lost"`
	Probability *float64 `json:"probability" binding:"omitempty,gte=0,lte=100"`
	CompanyID   *string  `json:"companyId" binding:"omitempty,uuid"`
	ContactID   *string  `json:"contactId" binding:"omitempty,uuid"`
	OwnerID     *string  `json:"ownerId" binding:"omitempty,uuid"`
}

// POST /api/v1/deals
func (dc *DealController) Create(c *gin.Context) {
	var in struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Value       *float64 `json:"value" binding:"omitempty,gte=0"`
		Stage       string   `json:"stage" binding:"omitempty,oneof=lead qualified proposal negotiation won lost"`
		Probability *float64 `json:"probability" binding:"omitempty,gte=0,lte=100"`
		CompanyID   *string  `json:"companyId" binding:"omitempty,uuid"`
		ContactID   *string  `json:"contactId" binding:"omitempty,uuid"`
		OwnerID     *string  `json:"ownerId" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}
	if in.Stage == "" {
		in.Stage = models.StageLead
	}

	deal := &models.Deal{
		Title:       in.Title,
		Value:       in.Value,
		Stage:       in.Stage,
		Probability: in.Probability,
		CompanyID:   in.CompanyID,
		ContactID:   in.ContactID,
		OwnerID:     app.GetUserID(c),
	}
	if in.OwnerID != nil {
		deal.OwnerID = *in.OwnerID
	}

	if err := dc.repo.CreateDeal(c.Request.Context(), app.GetTeamID(c), deal); err != nil {
		internal(c, err)
		return
	}
	createdData(c, deal)
}

// PUT /api/v1/deals/:id
func (dc *DealController) Update(c *gin.Context) {
	var in dealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	updates := map[string]any{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Value != nil {
		updates["value"] = *in.Value
	}
	if in.Stage != nil {
		updates["stage"] = *in.Stage
	}
	if in.Probability != nil {
		updates["probability"] = *in.Probability
	}
	if in.CompanyID != nil {
		updates["company_id"] = *in.CompanyID
	}
	if in.ContactID != nil {
		updates["contact_id"] = *in.ContactID
	}
	if in.OwnerID != nil {
		updates["owner_id"] = *in.OwnerID
	}

	deal, err := dc.repo.UpdateDeal(c.Request.Context(), app.GetTeamID(c), c.Param("id"), updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Deal")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, deal)
}

// DELETE /api/v1/deals/:id
func (dc *DealController) Delete(c *gin.Context) {
	err := dc.repo.DeleteDeal(c.Request.Context(), app.GetTeamID(c), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Deal")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okMessage(c, "Deal deleted")
}
