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

var companySpec = listquery.Spec{
	DefaultSort: "-createdAt",
	SortColumns: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
}

type CompanyController struct {
	repo *db.Repo
}

func GetCompanyController(repo *db.Repo) *CompanyController {
	return &CompanyController{repo: repo}
}

// GET /api/v1/companies
func (cc *CompanyController) List(c *gin.Context) {
	vals := c.Request.URL.Query()
	q, errs := listquery.Parse(vals, companySpec)
	if errs != nil {
		failValidation(c, errs)
		return
	}
	f := db.CompanyFilter{Search: vals.Get("search"), Industry: vals.Get("industry")}

	companies, page, err := cc.repo.ListCompanies(c.Request.Context(), app.GetTeamID(c), f, q)
	if err != nil {
		internal(c, err)
		return
	}
	okList(c, companies, page)
}

// GET /api/v1/companies/:id
func (cc *CompanyController) Get(c *gin.Context) {
	company, err := cc.repo.GetCompany(c.Request.Context(), app.GetTeamID(c), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Company")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, company)
}

type companyInput struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Domain   *string `json:"domain" binding:"omitempty,max=200"`
	Industry *string `json:"industry" binding:"omitempty,max=100"`
}

// POST /api/v1/companies
func (cc *CompanyController) Create(c *gin.Context) {
	var in struct {
		Name     string  `json:"name" binding:"required,max=200"`
		Domain   *string `json:"domain" binding:"omitempty,max=200"`
		Industry *string `json:"industry" binding:"omitempty,max=100"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	company := &models.Company{Name: in.Name, Domain: in.Domain, Industry: in.Industry}
	if err := cc.repo.CreateCompany(c.Request.Context(), app.GetTeamID(c), company); err != nil {
		internal(c, err)
		return
	}
	createdData(c, company)
}

// PUT /api/v1/companies/:id
func (cc *CompanyController) Update(c *gin.Context) {
	var in companyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Domain != nil {
		updates["domain"] = *in.Domain
	}
	if in.Industry != nil {
		updates["industry"] = *in.Industry
	}

	company, err := cc.repo.UpdateCompany(c.Request.Context(), app.GetTeamID(c), c.Param("id"), updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Company")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, company)
}

// DELETE /api/v1/companies/:id
func (cc *CompanyController) Delete(c *gin.Context) {
	err := cc.repo.DeleteCompany(c.Request.Context(), app.GetTeamID(c), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Company")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okMessage(c, "Company deleted")
}
