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

var contactSpec = listquery.Spec{
	DefaultSort: "-createdAt",
	SortColumns: map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	Includes: []string{"company"},
}

type ContactController struct {
	repo *db.Repo
}

func GetContactController(repo *db.Repo) *ContactController {
	return &ContactController{repo: repo}
}

// GET /api/v1/contacts
func (cc *ContactController) List(c *gin.Context) {
	vals := c.Request.URL.Query()
	q, errs := listquery.Parse(vals, contactSpec)
	if errs != nil {
		failValidation(c, errs)
		return
	}
	f := db.ContactFilter{
		Search:    vals.Get("search"),
		CompanyID: vals.Get("companyId"),
		OwnerID:   vals.Get("ownerId"),
	}

	contacts, page, err := cc.repo.ListContacts(c.Request.Context(), app.GetTeamID(c), f, q)
	if err != nil {
		internal(c, err)
		return
	}
	okList(c, contacts, page)
}

// GET /api/v1/contacts/:id
func (cc *ContactController) Get(c *gin.Context) {
	q, _ := listquery.Parse(c.Request.URL.Query(), contactSpec)
	contact, err := cc.repo.GetContact(c.Request.Context(), app.GetTeamID(c), c.Param("id"), q)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Contact")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, contact)
}

type contactInput struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email     *string `json:"email" binding:"omitempty,email,max=200"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Title     *string `json:"title" binding:"omitempty,max=100"`
	CompanyID *string `json:"companyId" binding:"omitempty,uuid"`
	OwnerID   *string `json:"ownerId" binding:"omitempty,uuid"`
}

// POST /api/v1/contacts
func (cc *ContactController) Create(c *gin.Context) {
	var in struct {
		Name      string  `json:"name" binding:"required,max=200"`
		Email     *string `json:"email" binding:"omitempty,email,max=200"`
		Phone     *string `json:"phone" binding:"omitempty,max=50"`
		Title     *string `json:"title" binding:"omitempty,max=100"`
		CompanyID *string `json:"companyId" binding:"omitempty,uuid"`
		OwnerID   *string `json:"ownerId" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	contact := &models.Contact{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Title:     in.Title,
		CompanyID: in.CompanyID,
		OwnerID:   app.GetUserID(c), // default owner is the creator
	}
	if in.OwnerID != nil {
		contact.OwnerID = *in.OwnerID
	}

	if err := cc.repo.CreateContact(c.Request.Context(), app.GetTeamID(c), contact); err != nil {
		internal(c, err)
		return
	}
	createdData(c, contact)
}

// PUT /api/v1/contacts/:id
func (cc *ContactController) Update(c *gin.Context) {
	var in contactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.CompanyID != nil {
		updates["company_id"] = *in.CompanyID
	}
	if in.OwnerID != nil {
		updates["owner_id"] = *in.OwnerID
	}

	contact, err := cc.repo.UpdateContact(c.Request.Context(), app.GetTeamID(c), c.Param("id"), updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Contact")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okData(c, contact)
}

// DELETE /api/v1/contacts/:id
func (cc *ContactController) Delete(c *gin.Context) {
	err := cc.repo.DeleteContact(c.Request.Context(), app.GetTeamID(c), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Contact")
		return
	}
	if err != nil {
		internal(c, err)
		return
	}
	okMessage(c, "Contact deleted")
}
