package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go_crm_backend/db"
	"go_crm_backend/listquery"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelopes are uniform across the API: {data} or {data, pagination} on
// success, {error: {code, message, details?}} on failure.

func okData(c *gin.Context, v any) { c.JSON(http.StatusOK, gin.H{"data": v}) }

func createdData(c *gin.Context, v any) { c.JSON(http.StatusCreated, gin.H{"data": v}) }

func okList(c *gin.Context, items any, page listquery.Pagination) {
	c.JSON(http.StatusOK, gin.H{"data": items, "pagination": page})
}

func okMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": message}})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

func failValidation(c *gin.Context, details map[string][]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
		"code":    "VALIDATION_ERROR",
		"message": "Invalid input",
		"details": details,
	}})
}

func notFound(c *gin.Context, what string) {
	fail(c, http.StatusNotFound, "NOT_FOUND", what+" not found")
}

func internal(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, "INTERNAL", err.Error())
}

// failBinding turns a ShouldBindJSON error into the validation envelope,
// with per-field details when the validator produced them.
func failBinding(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := map[string][]string{}
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
			details[field] = append(details[field], "failed on "+fe.Tag())
		}
		failValidation(c, details)
		return
	}
	fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

// failTeamError maps lifecycle guard codes to a fixed status: the two
// not-found codes are 404, everything else is a 400.
func failTeamError(c *gin.Context, te *db.TeamError) {
	status := http.StatusBadRequest
	if te.Code == "USER_NOT_FOUND" || te.Code == "INVITE_NOT_FOUND" {
		status = http.StatusNotFound
	}
	fail(c, status, te.Code, te.Message)
}
