package routes

import (
	"time"

	"go_crm_backend/app"
	"go_crm_backend/controllers"
	"go_crm_backend/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	authCtl := controllers.GetAuthController(a.Repo, a.Tokens, a.Sessions(), a.Config)
	userCtl := controllers.GetUserController(a.Repo)
	teamCtl := controllers.GetTeamController(a.Repo, a.Sessions())
	companyCtl := controllers.GetCompanyController(a.Repo)
	contactCtl := controllers.GetContactController(a.Repo)
	dealCtl := controllers.GetDealController(a.Repo)
	activityCtl := controllers.GetActivityController(a.Repo)

	authMW := app.AuthRequired(a.Tokens)
	adminMW := app.RequireRole(models.RoleOwner, models.RoleAdmin)
	seenMW := app.TouchLastSeen(a.Repo, a.RDB, 5*time.Minute)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/refresh", authCtl.Refresh)
		auth.POST("/logout", authCtl.Logout)
		auth.POST("/accept-invite", authCtl.AcceptInvite)
		auth.GET("/me", authMW, authCtl.Me)
	}

	users := api.Group("/users", authMW, seenMW)
	{
		users.GET("/me", userCtl.Me)
		users.PUT("/me", userCtl.UpdateMe)
	}

	teams := api.Group("/teams", authMW, seenMW)
	{
		teams.GET("/me", teamCtl.GetTeam)
		teams.GET("/members", teamCtl.ListMembers)

		// Team administration is owner/admin only.
		teams.PUT("/me", adminMW, teamCtl.UpdateTeam)
		teams.POST("/invite", adminMW, teamCtl.InviteUser)
		teams.GET("/invites", adminMW, teamCtl.ListInvites)
		teams.DELETE("/invites/:id", adminMW, teamCtl.CancelInvite)
		teams.DELETE("/members/:id", adminMW, teamCtl.RemoveMember)
		teams.PUT("/members/:id/role", adminMW, teamCtl.UpdateMemberRole)
	}

	companies := api.Group("/companies", authMW, seenMW)
	{
		companies.GET("", companyCtl.List)
		companies.GET("/:id", companyCtl.Get)
		companies.POST("", companyCtl.Create)
		companies.PUT("/:id", companyCtl.Update)
		companies.DELETE("/:id", companyCtl.Delete)
	}

	contacts := api.Group("/contacts", authMW, seenMW)
	{
		contacts.GET("", contactCtl.List)
		contacts.GET("/:id", contactCtl.Get)
		contacts.POST("", contactCtl.Create)
		contacts.PUT("/:id", contactCtl.Update)
		contacts.DELETE("/:id", contactCtl.Delete)
	}

	deals := api.Group("/deals", authMW, seenMW)
	{
		deals.GET("", dealCtl.List)
		deals.GET("/pipeline", dealCtl.Pipeline)
		deals.GET("/:id", dealCtl.Get)
		deals.POST("", dealCtl.Create)
		deals.PUT("/:id", dealCtl.Update)
		deals.DELETE("/:id", dealCtl.Delete)
	}

	activities := api.Group("/activities", authMW, seenMW)
	{
		activities.GET("", activityCtl.List)
		activities.GET("/upcoming", activityCtl.Upcoming)
		activities.GET("/overdue", activityCtl.Overdue)
		activities.GET("/:id", activityCtl.Get)
		activities.POST("", activityCtl.Create)
		activities.PUT("/:id", activityCtl.Update)
		activities.POST("/:id/toggle", activityCtl.Toggle)
		activities.DELETE("/:id", activityCtl.Delete)
	}
}
