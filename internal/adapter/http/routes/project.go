package routes

import (
	"tovyalla_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProjects = "/projects"
)

func addProjectRoutes(
	rg *gin.RouterGroup,
	documentHandler *handlers.DocumentHandler,
	milestoneHandler *handlers.MilestoneHandler,
	paymentHandler *handlers.MilestonePaymentHandler,
) {
	projects := rg.Group(PathProjects)
	{
		projects.GET("/:project_id/documents/:document_type/preview", documentHandler.GetPreview)
		projects.POST("/:project_id/documents/:document_type/preview", documentHandler.PostPreview)
		projects.POST("/:project_id/documents/:document_type", documentHandler.Generate)
		projects.GET("/:project_id/documents", documentHandler.ListByProjectID)

		projects.GET("/:project_id/milestones", milestoneHandler.ListByProjectID)
		projects.PUT("/:project_id/milestones", milestoneHandler.Replace)

		projects.POST("/:project_id/milestones/:milestone_type/payments", paymentHandler.CreatePayment)
		projects.GET("/:project_id/milestones/:milestone_type/payments", paymentHandler.GetLatestPayment)
	}
}
