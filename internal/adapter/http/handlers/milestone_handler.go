package handlers

import (
	"errors"
	"log"
	"net/http"

	request "tovyalla_billing/internal/adapter/http/dto/request"
	response "tovyalla_billing/internal/adapter/http/dto/response"
	"tovyalla_billing/internal/usecase"
	"tovyalla_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidMilestonePayload = pkg.NewDomainErrorSimple("INVALID_MILESTONE_INPUT", "Invalid milestone payload", http.StatusBadRequest)
)

// MilestoneHandler handles HTTP requests for a project's saved milestone
// records.

type MilestoneHandler struct {
	usecase usecase.IMilestoneUseCase
}

func NewMilestoneHandler(uc usecase.IMilestoneUseCase) *MilestoneHandler {
	return &MilestoneHandler{usecase: uc}
}

// ListByProjectID returns the project's saved milestone records in schedule
// order.
func (h *MilestoneHandler) ListByProjectID(c *gin.Context) {
	projectID := c.Param("project_id")

	records, err := h.usecase.ListByProjectID(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[milestone][handler] list failed project_id=%s err=%v", projectID, err)
		appErr := mapMilestoneError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromMilestoneRecords(projectID, records))
}

// Replace overwrites the project's entire milestone set with the request
// body. Records are never merged.
func (h *MilestoneHandler) Replace(c *gin.Context) {
	projectID := c.Param("project_id")
	log.Printf("[milestone][handler] replace start project_id=%s", projectID)

	var payload request.MilestonesReplaceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMilestonePayload.HTTPStatus, errInvalidMilestonePayload.ToHTTPError())
		return
	}

	records, err := h.usecase.Replace(c.Request.Context(), projectID, payload.ResolveRecords())
	if err != nil {
		log.Printf("[milestone][handler] replace failed project_id=%s err=%v", projectID, err)
		appErr := mapMilestoneError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[milestone][handler] replace success project_id=%s records=%d", projectID, len(records))

	c.JSON(http.StatusOK, response.FromMilestoneRecords(projectID, records))
}

func mapMilestoneError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID), errors.Is(err, usecase.ErrInvalidMilestoneType):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMilestoneNotFound):
		return pkg.NewDomainErrorSimple("MILESTONE_NOT_FOUND", "Milestone not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
