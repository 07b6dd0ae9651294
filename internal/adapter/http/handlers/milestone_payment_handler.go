package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	response "tovyalla_billing/internal/adapter/http/dto/response"
	"tovyalla_billing/internal/usecase"
	"tovyalla_billing/pkg"

	"github.com/gin-gonic/gin"
)

// MilestonePaymentHandler handles HTTP requests for milestone deposit
// payments.

type MilestonePaymentHandler struct {
	usecase usecase.IMilestonePaymentUseCase
}

func NewMilestonePaymentHandler(uc usecase.IMilestonePaymentUseCase) *MilestonePaymentHandler {
	return &MilestonePaymentHandler{usecase: uc}
}

// CreatePayment creates/approves a payment for the milestone in the path.
// The charged amount is always the milestone's saved customer price.
func (h *MilestonePaymentHandler) CreatePayment(c *gin.Context) {
	projectID := c.Param("project_id")
	milestoneType := c.Param("milestone_type")
	log.Printf("[payment][handler] create start project_id=%s milestone_type=%s", projectID, milestoneType)
	mockMode := isPaymentGatewayMockEnabled()
	providerPayload, err := readProviderPayload(c)
	if err != nil {
		if mockMode {
			log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload project_id=%s err=%v", projectID, err)
			providerPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][handler] invalid payload project_id=%s err=%v", projectID, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), projectID, milestoneType, providerPayload)
	if err != nil {
		log.Printf("[payment][handler] create failed project_id=%s milestone_type=%s err=%v", projectID, milestoneType, err)
		appErr := mapMilestonePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success project_id=%s payment_id=%s status=%s", projectID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromMilestonePayment(created))
}

// GetLatestPayment returns the most recent payment for the milestone in the
// path.
func (h *MilestonePaymentHandler) GetLatestPayment(c *gin.Context) {
	projectID := c.Param("project_id")
	milestoneType := c.Param("milestone_type")
	log.Printf("[payment][handler] get-latest start project_id=%s milestone_type=%s", projectID, milestoneType)

	payments, err := h.usecase.ListByProjectMilestone(c.Request.Context(), projectID, milestoneType)
	if err != nil {
		log.Printf("[payment][handler] get-latest failed project_id=%s milestone_type=%s err=%v", projectID, milestoneType, err)
		appErr := mapMilestonePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(payments) == 0 {
		log.Printf("[payment][handler] get-latest not-found project_id=%s milestone_type=%s", projectID, milestoneType)
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	log.Printf("[payment][handler] get-latest success project_id=%s payment_id=%s status=%s", projectID, latest.ID, latest.Status)

	c.JSON(http.StatusOK, response.FromMilestonePayment(latest))
}

func readProviderPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["provider_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("provider_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapMilestonePaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID), errors.Is(err, usecase.ErrInvalidPaymentMilestoneType), errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrMilestoneNotFound):
		return pkg.NewDomainErrorSimple("MILESTONE_NOT_FOUND", "Milestone not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMilestoneNotPriced):
		return pkg.NewDomainErrorSimple("MILESTONE_NOT_PRICED", "Milestone has no saved customer price", http.StatusConflict)
	case errors.Is(err, usecase.ErrMilestonePaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func isPaymentGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}

	v = strings.ToLower(strings.TrimSpace(os.Getenv("MERCADOPAGO_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}

	return false
}
