package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrMilestonePaymentNotFound       = errors.New("milestone payment not found")
	ErrInvalidPaymentMilestoneType    = errors.New("invalid payment milestone type")
	ErrMilestoneNotPriced             = errors.New("milestone has no customer price")
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IMilestonePaymentUseCase collects a customer payment against one milestone
// of a project's saved schedule (typically the initial fee deposit) and
// records the provider outcome.

type IMilestonePaymentUseCase interface {
	CreateAndApprove(ctx context.Context, projectID, milestoneType string, providerPayload json.RawMessage) (entities.MilestonePayment, error)
	GetByID(ctx context.Context, id string) (entities.MilestonePayment, error)
	ListByProjectMilestone(ctx context.Context, projectID, milestoneType string) ([]entities.MilestonePayment, error)
}

type MilestonePaymentUseCase struct {
	repo          interfaces.IMilestonePaymentRepository
	milestoneRepo interfaces.IMilestoneRepository
	gateway       interfaces.IPaymentGateway
}

var _ IMilestonePaymentUseCase = (*MilestonePaymentUseCase)(nil)

func NewMilestonePaymentUseCase(repo interfaces.IMilestonePaymentRepository, milestoneRepo interfaces.IMilestoneRepository, gateway interfaces.IPaymentGateway) *MilestonePaymentUseCase {
	return &MilestonePaymentUseCase{repo: repo, milestoneRepo: milestoneRepo, gateway: gateway}
}

func (u *MilestonePaymentUseCase) CreateAndApprove(ctx context.Context, projectID, milestoneType string, providerPayload json.RawMessage) (entities.MilestonePayment, error) {
	log.Printf("[payment][usecase] create-and-approve start project_id=%q milestone_type=%q payload_len=%d", projectID, milestoneType, len(providerPayload))
	mockMode := isPaymentGatewayMockEnabled()

	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return entities.MilestonePayment{}, ErrInvalidProjectID
	}
	msType, ok := entities.ParseMilestoneType(milestoneType)
	if !ok {
		log.Printf("[payment][usecase] invalid milestone type project_id=%s raw=%q", projectID, milestoneType)
		return entities.MilestonePayment{}, ErrInvalidPaymentMilestoneType
	}
	if len(providerPayload) == 0 || !json.Valid(providerPayload) {
		if mockMode {
			providerPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][usecase] invalid payload project_id=%s milestone_type=%s", projectID, msType)
			return entities.MilestonePayment{}, ErrInvalidProviderPayload
		}
	}
	if u.gateway == nil && !mockMode {
		log.Printf("[payment][usecase] gateway not configured project_id=%s", projectID)
		return entities.MilestonePayment{}, errors.New("payment gateway not configured")
	}

	record, amount, err := u.loadPricedMilestone(ctx, projectID, msType, mockMode)
	if err != nil {
		return entities.MilestonePayment{}, err
	}
	log.Printf("[payment][usecase] milestone loaded project_id=%s milestone_type=%s name=%q amount=%.2f", projectID, msType, record.Name, amount)

	providerPayload = enrichProviderPayload(providerPayload, projectID, msType, amount, mockMode)
	if providerPayload == nil {
		return entities.MilestonePayment{}, ErrInvalidProviderPayload
	}

	providerPaymentID := ""
	providerResp := json.RawMessage(nil)

	if mockMode {
		log.Printf("[payment][usecase] mock mode enabled; skipping external payment gateway project_id=%s", projectID)
		providerPaymentID, providerResp, err = mockProviderResponse(providerPayload, projectID, msType, amount)
		if err != nil {
			return entities.MilestonePayment{}, err
		}
	} else {
		log.Printf("[payment][usecase] calling payment gateway project_id=%s milestone_type=%s", projectID, msType)
		var providerStatus string
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, providerPayload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed project_id=%s err=%v", projectID, err)
			return entities.MilestonePayment{}, classifyGatewayError(err)
		}
		log.Printf("[payment][usecase] payment gateway success project_id=%s provider_payment_id=%s provider_status=%s", projectID, providerPaymentID, providerStatus)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed project_id=%s err=%v", projectID, err)
	}

	p := entities.MilestonePayment{
		ID:                 uuid.NewString(),
		ProjectID:          projectID,
		MilestoneType:      msType,
		Date:               time.Now().UTC(),
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	if providerPaymentID != "" {
		p.ID = providerPaymentID
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed project_id=%s payment_id=%s err=%v", projectID, p.ID, err)
		return entities.MilestonePayment{}, err
	}
	log.Printf("[payment][usecase] create-and-approve success project_id=%s payment_id=%s status=%s", projectID, created.ID, created.Status)
	return created, nil
}

func (u *MilestonePaymentUseCase) GetByID(ctx context.Context, id string) (entities.MilestonePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.MilestonePayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.MilestonePayment{}, err
	}
	if p.ID == "" {
		return entities.MilestonePayment{}, ErrMilestonePaymentNotFound
	}
	return p, nil
}

func (u *MilestonePaymentUseCase) ListByProjectMilestone(ctx context.Context, projectID, milestoneType string) ([]entities.MilestonePayment, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	msType, ok := entities.ParseMilestoneType(milestoneType)
	if !ok {
		return nil, ErrInvalidPaymentMilestoneType
	}
	return u.repo.ListByProjectMilestone(ctx, projectID, msType)
}

// loadPricedMilestone resolves the saved record the payment is collected
// against. The record's customer price, not anything in the caller's payload,
// is the source of truth for the charged amount.
func (u *MilestonePaymentUseCase) loadPricedMilestone(ctx context.Context, projectID string, msType entities.MilestoneType, mockMode bool) (entities.MilestoneRecord, float64, error) {
	records, err := u.milestoneRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		log.Printf("[payment][usecase] milestone load failed project_id=%s err=%v", projectID, err)
		return entities.MilestoneRecord{}, 0, err
	}
	for _, rec := range records {
		if rec.MilestoneType != msType {
			continue
		}
		if rec.CustomerPrice == nil || *rec.CustomerPrice <= 0 {
			if mockMode {
				return rec, 0, nil
			}
			log.Printf("[payment][usecase] milestone not priced project_id=%s milestone_type=%s", projectID, msType)
			return entities.MilestoneRecord{}, 0, ErrMilestoneNotPriced
		}
		return rec, *rec.CustomerPrice, nil
	}
	log.Printf("[payment][usecase] milestone not found project_id=%s milestone_type=%s", projectID, msType)
	return entities.MilestoneRecord{}, 0, ErrMilestoneNotFound
}

// enrichProviderPayload links the provider request to the milestone and pins
// the amount to the saved customer price. Returns nil when the payload is
// unusable outside mock mode.
func enrichProviderPayload(payload json.RawMessage, projectID string, msType entities.MilestoneType, amount float64, mockMode bool) json.RawMessage {
	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil {
		log.Printf("[payment][usecase] payload unmarshal failed project_id=%s err=%v", projectID, err)
		if mockMode {
			return payload
		}
		return nil
	}

	if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Printf("[payment][usecase] missing payment_method_id project_id=%s", projectID)
		return nil
	}
	if !mockMode {
		normalizeSandboxPayerFromUserID(reqMap)
		ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Printf("[payment][usecase] missing/invalid payer project_id=%s", projectID)
			return nil
		}
	}

	// external_reference helps reconcile provider events back to the milestone.
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = projectID + "#" + string(msType)
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Milestone %s for project %s", msType, projectID)
	}
	reqMap["transaction_amount"] = amount

	b, err := json.Marshal(reqMap)
	if err != nil {
		return payload
	}
	return b
}

func mockProviderResponse(payload json.RawMessage, projectID string, msType entities.MilestoneType, amount float64) (string, json.RawMessage, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	resp := map[string]any{}
	if len(payload) > 0 && json.Valid(payload) {
		_ = json.Unmarshal(payload, &resp)
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now
	resp["date_approved"] = now
	if _, ok := resp["external_reference"]; !ok {
		resp["external_reference"] = projectID + "#" + string(msType)
	}
	if _, ok := resp["transaction_amount"]; !ok {
		resp["transaction_amount"] = amount
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", nil, err
	}
	return id, b, nil
}

func classifyGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox, either payer.id or payer.email may be used.
	// Fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			// Sandbox-safe fallback recommended by Mercado Pago examples.
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func normalizeSandboxPayerFromUserID(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		return
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}

	accessToken := strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if !strings.HasPrefix(accessToken, "TEST-") {
		return
	}

	configuredUserID := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID"))
	configuredEmail := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"))
	if configuredUserID == "" || configuredEmail == "" {
		return
	}

	rawID := strings.TrimSpace(fmt.Sprintf("%v", payer["id"]))
	if rawID == "" || rawID == "<nil>" || rawID != configuredUserID {
		return
	}

	payer["email"] = configuredEmail
	delete(payer, "id")
	log.Printf("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
