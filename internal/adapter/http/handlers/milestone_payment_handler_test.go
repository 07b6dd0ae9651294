package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tovyalla_billing/internal/adapter/http/handlers/mocks"
	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

func TestMilestonePaymentHandler_CreatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMilestonePaymentUseCase(ctrl)
		h := NewMilestonePaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/projects/:project_id/milestones/:milestone_type/payments", h.CreatePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/projects/proj-1/milestones/initial_fee/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMilestonePaymentUseCase(ctrl)
		h := NewMilestonePaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/projects/:project_id/milestones/:milestone_type/payments", h.CreatePayment)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "proj-1", "initial_fee", gomock.Any()).Return(entities.MilestonePayment{}, usecase.ErrMilestoneNotPriced)

		req := httptest.NewRequest(http.MethodPost, "/v1/projects/proj-1/milestones/initial_fee/payments", bytes.NewBufferString(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMilestonePaymentUseCase(ctrl)
		h := NewMilestonePaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/projects/:project_id/milestones/:milestone_type/payments", h.CreatePayment)

		now := time.Now().UTC()
		uc.EXPECT().CreateAndApprove(gomock.Any(), "proj-1", "initial_fee", gomock.Any()).Return(entities.MilestonePayment{ID: "pay-1", ProjectID: "proj-1", MilestoneType: entities.MilestoneTypeInitialFee, Date: now, Status: entities.PaymentStatusApproved}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/projects/proj-1/milestones/initial_fee/payments", bytes.NewBufferString(`{"provider_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" || body["milestone_type"] != "initial_fee" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestMilestonePaymentHandler_GetLatestPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMilestonePaymentUseCase(ctrl)
		h := NewMilestonePaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/projects/:project_id/milestones/:milestone_type/payments", h.GetLatestPayment)

		uc.EXPECT().ListByProjectMilestone(gomock.Any(), "proj-1", "initial_fee").Return(nil, usecase.ErrInvalidPaymentMilestoneType)

		req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1/milestones/initial_fee/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMilestonePaymentUseCase(ctrl)
		h := NewMilestonePaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/projects/:project_id/milestones/:milestone_type/payments", h.GetLatestPayment)

		uc.EXPECT().ListByProjectMilestone(gomock.Any(), "proj-1", "initial_fee").Return([]entities.MilestonePayment{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1/milestones/initial_fee/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success returns latest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMilestonePaymentUseCase(ctrl)
		h := NewMilestonePaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/projects/:project_id/milestones/:milestone_type/payments", h.GetLatestPayment)

		old := entities.MilestonePayment{ID: "old", ProjectID: "proj-1", MilestoneType: entities.MilestoneTypeInitialFee, Date: time.Now().Add(-time.Hour), Status: entities.PaymentStatusPending}
		latest := entities.MilestonePayment{ID: "latest", ProjectID: "proj-1", MilestoneType: entities.MilestoneTypeInitialFee, Date: time.Now(), Status: entities.PaymentStatusApproved}
		uc.EXPECT().ListByProjectMilestone(gomock.Any(), "proj-1", "initial_fee").Return([]entities.MilestonePayment{old, latest}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1/milestones/initial_fee/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "latest" {
			t.Fatalf("expected latest payment, got body: %s", w.Body.String())
		}
	})
}

func TestReadProviderPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	makeCtx := func(raw string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(raw))
		c.Request.Header.Set("Content-Type", "application/json")
		return c
	}

	ctxReadErr := makeCtx("{}")
	ctxReadErr.Request.Body = failingReadCloser{}
	if _, err := readProviderPayload(ctxReadErr); err == nil {
		t.Fatalf("expected read body error")
	}

	if _, err := readProviderPayload(makeCtx("{invalid")); err == nil {
		t.Fatalf("expected invalid json error")
	}

	payload, err := readProviderPayload(makeCtx("   "))
	if err != nil || string(payload) != "{}" {
		t.Fatalf("expected {}, got payload=%s err=%v", string(payload), err)
	}

	if _, err := readProviderPayload(makeCtx(`{"provider_payload":null}`)); err == nil {
		t.Fatalf("expected provider_payload empty error")
	}

	payload, err = readProviderPayload(makeCtx(`{"provider_payload":{"a":1}}`))
	if err != nil || string(payload) != `{"a":1}` {
		t.Fatalf("expected wrapped payload, got %s err=%v", payload, err)
	}

	payload, err = readProviderPayload(makeCtx(`{"payment_method_id":"pix"}`))
	if err != nil || string(payload) != `{"payment_method_id":"pix"}` {
		t.Fatalf("expected raw body payload, got %s err=%v", payload, err)
	}
}

func TestMapMilestonePaymentError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidProjectID, http.StatusBadRequest},
		{usecase.ErrInvalidPaymentMilestoneType, http.StatusBadRequest},
		{usecase.ErrInvalidProviderPayload, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayBadRequest, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayCustomerNotFound, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayInvalidUsers, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayUnauthorized, http.StatusUnauthorized},
		{usecase.ErrMilestoneNotFound, http.StatusNotFound},
		{usecase.ErrMilestoneNotPriced, http.StatusConflict},
		{usecase.ErrMilestonePaymentNotFound, http.StatusNotFound},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapMilestonePaymentError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
