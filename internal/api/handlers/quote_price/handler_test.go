package quote_price

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	quotePrice "github.com/m04kA/SMC-VenueBookingService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *quotePrice.Request) (*quotePrice.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*quotePrice.Response)
	return resp, args.Error(1)
}

func TestHandler_Handle_Quote(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *quotePrice.Request) bool {
		return req.EntityType == "package" && req.EntityID == 2 && req.Date.Equal(monday) &&
			req.Time != nil && *req.Time == "11:00" && req.BaseAmount == nil
	})).Return(&quotePrice.Response{
		EntityType: domain.EntityTypePackage,
		EntityID:   2,
		Date:       monday,
		Breakdown: domain.PriceBreakdown{
			BaseAmount: 20,
			Steps: []domain.AppliedStep{
				{RuleID: 1, Label: "Happy hour", Kind: domain.StepKindDiscount, Delta: -10},
			},
			FinalAmount: 10,
		},
	}, nil)

	body := `{"entityType":"package","entityId":2,"date":"2025-06-02","time":"11:00"}`
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp QuotePriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "package", resp.EntityType)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, 10.0, resp.FinalAmount)
	require.Len(t, resp.Steps, 1)
	assert.Equal(t, -10.0, resp.Steps[0].Delta)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"entityType":"package","entityId":2,"time":"7pm"}`, wantStatus: http.StatusBadRequest},
		{name: "bad input", body: `{"entityType":"room","entityId":2}`, ucErr: quotePrice.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", body: `{"entityType":"attraction","entityId":9}`, ucErr: quotePrice.ErrEntityNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", body: `{"entityType":"package","entityId":2}`, ucErr: quotePrice.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr).Maybe()

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
