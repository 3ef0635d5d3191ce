package pricingrules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/pricingrule"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricingrules/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

type mockRuleRepo struct{ mock.Mock }

func (m *mockRuleRepo) Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	args := m.Called(ctx, rule)
	created, _ := args.Get(0).(*domain.PricingRule)
	return created, args.Error(1)
}

func (m *mockRuleRepo) GetByID(ctx context.Context, id int64) (*domain.PricingRule, error) {
	args := m.Called(ctx, id)
	rule, _ := args.Get(0).(*domain.PricingRule)
	return rule, args.Error(1)
}

func (m *mockRuleRepo) List(ctx context.Context, filter ruleRepo.ListFilter) ([]domain.PricingRule, error) {
	args := m.Called(ctx, filter)
	rules, _ := args.Get(0).([]domain.PricingRule)
	return rules, args.Error(1)
}

func (m *mockRuleRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

const staffID = int64(1)

func weekendDiscount() *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		UserID:          staffID,
		Label:           "Sunday -10%",
		EntityScope:     "package",
		EntityIDs:       []int64{2},
		Amount:          10,
		AmountKind:      "percentage",
		RecurrenceKind:  "weekly",
		RecurrenceValue: ptr.Ptr(0),
		DateRangeStart:  ptr.Ptr("2025-06-01"),
		DateRangeEnd:    ptr.Ptr("2025-08-31"),
		Priority:        10,
		Stackable:       true,
	}
}

func TestService_Create(t *testing.T) {
	t.Run("discount", func(t *testing.T) {
		repo := &mockRuleRepo{}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.PricingRule) bool {
			return r.IsDiscount() && r.Active && r.DateRange != nil && r.DateRange.End.Month() == 8
		})).Return(func() *domain.PricingRule {
			rule, _ := weekendDiscount().ToDomainRule()
			rule.ID = 4
			return rule
		}(), nil)

		resp, err := NewService(repo, []int64{staffID}, logger.NewNop()).Create(context.Background(), weekendDiscount())
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "discount", resp.Kind)
		assert.Equal(t, "2025-06-01", *resp.DateRangeStart)
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name    string
		mutate  func(r *models.CreateRuleRequest)
		wantErr error
	}{
		{name: "not staff", mutate: func(r *models.CreateRuleRequest) { r.UserID = 9 }, wantErr: ErrAccessDenied},
		{name: "percentage above 100", mutate: func(r *models.CreateRuleRequest) { r.Amount = 150 }, wantErr: ErrInvalidInput},
		{name: "weekday out of range", mutate: func(r *models.CreateRuleRequest) { r.RecurrenceValue = ptr.Ptr(7) }, wantErr: ErrInvalidInput},
		{name: "both discount and fee", mutate: func(r *models.CreateRuleRequest) { r.ApplicationKind = "additive" }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(r *models.CreateRuleRequest) { r.DateRangeEnd = ptr.Ptr("31.08.2025") }, wantErr: ErrInvalidInput},
		{name: "half date range", mutate: func(r *models.CreateRuleRequest) { r.DateRangeEnd = nil }, wantErr: ErrInvalidInput},
		{name: "half time window", mutate: func(r *models.CreateRuleRequest) { r.TimeWindowStart = ptr.Ptr("18:00") }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRuleRepo{}
			req := weekendDiscount()
			tt.mutate(req)

			_, err := NewService(repo, []int64{staffID}, logger.NewNop()).Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_ListForEntity(t *testing.T) {
	t.Run("filter passed to repository", func(t *testing.T) {
		repo := &mockRuleRepo{}
		entityType := domain.EntityTypeAttraction
		repo.On("List", mock.Anything, ruleRepo.ListFilter{
			EntityType: &entityType,
			EntityID:   ptr.Ptr(int64(7)),
			OnlyActive: true,
		}).Return([]domain.PricingRule{{ID: 1, Label: "Fee", ApplicationKind: domain.ApplicationKindAdditive}}, nil)

		resp, err := NewService(repo, nil, logger.NewNop()).ListForEntity(context.Background(), &models.ListRulesRequest{
			EntityType: ptr.Ptr("attraction"),
			EntityID:   ptr.Ptr(int64(7)),
			OnlyActive: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Rules, 1)
		assert.Equal(t, "fee", resp.Rules[0].Kind)
		assert.NotNil(t, resp.Rules[0].EntityIDs)
	})

	t.Run("unknown entity type", func(t *testing.T) {
		_, err := NewService(&mockRuleRepo{}, nil, logger.NewNop()).ListForEntity(context.Background(),
			&models.ListRulesRequest{EntityType: ptr.Ptr("room")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("entity id without type", func(t *testing.T) {
		_, err := NewService(&mockRuleRepo{}, nil, logger.NewNop()).ListForEntity(context.Background(),
			&models.ListRulesRequest{EntityID: ptr.Ptr(int64(7))})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_SetActive(t *testing.T) {
	t.Run("toggles and returns rule", func(t *testing.T) {
		repo := &mockRuleRepo{}
		repo.On("SetActive", mock.Anything, int64(4), false).Return(nil)
		repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.PricingRule{ID: 4, Active: false}, nil)

		resp, err := NewService(repo, []int64{staffID}, logger.NewNop()).SetActive(context.Background(), 4,
			&models.SetActiveRequest{UserID: staffID, Active: false})
		require.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockRuleRepo{}
		repo.On("SetActive", mock.Anything, int64(4), true).Return(ruleRepo.ErrRuleNotFound)

		_, err := NewService(repo, []int64{staffID}, logger.NewNop()).SetActive(context.Background(), 4,
			&models.SetActiveRequest{UserID: staffID, Active: true})
		assert.ErrorIs(t, err, ErrRuleNotFound)
	})
}
