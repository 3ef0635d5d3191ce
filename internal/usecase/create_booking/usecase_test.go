package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	created, _ := args.Get(0).(*domain.Booking)
	return created, args.Error(1)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) Create(ctx context.Context, slot *domain.BookedSlot) (*domain.BookedSlot, error) {
	args := m.Called(ctx, slot)
	created, _ := args.Get(0).(*domain.BookedSlot)
	return created, args.Error(1)
}

func (m *mockSlotRepo) GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error) {
	args := m.Called(ctx, filter)
	slots, _ := args.Get(0).([]domain.BookedSlot)
	return slots, args.Error(1)
}

type mockConfigRepo struct{ mock.Mock }

func (m *mockConfigRepo) GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error) {
	args := m.Called(ctx, packageID, roomID)
	config, _ := args.Get(0).(*domain.SlotGridConfig)
	return config, args.Error(1)
}

type mockRuleRepo struct{ mock.Mock }

func (m *mockRuleRepo) GetActiveForEntity(ctx context.Context, target domain.PricingTarget, date time.Time) ([]domain.PricingRule, error) {
	args := m.Called(ctx, target, date)
	rules, _ := args.Get(0).([]domain.PricingRule)
	return rules, args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) GetPackage(ctx context.Context, packageID int64) (*catalogservice.Package, error) {
	args := m.Called(ctx, packageID)
	pkg, _ := args.Get(0).(*catalogservice.Package)
	return pkg, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncSlotConflict(source string)   { m.Called(source) }
func (m *mockMetrics) IncPriceQuote(entityType string) { m.Called(entityType) }

// inlineTx выполняет функцию без настоящей транзакции
type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// 2025-06-02 - понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings *mockBookingRepo
	slots    *mockSlotRepo
	configs  *mockConfigRepo
	rules    *mockRuleRepo
	catalog  *mockCatalog
	metrics  *mockMetrics
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		slots:    &mockSlotRepo{},
		configs:  &mockConfigRepo{},
		rules:    &mockRuleRepo{},
		catalog:  &mockCatalog{},
		metrics:  &mockMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.slots, f.configs, f.rules, f.catalog,
		domain.DefaultSlotGridConfig, inlineTx{}, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: monday.Add(-24 * time.Hour)}

	f.catalog.On("GetPackage", mock.Anything, int64(2)).
		Return(&catalogservice.Package{ID: 2, Name: "Birthday", Price: 100, RoomIDs: []int64{3}}, nil).Maybe()
	f.configs.On("GetConfigWithHierarchy", mock.Anything, int64(2), ptr.Ptr(int64(3))).
		Return(nil, configRepo.ErrConfigNotFound).Maybe()
	f.slots.On("GetByRoomAndDate", mock.Anything, domain.SlotsFilter{RoomID: 3, Date: monday}).
		Return([]domain.BookedSlot{{
			ID:       5,
			RoomID:   3,
			Date:     monday,
			Interval: domain.TimeInterval{Start: "10:00", End: "11:00"},
			Status:   domain.SlotStatusBooked,
		}}, nil).Maybe()
	return f
}

func request(start string) *Request {
	return &Request{UserID: 100, PackageID: 2, RoomID: 3, Date: monday, StartTime: types.TimeString(start)}
}

func TestUseCase_Execute_CreatesPricedBooking(t *testing.T) {
	f := newFixture()

	f.rules.On("GetActiveForEntity", mock.Anything, domain.PricingTarget{Type: domain.EntityTypePackage, ID: 2}, monday).
		Return([]domain.PricingRule{
			{
				ID: 1, Label: "Monday -10%", EntityScope: domain.EntityScopePackage,
				Amount: 10, AmountKind: domain.AmountKindPercentage,
				RecurrenceKind: domain.RecurrenceWeekly, RecurrenceValue: ptr.Ptr(1),
				Priority: 10, Stackable: true, Active: true,
			},
			{
				ID: 2, Label: "Service fee", EntityScope: domain.EntityScopeAll,
				Amount: 5, AmountKind: domain.AmountKindFixed,
				ApplicationKind: domain.ApplicationKindAdditive, Active: true,
			},
		}, nil)
	f.metrics.On("IncPriceQuote", "package").Return()

	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.StartTime == "11:00" && b.DurationMinutes == 60 && b.FinalAmount == 95 &&
			b.PackageName == "Birthday" && len(b.PriceBreakdown.Steps) == 2
	})).Return(&domain.Booking{ID: 70, FinalAmount: 95}, nil)
	f.slots.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.BookedSlot) bool {
		return s.BookingID == 70 && s.Interval == domain.TimeInterval{Start: "11:00", End: "12:00"}
	})).Return(&domain.BookedSlot{ID: 7}, nil)

	resp, err := f.uc.Execute(context.Background(), request("11:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(70), resp.Booking.ID)
	assert.Equal(t, int64(7), resp.SlotID)
	f.bookings.AssertExpectations(t)
	f.slots.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestUseCase_Execute_PrecheckConflict(t *testing.T) {
	f := newFixture()
	f.metrics.On("IncSlotConflict", metrics.ConflictSourcePrecheck).Return()

	_, err := f.uc.Execute(context.Background(), request("10:30"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.metrics.AssertExpectations(t)
}

func TestUseCase_Execute_ConstraintConflict(t *testing.T) {
	f := newFixture()
	f.rules.On("GetActiveForEntity", mock.Anything, mock.Anything, mock.Anything).Return([]domain.PricingRule{}, nil)
	f.metrics.On("IncPriceQuote", "package").Return()
	f.metrics.On("IncSlotConflict", metrics.ConflictSourceConstraint).Return()
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 70}, nil)
	f.slots.On("Create", mock.Anything, mock.Anything).Return(nil, slotRepo.ErrSlotAlreadyBooked)

	_, err := f.uc.Execute(context.Background(), request("12:00"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.metrics.AssertExpectations(t)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "ends after grid", req: request("20:30"), wantErr: ErrOutsideGrid},
		{name: "starts before grid", req: request("08:30"), wantErr: ErrOutsideGrid},
		{name: "past date", req: func() *Request { r := request("11:00"); r.Date = monday.AddDate(0, 0, -3); return r }(), wantErr: ErrInvalidDate},
		{name: "room outside package", req: func() *Request { r := request("11:00"); r.RoomID = 9; return r }(), wantErr: ErrRoomNotInPackage},
		{name: "missing start", req: request(""), wantErr: ErrInvalidInput},
		{name: "bad start", req: request("9:00"), wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
