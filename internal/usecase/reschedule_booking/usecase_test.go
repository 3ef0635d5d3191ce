package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) UpdateSchedule(ctx context.Context, id int64, date time.Time, start types.TimeString) error {
	return m.Called(ctx, id, date, start).Error(0)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) GetByBookingID(ctx context.Context, bookingID int64) (*domain.BookedSlot, error) {
	args := m.Called(ctx, bookingID)
	slot, _ := args.Get(0).(*domain.BookedSlot)
	return slot, args.Error(1)
}

func (m *mockSlotRepo) GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error) {
	args := m.Called(ctx, filter)
	slots, _ := args.Get(0).([]domain.BookedSlot)
	return slots, args.Error(1)
}

func (m *mockSlotRepo) UpdateSchedule(ctx context.Context, id int64, date time.Time, interval domain.TimeInterval) error {
	return m.Called(ctx, id, date, interval).Error(0)
}

type mockConfigRepo struct{ mock.Mock }

func (m *mockConfigRepo) GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error) {
	args := m.Called(ctx, packageID, roomID)
	config, _ := args.Get(0).(*domain.SlotGridConfig)
	return config, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncSlotConflict(source string) { m.Called(source) }

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	monday  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

type fixture struct {
	bookings *mockBookingRepo
	slots    *mockSlotRepo
	configs  *mockConfigRepo
	metrics  *mockMetrics
	uc       *UseCase
}

func newFixture(status domain.SlotStatus) *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		slots:    &mockSlotRepo{},
		configs:  &mockConfigRepo{},
		metrics:  &mockMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.slots, f.configs, domain.DefaultSlotGridConfig, inlineTx{}, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: monday.Add(8 * time.Hour)}

	f.bookings.On("GetByID", mock.Anything, int64(70)).Return(&domain.Booking{
		ID: 70, UserID: 100, PackageID: 2, RoomID: 3,
		BookingDate: tuesday, StartTime: "11:00", DurationMinutes: 60,
		Status: status, FinalAmount: 95,
	}, nil).Maybe()
	f.bookings.On("GetByID", mock.Anything, int64(71)).Return(nil, bookingRepo.ErrBookingNotFound).Maybe()
	f.slots.On("GetByBookingID", mock.Anything, int64(70)).Return(&domain.BookedSlot{
		ID: 7, BookingID: 70, RoomID: 3, PackageID: 2, Date: tuesday,
		Interval: domain.TimeInterval{Start: "11:00", End: "12:00"},
		Status:   status,
	}, nil).Maybe()
	f.configs.On("GetConfigWithHierarchy", mock.Anything, int64(2), ptr.Ptr(int64(3))).
		Return(nil, configRepo.ErrConfigNotFound).Maybe()
	f.slots.On("GetByRoomAndDate", mock.Anything, domain.SlotsFilter{RoomID: 3, Date: tuesday}).
		Return([]domain.BookedSlot{
			{ID: 5, RoomID: 3, Date: tuesday, Interval: domain.TimeInterval{Start: "10:00", End: "11:00"}, Status: domain.SlotStatusBooked},
			{ID: 7, RoomID: 3, Date: tuesday, Interval: domain.TimeInterval{Start: "11:00", End: "12:00"}, Status: domain.SlotStatusBooked},
		}, nil).Maybe()
	return f
}

func request(start string) *Request {
	return &Request{UserID: 100, BookingID: 70, Date: tuesday, StartTime: types.TimeString(start)}
}

func TestUseCase_Execute_MovesOverOwnSlot(t *testing.T) {
	f := newFixture(domain.SlotStatusBooked)

	f.slots.On("UpdateSchedule", mock.Anything, int64(7), tuesday,
		domain.TimeInterval{Start: "11:30", End: "12:30"}).Return(nil)
	f.bookings.On("UpdateSchedule", mock.Anything, int64(70), tuesday, types.TimeString("11:30")).Return(nil)

	resp, err := f.uc.Execute(context.Background(), request("11:30"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.SlotID)
	assert.Equal(t, types.TimeString("11:30"), resp.Booking.StartTime)
	assert.Equal(t, 95.0, resp.Booking.FinalAmount)
	f.slots.AssertExpectations(t)
	f.bookings.AssertExpectations(t)
}

func TestUseCase_Execute_Conflicts(t *testing.T) {
	t.Run("precheck", func(t *testing.T) {
		f := newFixture(domain.SlotStatusBooked)
		f.metrics.On("IncSlotConflict", metrics.ConflictSourcePrecheck).Return()

		_, err := f.uc.Execute(context.Background(), request("10:30"))

		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		f.slots.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.metrics.AssertExpectations(t)
	})

	t.Run("constraint", func(t *testing.T) {
		f := newFixture(domain.SlotStatusBooked)
		f.metrics.On("IncSlotConflict", metrics.ConflictSourceConstraint).Return()
		f.slots.On("UpdateSchedule", mock.Anything, int64(7), tuesday, mock.Anything).Return(slotRepo.ErrSlotAlreadyBooked)

		_, err := f.uc.Execute(context.Background(), request("14:00"))

		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		f.bookings.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.metrics.AssertExpectations(t)
	})
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.SlotStatus
		req     *Request
		wantErr error
	}{
		{name: "not found", status: domain.SlotStatusBooked, req: func() *Request { r := request("14:00"); r.BookingID = 71; return r }(), wantErr: ErrBookingNotFound},
		{name: "other user", status: domain.SlotStatusBooked, req: func() *Request { r := request("14:00"); r.UserID = 5; return r }(), wantErr: ErrAccessDenied},
		{name: "cancelled booking", status: domain.SlotStatusCancelled, req: request("14:00"), wantErr: ErrCannotReschedule},
		{name: "completed booking", status: domain.SlotStatusCompleted, req: request("14:00"), wantErr: ErrCannotReschedule},
		{name: "outside grid", status: domain.SlotStatusBooked, req: request("20:30"), wantErr: ErrOutsideGrid},
		{name: "past date", status: domain.SlotStatusBooked, req: func() *Request { r := request("14:00"); r.Date = monday.AddDate(0, 0, -1); return r }(), wantErr: ErrInvalidDate},
		{name: "bad start", status: domain.SlotStatusBooked, req: request("14"), wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.status)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.slots.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
