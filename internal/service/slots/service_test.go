package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

const (
	ownerID = int64(100)
	staffID = int64(1)
)

func bookedSlot() *domain.BookedSlot {
	return &domain.BookedSlot{
		ID:        7,
		BookingID: 70,
		RoomID:    3,
		PackageID: 2,
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Interval:  domain.TimeInterval{Start: "10:00", End: "11:00"},
		Status:    domain.SlotStatusBooked,
	}
}

func newService(slots *mockSlotRepo, bookings *mockBookingRepo) *Service {
	return NewService(slots, bookings, inlineTx{}, []int64{staffID}, logger.NewNop())
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		userID    int64
		status    string
		wantErr   error
		wantWrite bool
	}{
		{name: "owner cancels", userID: ownerID, status: "cancelled", wantWrite: true},
		{name: "staff completes", userID: staffID, status: "completed", wantWrite: true},
		{name: "staff marks no show", userID: staffID, status: "no_show", wantWrite: true},
		{name: "owner cannot complete", userID: ownerID, status: "completed", wantErr: ErrAccessDenied},
		{name: "stranger cannot cancel", userID: 555, status: "cancelled", wantErr: ErrAccessDenied},
		{name: "back to booked", userID: staffID, status: "booked", wantErr: ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := &mockSlotRepo{}
			bookings := &mockBookingRepo{}

			slots.On("GetByID", mock.Anything, int64(7)).Return(bookedSlot(), nil)
			bookings.On("GetByID", mock.Anything, int64(70)).
				Return(&domain.Booking{ID: 70, UserID: ownerID, Status: domain.SlotStatusBooked}, nil)

			status := domain.SlotStatus(tt.status)
			if tt.wantWrite {
				slots.On("UpdateStatus", mock.Anything, int64(7), status).Return(nil)
				bookings.On("UpdateStatus", mock.Anything, int64(70), status).Return(nil)
			}

			resp, err := newService(slots, bookings).UpdateStatus(context.Background(), 7,
				&models.UpdateStatusRequest{UserID: tt.userID, Status: tt.status})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				slots.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, "2025-06-01", resp.Date)
			slots.AssertExpectations(t)
			bookings.AssertExpectations(t)
		})
	}
}

func TestService_UpdateStatus_TerminalSlot(t *testing.T) {
	slots := &mockSlotRepo{}
	bookings := &mockBookingRepo{}

	cancelled := bookedSlot()
	cancelled.Status = domain.SlotStatusCancelled
	slots.On("GetByID", mock.Anything, int64(7)).Return(cancelled, nil)
	bookings.On("GetByID", mock.Anything, int64(70)).
		Return(&domain.Booking{ID: 70, UserID: ownerID, Status: domain.SlotStatusCancelled}, nil)

	_, err := newService(slots, bookings).UpdateStatus(context.Background(), 7,
		&models.UpdateStatusRequest{UserID: staffID, Status: "completed"})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	slots := &mockSlotRepo{}
	bookings := &mockBookingRepo{}

	_, err := newService(slots, bookings).UpdateStatus(context.Background(), 7,
		&models.UpdateStatusRequest{UserID: staffID, Status: "paid"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	slots.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_SlotNotFound(t *testing.T) {
	slots := &mockSlotRepo{}
	slots.On("GetByID", mock.Anything, int64(7)).Return(nil, slotRepo.ErrSlotNotFound)

	_, err := newService(slots, &mockBookingRepo{}).UpdateStatus(context.Background(), 7,
		&models.UpdateStatusRequest{UserID: staffID, Status: "completed"})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_Delete(t *testing.T) {
	t.Run("staff removes slot and booking", func(t *testing.T) {
		slots := &mockSlotRepo{}
		bookings := &mockBookingRepo{}
		slots.On("GetByID", mock.Anything, int64(7)).Return(bookedSlot(), nil)
		slots.On("Delete", mock.Anything, int64(7)).Return(nil)
		bookings.On("Delete", mock.Anything, int64(70)).Return(nil)

		require.NoError(t, newService(slots, bookings).Delete(context.Background(), 7, staffID))
		slots.AssertExpectations(t)
		bookings.AssertExpectations(t)
	})

	t.Run("booking already gone", func(t *testing.T) {
		slots := &mockSlotRepo{}
		bookings := &mockBookingRepo{}
		slots.On("GetByID", mock.Anything, int64(7)).Return(bookedSlot(), nil)
		slots.On("Delete", mock.Anything, int64(7)).Return(nil)
		bookings.On("Delete", mock.Anything, int64(70)).Return(bookingRepo.ErrBookingNotFound)

		require.NoError(t, newService(slots, bookings).Delete(context.Background(), 7, staffID))
	})

	t.Run("not staff", func(t *testing.T) {
		slots := &mockSlotRepo{}

		err := newService(slots, &mockBookingRepo{}).Delete(context.Background(), 7, ownerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
		slots.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		slots := &mockSlotRepo{}
		slots.On("GetByID", mock.Anything, int64(7)).Return(nil, slotRepo.ErrSlotNotFound)

		err := newService(slots, &mockBookingRepo{}).Delete(context.Background(), 7, staffID)
		assert.ErrorIs(t, err, ErrSlotNotFound)
		slots.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_GetByID(t *testing.T) {
	slots := &mockSlotRepo{}
	slots.On("GetByID", mock.Anything, int64(7)).Return(bookedSlot(), nil)

	resp, err := newService(slots, &mockBookingRepo{}).GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, int64(70), resp.BookingID)
}

func TestService_ListByRoom(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("staff with status filter", func(t *testing.T) {
		slots := &mockSlotRepo{}
		slots.On("GetByRoomAndDate", mock.Anything, domain.SlotsFilter{
			RoomID:   3,
			Date:     day,
			Statuses: []domain.SlotStatus{domain.SlotStatusBooked, domain.SlotStatusNoShow},
		}).Return([]domain.BookedSlot{*bookedSlot()}, nil)

		resp, err := newService(slots, &mockBookingRepo{}).ListByRoom(context.Background(), &models.ListRoomSlotsRequest{
			UserID: staffID, RoomID: 3, Date: day.Add(15 * time.Hour), Statuses: []string{"booked", "no_show"},
		})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, int64(7), resp.Slots[0].ID)
	})

	t.Run("empty day is not nil", func(t *testing.T) {
		slots := &mockSlotRepo{}
		slots.On("GetByRoomAndDate", mock.Anything, domain.SlotsFilter{RoomID: 3, Date: day}).
			Return([]domain.BookedSlot{}, nil)

		resp, err := newService(slots, &mockBookingRepo{}).ListByRoom(context.Background(),
			&models.ListRoomSlotsRequest{UserID: staffID, RoomID: 3, Date: day})
		require.NoError(t, err)
		assert.NotNil(t, resp.Slots)
		assert.Empty(t, resp.Slots)
	})

	t.Run("errors", func(t *testing.T) {
		svc := newService(&mockSlotRepo{}, &mockBookingRepo{})

		_, err := svc.ListByRoom(context.Background(), &models.ListRoomSlotsRequest{UserID: ownerID, RoomID: 3, Date: day})
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = svc.ListByRoom(context.Background(), &models.ListRoomSlotsRequest{UserID: staffID, RoomID: 3})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.ListByRoom(context.Background(), &models.ListRoomSlotsRequest{
			UserID: staffID, RoomID: 3, Date: day, Statuses: []string{"lost"},
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
