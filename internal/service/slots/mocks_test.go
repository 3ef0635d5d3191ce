package slots

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error) {
	args := m.Called(ctx, id)
	slot, _ := args.Get(0).(*domain.BookedSlot)
	return slot, args.Error(1)
}

func (m *mockSlotRepo) GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error) {
	args := m.Called(ctx, filter)
	slots, _ := args.Get(0).([]domain.BookedSlot)
	return slots, args.Error(1)
}

func (m *mockSlotRepo) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockSlotRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// inlineTx выполняет функцию без настоящей транзакции
type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
