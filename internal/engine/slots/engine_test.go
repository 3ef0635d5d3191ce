package slots

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func iv(start, end types.TimeString) domain.TimeInterval {
	return domain.TimeInterval{Start: start, End: end}
}

func booked(id int64, start, end types.TimeString, status domain.SlotStatus) domain.BookedSlot {
	return domain.BookedSlot{
		ID:       id,
		RoomID:   1,
		Date:     testDate,
		Interval: iv(start, end),
		Status:   status,
	}
}

func gridConfig(start, end types.TimeString, interval, duration int) *domain.SlotGridConfig {
	return &domain.SlotGridConfig{
		PackageID:           1,
		GridStart:           start,
		GridEnd:             end,
		IntervalMinutes:     interval,
		ServiceDuration:     duration,
		ServiceDurationUnit: domain.DurationUnitMinutes,
	}
}

func TestHasConflict(t *testing.T) {
	existing := []domain.BookedSlot{booked(1, "14:00", "15:00", domain.SlotStatusBooked)}

	tests := []struct {
		name      string
		candidate domain.TimeInterval
		want      bool
	}{
		{name: "overlapping tail", candidate: iv("14:30", "15:30"), want: true},
		{name: "overlapping head", candidate: iv("13:30", "14:30"), want: true},
		{name: "inside", candidate: iv("14:10", "14:20"), want: true},
		{name: "back to back after", candidate: iv("15:00", "16:00"), want: false},
		{name: "back to back before", candidate: iv("13:00", "14:00"), want: false},
		{name: "far away", candidate: iv("18:00", "19:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(existing, tt.candidate))
		})
	}
}

func TestHasConflict_NonBlockingStatuses(t *testing.T) {
	candidate := iv("14:00", "15:00")

	for _, status := range domain.TerminalSlotStatuses {
		t.Run(string(status), func(t *testing.T) {
			existing := []domain.BookedSlot{booked(1, "14:00", "15:00", status)}
			assert.False(t, HasConflict(existing, candidate))
		})
	}
}

func TestCheckConflict(t *testing.T) {
	existing := []domain.BookedSlot{
		booked(1, "09:00", "10:00", domain.SlotStatusBooked),
		booked(2, "14:00", "15:00", domain.SlotStatusBooked),
	}

	err := CheckConflict(existing, iv("14:30", "15:30"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(2), conflictErr.Existing.ID)
	assert.Equal(t, iv("14:30", "15:30"), conflictErr.Candidate)

	assert.NoError(t, CheckConflict(existing, iv("10:00", "14:00")))
}

func TestExcludeSlot(t *testing.T) {
	existing := []domain.BookedSlot{
		booked(1, "09:00", "10:00", domain.SlotStatusBooked),
		booked(2, "14:00", "15:00", domain.SlotStatusBooked),
	}

	// the slot being edited must not collide with itself
	assert.True(t, HasConflict(existing, iv("14:00", "15:00")))
	rest := ExcludeSlot(existing, 2)
	assert.False(t, HasConflict(rest, iv("14:00", "15:00")))

	require.Len(t, rest, 1)
	assert.Len(t, existing, 2, "input slice must stay untouched")
	assert.Equal(t, int64(2), existing[1].ID)
}

func TestGenerateAvailableSlots(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *domain.SlotGridConfig
		existing []domain.BookedSlot
		want     []domain.TimeInterval
	}{
		{
			name:     "booking in the middle of the grid",
			cfg:      gridConfig("09:00", "12:00", 30, 60),
			existing: []domain.BookedSlot{booked(1, "10:00", "11:00", domain.SlotStatusBooked)},
			// 09:30, 10:00 and 10:30 overlap the booking, 11:30 does not fit the grid
			want: []domain.TimeInterval{iv("09:00", "10:00"), iv("11:00", "12:00")},
		},
		{
			name: "empty day",
			cfg:  gridConfig("09:00", "11:00", 30, 60),
			want: []domain.TimeInterval{iv("09:00", "10:00"), iv("09:30", "10:30"), iv("10:00", "11:00")},
		},
		{
			name:     "cancelled slot does not block",
			cfg:      gridConfig("09:00", "11:00", 60, 60),
			existing: []domain.BookedSlot{booked(1, "09:00", "10:00", domain.SlotStatusCancelled)},
			want:     []domain.TimeInterval{iv("09:00", "10:00"), iv("10:00", "11:00")},
		},
		{
			name: "duration longer than grid",
			cfg:  gridConfig("09:00", "10:00", 30, 90),
			want: []domain.TimeInterval{},
		},
		{
			name:     "fully booked",
			cfg:      gridConfig("09:00", "11:00", 30, 60),
			existing: []domain.BookedSlot{booked(1, "09:00", "11:00", domain.SlotStatusBooked)},
			want:     []domain.TimeInterval{},
		},
		{
			name: "grid up to midnight",
			cfg:  gridConfig("22:00", "24:00", 60, 60),
			want: []domain.TimeInterval{iv("22:00", "23:00"), iv("23:00", "24:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateAvailableSlots(tt.cfg, tt.existing)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GenerateAvailableSlots() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateAvailableSlots_HoursUnit(t *testing.T) {
	cfg := gridConfig("09:00", "12:00", 60, 2)
	cfg.ServiceDurationUnit = domain.DurationUnitHours

	got, err := GenerateAvailableSlots(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeInterval{iv("09:00", "11:00"), iv("10:00", "12:00")}, got)
}

func TestGenerateAvailableSlots_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *domain.SlotGridConfig
	}{
		{name: "nil config", cfg: nil},
		{name: "zero interval", cfg: gridConfig("09:00", "12:00", 0, 60)},
		{name: "negative interval", cfg: gridConfig("09:00", "12:00", -30, 60)},
		{name: "inverted grid", cfg: gridConfig("12:00", "09:00", 30, 60)},
		{name: "empty grid", cfg: gridConfig("09:00", "09:00", 30, 60)},
		{name: "interval longer than a day", cfg: gridConfig("09:00", "12:00", math.MaxInt, 60)},
		{name: "duration longer than a day", cfg: gridConfig("09:00", "12:00", 30, math.MaxInt)},
		{name: "hours duration overflow", cfg: func() *domain.SlotGridConfig {
			cfg := gridConfig("09:00", "12:00", 30, math.MaxInt/60+10)
			cfg.ServiceDurationUnit = domain.DurationUnitHours
			return cfg
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateAvailableSlots(tt.cfg, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.NotErrorIs(t, err, domain.ErrSlotConflict)
		})
	}
}

func TestAvailableSlots_StopsEarly(t *testing.T) {
	seq, err := AvailableSlots(gridConfig("00:00", "24:00", 5, 5), nil)
	require.NoError(t, err)

	var got []domain.TimeInterval
	for slot := range seq {
		got = append(got, slot)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []domain.TimeInterval{iv("00:00", "00:05"), iv("00:05", "00:10"), iv("00:10", "00:15")}, got)
}

func TestCheckAndListSlots(t *testing.T) {
	otherRoom := booked(10, "10:00", "11:00", domain.SlotStatusBooked)
	otherRoom.RoomID = 2
	otherDay := booked(11, "10:00", "11:00", domain.SlotStatusBooked)
	otherDay.Date = testDate.AddDate(0, 0, 1)

	existing := []domain.BookedSlot{
		booked(1, "09:00", "10:00", domain.SlotStatusBooked),
		booked(2, "11:00", "12:00", domain.SlotStatusCancelled),
		otherRoom,
		otherDay,
	}

	t.Run("back to back after booked, over cancelled", func(t *testing.T) {
		candidate := iv("10:00", "11:00")
		got, err := CheckAndListSlots(CheckRequest{
			RoomID:    1,
			Date:      testDate,
			Config:    gridConfig("09:00", "12:00", 60, 60),
			Existing:  existing,
			Candidate: &candidate,
		})
		require.NoError(t, err)
		assert.False(t, got.Conflict)
		assert.Nil(t, got.ConflictWith)
		assert.Equal(t, []domain.TimeInterval{iv("10:00", "11:00"), iv("11:00", "12:00")}, got.FreeSlots)
	})

	t.Run("overlapping candidate", func(t *testing.T) {
		candidate := iv("09:30", "10:30")
		got, err := CheckAndListSlots(CheckRequest{
			RoomID:    1,
			Date:      testDate,
			Config:    gridConfig("09:00", "12:00", 60, 60),
			Existing:  existing,
			Candidate: &candidate,
		})
		require.NoError(t, err)
		assert.True(t, got.Conflict)
		require.NotNil(t, got.ConflictWith)
		assert.Equal(t, int64(1), got.ConflictWith.ID)
	})

	t.Run("list only", func(t *testing.T) {
		got, err := CheckAndListSlots(CheckRequest{
			RoomID:   1,
			Date:     testDate,
			Config:   gridConfig("09:00", "12:00", 60, 60),
			Existing: existing,
		})
		require.NoError(t, err)
		assert.False(t, got.Conflict)
		assert.Len(t, got.FreeSlots, 2)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := CheckAndListSlots(CheckRequest{
			RoomID: 1,
			Date:   testDate,
			Config: gridConfig("09:00", "12:00", 0, 60),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})
}
