package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newRequest(roomID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+roomID+"/available-slots?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"roomId": roomID})
}

func TestHandler_Handle_WithCandidate(t *testing.T) {
	start := types.TimeString("10:30")
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{
		RoomID:    3,
		PackageID: 2,
		Date:      monday,
		StartTime: &start,
	}).Return(&getAvailableSlots.Response{
		Date:            monday,
		RoomID:          3,
		PackageID:       2,
		IntervalMinutes: 30,
		DurationMinutes: 60,
		Candidate: &getAvailableSlots.Candidate{
			StartTime:      "10:30",
			EndTime:        "11:30",
			Available:      false,
			ConflictSlotID: ptr.Ptr(int64(5)),
		},
		Slots: []getAvailableSlots.Slot{{StartTime: "09:00", EndTime: "10:00"}},
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest("3", "packageId=2&date=2025-06-02&startTime=10:30"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-02", body.Date)
	require.NotNil(t, body.Candidate)
	assert.False(t, body.Candidate.Available)
	assert.Equal(t, int64(5), *body.Candidate.ConflictSlotID)
	assert.Equal(t, []AvailableSlot{{StartTime: "09:00", EndTime: "10:00"}}, body.Slots)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		roomID     string
		query      string
		ucErr      error
		wantStatus int
	}{
		{name: "bad room", roomID: "room", query: "packageId=2&date=2025-06-02", wantStatus: http.StatusBadRequest},
		{name: "no package", roomID: "3", query: "date=2025-06-02", wantStatus: http.StatusBadRequest},
		{name: "no date", roomID: "3", query: "packageId=2", wantStatus: http.StatusBadRequest},
		{name: "bad time", roomID: "3", query: "packageId=2&date=2025-06-02&startTime=25:00", wantStatus: http.StatusBadRequest},
		{name: "package missing", roomID: "3", query: "packageId=2&date=2025-06-02", ucErr: getAvailableSlots.ErrPackageNotFound, wantStatus: http.StatusNotFound},
		{name: "room not in package", roomID: "3", query: "packageId=2&date=2025-06-02", ucErr: getAvailableSlots.ErrRoomNotInPackage, wantStatus: http.StatusBadRequest},
		{name: "broken grid", roomID: "3", query: "packageId=2&date=2025-06-02", ucErr: getAvailableSlots.ErrInvalidConfiguration, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", roomID: "3", query: "packageId=2&date=2025-06-02", ucErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr).Maybe()

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(tt.roomID, tt.query))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
