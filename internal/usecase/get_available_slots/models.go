package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов комнаты
type Request struct {
	RoomID    int64             // ID комнаты
	PackageID int64             // ID пакета (определяет сетку и длительность)
	Date      time.Time         // Дата (без времени)
	StartTime *types.TimeString // Время кандидата для проверки (опционально)
}

// Response модель ответа со свободными слотами
type Response struct {
	Date            time.Time
	RoomID          int64
	PackageID       int64
	IntervalMinutes int
	DurationMinutes int
	Candidate       *Candidate // nil, если StartTime не передан
	Slots           []Slot
}

// Candidate результат проверки запрошенного времени
type Candidate struct {
	StartTime      types.TimeString
	EndTime        types.TimeString
	Available      bool
	ConflictSlotID *int64
}

// Slot свободный слот
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
