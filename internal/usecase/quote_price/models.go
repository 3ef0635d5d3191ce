package quote_price

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модель запроса расчета цены
type Request struct {
	EntityType string
	EntityID   int64
	BaseAmount *float64          // Если не указана - цена из каталога
	Date       time.Time         // Если не указана - сегодня
	Time       *types.TimeString // Без времени правила с временным окном не применяются
}

// Response модель ответа с расшифровкой цены
type Response struct {
	EntityType domain.EntityType
	EntityID   int64
	Date       time.Time
	Breakdown  domain.PriceBreakdown
}
