package slot

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyBooked возвращается, когда БД отклонила пересекающийся слот
	// (exclusion constraint или уникальный индекс)
	ErrSlotAlreadyBooked = errors.New("slot.repository: slot already booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)

// Коды PostgreSQL, означающие пересечение с уже занятым слотом
const (
	pqUniqueViolation    pq.ErrorCode = "23505"
	pqExclusionViolation pq.ErrorCode = "23P01"
)

// isSlotTaken проверяет, что ошибка вызвана нарушением уникальности или exclusion constraint
func isSlotTaken(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqUniqueViolation || pqErr.Code == pqExclusionViolation
}
