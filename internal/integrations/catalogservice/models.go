package catalogservice

import "slices"

// Package модель пакета из CatalogService
type Package struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	RoomIDs []int64 `json:"room_ids"` // Комнаты, в которых проводится пакет
}

// HasRoom возвращает true, если пакет проводится в комнате
func (p *Package) HasRoom(roomID int64) bool {
	return slices.Contains(p.RoomIDs, roomID)
}

// Attraction модель аттракциона из CatalogService
type Attraction struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
