package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модели

// UpsertConfigRequest запрос на создание или замену сетки слотов
type UpsertConfigRequest struct {
	UserID              int64  `json:"-"`
	PackageID           int64  `json:"-"`
	RoomID              *int64 `json:"roomId,omitempty"` // NULL = для всех комнат пакета
	GridStart           string `json:"gridStart"`        // "09:00"
	GridEnd             string `json:"gridEnd"`          // "21:00"
	IntervalMinutes     int    `json:"intervalMinutes"`
	ServiceDuration     int    `json:"serviceDuration"`
	ServiceDurationUnit string `json:"serviceDurationUnit"` // minutes | hours
}

// GetConfigRequest запрос на получение конфигурации (иерархический поиск)
type GetConfigRequest struct {
	PackageID int64  `json:"packageId"`
	RoomID    *int64 `json:"roomId,omitempty"` // nil означает любую комнату
}

// DeleteConfigRequest запрос на удаление конфигурации
type DeleteConfigRequest struct {
	UserID    int64  `json:"-"`
	PackageID int64  `json:"packageId"`
	RoomID    *int64 `json:"roomId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными сетки слотов
type ConfigResponse struct {
	ID                  int64     `json:"id,omitempty"`
	PackageID           int64     `json:"packageId"`
	RoomID              *int64    `json:"roomId,omitempty"`
	GridStart           string    `json:"gridStart"`
	GridEnd             string    `json:"gridEnd"`
	IntervalMinutes     int       `json:"intervalMinutes"`
	ServiceDuration     int       `json:"serviceDuration"`
	ServiceDurationUnit string    `json:"serviceDurationUnit"`
	IsDefault           bool      `json:"isDefault"` // сетка из конфигурации сервиса
	CreatedAt           time.Time `json:"createdAt,omitzero"`
	UpdatedAt           time.Time `json:"updatedAt,omitzero"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SlotGridConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                  c.ID,
		PackageID:           c.PackageID,
		RoomID:              c.RoomID,
		GridStart:           c.GridStart.String(),
		GridEnd:             c.GridEnd.String(),
		IntervalMinutes:     c.IntervalMinutes,
		ServiceDuration:     c.ServiceDuration,
		ServiceDurationUnit: string(c.ServiceDurationUnit),
		IsDefault:           c.ID == 0,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.SlotGridConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}

// ToDomainConfig конвертирует UpsertConfigRequest в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.SlotGridConfig {
	return &domain.SlotGridConfig{
		PackageID:           r.PackageID,
		RoomID:              r.RoomID,
		GridStart:           types.TimeString(r.GridStart),
		GridEnd:             types.TimeString(r.GridEnd),
		IntervalMinutes:     r.IntervalMinutes,
		ServiceDuration:     r.ServiceDuration,
		ServiceDurationUnit: domain.DurationUnit(r.ServiceDurationUnit),
	}
}
