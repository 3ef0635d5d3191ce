package config

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/config/models"
)

// Service сервис для работы с сеткой слотов
type Service struct {
	configRepo    ConfigRepository
	catalogClient CatalogClient
	defaultGrid   DefaultGridFunc
	staffIDs      []int64
	logger        Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	catalogClient CatalogClient,
	defaultGrid DefaultGridFunc,
	staffIDs []int64,
	logger Logger,
) *Service {
	return &Service{
		configRepo:    configRepo,
		catalogClient: catalogClient,
		defaultGrid:   defaultGrid,
		staffIDs:      staffIDs,
		logger:        logger,
	}
}

// Upsert создает или заменяет сетку пакета (или пакета в комнате)
// Доступно только сотрудникам
// Проверяет существование пакета и принадлежность комнаты пакету
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: saving config for package=%d, room=%v by user=%d", req.PackageID, req.RoomID, req.UserID)

	// 1. Проверяем права доступа
	if !s.isStaff(req.UserID) {
		s.logger.Warn("Upsert: user=%d is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем сетку
	config := req.ToDomainConfig()
	if err := config.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Проверяем пакет и комнату в каталоге
	pkg, err := s.catalogClient.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrPackageNotFound) {
			s.logger.Warn("Upsert: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("Upsert: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	if req.RoomID != nil && !pkg.HasRoom(*req.RoomID) {
		s.logger.Warn("Upsert: room id=%d is not part of package id=%d", *req.RoomID, req.PackageID)
		return nil, ErrRoomNotInPackage
	}

	// 4. Сохраняем
	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// GetWithHierarchy получает действующую сетку
// Приоритет: пакет в комнате > пакет > сетка по умолчанию
func (s *Service) GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for package=%d, room=%v", req.PackageID, req.RoomID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.PackageID, req.RoomID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("GetWithHierarchy: repository error: %v", err)
			return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("GetWithHierarchy: no config for package=%d, using default grid", req.PackageID)
		config = s.defaultGrid(req.PackageID)
	}

	s.logger.Info("GetWithHierarchy: resolved config id=%d (level: %s)", config.ID, configLevel(config))
	return models.FromDomainConfig(config), nil
}

// GetAllByPackage получает все сохраненные сетки пакета
func (s *Service) GetAllByPackage(ctx context.Context, packageID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByPackage: fetching configs for package=%d", packageID)

	configs, err := s.configRepo.GetAllByPackage(ctx, packageID)
	if err != nil {
		s.logger.Error("GetAllByPackage: repository error for package=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: GetAllByPackage - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByPackage: successfully fetched %d configs for package=%d", len(configs), packageID)
	return models.FromDomainConfigList(configs), nil
}

// DeleteByKey удаляет сетку по ключу (package_id, room_id)
// Доступно только сотрудникам
func (s *Service) DeleteByKey(ctx context.Context, req *models.DeleteConfigRequest) error {
	s.logger.Info("DeleteByKey: deleting config for package=%d, room=%v by user=%d", req.PackageID, req.RoomID, req.UserID)

	if !s.isStaff(req.UserID) {
		s.logger.Warn("DeleteByKey: user=%d is not staff", req.UserID)
		return ErrAccessDenied
	}

	if err := s.configRepo.DeleteByPackageAndRoom(ctx, req.PackageID, req.RoomID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("DeleteByKey: config not found for package=%d, room=%v", req.PackageID, req.RoomID)
			return ErrConfigNotFound
		}
		s.logger.Error("DeleteByKey: repository error: %v", err)
		return fmt.Errorf("%w: DeleteByKey - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteByKey: successfully deleted config for package=%d, room=%v", req.PackageID, req.RoomID)
	return nil
}

func (s *Service) isStaff(userID int64) bool {
	return slices.Contains(s.staffIDs, userID)
}

// configLevel уровень конфигурации для логирования
func configLevel(config *domain.SlotGridConfig) string {
	switch {
	case config.ID == 0:
		return "default"
	case config.IsRoomSpecific():
		return "room"
	default:
		return "package"
	}
}
