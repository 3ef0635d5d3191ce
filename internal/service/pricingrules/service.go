package pricingrules

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/pricingrule"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricingrules/models"
)

// Service сервис для работы со скидками и сборами
type Service struct {
	ruleRepo RuleRepository
	staffIDs []int64
	logger   Logger
}

// NewService создает новый экземпляр сервиса правил ценообразования
func NewService(ruleRepo RuleRepository, staffIDs []int64, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		staffIDs: staffIDs,
		logger:   logger,
	}
}

// Create создает правило
// Доступно только сотрудникам; правило проходит domain-валидацию
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating pricing rule label=%q scope=%s by user=%d", req.Label, req.EntityScope, req.UserID)

	if !s.isStaff(req.UserID) {
		s.logger.Warn("Create: user=%d is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("Create: malformed request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := rule.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created pricing rule id=%d", created.ID)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RuleResponse, error) {
	s.logger.Info("GetByID: fetching pricing rule id=%d", id)

	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("GetByID: pricing rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetByID: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// ListForEntity получает правила, привязанные к типу сущности (и, опционально, к конкретной сущности)
func (s *Service) ListForEntity(ctx context.Context, req *models.ListRulesRequest) (*models.RuleListResponse, error) {
	s.logger.Info("ListForEntity: listing rules entityType=%v entityID=%v onlyActive=%t", req.EntityType, req.EntityID, req.OnlyActive)

	filter := ruleRepo.ListFilter{
		EntityID:   req.EntityID,
		OnlyActive: req.OnlyActive,
	}

	if req.EntityType != nil {
		entityType := domain.EntityType(*req.EntityType)
		if !entityType.IsValid() {
			s.logger.Warn("ListForEntity: invalid entity type=%s", *req.EntityType)
			return nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, *req.EntityType)
		}
		filter.EntityType = &entityType
	} else if req.EntityID != nil {
		return nil, fmt.Errorf("%w: entityId requires entityType", ErrInvalidInput)
	}

	rules, err := s.ruleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListForEntity: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForEntity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForEntity: successfully fetched %d rules", len(rules))
	return models.FromDomainRuleList(rules), nil
}

// SetActive включает или выключает правило
// Доступно только сотрудникам
func (s *Service) SetActive(ctx context.Context, id int64, req *models.SetActiveRequest) (*models.RuleResponse, error) {
	s.logger.Info("SetActive: setting rule id=%d active=%t by user=%d", id, req.Active, req.UserID)

	if !s.isStaff(req.UserID) {
		s.logger.Warn("SetActive: user=%d is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	if err := s.ruleRepo.SetActive(ctx, id, req.Active); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("SetActive: pricing rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("SetActive: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: rule id=%d active=%t", id, req.Active)
	return s.GetByID(ctx, id)
}

func (s *Service) isStaff(userID int64) bool {
	return slices.Contains(s.staffIDs, userID)
}
