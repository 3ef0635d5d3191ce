package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/config/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

type mockConfigRepo struct{ mock.Mock }

func (m *mockConfigRepo) Upsert(ctx context.Context, config *domain.SlotGridConfig) (*domain.SlotGridConfig, error) {
	args := m.Called(ctx, config)
	saved, _ := args.Get(0).(*domain.SlotGridConfig)
	return saved, args.Error(1)
}

func (m *mockConfigRepo) GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error) {
	args := m.Called(ctx, packageID, roomID)
	config, _ := args.Get(0).(*domain.SlotGridConfig)
	return config, args.Error(1)
}

func (m *mockConfigRepo) GetAllByPackage(ctx context.Context, packageID int64) ([]*domain.SlotGridConfig, error) {
	args := m.Called(ctx, packageID)
	configs, _ := args.Get(0).([]*domain.SlotGridConfig)
	return configs, args.Error(1)
}

func (m *mockConfigRepo) DeleteByPackageAndRoom(ctx context.Context, packageID int64, roomID *int64) error {
	return m.Called(ctx, packageID, roomID).Error(0)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) GetPackage(ctx context.Context, packageID int64) (*catalogservice.Package, error) {
	args := m.Called(ctx, packageID)
	pkg, _ := args.Get(0).(*catalogservice.Package)
	return pkg, args.Error(1)
}

const staffID = int64(1)

func newService(repo *mockConfigRepo, catalog *mockCatalog) *Service {
	return NewService(repo, catalog, domain.DefaultSlotGridConfig, []int64{staffID}, logger.NewNop())
}

func validRequest() *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:              staffID,
		PackageID:           2,
		RoomID:              ptr.Ptr(int64(3)),
		GridStart:           "10:00",
		GridEnd:             "20:00",
		IntervalMinutes:     30,
		ServiceDuration:     2,
		ServiceDurationUnit: "hours",
	}
}

func TestService_Upsert(t *testing.T) {
	t.Run("saves room config", func(t *testing.T) {
		repo := &mockConfigRepo{}
		catalog := &mockCatalog{}
		catalog.On("GetPackage", mock.Anything, int64(2)).
			Return(&catalogservice.Package{ID: 2, RoomIDs: []int64{3}}, nil)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.SlotGridConfig) bool {
			return c.PackageID == 2 && *c.RoomID == 3 && c.ServiceDurationUnit == domain.DurationUnitHours
		})).Return(func() *domain.SlotGridConfig {
			saved := validRequest().ToDomainConfig()
			saved.ID = 11
			return saved
		}(), nil)

		resp, err := newService(repo, catalog).Upsert(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		assert.False(t, resp.IsDefault)
		repo.AssertExpectations(t)
	})

	t.Run("not staff", func(t *testing.T) {
		req := validRequest()
		req.UserID = 99

		_, err := newService(&mockConfigRepo{}, &mockCatalog{}).Upsert(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid grid", func(t *testing.T) {
		req := validRequest()
		req.GridEnd = "09:00"

		_, err := newService(&mockConfigRepo{}, &mockCatalog{}).Upsert(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("room outside package", func(t *testing.T) {
		catalog := &mockCatalog{}
		catalog.On("GetPackage", mock.Anything, int64(2)).
			Return(&catalogservice.Package{ID: 2, RoomIDs: []int64{4}}, nil)

		_, err := newService(&mockConfigRepo{}, catalog).Upsert(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRoomNotInPackage)
	})

	t.Run("package not found", func(t *testing.T) {
		catalog := &mockCatalog{}
		catalog.On("GetPackage", mock.Anything, int64(2)).Return(nil, catalogservice.ErrPackageNotFound)

		_, err := newService(&mockConfigRepo{}, catalog).Upsert(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPackageNotFound)
	})
}

func TestService_GetWithHierarchy(t *testing.T) {
	t.Run("stored config", func(t *testing.T) {
		repo := &mockConfigRepo{}
		stored := validRequest().ToDomainConfig()
		stored.ID = 5
		repo.On("GetConfigWithHierarchy", mock.Anything, int64(2), ptr.Ptr(int64(3))).Return(stored, nil)

		resp, err := newService(repo, &mockCatalog{}).GetWithHierarchy(context.Background(),
			&models.GetConfigRequest{PackageID: 2, RoomID: ptr.Ptr(int64(3))})
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "10:00", resp.GridStart)
	})

	t.Run("falls back to default grid", func(t *testing.T) {
		repo := &mockConfigRepo{}
		repo.On("GetConfigWithHierarchy", mock.Anything, int64(2), (*int64)(nil)).
			Return(nil, configRepo.ErrConfigNotFound)

		resp, err := newService(repo, &mockCatalog{}).GetWithHierarchy(context.Background(),
			&models.GetConfigRequest{PackageID: 2})
		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		assert.Equal(t, string(domain.DefaultGridStart), resp.GridStart)
		assert.Equal(t, domain.DefaultIntervalMinutes, resp.IntervalMinutes)
	})
}

func TestService_DeleteByKey(t *testing.T) {
	repo := &mockConfigRepo{}
	repo.On("DeleteByPackageAndRoom", mock.Anything, int64(2), (*int64)(nil)).Return(configRepo.ErrConfigNotFound)

	err := newService(repo, &mockCatalog{}).DeleteByKey(context.Background(),
		&models.DeleteConfigRequest{UserID: staffID, PackageID: 2})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
