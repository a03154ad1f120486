package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Gaur10/taskpilot/internal/handler"
	"github.com/Gaur10/taskpilot/internal/logger"
	"github.com/Gaur10/taskpilot/internal/middleware"
	"github.com/Gaur10/taskpilot/internal/model"
	"github.com/Gaur10/taskpilot/internal/repository"
)

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) GetOrCreate(ctx context.Context, tenantID string) (*model.FamilySettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FamilySettings), args.Error(1)
}

func (m *mockSettingsRepo) SetPreferences(ctx context.Context, tenantID string, prefs model.Preferences) (*model.FamilySettings, error) {
	args := m.Called(ctx, tenantID, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FamilySettings), args.Error(1)
}

var _ repository.SettingsRepositoryInterface = (*mockSettingsRepo)(nil)

func setupSettingsRouter(repo repository.SettingsRepositoryInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.IdentityKey, testIdentity("tenant-test-a"))
	})

	h := handler.NewSettingsHandler(repo, logger.NewNop())
	r.GET("/settings", h.Get)
	r.PUT("/settings", h.Update)
	r.DELETE("/settings", h.Reset)
	return r
}

func TestSettingsHandler_Get_SeedsDefaults(t *testing.T) {
	// Arrange
	repo := new(mockSettingsRepo)
	router := setupSettingsRouter(repo)

	repo.On("GetOrCreate", mock.Anything, "tenant-test-a").
		Return(&model.FamilySettings{TenantID: "tenant-test-a", Preferences: model.DefaultPreferences()}, nil)

	// Act
	resp := doJSON(router, "GET", "/settings", nil)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"tenantId":"tenant-test-a"`)
	repo.AssertExpectations(t)
}

func TestSettingsHandler_Update(t *testing.T) {
	// Arrange
	repo := new(mockSettingsRepo)
	router := setupSettingsRouter(repo)

	prefs := model.DefaultPreferences()
	prefs.Neighborhood = "Maplewood"
	repo.On("SetPreferences", mock.Anything, "tenant-test-a", prefs).
		Return(&model.FamilySettings{TenantID: "tenant-test-a", Preferences: prefs}, nil)

	// Act
	resp := doJSON(router, "PUT", "/settings", gin.H{"preferences": prefs})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Settings updated successfully")
	repo.AssertExpectations(t)
}

func TestSettingsHandler_Update_MissingPreferences(t *testing.T) {
	repo := new(mockSettingsRepo)
	router := setupSettingsRouter(repo)

	resp := doJSON(router, "PUT", "/settings", gin.H{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Preferences are required")
	repo.AssertNotCalled(t, "SetPreferences")
}

func TestSettingsHandler_Update_InvalidPreferences(t *testing.T) {
	repo := new(mockSettingsRepo)
	router := setupSettingsRouter(repo)

	prefs := model.DefaultPreferences()
	prefs.Schools = []model.School{{Name: ""}}

	resp := doJSON(router, "PUT", "/settings", gin.H{"preferences": prefs})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "schools[0].name is required")
	repo.AssertNotCalled(t, "SetPreferences")
}

func TestSettingsHandler_Reset(t *testing.T) {
	// Arrange
	repo := new(mockSettingsRepo)
	router := setupSettingsRouter(repo)

	repo.On("SetPreferences", mock.Anything, "tenant-test-a", model.DefaultPreferences()).
		Return(&model.FamilySettings{TenantID: "tenant-test-a", Preferences: model.DefaultPreferences()}, nil)

	// Act
	resp := doJSON(router, "DELETE", "/settings", nil)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Settings reset to defaults")
	repo.AssertExpectations(t)
}
