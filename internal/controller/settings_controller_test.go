package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agiliza_backend/internal/model"
)

// MockSettingsStore
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Get() (model.SiteSettings, error) {
	args := m.Called()
	return args.Get(0).(model.SiteSettings), args.Error(1)
}

func (m *MockSettingsStore) Save(updates map[string]interface{}) (model.SiteSettings, error) {
	args := m.Called(updates)
	return args.Get(0).(model.SiteSettings), args.Error(1)
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) Invalidate() { f.invalidations++ }

func newSettingsTestApp(store *MockSettingsStore, cache *fakeCache) *fiber.App {
	InitSettingsController(store, cache)

	app := fiber.New()
	app.Get("/api/admin/settings", GetSettings)
	app.Put("/api/admin/settings", UpdateSettings)
	return app
}

func TestGetSettings(t *testing.T) {
	store := new(MockSettingsStore)
	app := newSettingsTestApp(store, &fakeCache{})

	store.On("Get").Return(model.SiteSettings{
		ID:              model.SettingsRowID,
		FacebookPixelID: "1234567890",
		GoogleAdsID:     "AW-555",
	}, nil)

	status, body := postJSON(app, "GET", "/api/admin/settings", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "1234567890", body["facebookPixelId"])
	assert.Equal(t, "AW-555", body["googleAdsId"])
}

func TestUpdateSettingsMergesOnlySentFields(t *testing.T) {
	store := new(MockSettingsStore)
	cache := &fakeCache{}
	app := newSettingsTestApp(store, cache)

	store.On("Save", map[string]interface{}{
		"facebook_pixel_id": "987654",
	}).Return(model.SiteSettings{ID: model.SettingsRowID, FacebookPixelID: "987654"}, nil)

	status, body := postJSON(app, "PUT", "/api/admin/settings", map[string]string{
		"facebookPixelId": "987654",
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Configurações salvas com sucesso!", body["message"])
	store.AssertExpectations(t)
	assert.Equal(t, 1, cache.invalidations, "a save must invalidate the tracking cache")
}

func TestUpdateSettingsSentEmptyClearsField(t *testing.T) {
	store := new(MockSettingsStore)
	app := newSettingsTestApp(store, &fakeCache{})

	// An explicit empty string is a write, unlike an omitted field.
	store.On("Save", map[string]interface{}{
		"facebook_pixel_id": "",
		"google_ads_id":     "AW-777",
	}).Return(model.SiteSettings{ID: model.SettingsRowID, GoogleAdsID: "AW-777"}, nil)

	status, _ := postJSON(app, "PUT", "/api/admin/settings", map[string]string{
		"facebookPixelId": "",
		"googleAdsId":     "AW-777",
	})

	require.Equal(t, fiber.StatusOK, status)
	store.AssertExpectations(t)
}

func TestUpdateSettingsStoreFailure(t *testing.T) {
	store := new(MockSettingsStore)
	cache := &fakeCache{}
	app := newSettingsTestApp(store, cache)

	store.On("Save", mock.Anything).Return(model.SiteSettings{}, assert.AnError)

	status, body := postJSON(app, "PUT", "/api/admin/settings", map[string]string{
		"facebookPixelId": "987654",
	})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Erro ao salvar configurações.", body["error"])
	assert.Equal(t, 0, cache.invalidations)
}
