package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"agiliza_backend/internal/repository"
)

// SettingsInput uses pointers so the merge-upsert can tell "not sent"
// from "sent empty": only fields present in the payload are written.
type SettingsInput struct {
	FacebookPixelID            *string `json:"facebookPixelId"`
	FacebookDomainVerification *string `json:"facebookDomainVerification"`
	GoogleAdsID                *string `json:"googleAdsId"`
}

// SettingsCache is invalidated after a save so the public pages pick the
// new identifiers up without a restart.
type SettingsCache interface {
	Invalidate()
}

var (
	settingsStore repository.SettingsStore
	settingsCache SettingsCache
)

func InitSettingsController(store repository.SettingsStore, cache SettingsCache) {
	settingsStore = store
	settingsCache = cache
}

func GetSettings(c *fiber.Ctx) error {
	settings, err := settingsStore.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch settings",
		})
	}

	return c.JSON(settings)
}

// UpdateSettings merge-upserts the singleton row: omitted fields keep
// their stored values.
func UpdateSettings(c *fiber.Ctx) error {
	input := new(SettingsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{}
	if input.FacebookPixelID != nil {
		updates["facebook_pixel_id"] = *input.FacebookPixelID
	}
	if input.FacebookDomainVerification != nil {
		updates["facebook_domain_verification"] = *input.FacebookDomainVerification
	}
	if input.GoogleAdsID != nil {
		updates["google_ads_id"] = *input.GoogleAdsID
	}

	settings, err := settingsStore.Save(updates)
	if err != nil {
		log.Printf("Could not save settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao salvar configurações.",
		})
	}

	if settingsCache != nil {
		settingsCache.Invalidate()
	}

	return c.JSON(fiber.Map{
		"message":  "Configurações salvas com sucesso!",
		"settings": settings,
	})
}
