package model

import "time"

// SettingsRowID pins the tracking configuration to a single row.
const SettingsRowID uint = 1

// SiteSettings holds the third-party tracking identifiers injected into
// every public page. At most one row exists; an absent row means all
// identifiers unset.
type SiteSettings struct {
	ID                         uint      `json:"-" gorm:"primaryKey"`
	FacebookPixelID            string    `json:"facebookPixelId"`
	FacebookDomainVerification string    `json:"facebookDomainVerification"`
	GoogleAdsID                string    `json:"googleAdsId"`
	UpdatedAt                  time.Time `json:"-"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
