package tracking

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agiliza_backend/internal/model"
)

type stubSource struct {
	settings model.SiteSettings
	err      error
	calls    int
}

func (s *stubSource) Get() (model.SiteSettings, error) {
	s.calls++
	return s.settings, s.err
}

func TestHeadHTMLWithoutConfiguration(t *testing.T) {
	source := &stubSource{}
	injector := NewInjector(NewCache(source, time.Minute))

	html := string(injector.HeadHTML())

	assert.Equal(t, 1, strings.Count(html, "fbevents.js"), "shim present exactly once")
	assert.NotContains(t, html, "fbq('init'")
	assert.NotContains(t, html, "googletagmanager")
	assert.NotContains(t, html, "facebook-domain-verification")
}

func TestHeadHTMLWithAllIdentifiers(t *testing.T) {
	source := &stubSource{settings: model.SiteSettings{
		FacebookPixelID:            "1234567890",
		FacebookDomainVerification: "abc123",
		GoogleAdsID:                "AW-999",
	}}
	injector := NewInjector(NewCache(source, time.Minute))

	html := string(injector.HeadHTML())

	assert.Contains(t, html, "fbq('init', '1234567890')")
	assert.Contains(t, html, "fbq('track', 'PageView')")
	assert.Contains(t, html, `content="abc123"`)
	assert.Contains(t, html, "gtag/js?id=AW-999")
	assert.Contains(t, html, "gtag('config', 'AW-999')")
	assert.Contains(t, html, "facebook.com/tr?id=1234567890")
}

func TestHeadHTMLIsIdempotentPerRender(t *testing.T) {
	source := &stubSource{settings: model.SiteSettings{FacebookPixelID: "42"}}
	injector := NewInjector(NewCache(source, time.Minute))

	first := string(injector.HeadHTML())
	second := string(injector.HeadHTML())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(first, "fbevents.js"))
}

func TestCacheRefreshesOnlyWhenStaleOrInvalidated(t *testing.T) {
	source := &stubSource{settings: model.SiteSettings{GoogleAdsID: "G-1"}}
	cache := NewCache(source, time.Hour)

	cache.Current()
	cache.Current()
	assert.Equal(t, 1, source.calls, "TTL not elapsed, no second fetch")

	source.settings.GoogleAdsID = "G-2"
	cache.Invalidate()
	assert.Equal(t, "G-2", cache.Current().GoogleAdsID)
	assert.Equal(t, 2, source.calls)
}

func TestCacheKeepsLastKnownOnError(t *testing.T) {
	source := &stubSource{settings: model.SiteSettings{FacebookPixelID: "px"}}
	cache := NewCache(source, time.Hour)

	assert.Equal(t, "px", cache.Current().FacebookPixelID)

	source.err = errors.New("store down")
	cache.Invalidate()
	assert.Equal(t, "px", cache.Current().FacebookPixelID, "failed refresh keeps last value")
}

func TestForSettingsVariants(t *testing.T) {
	assert.IsType(t, Noop{}, ForSettings(model.SiteSettings{}, nil))

	sink := ForSettings(model.SiteSettings{FacebookPixelID: "1", GoogleAdsID: "2"}, nil)
	fanout, ok := sink.(Fanout)
	assert.True(t, ok)
	assert.Len(t, fanout, 2)
}
