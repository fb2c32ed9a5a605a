package tracking

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"agiliza_backend/internal/model"
)

// Sink receives conversion events. Page views are not routed here: the
// injected tags already fire them in the visitor's browser, and a
// server-side ping on top would double count. Implementations are
// best-effort: they log failures and never return them, because tracking
// must never block or fail a lead submission.
type Sink interface {
	LeadSubmitted(plan string, value float64)
}

// Noop is the sink when no tracking identifier is configured.
type Noop struct{}

func (Noop) LeadSubmitted(string, float64) {}

// FacebookPixel fires events against the pixel collect endpoint.
type FacebookPixel struct {
	PixelID string
	Client  *http.Client
}

func (p FacebookPixel) LeadSubmitted(plan string, value float64) {
	if plan == "" {
		plan = "Orçamento Geral"
	}
	params := url.Values{}
	params.Set("id", p.PixelID)
	params.Set("ev", "Lead")
	params.Set("cd[content_name]", plan)
	fire(p.Client, "https://www.facebook.com/tr?"+params.Encode())
}

// GoogleTag fires gtag-shaped events against the GA collect endpoint.
type GoogleTag struct {
	TagID  string
	Client *http.Client
}

func (g GoogleTag) LeadSubmitted(plan string, value float64) {
	params := url.Values{}
	params.Set("v", "2")
	params.Set("tid", g.TagID)
	params.Set("en", "generate_lead")
	params.Set("ep.event_category", "engagement")
	params.Set("ep.event_label", "lead_form")
	params.Set("epn.value", fmt.Sprintf("%.2f", value))
	fire(g.Client, "https://www.google-analytics.com/g/collect?"+params.Encode())
}

// Fanout sends every event to each configured sink independently; one
// network failing does not stop the other.
type Fanout []Sink

func (f Fanout) LeadSubmitted(plan string, value float64) {
	for _, s := range f {
		s.LeadSubmitted(plan, value)
	}
}

// ForSettings builds the sink matching the stored configuration.
func ForSettings(settings model.SiteSettings, client *http.Client) Sink {
	var sinks Fanout
	if settings.FacebookPixelID != "" {
		sinks = append(sinks, FacebookPixel{PixelID: settings.FacebookPixelID, Client: client})
	}
	if settings.GoogleAdsID != "" {
		sinks = append(sinks, GoogleTag{TagID: settings.GoogleAdsID, Client: client})
	}
	if len(sinks) == 0 {
		return Noop{}
	}
	return sinks
}

// Live resolves the sink from the settings cache at fire time, so saving
// a pixel id in the admin panel takes effect without a restart.
type Live struct {
	Cache  *Cache
	Client *http.Client
}

func (l Live) LeadSubmitted(plan string, value float64) {
	ForSettings(l.Cache.Current(), l.Client).LeadSubmitted(plan, value)
}

var defaultClient = &http.Client{Timeout: 5 * time.Second}

func fire(client *http.Client, rawURL string) {
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Get(rawURL)
	if err != nil {
		log.Printf("tracking: event not delivered: %v", err)
		return
	}
	resp.Body.Close()
}
