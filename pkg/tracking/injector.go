package tracking

import (
	"fmt"
	"html/template"
	"strings"
)

// fbqShim is the standard pixel bootstrap. It guards itself with
// `if(f.fbq)return`, so injecting it into a page that already ran it is
// a no-op.
const fbqShim = `<script>
!function(f,b,e,v,n,t,s)
{if(f.fbq)return;n=f.fbq=function(){n.callMethod?
n.callMethod.apply(n,arguments):n.queue.push(arguments)};
if(!f._fbq)f._fbq=n;n.push=n;n.loaded=!0;n.version='2.0';
n.queue=[];t=b.createElement(e);t.async=!0;
t.src=v;s=b.getElementsByTagName(e)[0];
s.parentNode.insertBefore(t,s)}(window, document,'script',
'https://connect.facebook.net/en_US/fbevents.js');
</script>`

// Injector renders the tracking tags for the <head> of every public
// page, driven by the cached configuration.
type Injector struct {
	cache *Cache
}

func NewInjector(cache *Cache) *Injector {
	return &Injector{cache: cache}
}

// HeadHTML builds the tag block for one page render. The shim is always
// present (exactly once); identifiers only produce their tags when set.
// Missing configuration yields just the inert shim and never an error.
func (i *Injector) HeadHTML() template.HTML {
	settings := i.cache.Current()

	var b strings.Builder
	b.WriteString(fbqShim)
	b.WriteByte('\n')

	if v := strings.TrimSpace(settings.FacebookDomainVerification); v != "" {
		fmt.Fprintf(&b, "<meta name=\"facebook-domain-verification\" content=\"%s\" />\n",
			template.HTMLEscapeString(v))
	}

	if pixelID := strings.TrimSpace(settings.FacebookPixelID); pixelID != "" {
		escaped := template.JSEscapeString(pixelID)
		fmt.Fprintf(&b, "<script>fbq('init', '%s');fbq('track', 'PageView');</script>\n", escaped)
		fmt.Fprintf(&b, "<noscript><img height=\"1\" width=\"1\" style=\"display:none\" src=\"https://www.facebook.com/tr?id=%s&ev=PageView&noscript=1\" /></noscript>\n",
			template.HTMLEscapeString(pixelID))
	}

	if adsID := strings.TrimSpace(settings.GoogleAdsID); adsID != "" {
		fmt.Fprintf(&b, "<script async src=\"https://www.googletagmanager.com/gtag/js?id=%s\"></script>\n",
			template.HTMLEscapeString(adsID))
		fmt.Fprintf(&b, "<script>window.dataLayer = window.dataLayer || [];function gtag(){dataLayer.push(arguments);}gtag('js', new Date());gtag('config', '%s');</script>\n",
			template.JSEscapeString(adsID))
	}

	return template.HTML(b.String())
}
