package share

import (
	"fmt"
	"net/url"
	"strings"

	"realo-api/internal/models"
)

// botTokens identifies content-preview fetchers by User-Agent substring.
// Everything else is treated as a human browser and redirected.
var botTokens = []string{
	"facebookexternalhit",
	"facebot",
	"twitterbot",
	"slackbot",
	"whatsapp",
	"telegrambot",
	"discordbot",
	"linkedinbot",
	"linkedin",
}

// IsPreviewBot reports whether the declared User-Agent belongs to a known
// link-preview crawler. Matching is case-insensitive substring.
func IsPreviewBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, token := range botTokens {
		if strings.Contains(ua, token) {
			return true
		}
	}
	return false
}

// Responder builds the redirect target for humans and the Open Graph
// document served to crawlers.
type Responder struct {
	SiteOrigin   string
	DefaultImage string
}

func NewResponder(siteOrigin, defaultImage string) *Responder {
	return &Responder{
		SiteOrigin:   strings.TrimRight(siteOrigin, "/"),
		DefaultImage: defaultImage,
	}
}

// ViewerURL is the canonical SPA page for a property: the URL-encoded title
// followed by the id.
func (r *Responder) ViewerURL(p *models.Property, id int) string {
	title := p.Title
	if title == "" {
		title = "Property"
	}
	return fmt.Sprintf("%s/properties/%s/%d", r.SiteOrigin, url.PathEscape(title), id)
}

// ShareURL is the stable og:url for a property.
func (r *Responder) ShareURL(id int) string {
	return fmt.Sprintf("%s/share/%d", r.SiteOrigin, id)
}

// Description joins city and €-prefixed price with a separator; both empty
// falls back to a generic line.
func (r *Responder) Description(p *models.Property) string {
	var parts []string
	if p.City != "" {
		parts = append(parts, p.City)
	}
	if price := strings.TrimSpace(p.Price); price != "" {
		price = strings.TrimLeft(strings.TrimPrefix(price, "€"), " ")
		parts = append(parts, "€"+price)
	}
	if len(parts) == 0 {
		return "View property"
	}
	return strings.Join(parts, " • ")
}

// AbsoluteImageURL resolves relative image paths against the site origin;
// absolute URLs pass through untouched.
func (r *Responder) AbsoluteImageURL(u string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return r.SiteOrigin + u
}

// OGImage picks the first image of the property, falling back to the site
// default, always absolute.
func (r *Responder) OGImage(p *models.Property) string {
	if img := p.MainImage(); img != "" {
		return r.AbsoluteImageURL(img)
	}
	return r.AbsoluteImageURL(r.DefaultImage)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// escapeHTML escapes the characters that break out of element text or
// attribute values. Every user-influenced string goes through it before
// interpolation into the document.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const previewDocument = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>%[1]s</title>

  <meta property="og:type" content="website" />
  <meta property="og:title" content="%[1]s" />
  <meta property="og:description" content="%[2]s" />
  <meta property="og:url" content="%[3]s" />
  <meta property="og:image" content="%[4]s" />
  <meta property="og:image:width" content="1200" />
  <meta property="og:image:height" content="630" />

  <meta name="twitter:card" content="summary_large_image" />
  <meta name="twitter:title" content="%[1]s" />
  <meta name="twitter:description" content="%[2]s" />
  <meta name="twitter:image" content="%[4]s" />
</head>
<body></body>
</html>`

// RenderPreview emits the head-only HTML document served to crawlers: meta
// tags only, no visible body, no scripts, no client-side redirect.
func (r *Responder) RenderPreview(p *models.Property, id int) string {
	title := p.Title
	if title == "" {
		title = "Property"
	}

	return fmt.Sprintf(previewDocument,
		escapeHTML(title),
		escapeHTML(r.Description(p)),
		escapeHTML(r.ShareURL(id)),
		escapeHTML(r.OGImage(p)),
	)
}
