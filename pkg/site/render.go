package site

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	richTextOnce   sync.Once
	richTextPolicy *bluemonday.Policy
)

// richText lets a small set of inline formatting tags from the profile
// through to the page and drops everything else.
func richText(raw string) template.HTML {
	richTextOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("strong", "em", "b", "i", "br", "span", "code")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		richTextPolicy = policy
	})
	return template.HTML(strings.TrimSpace(richTextPolicy.Sanitize(raw)))
}

// Endpoints are the intake routes the page script posts to.
type Endpoints struct {
	Quote      string `json:"quote"`
	Newsletter string `json:"newsletter"`
	Contact    string `json:"contact"`
}

// ClientConfig is handed to the page script as JSON.
type ClientConfig struct {
	SocialLinks  map[string]string `json:"socialLinks"`
	CalendlyLink string            `json:"calendlyLink"`
	CVLinks      map[string]string `json:"cvLinks"`
	Endpoints    Endpoints         `json:"endpoints"`
}

type pageData struct {
	*Profile
	Year           int
	Favicon        template.URL
	Avatar         template.URL
	StructuredData template.JS
	ClientConfig   template.JS
	BioHTML        []template.HTML
	Testimonials   []testimonialView
	Links          []SocialLink
}

type testimonialView struct {
	Testimonial
	QuoteHTML template.HTML
	Stars     []int
}

// Page is the rendered landing page. It is built once at startup and served
// from memory.
type Page struct {
	body []byte
	etag string
}

// Render builds the landing page for profile.
func Render(profile *Profile, endpoints Endpoints, now time.Time) (*Page, error) {
	tmpl, err := template.New("index.html.tmpl").Funcs(template.FuncMap{
		"inc":   func(i int) int { return i + 1 },
		"pad2":  func(i int) string { return fmt.Sprintf("%02d", i) },
		"join":  strings.Join,
		"lower": strings.ToLower,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("error parsing page template: %w", err)
	}

	data, err := newPageData(profile, endpoints, now)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("error rendering page: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return &Page{
		body: buf.Bytes(),
		etag: `"` + hex.EncodeToString(sum[:8]) + `"`,
	}, nil
}

// Bytes returns the rendered HTML document.
func (p *Page) Bytes() []byte { return p.body }

// ETag returns a strong validator for the document.
func (p *Page) ETag() string { return p.etag }

func newPageData(p *Profile, endpoints Endpoints, now time.Time) (*pageData, error) {
	structured, err := structuredData(p)
	if err != nil {
		return nil, err
	}

	client, err := json.Marshal(ClientConfig{
		SocialLinks:  nonNil(p.Social),
		CalendlyLink: p.CalendlyURL,
		CVLinks:      nonNil(p.CV),
		Endpoints:    endpoints,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding client config: %w", err)
	}

	d := &pageData{
		Profile:        p,
		Year:           now.Year(),
		Favicon:        svgDataURI(faviconSVG(p)),
		Avatar:         svgDataURI(avatarSVG(p)),
		StructuredData: template.JS(structured),
		ClientConfig:   template.JS(client),
		Links:          p.SocialLinks(),
	}
	for _, para := range p.Bio {
		d.BioHTML = append(d.BioHTML, richText(para))
	}
	for _, t := range p.Testimonials {
		d.Testimonials = append(d.Testimonials, testimonialView{
			Testimonial: t,
			QuoteHTML:   richText(t.Quote),
			Stars:       make([]int, t.Rating),
		})
	}
	return d, nil
}

// structuredData is the schema.org Person block for search engines.
func structuredData(p *Profile) ([]byte, error) {
	sameAs := []string{}
	for _, l := range p.SocialLinks() {
		sameAs = append(sameAs, l.URL)
	}

	b, err := json.Marshal(map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Person",
		"name":        p.Name,
		"jobTitle":    p.Title,
		"description": p.Description,
		"url":         p.URL,
		"sameAs":      sameAs,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding structured data: %w", err)
	}
	return b, nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func svgDataURI(svg string) template.URL {
	return template.URL("data:image/svg+xml," + url.PathEscape(svg))
}

const gradientDefs = `<linearGradient id="grad" x1="0%" y1="0%" x2="100%" y2="100%">` +
	`<stop offset="0%" stop-color="#6366f1"/><stop offset="50%" stop-color="#8b5cf6"/>` +
	`<stop offset="100%" stop-color="#a855f7"/></linearGradient>`

func faviconSVG(p *Profile) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><defs>` + gradientDefs + `</defs>` +
		`<rect width="64" height="64" rx="14" fill="url(#grad)"/>` +
		`<text x="50%" y="52%" dominant-baseline="middle" text-anchor="middle" ` +
		`font-family="Arial Black, sans-serif" font-size="28" font-weight="900" fill="white">` +
		html.EscapeString(p.Initials) + `</text></svg>`
}

func avatarSVG(p *Profile) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 500"><defs>` + gradientDefs + `</defs>` +
		`<rect width="400" height="500" fill="url(#grad)"/>` +
		`<circle cx="200" cy="190" r="90" fill="#ffecd2" opacity="0.9"/>` +
		`<ellipse cx="200" cy="430" rx="150" ry="110" fill="#ffecd2" opacity="0.9"/>` +
		`<text x="50%" y="40%" dominant-baseline="middle" text-anchor="middle" ` +
		`font-family="Arial Black, sans-serif" font-size="72" font-weight="900" fill="#6366f1">` +
		html.EscapeString(p.Initials) + `</text></svg>`
}
