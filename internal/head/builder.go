// internal/head/builder.go
//
// The Builder collects everything that should appear inside a page's
// <head> element.  It is scoped to a single request (or render call).  The
// public handlers push tags into the builder, then the base layout decides
// where to emit each slice.
//
// Features
// --------
//   - SetTitle           – single <title> tag (last call wins).
//   - SetDescription     – meta description (last call wins).
//   - Meta, Link, Script – arbitrary tags with deduplication.
//   - JSONLD             – stores raw JSON-LD strings and wraps them in
//     <script type="application/ld+json">…</script>.
//   - ApplyDefaults      – seeds title, description, and keywords from the
//     SiteSettings SEO defaults without clobbering existing values.
package head

import (
	"html/template"
	"strings"
	"sync"

	"github.com/lumioedu/web/internal/content"
)

// Builder is safe for concurrent use, although typical use is one builder
// per request on a single goroutine.
type Builder struct {
	mu sync.RWMutex

	// Single-value fields
	title       string
	description string

	// Multi-value slices
	metas   []string
	links   []string
	scripts []string
	jsonLD  []string

	// seen tracks keys for deduplication.
	seen map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// ------------------------------------------------------------------
// Single-value helpers
// ------------------------------------------------------------------

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// SetDescription overrides the meta description.  The last caller wins.
func (b *Builder) SetDescription(d string) {
	b.mu.Lock()
	b.description = d
	b.mu.Unlock()
}

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	b.mu.RLock()
	t := b.title
	b.mu.RUnlock()

	if t == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(t) + "</title>")
}

// Description returns the meta description tag or an empty string.
func (b *Builder) Description() template.HTML {
	b.mu.RLock()
	d := b.description
	b.mu.RUnlock()

	if d == "" {
		return ""
	}
	return template.HTML(`<meta name="description" content="` + template.HTMLEscapeString(d) + `">`)
}

// ------------------------------------------------------------------
// SEO defaults
// ------------------------------------------------------------------

// ApplyDefaults seeds the builder from the site's SEO defaults.  Existing
// title and description values win; keywords and OG tags are appended via
// the deduplicated slices, so calling this twice is harmless.
func (b *Builder) ApplyDefaults(s content.SiteSettings) {
	b.mu.Lock()
	if b.title == "" {
		b.title = s.SEO.Title
	}
	if b.description == "" {
		b.description = s.SEO.Description
	}
	title := b.title
	b.mu.Unlock()

	if len(s.SEO.Keywords) > 0 {
		kw := template.HTMLEscapeString(strings.Join(s.SEO.Keywords, ", "))
		b.Meta(`<meta name="keywords" content="` + kw + `">`)
	}
	if title != "" {
		b.Meta(`<meta property="og:title" content="` + template.HTMLEscapeString(title) + `">`)
	}
	if s.SiteName != "" {
		b.Meta(`<meta property="og:site_name" content="` + template.HTMLEscapeString(s.SiteName) + `">`)
	}
	if s.Favicon != "" {
		b.Link(`<link rel="icon" href="` + template.HTMLEscapeString(s.Favicon) + `">`)
	}
}

// ------------------------------------------------------------------
// Slice helpers with deduplication
// ------------------------------------------------------------------

func (b *Builder) Meta(tag string)   { b.add("meta:"+tag, &b.metas, tag) }
func (b *Builder) Link(tag string)   { b.add("link:"+tag, &b.links, tag) }
func (b *Builder) Script(tag string) { b.add("script:"+tag, &b.scripts, tag) }
func (b *Builder) JSONLD(js string)  { b.add("jsonld:"+hash(js), &b.jsonLD, js) }

func (b *Builder) add(key string, tgt *[]string, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// hash creates a short, stable key for JSON-LD strings.
func hash(s string) string {
	if len(s) > 32 {
		return s[:32]
	}
	return s
}

// ------------------------------------------------------------------
// Rendering helpers called from layout templates
// ------------------------------------------------------------------

func (b *Builder) Metas() template.HTML   { return b.concat(&b.metas) }
func (b *Builder) Links() template.HTML   { return b.concat(&b.links) }
func (b *Builder) Scripts() template.HTML { return b.concat(&b.scripts) }

// JSON returns all JSON-LD blocks wrapped in <script> tags.
func (b *Builder) JSON() template.HTML {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.jsonLD) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, js := range b.jsonLD {
		sb.WriteString(`<script type="application/ld+json">`)
		sb.WriteString(js)
		sb.WriteString(`</script>`)
	}
	return template.HTML(sb.String())
}

// concat joins pre-escaped tags without a separator.
func (b *Builder) concat(sl *[]string) template.HTML {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return template.HTML(strings.Join(*sl, ""))
}
