package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lumioedu/web/internal/content"
	"github.com/lumioedu/web/internal/head"
)

// templatesDir points at the shipped template set, relative to this package.
const templatesDir = "../../web/templates"

func testData() *PageData {
	h := head.New()
	h.SetTitle("About Lumio")
	h.SetDescription("Who we are.")
	return &PageData{
		Head: h,
		Site: content.SiteSettings{
			SiteName: "Lumio",
			Contact:  content.ContactInfo{Email: "hello@lumio.example"},
		},
		Page: content.Page{
			ID:    "p1",
			Title: "About",
			Slug:  "about",
			Blocks: []content.ContentBlock{
				{
					ID:       "b1",
					Type:     content.BlockHero,
					Title:    "Learning that sticks",
					Subtitle: "<p>Built with teachers.</p>",
					Hero: &content.HeroSettings{
						CTA1: &content.CTA{Text: "Book a Demo", URL: "/book-demo"},
					},
				},
				{
					ID:   "b2",
					Type: content.BlockTeam,
					Team: []content.TeamMember{
						{ID: "m1", Name: "Sofia Lindqvist", Position: "CEO"},
					},
				},
				{ID: "b3", Type: content.BlockCustom, Content: "<p>Custom <b>HTML</b>.</p>"},
			},
			IsPublished: true,
		},
	}
}

func TestRenderPage(t *testing.T) {
	e := NewEngine(templatesDir, false)

	var buf bytes.Buffer
	if err := e.Render(&buf, "page", testData()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>About Lumio</title>",
		"Learning that sticks",
		`href="/book-demo"`,
		"Sofia Lindqvist",
		"Custom <b>HTML</b>.",
		"hello@lumio.example",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// Rich text passed through unescaped; ordinary fields escaped.
	if strings.Contains(out, "&lt;p&gt;Built with teachers.") {
		t.Error("subtitle was escaped, expected raw editor HTML")
	}
}

func TestRenderEscapesPlainFields(t *testing.T) {
	e := NewEngine(templatesDir, false)
	d := testData()
	d.Page.Blocks = []content.ContentBlock{
		{ID: "b1", Type: content.BlockHero, Title: `<script>alert(1)</script>`},
	}

	var buf bytes.Buffer
	if err := e.Render(&buf, "page", d); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Fatal("block title rendered unescaped")
	}
}

func TestRenderContactFormOnContactSlug(t *testing.T) {
	e := NewEngine(templatesDir, false)
	d := testData()
	d.Page.Slug = "contact"
	d.CSRF = "tok-123"
	d.Stamp = "1700000000"
	d.Prefill = map[string]string{"type": "demo", "role": "institution"}

	var buf bytes.Buffer
	if err := e.Render(&buf, "page", d); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `name="csrf_token" value="tok-123"`) {
		t.Error("form missing csrf token")
	}
	if !strings.Contains(out, "Book a Demo") {
		t.Error("demo prefill did not switch the form heading")
	}
	if !strings.Contains(out, `value="institution" selected`) {
		t.Error("role prefill not selected")
	}
}

func TestRenderCachesCompiledSet(t *testing.T) {
	e := NewEngine(templatesDir, false)

	var buf bytes.Buffer
	if err := e.Render(&buf, "page", testData()); err != nil {
		t.Fatalf("first Render: %v", err)
	}
	if _, ok := e.cache.Get("page"); !ok {
		t.Fatal("compiled set not cached")
	}

	buf.Reset()
	if err := e.Render(&buf, "page", testData()); err != nil {
		t.Fatalf("second Render: %v", err)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	e := NewEngine(templatesDir, false)
	if err := e.Render(&bytes.Buffer{}, "no-such-page", testData()); err == nil {
		t.Fatal("expected error for missing template")
	}
}
