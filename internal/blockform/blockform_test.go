// internal/blockform/blockform_test.go
package blockform

import (
	"testing"

	"github.com/lumioedu/web/internal/content"
)

func fieldByName(fd FormDef, name string) (FieldDef, bool) {
	for _, f := range fd.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

func TestEditorForm_HeroPrefillsSettings(t *testing.T) {
	fd, err := EditorForm(content.ContentBlock{
		ID: "b1", Type: content.BlockHero, Title: "Welcome",
		Hero: &content.HeroSettings{
			BackgroundImage: "/media/bg.jpg",
			CTA1:            &content.CTA{Text: "Book", URL: "/book-demo"},
		},
	})
	if err != nil {
		t.Fatalf("EditorForm: %v", err)
	}
	if fd.Placeholder {
		t.Fatal("hero form marked placeholder")
	}

	bg, ok := fieldByName(fd, "hero.backgroundImage")
	if !ok || bg.Value != "/media/bg.jpg" {
		t.Fatalf("background field = %+v", bg)
	}
	cta, _ := fieldByName(fd, "hero.cta1.text")
	if cta.Value != "Book" {
		t.Fatalf("cta text = %q", cta.Value)
	}
}

func TestEditorForm_HeroWithoutSettingsIsEmptyNotNil(t *testing.T) {
	fd, err := EditorForm(content.ContentBlock{ID: "b", Type: content.BlockHero})
	if err != nil {
		t.Fatalf("EditorForm: %v", err)
	}
	if _, ok := fieldByName(fd, "hero.cta1.url"); !ok {
		t.Fatal("cta fields missing for bare hero block")
	}
}

func TestEditorForm_TeamNestsMemberEditors(t *testing.T) {
	fd, err := EditorForm(content.ContentBlock{
		ID: "b", Type: content.BlockTeam, Title: "Team",
		Team: []content.TeamMember{
			{ID: "m1", Name: "A", Position: "CEO"},
			{ID: "m2", Name: "B"},
		},
	})
	if err != nil {
		t.Fatalf("EditorForm: %v", err)
	}
	if len(fd.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(fd.Members))
	}
	if fd.Members[0].MemberID != "m1" {
		t.Fatalf("member id = %q", fd.Members[0].MemberID)
	}
}

func TestEditorForm_CustomIsSingleRichField(t *testing.T) {
	fd, err := EditorForm(content.ContentBlock{
		ID: "b", Type: content.BlockCustom, Content: "<p>x</p>",
	})
	if err != nil {
		t.Fatalf("EditorForm: %v", err)
	}
	if len(fd.Fields) != 1 || fd.Fields[0].Type != FieldRich || fd.Fields[0].Value != "<p>x</p>" {
		t.Fatalf("custom form = %+v", fd.Fields)
	}
}

func TestEditorForm_UnshippedTypesArePlaceholders(t *testing.T) {
	for _, bt := range []content.BlockType{
		content.BlockFeatures, content.BlockTestimonials,
		content.BlockPartners, content.BlockCTA,
	} {
		fd, err := EditorForm(content.ContentBlock{ID: "b", Type: bt})
		if err != nil {
			t.Fatalf("EditorForm(%s): %v", bt, err)
		}
		if !fd.Placeholder {
			t.Fatalf("%s form not marked placeholder", bt)
		}
	}
}

func TestEditorForm_UnknownTypeErrors(t *testing.T) {
	if _, err := EditorForm(content.ContentBlock{ID: "b", Type: "carousel"}); err == nil {
		t.Fatal("unknown type accepted")
	}
}
