// internal/blockform/blockform.go
//
// Block type → editor form mapping.
//
// Context
// -------
// The admin UI edits a ContentBlock through a form whose shape depends on
// the block's type tag.  EditorForm is a pure dispatch over the closed
// BlockType set: it returns a form definition (fields, labels, prefilled
// values) that the admin front end renders.  Supporting a new block type is
// one new case; existing cases are never touched.
//
// The definitions reuse the declarative field shape of a form subsystem:
// each field carries its input type, validation hints, and current value.
// Rich fields hold raw editor HTML, which everything downstream treats as an
// opaque string.
package blockform

import (
	"fmt"

	"github.com/lumioedu/web/internal/content"
)

// FieldType enumerates the input controls the admin editor knows how to
// render.
type FieldType string

const (
	FieldText FieldType = "text"
	FieldRich FieldType = "richtext"
	FieldURL  FieldType = "url"
)

// FieldDef describes a single input control on an editor form.
type FieldDef struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required,omitempty"`
	Value    string    `json:"value,omitempty"`
}

// MemberFields is the nested per-member sub-form of a team block.
type MemberFields struct {
	MemberID string     `json:"memberId"`
	Fields   []FieldDef `json:"fields"`
}

// FormDef is one block's editor form: flat fields plus, for team blocks, a
// repeated member sub-form.
type FormDef struct {
	BlockID   string         `json:"blockId"`
	BlockType string         `json:"blockType"`
	Fields    []FieldDef     `json:"fields"`
	Members   []MemberFields `json:"members,omitempty"`

	// Placeholder marks types whose dedicated editor has not shipped yet;
	// the admin UI shows a generic notice instead of input controls.
	Placeholder bool `json:"placeholder,omitempty"`
}

// EditorForm maps a block to its editing form.  Unknown type tags are a
// caller error, not a silent placeholder, so corrupted data surfaces early.
func EditorForm(b content.ContentBlock) (FormDef, error) {
	fd := FormDef{BlockID: b.ID, BlockType: string(b.Type)}

	switch b.Type {
	case content.BlockHero:
		hero := b.Hero
		if hero == nil {
			hero = &content.HeroSettings{}
		}
		cta := hero.CTA1
		if cta == nil {
			cta = &content.CTA{}
		}
		fd.Fields = []FieldDef{
			{Name: "title", Label: "Title", Type: FieldText, Required: true, Value: b.Title},
			{Name: "subtitle", Label: "Subtitle", Type: FieldRich, Value: b.Subtitle},
			{Name: "hero.backgroundImage", Label: "Background image URL", Type: FieldURL, Value: hero.BackgroundImage},
			{Name: "hero.cta1.text", Label: "Button text", Type: FieldText, Value: cta.Text},
			{Name: "hero.cta1.url", Label: "Button URL", Type: FieldURL, Value: cta.URL},
		}

	case content.BlockTeam:
		fd.Fields = []FieldDef{
			{Name: "title", Label: "Title", Type: FieldText, Required: true, Value: b.Title},
			{Name: "subtitle", Label: "Subtitle", Type: FieldRich, Value: b.Subtitle},
		}
		for _, m := range b.Team {
			fd.Members = append(fd.Members, MemberFields{
				MemberID: m.ID,
				Fields: []FieldDef{
					{Name: "name", Label: "Name", Type: FieldText, Required: true, Value: m.Name},
					{Name: "position", Label: "Position", Type: FieldText, Value: m.Position},
					{Name: "bio", Label: "Bio", Type: FieldRich, Value: m.Bio},
					{Name: "avatar", Label: "Avatar URL", Type: FieldURL, Value: m.Avatar},
					{Name: "linkedin", Label: "LinkedIn", Type: FieldURL, Value: m.LinkedIn},
					{Name: "twitter", Label: "Twitter", Type: FieldURL, Value: m.Twitter},
				},
			})
		}

	case content.BlockCustom:
		fd.Fields = []FieldDef{
			{Name: "content", Label: "Content", Type: FieldRich, Value: b.Content},
		}

	case content.BlockFeatures, content.BlockTestimonials,
		content.BlockPartners, content.BlockCTA:
		// Dedicated editors for these types have not shipped; the admin UI
		// renders a read-only notice.
		fd.Placeholder = true
		fd.Fields = []FieldDef{
			{Name: "title", Label: "Title", Type: FieldText, Value: b.Title},
		}

	default:
		return FormDef{}, fmt.Errorf("blockform: unknown block type %q", b.Type)
	}

	return fd, nil
}
