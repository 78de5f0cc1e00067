// internal/content/model.go
//
// Content data model.
//
// Context
// -------
// The marketing site is rendered from Pages, each an ordered sequence of
// typed ContentBlocks.  Alongside pages the store keeps an independent media
// library, a singleton SiteSettings record, and the enquiry inbox
// (FormSubmission).  JSON tags mirror the persisted snapshot layout, so the
// structs double as the wire format for both the snapshot file and the admin
// API.
//
// Block payloads follow the closed-sum approach: the Type tag decides which
// of the optional typed payload fields is meaningful.  Adding a block type
// means adding one constant, one payload field if needed, and one case in
// blockform.EditorForm.
package content

import "time"

//
// Block types
//

// BlockType tags a ContentBlock with its rendering and editing semantics.
type BlockType string

const (
	BlockHero         BlockType = "hero"
	BlockFeatures     BlockType = "features"
	BlockTestimonials BlockType = "testimonials"
	BlockPartners     BlockType = "partners"
	BlockTeam         BlockType = "team"
	BlockCustom       BlockType = "custom"
	BlockCTA          BlockType = "cta"
)

// BlockTypes lists every valid tag in a stable order.  Used by the admin API
// to populate the "add block" picker.
func BlockTypes() []BlockType {
	return []BlockType{
		BlockHero, BlockFeatures, BlockTestimonials,
		BlockPartners, BlockTeam, BlockCustom, BlockCTA,
	}
}

// Valid reports whether t is a member of the closed block-type set.
func (t BlockType) Valid() bool {
	switch t {
	case BlockHero, BlockFeatures, BlockTestimonials,
		BlockPartners, BlockTeam, BlockCustom, BlockCTA:
		return true
	}
	return false
}

//
// Block payloads
//

// CTA is one call-to-action button.
type CTA struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// HeroSettings is the typed payload of a hero block.
type HeroSettings struct {
	BackgroundImage string `json:"backgroundImage,omitempty"`
	CTA1            *CTA   `json:"cta1,omitempty"`
}

// TeamMember is owned by a team block's member list.
type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Testimonial is owned by a testimonials block's list.
type Testimonial struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Institution string `json:"institution"`
	Quote       string `json:"quote"`
	Avatar      string `json:"avatar,omitempty"`
}

// ContentBlock is one typed unit of page content.  ID is unique within its
// page; the position in Page.Blocks is the render order.  Content and
// Subtitle may hold raw editor HTML, which the store treats as opaque.
type ContentBlock struct {
	ID       string    `json:"id"`
	Type     BlockType `json:"type"`
	Title    string    `json:"title,omitempty"`
	Subtitle string    `json:"subtitle,omitempty"`
	Content  string    `json:"content,omitempty"`

	// Typed payloads; at most one is meaningful per Type.
	Hero         *HeroSettings `json:"hero,omitempty"`
	Team         []TeamMember  `json:"team,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`

	// Settings keeps unrecognised keys round-tripping for forward compat.
	Settings map[string]string `json:"settings,omitempty"`
}

//
// Page
//

// Page is a sluggable container for an ordered block sequence plus publish
// and SEO metadata.
type Page struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Blocks      []ContentBlock `json:"blocks"`
	IsPublished bool           `json:"isPublished"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// clone deep-copies the page so callers can never alias the store's blocks.
func (p Page) clone() Page {
	out := p
	out.Blocks = cloneBlocks(p.Blocks)
	return out
}

func cloneBlocks(in []ContentBlock) []ContentBlock {
	if in == nil {
		return nil
	}
	out := make([]ContentBlock, len(in))
	for i, b := range in {
		out[i] = b
		if b.Hero != nil {
			h := *b.Hero
			if b.Hero.CTA1 != nil {
				c := *b.Hero.CTA1
				h.CTA1 = &c
			}
			out[i].Hero = &h
		}
		out[i].Team = append([]TeamMember(nil), b.Team...)
		out[i].Testimonials = append([]Testimonial(nil), b.Testimonials...)
		if b.Settings != nil {
			m := make(map[string]string, len(b.Settings))
			for k, v := range b.Settings {
				m[k] = v
			}
			out[i].Settings = m
		}
	}
	return out
}

//
// Media
//

// MediaKind is derived from the uploaded file's MIME type.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// MediaItem is one stored upload.  URL is the public path the file server
// exposes, relative to the site root.
type MediaItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       MediaKind `json:"type"`
	URL        string    `json:"url"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

//
// Site settings
//

// ContactInfo is the footer/contact card data.
type ContactInfo struct {
	Email   string            `json:"email"`
	Phone   string            `json:"phone,omitempty"`
	Address string            `json:"address,omitempty"`
	Social  map[string]string `json:"social,omitempty"`
}

// SEODefaults seeds the head builder when a page has no own description.
type SEODefaults struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
}

// SiteSettings is the singleton deployment record.  Created once from
// defaults, merged in place by admin saves, never deleted.
type SiteSettings struct {
	SiteName string      `json:"siteName"`
	Logo     string      `json:"logo,omitempty"`
	Favicon  string      `json:"favicon,omitempty"`
	Contact  ContactInfo `json:"contactInfo"`
	SEO      SEODefaults `json:"seoDefaults"`
}

// SettingsPatch merges non-nil fields into the singleton.
type SettingsPatch struct {
	SiteName *string      `json:"siteName,omitempty"`
	Logo     *string      `json:"logo,omitempty"`
	Favicon  *string      `json:"favicon,omitempty"`
	Contact  *ContactInfo `json:"contactInfo,omitempty"`
	SEO      *SEODefaults `json:"seoDefaults,omitempty"`
}

//
// Form submissions
//

// EnquirerRole is the closed set describing who submitted an enquiry.
type EnquirerRole string

const (
	RoleIndividual  EnquirerRole = "individual"
	RoleInstitution EnquirerRole = "institution"
	RolePartner     EnquirerRole = "partner"
)

// Valid reports membership in the closed role set.
func (r EnquirerRole) Valid() bool {
	switch r {
	case RoleIndividual, RoleInstitution, RolePartner:
		return true
	}
	return false
}

// SubmissionStatus is the admin workflow tag.  The progression is advisory,
// not enforced; admins may jump states.
type SubmissionStatus string

const (
	StatusNew        SubmissionStatus = "new"
	StatusContacted  SubmissionStatus = "contacted"
	StatusInProgress SubmissionStatus = "in_progress"
	StatusClosed     SubmissionStatus = "closed"
)

// Valid reports membership in the closed status set.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// FormSubmission is one contact/demo enquiry.  Created by the public intake
// handler, mutated only by admins, never deleted.
type FormSubmission struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone,omitempty"`
	Institution  string           `json:"institution"`
	Message      string           `json:"message"`
	Role         EnquirerRole     `json:"role"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	IsRead       bool             `json:"isRead"`
	Status       SubmissionStatus `json:"status"`
	Notes        string           `json:"notes,omitempty"`
	FollowUpDate *time.Time       `json:"followUpDate,omitempty"`
	AssignedTo   string           `json:"assignedTo,omitempty"`
}

// SubmissionPatch merges non-nil workflow fields into a submission.  Identity
// and contact fields are immutable after intake.
type SubmissionPatch struct {
	Status       *SubmissionStatus `json:"status,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	FollowUpDate *time.Time        `json:"followUpDate,omitempty"`
	AssignedTo   *string           `json:"assignedTo,omitempty"`
}
