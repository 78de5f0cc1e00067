// internal/content/defaults.go
//
// Bundled default dataset.
//
// Used on first run and whenever the persisted snapshot cannot be parsed, so
// a broken data file never keeps the site from coming up.  The seed mirrors
// the standard marketing layout: home, about, institutions, news, and a
// contact page, each carrying the blocks the public templates expect.
package content

// DefaultSnapshot returns a fresh copy of the seed dataset.  Callers own the
// result and may mutate it freely.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Pages: []Page{
			{
				ID:          "page-home",
				Title:       "Home",
				Slug:        "home",
				Description: "Learning tools that meet every classroom where it is.",
				IsPublished: true,
				Blocks: []ContentBlock{
					{
						ID:       "home-hero",
						Type:     BlockHero,
						Title:    "Teaching, amplified",
						Subtitle: "<p>One platform for lessons, assessment, and insight.</p>",
						Hero: &HeroSettings{
							BackgroundImage: "/media/hero-classroom.jpg",
							CTA1:            &CTA{Text: "Book a demo", URL: "/book-demo"},
						},
					},
					{
						ID:    "home-features",
						Type:  BlockFeatures,
						Title: "Why Lumio",
					},
					{
						ID:    "home-testimonials",
						Type:  BlockTestimonials,
						Title: "What educators say",
						Testimonials: []Testimonial{
							{
								ID:          "t-1",
								Name:        "M. Okafor",
								Position:    "Head of Science",
								Institution: "Riverside Academy",
								Quote:       "Set-up took an afternoon; the insight lasted all year.",
							},
							{
								ID:          "t-2",
								Name:        "J. Laine",
								Position:    "ICT Coordinator",
								Institution: "Northgate College",
								Quote:       "The first tool our staff actually asked to keep.",
							},
						},
					},
					{
						ID:    "home-partners",
						Type:  BlockPartners,
						Title: "Trusted by",
					},
					{
						ID:    "home-cta",
						Type:  BlockCTA,
						Title: "Ready to see it in your school?",
					},
				},
			},
			{
				ID:          "page-about",
				Title:       "About",
				Slug:        "about",
				Description: "Who we are and why we build for classrooms.",
				IsPublished: true,
				Blocks: []ContentBlock{
					{
						ID:       "about-team",
						Type:     BlockTeam,
						Title:    "The team",
						Subtitle: "<p>Teachers, engineers, and a few stubborn optimists.</p>",
						Team: []TeamMember{
							{ID: "tm-1", Name: "A. Mensah", Position: "Co-founder"},
							{ID: "tm-2", Name: "R. Castillo", Position: "Head of Product"},
						},
					},
				},
			},
			{
				ID:          "page-institutions",
				Title:       "For Institutions",
				Slug:        "institutions",
				Description: "Plans and rollout support for schools and districts.",
				IsPublished: true,
				Blocks: []ContentBlock{
					{ID: "inst-hero", Type: BlockHero, Title: "Built for whole schools"},
					{ID: "inst-cta", Type: BlockCTA, Title: "Talk to our institutions team"},
				},
			},
			{
				ID:          "page-news",
				Title:       "News",
				Slug:        "news",
				Description: "Product updates and classroom stories.",
				IsPublished: true,
				Blocks: []ContentBlock{
					{ID: "news-custom", Type: BlockCustom, Content: "<p>No posts yet.</p>"},
				},
			},
			{
				ID:          "page-contact",
				Title:       "Contact",
				Slug:        "contact",
				Description: "Questions, demos, partnerships.",
				IsPublished: true,
				Blocks: []ContentBlock{
					{ID: "contact-hero", Type: BlockHero, Title: "Get in touch"},
				},
			},
		},
		Media: []MediaItem{},
		SiteSettings: SiteSettings{
			SiteName: "Lumio",
			Contact: ContactInfo{
				Email: "hello@lumio.example",
			},
			SEO: SEODefaults{
				Title:       "Lumio – learning tools for modern classrooms",
				Description: "Lumio helps schools plan, teach, and assess in one place.",
				Keywords:    []string{"edtech", "classroom", "assessment"},
			},
		},
		FormSubmissions: []FormSubmission{},
	}
}
