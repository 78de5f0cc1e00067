// internal/content/store.go
//
// The content store.
//
// Context
// -------
// One Store instance holds the whole site state: pages, media library, the
// SiteSettings singleton, and the enquiry inbox.  It is constructed once at
// startup from the persisted snapshot (or the bundled default dataset when
// the snapshot is missing or unreadable) and injected into the HTTP layer,
// so tests can build isolated instances.
//
// Every mutating operation re-serialises the full state and hands it to the
// Persister while still holding the write lock, keeping the snapshot a
// faithful copy of memory.  A failed write is logged and counted but never
// surfaced to the caller; memory remains the source of truth until the next
// successful flush.
//
// Lookup misses are empty results, not errors.  The store performs no input
// validation beyond ID and slug integrity; shaping input is the caller's
// concern (see internal/intake for the one real validation boundary).
package content

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumioedu/web/internal/metrics"
	"github.com/lumioedu/web/internal/routing"
)

// ErrSlugTaken is returned when a page insert or replace would leave two
// pages sharing one slug.
var ErrSlugTaken = errors.New("content: slug already in use")

// Store is safe for concurrent use by request handlers.
type Store struct {
	mu          sync.RWMutex
	pages       []Page
	media       []MediaItem
	settings    SiteSettings
	submissions []FormSubmission

	persist Persister
	log     *zap.SugaredLogger
}

// Open builds a Store from the persisted snapshot.  A missing snapshot is a
// normal first run; an unreadable one falls back to the default dataset with
// a logged warning, never an error; the site must come up regardless.
func Open(p Persister, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.S()
	}

	snap, err := load(p)
	if err != nil {
		log.Warnw("snapshot unreadable, starting from defaults", "err", err)
		snap = DefaultSnapshot()
	}

	s := &Store{
		pages:       snap.Pages,
		media:       snap.Media,
		settings:    snap.SiteSettings,
		submissions: snap.FormSubmissions,
		persist:     p,
		log:         log,
	}
	metrics.PagesLoaded.Set(float64(len(s.pages)))
	return s
}

func load(p Persister) (*Snapshot, error) {
	if p == nil {
		return DefaultSnapshot(), nil
	}
	snap, err := p.Load()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return DefaultSnapshot(), nil
	}
	return snap, nil
}

// flush serialises the full state to the Persister.  Callers hold s.mu.
func (s *Store) flush() {
	if s.persist == nil {
		return
	}
	snap := &Snapshot{
		Version:         SnapshotVersion,
		Pages:           s.pages,
		Media:           s.media,
		SiteSettings:    s.settings,
		FormSubmissions: s.submissions,
	}
	if err := s.persist.Save(snap); err != nil {
		metrics.SnapshotWriteErrorsTotal.Inc()
		s.log.Errorw("snapshot write failed", "err", err)
		return
	}
	metrics.SnapshotWritesTotal.Inc()
}

//
// Pages
//

// Blocks returns the block sequence of the page whose slug matches, in
// stored order.  A missing page or an empty page yields an empty slice, so
// callers render fallback content instead of handling an error path.
func (s *Store) Blocks(pageSlug string) []ContentBlock {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.pages {
		if s.pages[i].Slug == pageSlug {
			return cloneBlocks(s.pages[i].Blocks)
		}
	}
	return nil
}

// Pages returns all pages in stored order.
func (s *Store) Pages() []Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Page, len(s.pages))
	for i := range s.pages {
		out[i] = s.pages[i].clone()
	}
	return out
}

// PageBySlug returns the page whose slug matches.
func (s *Store) PageBySlug(slug string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.pages {
		if s.pages[i].Slug == slug {
			return s.pages[i].clone(), true
		}
	}
	return Page{}, false
}

// PageByID returns the page with the given ID.
func (s *Store) PageByID(id string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.pages {
		if s.pages[i].ID == id {
			return s.pages[i].clone(), true
		}
	}
	return Page{}, false
}

// AddPage inserts a new page.  A missing ID is assigned, a missing slug is
// derived from the title, and LastUpdated is stamped.  The slug must be
// unique across the collection.
func (s *Store) AddPage(p Page) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = routing.MakeSlug(p.Title)
	}
	for i := range s.pages {
		if s.pages[i].Slug == p.Slug {
			return Page{}, fmt.Errorf("%w: %q", ErrSlugTaken, p.Slug)
		}
		if s.pages[i].ID == p.ID {
			return Page{}, fmt.Errorf("content: page id %q already exists", p.ID)
		}
	}
	p.LastUpdated = time.Now().UTC()

	s.pages = append(s.pages, p.clone())
	metrics.PagesLoaded.Set(float64(len(s.pages)))
	s.flush()
	return p, nil
}

// UpdatePage replaces the whole stored record that matches p.ID, including
// its block sequence.  There is no partial-field patch; callers send the
// full page.  Replacing a page with identical content is a no-op apart from
// the LastUpdated stamp, which makes the operation idempotent in effect.
// ok is false when no page has that ID.
func (s *Store) UpdatePage(p Page) (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.pages {
		if s.pages[i].ID == p.ID {
			idx = i
			continue
		}
		if s.pages[i].Slug == p.Slug {
			return false, fmt.Errorf("%w: %q", ErrSlugTaken, p.Slug)
		}
	}
	if idx == -1 {
		return false, nil
	}

	p.LastUpdated = time.Now().UTC()
	s.pages[idx] = p.clone()
	s.flush()
	return true, nil
}

// DeletePage removes the page with the given ID.
func (s *Store) DeletePage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pages {
		if s.pages[i].ID == id {
			s.pages = append(s.pages[:i], s.pages[i+1:]...)
			metrics.PagesLoaded.Set(float64(len(s.pages)))
			s.flush()
			return true
		}
	}
	return false
}

// MoveBlock reorders one block within a page's sequence and commits the
// result as a single persisted update.  It reports false when the page is
// missing or either index is out of range; an in-range same-index move is a
// valid no-op that skips the flush.
func (s *Store) MoveBlock(pageID string, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pages {
		if s.pages[i].ID != pageID {
			continue
		}
		n := len(s.pages[i].Blocks)
		if from < 0 || to < 0 || from >= n || to >= n {
			return false
		}
		if from == to {
			return true // nothing to persist
		}
		s.pages[i].Blocks = Move(s.pages[i].Blocks, from, to)
		s.pages[i].LastUpdated = time.Now().UTC()
		s.flush()
		return true
	}
	return false
}

//
// Media
//

// Media returns all media items in stored order.
func (s *Store) Media() []MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MediaItem(nil), s.media...)
}

// AddMedia inserts a media item, assigning ID and upload time when unset.
func (s *Store) AddMedia(m MediaItem) MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.UploadedAt.IsZero() {
		m.UploadedAt = time.Now().UTC()
	}
	s.media = append(s.media, m)
	s.flush()
	return m
}

// DeleteMedia removes exactly the item with the given ID, leaving every
// other item untouched.
func (s *Store) DeleteMedia(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.media {
		if s.media[i].ID == id {
			s.media = append(s.media[:i], s.media[i+1:]...)
			s.flush()
			return true
		}
	}
	return false
}

//
// Site settings
//

// Settings returns a copy of the singleton.
func (s *Store) Settings() SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges the non-nil patch fields into the singleton and
// returns the result.
func (s *Store) UpdateSettings(patch SettingsPatch) SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.SiteName != nil {
		s.settings.SiteName = *patch.SiteName
	}
	if patch.Logo != nil {
		s.settings.Logo = *patch.Logo
	}
	if patch.Favicon != nil {
		s.settings.Favicon = *patch.Favicon
	}
	if patch.Contact != nil {
		s.settings.Contact = *patch.Contact
	}
	if patch.SEO != nil {
		s.settings.SEO = *patch.SEO
	}
	s.flush()
	return s.settings
}

//
// Form submissions
//

// Submissions returns the enquiry inbox, newest first.
func (s *Store) Submissions() []FormSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]FormSubmission(nil), s.submissions...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SubmissionByID returns one enquiry.
func (s *Store) SubmissionByID(id string) (FormSubmission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.submissions {
		if s.submissions[i].ID == id {
			return s.submissions[i], true
		}
	}
	return FormSubmission{}, false
}

// AddSubmission inserts an enquiry with intake defaults applied: fresh ID,
// SubmittedAt stamped, unread, status "new".  Duplicate submits create
// duplicate records by design; there is no idempotency key.
func (s *Store) AddSubmission(sub FormSubmission) FormSubmission {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = uuid.NewString()
	sub.SubmittedAt = time.Now().UTC()
	sub.IsRead = false
	sub.Status = StatusNew

	s.submissions = append(s.submissions, sub)
	s.flush()
	return sub
}

// MarkSubmissionRead flips the read flag.
func (s *Store) MarkSubmissionRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.submissions {
		if s.submissions[i].ID == id {
			s.submissions[i].IsRead = true
			s.flush()
			return true
		}
	}
	return false
}

// UpdateSubmission merges the patch's workflow fields into the matching
// record.  Identity, contact fields, and the read flag are untouched.
func (s *Store) UpdateSubmission(id string, patch SubmissionPatch) (FormSubmission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.submissions {
		if s.submissions[i].ID != id {
			continue
		}
		if patch.Status != nil {
			s.submissions[i].Status = *patch.Status
		}
		if patch.Notes != nil {
			s.submissions[i].Notes = *patch.Notes
		}
		if patch.FollowUpDate != nil {
			s.submissions[i].FollowUpDate = patch.FollowUpDate
		}
		if patch.AssignedTo != nil {
			s.submissions[i].AssignedTo = *patch.AssignedTo
		}
		s.flush()
		return s.submissions[i], true
	}
	return FormSubmission{}, false
}
