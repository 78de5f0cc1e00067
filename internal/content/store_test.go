// internal/content/store_test.go
//
// Unit-tests for the content store.
//
// Structure
// ---------
// memPersister stands in for the file-backed snapshot store so each test gets
// an isolated, observable persistence boundary: the save counter verifies
// the "exactly one flush per mutation" contract, and the fail flag exercises
// the log-and-continue path for write errors.
package content

import (
	"testing"

	"go.uber.org/zap"
)

// memPersister keeps the snapshot in memory and counts saves.
type memPersister struct {
	snap  *Snapshot
	saves int
	fail  bool
}

type failSave struct{}

func (failSave) Error() string { return "simulated write failure" }

func (m *memPersister) Load() (*Snapshot, error) { return m.snap, nil }

func (m *memPersister) Save(s *Snapshot) error {
	if m.fail {
		return failSave{}
	}
	m.saves++
	m.snap = s
	return nil
}

func emptyStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{snap: &Snapshot{Version: SnapshotVersion}}
	return Open(p, zap.NewNop().Sugar()), p
}

func TestBlocks_MissingPageIsEmpty(t *testing.T) {
	s, _ := emptyStore(t)
	if got := s.Blocks("nope"); len(got) != 0 {
		t.Fatalf("Blocks(missing) = %v, want empty", got)
	}
}

func TestBlocks_ReturnsStoredOrderForMatchingSlugOnly(t *testing.T) {
	s, _ := emptyStore(t)
	_, _ = s.AddPage(Page{Title: "One", Slug: "one", Blocks: []ContentBlock{
		{ID: "x", Type: BlockHero}, {ID: "y", Type: BlockCTA},
	}})
	_, _ = s.AddPage(Page{Title: "Two", Slug: "two", Blocks: []ContentBlock{
		{ID: "z", Type: BlockCustom},
	}})

	got := s.Blocks("one")
	assertOrder(t, got, "x", "y")
}

func TestAddPage_DerivesSlugAndRejectsDuplicates(t *testing.T) {
	s, _ := emptyStore(t)

	p, err := s.AddPage(Page{Title: "Our Mission!"})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if p.Slug != "our-mission" {
		t.Fatalf("derived slug = %q, want %q", p.Slug, "our-mission")
	}
	if p.ID == "" || p.LastUpdated.IsZero() {
		t.Fatalf("AddPage left identity unset: %+v", p)
	}

	if _, err := s.AddPage(Page{Title: "Other", Slug: "our-mission"}); err == nil {
		t.Fatal("duplicate slug accepted")
	}
}

func TestUpdatePage_WholeRecordReplaceIsIdempotent(t *testing.T) {
	s, p := emptyStore(t)
	page, _ := s.AddPage(Page{Title: "Home", Slug: "home"})

	page.Blocks = []ContentBlock{{ID: "b1", Type: BlockHero, Title: "Welcome"}}
	for i := 0; i < 2; i++ {
		ok, err := s.UpdatePage(page)
		if err != nil || !ok {
			t.Fatalf("UpdatePage #%d: ok=%v err=%v", i+1, ok, err)
		}
	}

	got := s.Blocks("home")
	assertOrder(t, got, "b1")
	if p.snap == nil || len(p.snap.Pages) != 1 {
		t.Fatalf("persisted pages = %+v, want exactly one", p.snap.Pages)
	}
}

func TestUpdatePage_UnknownIDIsNoOp(t *testing.T) {
	s, _ := emptyStore(t)
	ok, err := s.UpdatePage(Page{ID: "ghost", Slug: "ghost"})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if ok {
		t.Fatal("UpdatePage reported ok for unknown ID")
	}
}

// The end-to-end editing scenario: create an empty home page, append a hero
// block, then insert a team block before it via reorder.
func TestEditScenario_AppendThenReorder(t *testing.T) {
	s, p := emptyStore(t)

	page, err := s.AddPage(Page{Title: "Home", Slug: "home", Blocks: []ContentBlock{}})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}

	page.Blocks = append(page.Blocks, ContentBlock{ID: "b1", Type: BlockHero, Title: "Welcome"})
	if ok, err := s.UpdatePage(page); !ok || err != nil {
		t.Fatalf("UpdatePage append b1: ok=%v err=%v", ok, err)
	}

	page, _ = s.PageByID(page.ID)
	page.Blocks = append(page.Blocks, ContentBlock{ID: "b2", Type: BlockTeam})
	if ok, err := s.UpdatePage(page); !ok || err != nil {
		t.Fatalf("UpdatePage append b2: ok=%v err=%v", ok, err)
	}

	savesBefore := p.saves
	if !s.MoveBlock(page.ID, 1, 0) {
		t.Fatal("MoveBlock returned false")
	}
	if p.saves != savesBefore+1 {
		t.Fatalf("reorder flushed %d times, want exactly 1", p.saves-savesBefore)
	}

	assertOrder(t, s.Blocks("home"), "b2", "b1")
}

func TestMoveBlock_NoOpStillSucceedsWithoutFlush(t *testing.T) {
	s, p := emptyStore(t)
	page, _ := s.AddPage(Page{Title: "Home", Slug: "home", Blocks: []ContentBlock{
		{ID: "b1", Type: BlockHero},
	}})

	saves := p.saves
	if !s.MoveBlock(page.ID, 0, 0) {
		t.Fatal("MoveBlock no-op returned false")
	}
	if p.saves != saves {
		t.Fatal("no-op reorder flushed the snapshot")
	}
	if s.MoveBlock("ghost", 0, 1) {
		t.Fatal("MoveBlock on unknown page returned true")
	}
}

func TestMoveBlock_OutOfRangeFailsWithoutFlush(t *testing.T) {
	s, p := emptyStore(t)
	page, _ := s.AddPage(Page{Title: "Home", Slug: "home", Blocks: []ContentBlock{
		{ID: "b1", Type: BlockHero},
		{ID: "b2", Type: BlockTeam},
	}})

	saves := p.saves
	for _, c := range []struct{ from, to int }{
		{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5},
	} {
		if s.MoveBlock(page.ID, c.from, c.to) {
			t.Errorf("MoveBlock(%d, %d) returned true for out-of-range indexes", c.from, c.to)
		}
	}
	if p.saves != saves {
		t.Fatal("out-of-range reorder flushed the snapshot")
	}
	assertOrder(t, s.Blocks("home"), "b1", "b2")
}

func TestSubmissionLifecycle(t *testing.T) {
	s, _ := emptyStore(t)

	sub := s.AddSubmission(FormSubmission{
		Name: "A", Email: "a@x.com", Institution: "X",
		Message: "hi", Role: RoleIndividual,
	})
	if sub.ID == "" || sub.SubmittedAt.IsZero() {
		t.Fatalf("intake defaults missing: %+v", sub)
	}
	if sub.IsRead || sub.Status != StatusNew {
		t.Fatalf("defaults = read:%v status:%q, want unread/new", sub.IsRead, sub.Status)
	}

	st := StatusContacted
	notes := "called"
	got, ok := s.UpdateSubmission(sub.ID, SubmissionPatch{Status: &st, Notes: &notes})
	if !ok {
		t.Fatal("UpdateSubmission: not found")
	}
	if got.Status != StatusContacted || got.Notes != "called" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.IsRead != sub.IsRead || got.Email != sub.Email || got.Name != sub.Name {
		t.Fatalf("patch touched immutable fields: %+v", got)
	}

	if !s.MarkSubmissionRead(sub.ID) {
		t.Fatal("MarkSubmissionRead: not found")
	}
	got, _ = s.SubmissionByID(sub.ID)
	if !got.IsRead {
		t.Fatal("read flag not set")
	}
}

func TestDeleteMedia_RemovesExactlyOne(t *testing.T) {
	s, _ := emptyStore(t)
	a := s.AddMedia(MediaItem{Name: "a.png", Kind: MediaImage, Size: 10})
	b := s.AddMedia(MediaItem{Name: "b.pdf", Kind: MediaDocument, Size: 20})

	if !s.DeleteMedia(a.ID) {
		t.Fatal("DeleteMedia: not found")
	}
	left := s.Media()
	if len(left) != 1 || left[0].ID != b.ID || left[0].Name != "b.pdf" || left[0].Size != 20 {
		t.Fatalf("survivor mangled: %+v", left)
	}
	if s.DeleteMedia(a.ID) {
		t.Fatal("double delete reported success")
	}
}

func TestUpdateSettings_MergesOnlyProvidedFields(t *testing.T) {
	s, _ := emptyStore(t)

	name := "Lumio"
	got := s.UpdateSettings(SettingsPatch{SiteName: &name})
	if got.SiteName != "Lumio" {
		t.Fatalf("SiteName = %q", got.SiteName)
	}

	seo := SEODefaults{Title: "Lumio", Description: "d"}
	got = s.UpdateSettings(SettingsPatch{SEO: &seo})
	if got.SiteName != "Lumio" || got.SEO.Title != "Lumio" {
		t.Fatalf("merge clobbered earlier fields: %+v", got)
	}
}

func TestFlushFailure_DoesNotSurfaceToCaller(t *testing.T) {
	p := &memPersister{snap: &Snapshot{Version: SnapshotVersion}, fail: true}
	s := Open(p, zap.NewNop().Sugar())

	if _, err := s.AddPage(Page{Title: "Home", Slug: "home"}); err != nil {
		t.Fatalf("mutation surfaced a write failure: %v", err)
	}
	if _, ok := s.PageBySlug("home"); !ok {
		t.Fatal("in-memory state lost after failed flush")
	}
}

func TestOpen_UnreadablePersisterFallsBackToDefaults(t *testing.T) {
	s := Open(errPersister{}, zap.NewNop().Sugar())
	if len(s.Pages()) == 0 {
		t.Fatal("defaults not loaded after load failure")
	}
	if _, ok := s.PageBySlug("home"); !ok {
		t.Fatal("default dataset missing home page")
	}
}

type errPersister struct{}

func (errPersister) Load() (*Snapshot, error) { return nil, failSave{} }
func (errPersister) Save(*Snapshot) error     { return nil }
