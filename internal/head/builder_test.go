// internal/head/builder_test.go
package head

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/lumioedu/web/internal/content"
)

func TestTitle_LastCallWinsAndEscapes(t *testing.T) {
	b := New()
	b.SetTitle("First")
	b.SetTitle(`A <b>"quoted"</b> title`)

	got := string(b.Title())
	if strings.Contains(got, "<b>") {
		t.Fatalf("title not escaped: %s", got)
	}
	if !strings.HasPrefix(got, "<title>") {
		t.Fatalf("malformed title tag: %s", got)
	}
}

func TestMeta_Deduplicates(t *testing.T) {
	b := New()
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta charset="utf-8">`)

	if got := string(b.Metas()); strings.Count(got, "charset") != 1 {
		t.Fatalf("duplicate meta emitted: %s", got)
	}
}

func TestApplyDefaults_DoesNotClobberPageValues(t *testing.T) {
	settings := content.SiteSettings{
		SiteName: "Lumio",
		SEO: content.SEODefaults{
			Title:       "Default title",
			Description: "Default description",
			Keywords:    []string{"edtech", "classroom"},
		},
	}

	b := New()
	b.SetTitle("Page title")
	b.ApplyDefaults(settings)

	if got := string(b.Title()); !strings.Contains(got, "Page title") {
		t.Fatalf("page title clobbered: %s", got)
	}
	if got := string(b.Description()); !strings.Contains(got, "Default description") {
		t.Fatalf("default description missing: %s", got)
	}
	if got := string(b.Metas()); !strings.Contains(got, "edtech, classroom") {
		t.Fatalf("keywords missing: %s", got)
	}

	// Second application is a no-op thanks to deduplication.
	b.ApplyDefaults(settings)
	if got := string(b.Metas()); strings.Count(got, "og:site_name") != 1 {
		t.Fatalf("defaults applied twice: %s", got)
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	b := New()
	b.SetTitle("Start")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			b.SetTitle(fmt.Sprintf("Title %d", n))
			b.Meta(fmt.Sprintf(`<meta name="n" content="%d">`, n))
		}(i)
		go func() {
			defer wg.Done()
			_ = b.Title()
			_ = b.Description()
			_ = b.Metas()
			_ = b.JSON()
		}()
	}
	wg.Wait()

	if got := string(b.Title()); !strings.Contains(got, "Title ") {
		t.Fatalf("Title after concurrent writes = %s", got)
	}
}
