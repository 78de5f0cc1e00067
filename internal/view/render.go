// Package view renders pages through html/template.  Compiled template sets
// are kept in a small LRU keyed by page template name; concurrent cache
// misses for the same name collapse into a single compile via singleflight.
package view

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lumioedu/web/internal/cache"
	"github.com/lumioedu/web/internal/content"
	"github.com/lumioedu/web/internal/head"
)

// PageData is the root object every page template executes against.
type PageData struct {
	Head    *head.Builder
	Site    content.SiteSettings
	Page    content.Page
	CSRF    string
	Stamp   string            // hidden render timestamp for form timing
	Prefill map[string]string // query-driven form prefill, e.g. ?type=demo
}

var funcs = template.FuncMap{
	// rich marks editor-authored HTML as trusted.  Only store fields the
	// admin writes ever pass through this.
	"rich": func(s string) template.HTML { return template.HTML(s) },
	"year": func() int { return time.Now().Year() },
	"setting": func(b content.ContentBlock, key string) string {
		return b.Settings[key]
	},
}

// Engine compiles and caches template sets from a directory.  Each set is
// layout.html + <name>.html + every partial under blocks/.
type Engine struct {
	dir string
	dev bool // bypass the cache so template edits show up on reload

	mu    sync.Mutex
	cache *cache.LRU[string, *template.Template]
	sfg   singleflight.Group
}

// NewEngine returns an Engine rooted at dir.
func NewEngine(dir string, dev bool) *Engine {
	return &Engine{
		dir:   dir,
		dev:   dev,
		cache: cache.New[string, *template.Template](32),
	}
}

// Render executes the named page template with data.
func (e *Engine) Render(w io.Writer, name string, data *PageData) error {
	t, err := e.lookup(name)
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

func (e *Engine) lookup(name string) (*template.Template, error) {
	if !e.dev {
		e.mu.Lock()
		t, ok := e.cache.Get(name)
		e.mu.Unlock()
		if ok {
			return t, nil
		}
	}

	v, err, _ := e.sfg.Do(name, func() (any, error) {
		t, err := e.compile(name)
		if err != nil {
			return nil, err
		}
		if !e.dev {
			e.mu.Lock()
			e.cache.Add(name, t)
			e.mu.Unlock()
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}

func (e *Engine) compile(name string) (*template.Template, error) {
	files := []string{
		filepath.Join(e.dir, "layout.html"),
		filepath.Join(e.dir, name+".html"),
	}
	partials, err := filepath.Glob(filepath.Join(e.dir, "blocks", "*.html"))
	if err != nil {
		return nil, err
	}
	files = append(files, partials...)

	t, err := template.New("layout.html").Funcs(funcs).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("view: compile %q: %w", name, err)
	}
	return t, nil
}
