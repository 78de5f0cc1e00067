// Package media handles uploaded assets.  Files live on local disk under
// <data_dir>/media/ and are catalogued in the content store; the public file
// server exposes them under /media/.  Kind classification (image, video,
// document) is sniffed from file content via mimetype rather than trusting
// the upload's extension or declared Content-Type.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumioedu/web/internal/content"
	"github.com/lumioedu/web/internal/metrics"
	"github.com/lumioedu/web/internal/routing"
)

// Library stores upload files and records them in the content store.
type Library struct {
	dir   string // on-disk media directory
	store *content.Store
	log   *zap.SugaredLogger
}

// New ensures the media directory exists and returns a Library.
func New(dataDir string, store *content.Store, log *zap.SugaredLogger) (*Library, error) {
	if log == nil {
		log = zap.S()
	}
	dir := filepath.Join(dataDir, "media")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create %s: %w", dir, err)
	}
	return &Library{dir: dir, store: store, log: log}, nil
}

// Dir returns the on-disk media directory for the static file server.
func (l *Library) Dir() string { return l.dir }

// Save writes an upload to disk and catalogues it.  The stored filename is
// <uuid>-<slugged original name><ext> so repeated uploads of the same file
// never collide while the name stays recognisable in URLs.
func (l *Library) Save(name string, r io.Reader) (content.MediaItem, error) {
	var zero content.MediaItem

	data, err := io.ReadAll(r)
	if err != nil {
		return zero, fmt.Errorf("media: read upload %q: %w", name, err)
	}
	if len(data) == 0 {
		return zero, fmt.Errorf("media: upload %q is empty", name)
	}

	mt := mimetype.Detect(data)
	kind := classify(mt)

	id := uuid.NewString()
	fileName := id + "-" + routing.MakeSlug(baseName(name)) + ext(name, mt)
	path := filepath.Join(l.dir, fileName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zero, fmt.Errorf("media: write %s: %w", path, err)
	}

	item := l.store.AddMedia(content.MediaItem{
		ID:   id,
		Name: name,
		Kind: kind,
		URL:  "/media/" + fileName,
		Size: int64(len(data)),
	})

	metrics.MediaUploadsTotal.Inc()
	l.log.Infow("media stored", "id", item.ID, "name", name, "kind", kind, "bytes", item.Size)
	return item, nil
}

// Delete removes the catalogue entry and best-effort unlinks the file.
func (l *Library) Delete(id string) bool {
	var url string
	for _, m := range l.store.Media() {
		if m.ID == id {
			url = m.URL
			break
		}
	}
	if !l.store.DeleteMedia(id) {
		return false
	}
	if name := strings.TrimPrefix(url, "/media/"); name != "" && name == filepath.Base(name) {
		if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !os.IsNotExist(err) {
			l.log.Warnw("media file removal failed", "id", id, "err", err)
		}
	}
	return true
}

// classify buckets a sniffed MIME type into the three catalogue kinds.
// Anything that is not an image or a video counts as a document.
func classify(mt *mimetype.MIME) content.MediaKind {
	switch {
	case strings.HasPrefix(mt.String(), "image/"):
		return content.MediaImage
	case strings.HasPrefix(mt.String(), "video/"):
		return content.MediaVideo
	default:
		return content.MediaDocument
	}
}

func baseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ext prefers the original extension and falls back to the sniffed one, so a
// "report.pdf" keeps .pdf even if mimetype would suggest a synonym.
func ext(name string, mt *mimetype.MIME) string {
	if e := filepath.Ext(filepath.Base(name)); e != "" {
		return strings.ToLower(e)
	}
	return mt.Extension()
}
