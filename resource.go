package bramble

import (
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	// Image decoders for the default backend. Decode failures are swallowed
	// per the loader's failure policy.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// maxConcurrentLoads bounds the number of in-flight resource loads.
const maxConcurrentLoads = 4

// Loadable is the handle for an asynchronously loading resource. Complete
// must become true exactly once and stay true; the loader polls it each
// tick rather than accepting completion callbacks, so a load finishing
// mid-tick is observed at the next tick boundary.
type Loadable interface {
	Complete() bool
}

// LoadFunc is the resource backend: given an identifier (a file path or
// URL-like string) it starts an asynchronous load and returns its handle.
type LoadFunc func(identifier string) Loadable

// LoaderStats is the progress record handed to the loading scene each tick.
// The same record is reused and mutated in place, so observers must read
// fields each tick rather than caching values.
type LoaderStats struct {
	Loaded      int
	Total       int
	NextPending string // next queued identifier, "" when the queue is empty
}

// Complete reports whether every declared resource has resolved.
func (st *LoaderStats) Complete() bool {
	return st.Loaded == st.Total
}

// Loader tracks pending resource identifiers for the incoming scene, runs a
// bounded number of loads concurrently, and reports completion statistics.
// Already-cached identifiers are never re-declared or reloaded.
//
// A load that fails to decode still counts as complete, with no data
// attached; the resource is simply absent at render time. There is no retry
// policy, and in-flight loads are not cancelled by Reset — they run to
// completion and are dropped.
type Loader struct {
	load     LoadFunc
	cache    map[string]Loadable
	pending  []string
	inflight map[string]Loadable
	queued   map[string]bool
	stats    LoaderStats
}

// NewLoader creates a loader backed by load. A nil load uses [LoadImage].
func NewLoader(load LoadFunc) *Loader {
	if load == nil {
		load = LoadImage
	}
	return &Loader{
		load:     load,
		cache:    make(map[string]Loadable),
		inflight: make(map[string]Loadable),
		queued:   make(map[string]bool),
	}
}

// Declare queues every identifier that is not already cached and not
// already queued. Total grows by the number of newly queued identifiers.
func (l *Loader) Declare(identifiers ...string) {
	for _, id := range identifiers {
		if id == "" {
			continue
		}
		if _, ok := l.cache[id]; ok {
			continue
		}
		if l.queued[id] {
			continue
		}
		l.queued[id] = true
		l.pending = append(l.pending, id)
		l.stats.Total++
	}
	l.refreshNextPending()
}

// Get returns the handle for a cached identifier, or nil if the identifier
// was never declared or has not finished loading.
func (l *Loader) Get(identifier string) Loadable {
	return l.cache[identifier]
}

// Image returns the decoded image for a cached identifier, or nil if the
// identifier is unknown, still loading, not an image, or failed to decode.
func (l *Loader) Image(identifier string) *ebiten.Image {
	if r, ok := l.cache[identifier].(*ImageResource); ok {
		return r.Image()
	}
	return nil
}

// Stats returns the live progress record. The same record is mutated in
// place every tick.
func (l *Loader) Stats() *LoaderStats {
	return &l.stats
}

// Complete reports whether every declared resource has resolved.
func (l *Loader) Complete() bool {
	return l.stats.Complete()
}

// Reset clears the queue, the in-flight set, and the counters for the next
// scene's load cycle. The cache is retained so resources are never
// reloaded. In-flight loads keep running and are dropped on completion.
func (l *Loader) Reset() {
	l.pending = l.pending[:0]
	l.inflight = make(map[string]Loadable)
	l.queued = make(map[string]bool)
	l.stats = LoaderStats{}
}

// update advances the load state machine one tick: completed in-flight
// loads move to the cache, then new loads start while the in-flight count
// is below the concurrency ceiling.
func (l *Loader) update() {
	for id, h := range l.inflight {
		if h.Complete() {
			delete(l.inflight, id)
			l.cache[id] = h
			l.stats.Loaded++
			logger.Debug("resource loaded", "id", id, "loaded", l.stats.Loaded, "total", l.stats.Total)
		}
	}
	for len(l.inflight) < maxConcurrentLoads && len(l.pending) > 0 {
		id := l.pending[0]
		l.pending = l.pending[1:]
		l.inflight[id] = l.load(id)
	}
	l.refreshNextPending()
}

func (l *Loader) refreshNextPending() {
	if len(l.pending) > 0 {
		l.stats.NextPending = l.pending[0]
	} else {
		l.stats.NextPending = ""
	}
}

// ImageResource is an asynchronously decoded image. Image is valid only
// once Complete reports true; a decode failure leaves it nil.
type ImageResource struct {
	identifier string
	done       atomic.Bool
	img        *ebiten.Image
}

// Complete reports whether the load has finished (successfully or not).
func (r *ImageResource) Complete() bool {
	return r.done.Load()
}

// Image returns the decoded image, or nil while loading or after a decode
// failure.
func (r *ImageResource) Image() *ebiten.Image {
	if !r.done.Load() {
		return nil
	}
	return r.img
}

// staticResource is a handle for resources of unrecognized type, which are
// treated as immediately complete (forward-compatible default).
type staticResource struct{}

func (staticResource) Complete() bool { return true }

// LoadImage is the default resource backend. PNG, JPEG, and WebP
// identifiers decode off a goroutine from a file path or http(s) URL;
// everything else is immediately complete. Completion is observed by
// polling, never by a callback into loop state.
func LoadImage(identifier string) Loadable {
	switch strings.ToLower(path.Ext(identifier)) {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		return staticResource{}
	}

	r := &ImageResource{identifier: identifier}
	go func() {
		defer r.done.Store(true)
		src, err := openResource(identifier)
		if err != nil {
			logger.Warn("resource open failed", "id", identifier, "err", err)
			return
		}
		defer src.Close()
		m, _, err := image.Decode(src)
		if err != nil {
			logger.Warn("resource decode failed", "id", identifier, "err", err)
			return
		}
		r.img = ebiten.NewImageFromImage(m)
	}()
	return r
}

// openResource opens an identifier as an http(s) URL or a local file.
func openResource(identifier string) (io.ReadCloser, error) {
	if strings.HasPrefix(identifier, "http://") || strings.HasPrefix(identifier, "https://") {
		resp, err := http.Get(identifier)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	}
	return os.Open(identifier)
}
