package viewer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const maxPendingPrefetch = 8

// imageLoader decodes images and keeps the most recently used ones in
// memory. Prefetch requests are served LIFO by a single background worker.
type imageLoader struct {
	mu       sync.Mutex
	cache    map[string]image.Image
	order    []string // least recently used first
	capacity int

	requests []string
	reqLock  sync.Mutex
	reqCond  *sync.Cond
	closed   bool

	log zerolog.Logger
}

func newImageLoader(capacity int, log zerolog.Logger) *imageLoader {
	l := &imageLoader{
		cache:    make(map[string]image.Image),
		capacity: capacity,
		log:      log,
	}
	l.reqCond = sync.NewCond(&l.reqLock)
	if capacity > 0 {
		go l.worker()
	}
	return l
}

// Load returns the decoded image at path. Cached entries are only reused
// while the file's size and modification time are unchanged.
func (l *imageLoader) Load(path string) (image.Image, error) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, err
	}
	if img, ok := l.lookup(key); ok {
		return img, nil
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	l.store(key, img)
	return img, nil
}

// Prefetch queues paths for background decoding. When the queue is full the
// oldest request is dropped.
func (l *imageLoader) Prefetch(paths ...string) {
	if l.capacity == 0 {
		return
	}

	l.reqLock.Lock()
	defer l.reqLock.Unlock()
	if l.closed {
		return
	}
	for _, p := range paths {
		if len(l.requests) >= maxPendingPrefetch {
			l.requests = l.requests[1:]
		}
		l.requests = append(l.requests, p)
	}
	l.reqCond.Signal()
}

// Len returns the number of cached images.
func (l *imageLoader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

// Close stops the prefetch worker. Load keeps working.
func (l *imageLoader) Close() {
	l.reqLock.Lock()
	l.closed = true
	l.requests = nil
	l.reqCond.Broadcast()
	l.reqLock.Unlock()
}

func (l *imageLoader) worker() {
	for {
		l.reqLock.Lock()
		for len(l.requests) == 0 && !l.closed {
			l.reqCond.Wait()
		}
		if l.closed {
			l.reqLock.Unlock()
			return
		}
		lastIdx := len(l.requests) - 1
		path := l.requests[lastIdx]
		l.requests = l.requests[:lastIdx]
		l.reqLock.Unlock()

		if _, err := l.Load(path); err != nil {
			l.log.Debug().Err(err).Str("path", path).Msg("prefetch failed")
		}
	}
}

func (l *imageLoader) lookup(key string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.cache[key]
	if ok {
		l.touch(key)
	}
	return img, ok
}

func (l *imageLoader) store(key string, img image.Image) {
	if l.capacity <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cache[key]; ok {
		l.cache[key] = img
		l.touch(key)
		return
	}
	l.cache[key] = img
	l.order = append(l.order, key)
	for len(l.order) > l.capacity {
		delete(l.cache, l.order[0])
		l.order = l.order[1:]
	}
}

// touch moves key to the most recently used end. Callers hold mu.
func (l *imageLoader) touch(key string) {
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.order = append(l.order, key)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func cacheKey(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(absPath))
	h.Write([]byte(info.ModTime().String()))
	fmt.Fprintf(h, "%d", info.Size())
	return hex.EncodeToString(h.Sum(nil)), nil
}
