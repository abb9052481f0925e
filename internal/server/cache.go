package server

import (
	"sync"
	"time"

	"github.com/mj1618/desktop-pilot/internal/bitmap"
)

// FrameCache holds the last full-screen capture for a short TTL so that
// consecutive read-only tools (screenshot, find_image) share one grab.
type FrameCache struct {
	mu    sync.Mutex
	frame *bitmap.Bitmap
	taken time.Time
	ttl   time.Duration
	now   func() time.Time
}

// NewFrameCache creates a new cache. A ttl of 0 disables caching.
func NewFrameCache(ttl time.Duration) *FrameCache {
	return &FrameCache{ttl: ttl, now: time.Now}
}

// Frame returns the cached capture if within TTL, otherwise captures fresh.
// The caller must hold the pilot mutex.
func (c *FrameCache) Frame(capture func() (*bitmap.Bitmap, error)) (*bitmap.Bitmap, error) {
	if c.ttl == 0 {
		return capture()
	}

	c.mu.Lock()
	if c.frame != nil && c.now().Sub(c.taken) < c.ttl {
		frame := c.frame
		c.mu.Unlock()
		return frame, nil
	}
	c.mu.Unlock()

	frame, err := capture()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.frame, c.taken = frame, c.now()
	c.mu.Unlock()
	return frame, nil
}

// Invalidate drops the cached frame. Input tools call it after posting
// events, since the screen may have changed.
func (c *FrameCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = nil
}
