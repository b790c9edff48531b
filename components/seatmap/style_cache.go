package seatmap

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"
	"time"
)

// StyleCompiler turns stylesheet text into class styles.
type StyleCompiler interface {
	Compile(css string) ClassStyles
}

// StyleCompilerFunc adapts a function to StyleCompiler.
type StyleCompilerFunc func(css string) ClassStyles

// Compile calls f.
func (f StyleCompilerFunc) Compile(css string) ClassStyles { return f(css) }

// StyleCache is an in-memory TTL cache of compiled stylesheets keyed by the
// stylesheet hash. Templates reloaded within the TTL skip recompilation.
type StyleCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedStyles
}

type cachedStyles struct {
	styles  ClassStyles
	expires time.Time
}

// NewStyleCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewStyleCache(ttl time.Duration) *StyleCache {
	return &StyleCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedStyles),
	}
}

// Compile returns cached styles for css or compiles and stores them.
func (c *StyleCache) Compile(css string) ClassStyles {
	key := stylesheetHash(css)
	if styles, ok := c.get(key); ok {
		return cloneClassStyles(styles)
	}
	styles := CompileStyles(css)
	c.set(key, styles)
	return cloneClassStyles(styles)
}

// Len reports the number of live entries.
func (c *StyleCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *StyleCache) get(key string) (ClassStyles, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return nil, false
	}
	return entry.styles, true
}

func (c *StyleCache) set(key string, styles ClassStyles) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedStyles{
		styles:  styles,
		expires: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func stylesheetHash(css string) string {
	if css == "" {
		return "empty"
	}
	sum := sha1.Sum([]byte(css))
	return hex.EncodeToString(sum[:])
}

func cloneClassStyles(in ClassStyles) ClassStyles {
	out := make(ClassStyles, len(in))
	for class, style := range in {
		copied := make(Style, len(style))
		for k, v := range style {
			if seq, ok := v.([]float64); ok {
				v = append([]float64(nil), seq...)
			}
			copied[k] = v
		}
		out[class] = copied
	}
	return out
}
