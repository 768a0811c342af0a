package dossier

import (
	"fmt"
	"strings"
	"sync"
)

// Limits are the per-section item caps of a dossier request. They are part
// of the cache identity: different limits mean different payloads.
type Limits struct {
	Profiles   int
	Notes      int
	Activities int
}

const defaultLimit = 5

func (l Limits) withDefaults() Limits {
	if l.Profiles <= 0 {
		l.Profiles = defaultLimit
	}
	if l.Notes <= 0 {
		l.Notes = defaultLimit
	}
	if l.Activities <= 0 {
		l.Activities = defaultLimit
	}
	return l
}

func cacheKey(entityID string, l Limits) string {
	return fmt.Sprintf("%s|%d|%d|%d", entityID, l.Profiles, l.Notes, l.Activities)
}

// Entry is one cached dossier payload with its freshness token.
type Entry struct {
	Data []byte
	ETag string
}

// PDFEntry mirrors Entry for the binary export variant.
type PDFEntry struct {
	Data     []byte
	ETag     string
	Filename string
}

// Cache holds the last fetched dossier per (entity, limits) plus a parallel
// cache for the PDF variant. It is a plain constructible object so tests
// can run several independent caches.
type Cache struct {
	mu   sync.Mutex
	data map[string]Entry
	pdf  map[string]PDFEntry
}

func NewCache() *Cache {
	return &Cache{
		data: make(map[string]Entry),
		pdf:  make(map[string]PDFEntry),
	}
}

func (c *Cache) Get(entityID string, l Limits) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[cacheKey(entityID, l)]
	return e, ok
}

func (c *Cache) Put(entityID string, l Limits, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[cacheKey(entityID, l)] = e
}

func (c *Cache) GetPDF(entityID string, l Limits) (PDFEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pdf[cacheKey(entityID, l)]
	return e, ok
}

func (c *Cache) PutPDF(entityID string, l Limits, e PDFEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pdf[cacheKey(entityID, l)] = e
}

// Clear drops the whole cache when entityID is empty, otherwise every entry
// for that entity across all limit variants. The PDF cache is cleared the
// same way.
func (c *Cache) Clear(entityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entityID == "" {
		c.data = make(map[string]Entry)
		c.pdf = make(map[string]PDFEntry)
		return
	}
	prefix := entityID + "|"
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	for k := range c.pdf {
		if strings.HasPrefix(k, prefix) {
			delete(c.pdf, k)
		}
	}
}
