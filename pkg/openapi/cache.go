package openapi

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of parsed documents kept in memory when
// several generator invocations share one process.
const DefaultCacheSize = 32

// Cache is a bounded parse cache keyed by input path. Entries are immutable
// once inserted; the underlying LRU serializes its own eviction, so a Cache
// may be shared across generator instances.
type Cache struct {
	entries *lru.Cache[string, *Document]
}

// NewCache creates a parse cache holding at most size documents. A size of
// zero or less falls back to DefaultCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, *Document](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Load returns the parsed document for path, reading and parsing it on a
// cache miss.
func (c *Cache) Load(path string) (*Document, error) {
	if doc, ok := c.entries.Get(path); ok {
		return doc, nil
	}
	doc, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(path, doc)
	return doc, nil
}

// Len reports the number of cached documents.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func loadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SpecError{
			Code:     ParseError,
			Message:  err.Error(),
			Location: path,
			Cause:    err,
		}
	}
	return LoadData(data, path)
}
