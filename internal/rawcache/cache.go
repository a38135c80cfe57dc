// Package rawcache memoizes raw API payloads on disk. A payload is fetched
// once and re-read from its file on every later request, so re-running an
// acquisition never spends API quota on data already on disk.
package rawcache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FetchFunc produces the payload on a cache miss.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Cache stores one JSON document per file under a base directory. Files are
// written as {"<root>": <payload>} with indentation, so cached files stay
// readable and diffable.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir, creating it if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache's base directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the file path a name resolves to.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.dir, name+".json")
}

// Has reports whether a payload for name is already cached.
func (c *Cache) Has(name string) bool {
	_, err := os.Stat(c.Path(name))
	return err == nil
}

// GetOrFetch returns the cached payload for name, fetching and writing it
// first when the file does not exist. Existence of the file is the only
// freshness criterion.
func (c *Cache) GetOrFetch(ctx context.Context, name, root string, fetch FetchFunc) (json.RawMessage, error) {
	path := c.Path(name)

	if data, err := os.ReadFile(path); err == nil {
		return unwrap(data, root, path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	doc := map[string]json.RawMessage{root: payload}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal cache document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache subdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write cache file: %w", err)
	}

	return payload, nil
}

func unwrap(data []byte, root, path string) (json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cache file %s: %w", filepath.Base(path), err)
	}
	payload, ok := doc[root]
	if !ok {
		return nil, fmt.Errorf("cache file %s missing %q section", filepath.Base(path), root)
	}
	return payload, nil
}
