package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered artifacts as files under a directory, one
// entry per key. Keys are hashed into a two-level layout (first two
// hash chars as subdirectory) so a large vault of cached pages does not
// pile everything into a single directory.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// fileEntry is the on-disk record for one cached artifact.
type fileEntry struct {
	// Expires is the expiry time in unix seconds; 0 means no expiry.
	Expires int64 `json:"expires,omitempty"`

	// Body holds the artifact bytes.
	Body []byte `json:"body"`
}

// Get retrieves a value. Expired or corrupt entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if entry.Expires != 0 && time.Now().Unix() >= entry.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Body, true, nil
}

// Set stores a value. The entry is written to a temporary file and
// renamed into place, so a concurrent Get never sees a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Body: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl).Unix()
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error { return nil }

// entryPath maps a key to its file. The key is hashed so arbitrary key
// strings (canvas paths, artifact descriptors) stay filesystem-safe.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
