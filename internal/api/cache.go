package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Cache is an on-disk ETag cache for GET responses. Bodies live in one
// file per key; the ETag index is a single JSON file guarded by a
// cross-process file lock so concurrent CLI invocations don't corrupt it.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir. The directory is created lazily
// on first write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key derives a cache key from the request URL, account, and token.
// Including the token keeps responses from leaking across identities.
func (c *Cache) Key(url, accountID, token string) string {
	h := sha256.Sum256([]byte(url + "\x00" + accountID + "\x00" + token))
	return hex.EncodeToString(h[:])
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.dir, "etags.json")
}

func (c *Cache) bodyPath(key string) string {
	return filepath.Join(c.dir, key+".body")
}

func (c *Cache) lockPath() string {
	return filepath.Join(c.dir, "etags.lock")
}

// GetETag returns the stored ETag for a key, or "".
func (c *Cache) GetETag(key string) string {
	index, err := c.readIndex()
	if err != nil {
		return ""
	}
	return index[key]
}

// GetBody returns the cached response body for a key, or nil.
func (c *Cache) GetBody(key string) []byte {
	data, err := os.ReadFile(c.bodyPath(key)) //nolint:gosec // G304: key is a hex digest
	if err != nil {
		return nil
	}
	return data
}

// Set stores a response body and its ETag.
func (c *Cache) Set(key string, body []byte, etag string) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(c.bodyPath(key), body, 0o600); err != nil {
		return err
	}
	return c.updateIndex(func(index map[string]string) {
		index[key] = etag
	})
}

// Invalidate removes one cached entry.
func (c *Cache) Invalidate(key string) error {
	_ = os.Remove(c.bodyPath(key))
	return c.updateIndex(func(index map[string]string) {
		delete(index, key)
	})
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".body" || e.Name() == "etags.json" {
			_ = os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

func (c *Cache) readIndex() (map[string]string, error) {
	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	var index map[string]string
	if err := json.Unmarshal(data, &index); err != nil {
		return make(map[string]string), nil // treat corruption as empty
	}
	return index, nil
}

func (c *Cache) updateIndex(mutate func(map[string]string)) error {
	lock := flock.New(c.lockPath())
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock() //nolint:errcheck

	index, err := c.readIndex()
	if err != nil {
		return err
	}
	mutate(index)

	data, err := json.Marshal(index)
	if err != nil {
		return err
	}
	tmp := c.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, c.indexPath())
}
