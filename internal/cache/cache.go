// Package cache stores generation results on disk keyed by a digest of
// everything that determines them, so unchanged packages skip loading and
// rendering.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"fieldmap/internal/diagnostic"
)

// schemaVersion is bumped whenever Entry changes shape.
const schemaVersion uint16 = 1

// App names the cache directory below the user cache root.
const App = "fieldmap"

// ErrSchema reports an entry written by an incompatible version.
var ErrSchema = errors.New("cache entry schema mismatch")

// Key identifies one generation input.
type Key [sha256.Size]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Hasher accumulates the inputs of a generation run into a Key. Every value
// is length-prefixed so adjacent values cannot run into each other.
type Hasher struct {
	h hash.Hash
}

// NewHasher starts a key for the given tool version.
func NewHasher(version string) *Hasher {
	h := &Hasher{h: sha256.New()}

	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], schemaVersion)
	h.h.Write(schema[:])
	h.Text(version)

	return h
}

// Text adds s.
func (h *Hasher) Text(s string) *Hasher {
	return h.Bytes([]byte(s))
}

// Bytes adds b.
func (h *Hasher) Bytes(b []byte) *Hasher {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.h.Write(n[:])
	h.h.Write(b)

	return h
}

// File adds a named input file.
func (h *Hasher) File(name string, content []byte) *Hasher {
	return h.Text(name).Bytes(content)
}

// Sum returns the key.
func (h *Hasher) Sum() Key {
	var k Key
	copy(k[:], h.h.Sum(nil))

	return k
}

// File is one generated file.
type File struct {
	Name    string
	Content []byte
}

// Entry is a cached generation result.
type Entry struct {
	Schema      uint16
	Package     string
	Files       []File
	Derived     []string
	Diagnostics diagnostic.Diagnostics
	Created     time.Time
}

// Cache is a directory of msgpack encoded entries. A nil *Cache is a valid
// cache that never hits. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/fieldmap, falling back to
// ~/.cache/fieldmap.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		base = filepath.Join(home, ".cache")
	}

	return filepath.Join(base, App), nil
}

// Open returns the cache rooted at dir, or at DefaultDir when dir is empty.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("locating cache directory: %w", err)
		}

		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}

	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "gen", hexKey[:2], hexKey+".mp")
}

// Put stores e under key, replacing any previous entry atomically.
func (c *Cache) Put(key Key, e *Entry) (err error) {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	stored := *e
	stored.Schema = schemaVersion

	if stored.Created.IsZero() {
		stored.Created = time.Now()
	}

	if err = msgpack.NewEncoder(f).Encode(&stored); err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), p)
}

// Get loads the entry stored under key. A missing entry is not an error.
// An entry of another schema is reported with ErrSchema.
func (c *Cache) Get(key Key) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}

	if e.Schema != schemaVersion {
		return nil, false, fmt.Errorf("%w: got %d, want %d", ErrSchema, e.Schema, schemaVersion)
	}

	return &e, true, nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	if err := os.RemoveAll(old); err != nil {
		return err
	}

	return os.MkdirAll(c.dir, 0o755)
}
