package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"cmm/internal/diag"
	"cmm/internal/source"
	"cmm/internal/token"
)

// Current schema version - increment when cacheEntry format changes
const tokenCacheSchemaVersion uint16 = 2

// TokenCache хранит результаты препроцессинга на диске, ключ — хэш
// содержимого главного файла и опций. Thread-safe.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedFile is one FileSet entry the cached tokens point into, in FileID order.
type cachedFile struct {
	Path  string
	Flags source.FileFlags
	Hash  [32]byte
	// Content is kept only for virtual files (the command-line defines).
	Content []byte
}

type cacheEntry struct {
	Schema uint16
	Files  []cachedFile
	Tokens []token.Token
	Diags  []diag.Diagnostic
}

// OpenTokenCache opens (creating if needed) a cache rooted at dir. An
// empty dir selects $XDG_CACHE_HOME/cmm or ~/.cache/cmm.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "cmm")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

func (c *TokenCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *TokenCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(key[:])+".mp.zst")
}

// put serializes the tokens of a finished run together with the files
// they reference. Entries are msgpack in a zstd frame.
func (c *TokenCache) put(key [32]byte, fs *source.FileSet, tokens []token.Token, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	entry := cacheEntry{
		Schema: tokenCacheSchemaVersion,
		Files:  make([]cachedFile, 0, fs.Len()),
		Tokens: tokens,
		Diags:  diags,
	}
	for i := range fs.Len() {
		id, err := safecast.Conv[uint32](i)
		if err != nil {
			return err
		}
		f := fs.Get(source.FileID(id))
		cf := cachedFile{Path: f.Path, Flags: f.Flags, Hash: f.Hash}
		if f.Flags&source.FileVirtual != 0 {
			cf.Content = f.Content
		}
		entry.Files = append(entry.Files, cf)
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
	defer os.Remove(f.Name()) //nolint:errcheck // после rename файла уже нет

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(&entry); err != nil {
		_ = zw.Close()
		_ = f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// get rebuilds a FileSet from a cache entry. Any file whose current
// content no longer matches the recorded hash makes it a miss.
func (c *TokenCache) get(key [32]byte) (*source.FileSet, *cacheEntry, bool, error) {
	if c == nil {
		return nil, nil, false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, err
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, nil, false, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, nil, false, fmt.Errorf("decompress %s: %w", c.pathFor(key), err)
	}

	var entry cacheEntry
	if err := msgpack.Unmarshal(raw, &entry); err != nil {
		return nil, nil, false, fmt.Errorf("decode %s: %w", c.pathFor(key), err)
	}
	if entry.Schema != tokenCacheSchemaVersion {
		return nil, nil, false, nil
	}

	fs := source.NewFileSet()
	for _, cf := range entry.Files {
		if cf.Flags&source.FileVirtual != 0 {
			fs.Add(cf.Path, cf.Content, cf.Flags)
			continue
		}
		id, err := fs.Load(cf.Path, cf.Flags&source.FileIncluded)
		if err != nil || fs.Get(id).Hash != cf.Hash {
			return nil, nil, false, nil
		}
	}
	return fs, &entry, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
