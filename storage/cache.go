package storage

import (
	"context"
	"log"
	"sync"
)

// Remote mirrors whole collections to an online store. Push receives
// the exact bytes persisted locally so the stored shape is identical on
// both paths.
type Remote interface {
	PushCollection(ctx context.Context, col Collection, records []byte, version uint64) error
}

// Cache is the write-through layer over the local store. Reads always
// serve from the local copy, the UI's source of truth. Writes land
// locally first and then attempt the remote mirror once; when the
// remote is unreachable the write still succeeds, the collection is
// marked dirty for the background sync worker, and the result is
// reported as offline.
type Cache struct {
	local  *LocalStore
	remote Remote // nil disables mirroring
	logger *log.Logger

	mu      sync.Mutex
	pending map[Collection]bool
}

func NewCache(local *LocalStore, remote Remote) *Cache {
	return &Cache{
		local:   local,
		remote:  remote,
		logger:  log.New(log.Writer(), "[CACHE] ", log.LstdFlags),
		pending: make(map[Collection]bool),
	}
}

// Read decodes the local copy of a collection into out and returns the
// snapshot version.
func (c *Cache) Read(col Collection, out interface{}) (uint64, error) {
	return c.local.Read(col, out)
}

// Write persists the collection locally and mirrors it remotely.
// The returned offline flag is true when the remote attempt failed and
// the write was queued for later sync.
func (c *Cache) Write(ctx context.Context, col Collection, records interface{}, version uint64) (bool, error) {
	data, err := c.local.Write(col, records, version)
	if err != nil {
		return false, err
	}

	if c.remote == nil {
		return false, nil
	}

	if err := c.remote.PushCollection(ctx, col, data, version+1); err != nil {
		c.logger.Printf("Remote mirror unavailable for %s, queued for sync: %v", col, err)
		c.MarkPending(col)
		return true, nil
	}

	c.ClearPending(col)
	return false, nil
}

// MarkPending flags a collection as dirty relative to the remote mirror.
func (c *Cache) MarkPending(col Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[col] = true
}

// ClearPending removes the dirty flag after a successful push.
func (c *Cache) ClearPending(col Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, col)
}

// PendingCollections lists collections awaiting a remote replay.
func (c *Cache) PendingCollections() []Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	cols := make([]Collection, 0, len(c.pending))
	for col := range c.pending {
		cols = append(cols, col)
	}
	return cols
}

// Local exposes the underlying store for the sync worker's raw reads.
func (c *Cache) Local() *LocalStore {
	return c.local
}
