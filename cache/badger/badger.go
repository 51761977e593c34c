// Package badger implements geodata.KeyValueCache on BadgerDB for
// persistent on-disk caching across process restarts.
//
// Usage:
//
//	c, err := badger.Open("/var/cache/geodata")
//	if err != nil { ... }
//	defer c.Close()
package badger

import (
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/minff/geodata"
)

var _ geodata.KeyValueCache = (*Cache)(nil)

// Option configures the Cache.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	inMemory bool
}

// WithLogger sets a custom logger for open/IO warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithInMemory opens the database without files. Used in tests.
func WithInMemory() Option {
	return func(o *options) { o.inMemory = true }
}

// Cache is a BadgerDB-backed cache.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) the cache database at dir.
func Open(dir string, opts ...Option) (*Cache, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	badgerOpts := badger.DefaultOptions(dir).WithLogger(nil)
	if o.inMemory {
		badgerOpts = badgerOpts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("badger: open %s: %w", dir, err)
	}
	return &Cache{db: db, logger: o.logger}, nil
}

// Get returns the stored value and whether the key was present.
func (c *Cache) Get(key string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}
	return value, true
}

// Put stores a value under key, overwriting any previous value.
func (c *Cache) Put(key string, value []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger: put %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	present := false
	err := c.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		present = true
		return txn.Delete([]byte(key))
	})
	if err != nil {
		c.logger.Warn("cache delete failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return present
}

// Close closes the underlying database.
func (c *Cache) Close() error { return c.db.Close() }
