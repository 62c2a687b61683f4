package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var _ Store = (*BadgerStore)(nil)

// BadgerOptions configures the embedded store
type BadgerOptions struct {
	// Path to the database directory. If empty, uses in-memory mode.
	Path string
	// PublicURL is the server's external address; objects are served from
	// <PublicURL>/uploads/<key>.
	PublicURL string
	// Logger for BadgerDB. If nil, logging is disabled.
	Logger badger.Logger
}

// BadgerStore keeps uploads in an embedded BadgerDB
type BadgerStore struct {
	db        *badger.DB
	publicURL string
}

// NewBadgerStore opens the badger database
func NewBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	badgerOpts = badgerOpts.WithLogger(opts.Logger)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStore{db: db, publicURL: strings.TrimRight(opts.PublicURL, "/")}, nil
}

func dataKey(key string) []byte { return []byte("data/" + key) }
func typeKey(key string) []byte { return []byte("type/" + key) }

func (s *BadgerStore) Backend() string {
	return "badger"
}

// Put writes the object and its content type in one transaction. Badger
// values are byte slices, so the object is read fully here.
func (s *BadgerStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("read %s: got %d of %d bytes", key, len(data), size)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(dataKey(key), data); err != nil {
			return err
		}
		return txn.Set(typeKey(key), []byte(contentType))
	})
}

func (s *BadgerStore) Get(ctx context.Context, key string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var obj Object
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dataKey(key))
		if err != nil {
			return err
		}
		if obj.Data, err = item.ValueCopy(nil); err != nil {
			return err
		}
		item, err = txn.Get(typeKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ct, err := item.ValueCopy(nil)
		obj.ContentType = string(ct)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (s *BadgerStore) URL(key string) string {
	return s.publicURL + "/uploads/" + key
}

// Close closes the BadgerDB database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
