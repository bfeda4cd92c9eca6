package routing

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dgraph-io/badger"
)

const (
	sizeKey   = "size"
	rowPrefix = "row"
)

// BadgerStore is a write-through wrapper around an InmemStore that persists
// every received advertisement in a Badger database. The protocol does not
// need persistence, soft state re-converges from scratch, but a persisted
// store lets an operator reopen and inspect the last-known topology after
// the process has stopped.
type BadgerStore struct {
	inmemStore    *InmemStore
	db            *badger.DB
	path          string
	needBootstrap bool
}

// NewBadgerStore creates a brand new BadgerStore with a fresh database.
func NewBadgerStore(size int, path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = false
	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		inmemStore: NewInmemStore(size),
		db:         handle,
		path:       path,
	}

	if err := store.dbSetSize(size); err != nil {
		return nil, err
	}

	return store, nil
}

// LoadBadgerStore creates a BadgerStore from an existing database and
// bootstraps the in-memory table with the persisted rows.
func LoadBadgerStore(path string) (*BadgerStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(path)
	opts.SyncWrites = false
	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		db:            handle,
		path:          path,
		needBootstrap: true,
	}

	size, err := store.dbGetSize()
	if err != nil {
		return nil, err
	}

	store.inmemStore = NewInmemStore(size)

	for id := 0; id < size; id++ {
		row, err := store.dbGetRow(id)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				continue
			}
			return nil, err
		}
		if err := store.inmemStore.SetRow(id, row); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// LoadOrCreateBadgerStore loads an existing database, or creates a new one
// when none is found at path.
func LoadOrCreateBadgerStore(size int, path string) (*BadgerStore, error) {
	store, err := LoadBadgerStore(path)

	if err != nil {
		store, err = NewBadgerStore(size, path)

		if err != nil {
			return nil, err
		}
	}

	return store, nil
}

// NeedBootstrap reports whether the store was loaded from an existing
// database.
func (s *BadgerStore) NeedBootstrap() bool {
	return s.needBootstrap
}

// Size implements the Store interface.
func (s *BadgerStore) Size() int {
	return s.inmemStore.Size()
}

// GetRow implements the Store interface.
func (s *BadgerStore) GetRow(id int) (Row, error) {
	return s.inmemStore.GetRow(id)
}

// SetRow implements the Store interface. The row is written to the
// in-memory table first, then persisted.
func (s *BadgerStore) SetRow(id int, row Row) error {
	if err := s.inmemStore.SetRow(id, row); err != nil {
		return err
	}
	return s.dbSetRow(id, row)
}

// Known implements the Store interface.
func (s *BadgerStore) Known(id int) bool {
	return s.inmemStore.Known(id)
}

// KnownCount implements the Store interface.
func (s *BadgerStore) KnownCount() int {
	return s.inmemStore.KnownCount()
}

// Complete implements the Store interface.
func (s *BadgerStore) Complete() bool {
	return s.inmemStore.Complete()
}

// Matrix implements the Store interface.
func (s *BadgerStore) Matrix() [][]int {
	return s.inmemStore.Matrix()
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

//++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++
//DB Methods

func rowKey(id int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", rowPrefix, id))
}

func (s *BadgerStore) dbSetSize(size int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sizeKey), []byte(strconv.Itoa(size)))
	})
}

func (s *BadgerStore) dbGetSize() (int, error) {
	var sizeBytes []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sizeKey))
		if err != nil {
			return err
		}
		sizeBytes, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		return 0, err
	}

	return strconv.Atoi(string(sizeBytes))
}

func (s *BadgerStore) dbSetRow(id int, row Row) error {
	val, err := row.Marshal()
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rowKey(id), val)
	})
}

func (s *BadgerStore) dbGetRow(id int) (Row, error) {
	var rowBytes []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rowKey(id))
		if err != nil {
			return err
		}
		rowBytes, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		return nil, err
	}

	row := new(Row)
	if err := row.Unmarshal(rowBytes); err != nil {
		return nil, err
	}

	return *row, nil
}
