package routing

import (
	"strconv"

	cm "github.com/ak033/462lab5/src/common"
)

// InmemStore implements the Store interface with a fixed-size in-memory
// table. It is sized exactly to the configured network size at construction
// time; ids outside that range are rejected rather than grown into.
type InmemStore struct {
	size  int
	rows  []Row
	known []bool
}

// NewInmemStore creates an InmemStore for a network of size routers.
func NewInmemStore(size int) *InmemStore {
	return &InmemStore{
		size:  size,
		rows:  make([]Row, size),
		known: make([]bool, size),
	}
}

// Size implements the Store interface.
func (s *InmemStore) Size() int {
	return s.size
}

// GetRow implements the Store interface.
func (s *InmemStore) GetRow(id int) (Row, error) {
	if id < 0 || id >= s.size {
		return nil, cm.NewStoreErr("RowTable", cm.OutOfRange, strconv.Itoa(id))
	}
	if !s.known[id] {
		return nil, cm.NewStoreErr("RowTable", cm.KeyNotFound, strconv.Itoa(id))
	}
	return s.rows[id], nil
}

// SetRow implements the Store interface.
func (s *InmemStore) SetRow(id int, row Row) error {
	if id < 0 || id >= s.size {
		return cm.NewStoreErr("RowTable", cm.OutOfRange, strconv.Itoa(id))
	}
	if len(row) != s.size {
		return cm.NewStoreErr("RowTable", cm.RowLengthMismatch, strconv.Itoa(id))
	}
	s.rows[id] = row.Clone()
	s.known[id] = true
	return nil
}

// Known implements the Store interface.
func (s *InmemStore) Known(id int) bool {
	if id < 0 || id >= s.size {
		return false
	}
	return s.known[id]
}

// KnownCount implements the Store interface.
func (s *InmemStore) KnownCount() int {
	count := 0
	for _, k := range s.known {
		if k {
			count++
		}
	}
	return count
}

// Complete implements the Store interface.
func (s *InmemStore) Complete() bool {
	return s.KnownCount() == s.size
}

// Matrix implements the Store interface.
func (s *InmemStore) Matrix() [][]int {
	matrix := make([][]int, s.size)
	for i := 0; i < s.size; i++ {
		if s.known[i] {
			matrix[i] = s.rows[i].Clone()
		} else {
			matrix[i] = NewRow(s.size)
		}
	}
	return matrix
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}
