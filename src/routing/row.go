package routing

import (
	"bytes"

	"github.com/ak033/462lab5/src/peers"
	"github.com/ugorji/go/codec"
)

// Infinity is the sentinel cost marking the absence of a link. It must
// exceed any feasible sum of real link costs in the deployment; that is a
// configuration responsibility, not something the engine checks.
const Infinity = 999

// Row is one router's link-state advertisement: the cost from that router to
// every destination in the network, indexed by router id.
type Row []int

// NewRow returns a Row of the given size with every cost set to Infinity.
func NewRow(size int) Row {
	row := make(Row, size)
	for i := range row {
		row[i] = Infinity
	}
	return row
}

// SelfRow builds the local router's own advertisement from its neighbor
// table: 0 for itself, the configured cost for each direct neighbor, and
// Infinity everywhere else. The result never changes during a run.
func SelfRow(selfID int, size int, neighbors *peers.PeerSet) Row {
	row := NewRow(size)
	row[selfID] = 0
	for _, p := range neighbors.Peers {
		row[p.ID] = p.Cost
	}
	return row
}

// Clone returns a deep copy of the Row.
func (r Row) Clone() Row {
	res := make(Row, len(r))
	copy(res, r)
	return res
}

// Equals compares two Rows element-wise. A nil Row equals nothing.
func (r Row) Equals(o Row) bool {
	if r == nil || o == nil || len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}

// Marshal - json encoding of Row
func (r Row) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(r); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (r *Row) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(r)
}
