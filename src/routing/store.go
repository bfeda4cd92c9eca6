package routing

// Store is an interface for topology store backends. A Store holds the
// best-known advertisement Row of every router in a network of fixed size,
// and tracks which routers have ever been heard from.
//
// Implementations are not safe for concurrent use. The node serializes all
// access behind a single lock so that a row update and the completeness
// check stay consistent with concurrent readers.
type Store interface {
	// Size returns the total number of routers in the network. Rows are
	// accepted only for ids in [0, Size).
	Size() int
	// GetRow returns the stored advertisement of a router.
	GetRow(id int) (Row, error)
	// SetRow overwrites the stored advertisement of a router and marks it
	// known.
	SetRow(id int, row Row) error
	// Known reports whether an advertisement was ever stored for a router.
	Known(id int) bool
	// KnownCount returns the number of routers heard from so far.
	KnownCount() int
	// Complete reports whether every router in [0, Size) is known.
	Complete() bool
	// Matrix returns a deep-copied Size x Size cost matrix. Rows of unknown
	// routers are all-Infinity.
	Matrix() [][]int
	// Close closes the underlying database, if any.
	Close() error
	// StorePath returns the filepath of the underlying database, if any.
	StorePath() string
}
