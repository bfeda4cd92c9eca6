package node

import (
	"github.com/ak033/462lab5/src/net"
	"github.com/ak033/462lab5/src/peers"
	"github.com/ak033/462lab5/src/routing"
	"github.com/sirupsen/logrus"
)

// Core implements the link-state protocol logic: originating the local
// advertisement, folding received advertisements into the topology store,
// and computing routes once the topology is complete.
//
// Core methods are not safe for concurrent use; the Node serializes access
// behind coreLock so that the read-check-write sequence of an incoming
// advertisement, and the read-and-compute sequence of a route computation,
// are each observed atomically.
type Core struct {
	id       int
	moniker  string
	peers    *peers.PeerSet
	store    routing.Store
	ttlLimit int

	// selfRow is this router's own advertisement. It is built once from the
	// neighbor table and never changes during a run.
	selfRow routing.Row

	routeTable *routing.RouteTable

	logger *logrus.Entry
}

// NewCore builds a Core and seeds the topology store with the local row, so
// the local router is known from the start.
func NewCore(
	id int,
	moniker string,
	peerSet *peers.PeerSet,
	store routing.Store,
	ttlLimit int,
	logger *logrus.Entry) (*Core, error) {

	selfRow := routing.SelfRow(id, store.Size(), peerSet)

	if err := store.SetRow(id, selfRow); err != nil {
		return nil, err
	}

	core := &Core{
		id:       id,
		moniker:  moniker,
		peers:    peerSet,
		store:    store,
		ttlLimit: ttlLimit,
		selfRow:  selfRow,
		logger:   logger,
	}

	return core, nil
}

// ID returns the local router id.
func (c *Core) ID() int {
	return c.id
}

// SelfAdvertisement returns a fresh advertisement of the local row with a
// full hop budget.
func (c *Core) SelfAdvertisement() *net.Advertisement {
	return &net.Advertisement{
		RouterID:  c.id,
		LinkState: c.selfRow.Clone(),
		TTL:       c.ttlLimit,
	}
}

// ReceiveAdvertisement folds an inbound advertisement into the topology
// store and reports whether it should be relayed onwards.
//
// An advertisement is dropped when its hop budget is exhausted, and
// absorbed without relay when it matches the stored row; together these two
// rules bound the flood and silence it once the network has converged.
func (c *Core) ReceiveAdvertisement(ad *net.Advertisement) (bool, error) {
	if err := ad.Validate(c.store.Size()); err != nil {
		return false, err
	}

	if ad.TTL <= 0 {
		return false, nil
	}

	stored, err := c.store.GetRow(ad.RouterID)
	if err == nil && stored.Equals(ad.LinkState) {
		// unchanged, absorb the duplicate
		return false, nil
	}

	if err := c.store.SetRow(ad.RouterID, ad.LinkState); err != nil {
		return false, err
	}

	c.logger.WithFields(logrus.Fields{
		"origin": ad.RouterID,
		"ttl":    ad.TTL,
		"known":  c.store.KnownCount(),
	}).Debug("Stored advertisement")

	return ad.TTL-1 > 0, nil
}

// Complete reports whether an advertisement has been received from every
// router in the network.
func (c *Core) Complete() bool {
	return c.store.Complete()
}

// KnownCount returns the number of routers heard from so far.
func (c *Core) KnownCount() int {
	return c.store.KnownCount()
}

// ComputeRoutes runs the shortest-path computation over the current
// topology snapshot and swaps in the resulting table. The caller must have
// checked Complete first; computing on partial data is never allowed.
func (c *Core) ComputeRoutes() *routing.RouteTable {
	routeTable := routing.ComputeRoutes(c.id, c.store.Matrix())
	c.routeTable = routeTable
	return routeTable
}

// GetRouteTable returns the last computed route table, or nil if no
// computation has completed yet.
func (c *Core) GetRouteTable() *routing.RouteTable {
	return c.routeTable
}

// GetTopology returns a deep-copied snapshot of the known cost matrix.
func (c *Core) GetTopology() [][]int {
	return c.store.Matrix()
}
