package peers

import "fmt"

// Peer is a directly-connected neighbor router. It is built once from the
// configuration file and never mutated afterwards.
type Peer struct {
	// ID is the neighbor's router id, an index in [0, totalNodes).
	ID int `json:"id"`

	// Moniker is the friendly name of the neighbor from the configuration
	// file.
	Moniker string `json:"moniker"`

	// Cost is the cost of the direct link to this neighbor.
	Cost int `json:"cost"`

	// NetAddr is the address where the neighbor listens for datagrams.
	NetAddr string `json:"net_addr"`
}

// NewPeer instantiates a Peer.
func NewPeer(id int, moniker string, cost int, netAddr string) *Peer {
	return &Peer{
		ID:      id,
		Moniker: moniker,
		Cost:    cost,
		NetAddr: netAddr,
	}
}

// String implements the Stringer interface.
func (p *Peer) String() string {
	return fmt.Sprintf("%s(%d)@%s cost=%d", p.Moniker, p.ID, p.NetAddr, p.Cost)
}
