package peers

import "sort"

// PeerSet is the immutable neighbor table of a router.
type PeerSet struct {
	Peers []*Peer       `json:"peers"`
	ByID  map[int]*Peer `json:"-"`
}

// NewPeerSet creates a new PeerSet from a list of Peers. Peers are kept
// sorted by ID so that iteration order is deterministic.
func NewPeerSet(peers []*Peer) *PeerSet {
	peerSet := &PeerSet{
		ByID: make(map[int]*Peer),
	}

	for _, peer := range peers {
		peerSet.ByID[peer.ID] = peer
	}

	sorted := make([]*Peer, len(peers))
	copy(sorted, peers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	peerSet.Peers = sorted

	return peerSet
}

// IDs returns the PeerSet's slice of IDs, in ascending order.
func (peerSet *PeerSet) IDs() []int {
	res := []int{}

	for _, peer := range peerSet.Peers {
		res = append(res, peer.ID)
	}

	return res
}

// Moniker returns the friendly name of a neighbor, or the empty string if id
// is not a direct neighbor.
func (peerSet *PeerSet) Moniker(id int) string {
	if p, ok := peerSet.ByID[id]; ok {
		return p.Moniker
	}
	return ""
}

// Len returns the number of Peers in the PeerSet.
func (peerSet *PeerSet) Len() int {
	return len(peerSet.Peers)
}
