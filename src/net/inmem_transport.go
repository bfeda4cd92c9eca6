package net

import (
	"fmt"
	"sync"
)

// InmemTransport implements the Transport interface, to allow routers to be
// tested in-memory without going over a network. Sends into a full consumer
// channel are dropped, which mimics datagram loss under pressure.
type InmemTransport struct {
	sync.RWMutex
	consumerCh chan *Advertisement
	localAddr  string
	peers      map[string]*InmemTransport
}

// NewInmemTransport is used to initialize a new transport listening on the
// given synthetic address.
func NewInmemTransport(addr string) *InmemTransport {
	return &InmemTransport{
		consumerCh: make(chan *Advertisement, 256),
		localAddr:  addr,
		peers:      make(map[string]*InmemTransport),
	}
}

// Listen implements the Transport interface.
func (i *InmemTransport) Listen() {
}

// Consumer implements the Transport interface.
func (i *InmemTransport) Consumer() <-chan *Advertisement {
	return i.consumerCh
}

// LocalAddr implements the Transport interface.
func (i *InmemTransport) LocalAddr() string {
	return i.localAddr
}

// Send implements the Transport interface. The advertisement is deep-copied
// so that the receiver never aliases the sender's row.
func (i *InmemTransport) Send(target string, ad *Advertisement) error {
	i.RLock()
	peer, ok := i.peers[target]
	i.RUnlock()

	if !ok {
		return fmt.Errorf("failed to connect to peer: %v", target)
	}

	cp := &Advertisement{
		RouterID:  ad.RouterID,
		LinkState: ad.LinkState.Clone(),
		TTL:       ad.TTL,
	}

	select {
	case peer.consumerCh <- cp:
	default:
		// receiver backlogged, drop like a lost datagram
	}

	return nil
}

// Connect is used to connect this transport to another transport for a given
// peer name. This allows for local routing.
func (i *InmemTransport) Connect(peer string, t Transport) {
	trans := t.(*InmemTransport)
	i.Lock()
	defer i.Unlock()
	i.peers[peer] = trans
}

// Disconnect is used to remove the ability to route to a given peer.
func (i *InmemTransport) Disconnect(peer string) {
	i.Lock()
	defer i.Unlock()
	delete(i.peers, peer)
}

// DisconnectAll is used to remove all routes to peers.
func (i *InmemTransport) DisconnectAll() {
	i.Lock()
	defer i.Unlock()
	i.peers = make(map[string]*InmemTransport)
}

// Close is used to permanently disable the transport.
func (i *InmemTransport) Close() error {
	i.DisconnectAll()
	return nil
}
