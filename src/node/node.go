package node

import (
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/ak033/462lab5/src/config"
	"github.com/ak033/462lab5/src/net"
	"github.com/ak033/462lab5/src/peers"
	"github.com/ak033/462lab5/src/routing"
	"github.com/sirupsen/logrus"
)

// Node defines an lsrd node. It runs three concurrent activities for the
// lifetime of the process: periodic origination of the local advertisement,
// a receive loop that processes one inbound advertisement at a time, and a
// periodic shortest-path computation. The activities share the topology
// store through Core, serialized by coreLock.
type Node struct {
	state

	conf   *config.Config
	logger *logrus.Entry

	core     *Core
	coreLock sync.Mutex

	trans net.Transport
	netCh <-chan *net.Advertisement

	sigintCh   chan os.Signal
	shutdownCh chan struct{}

	broadcastTimer *ControlTimer
	spfTimer       *ControlTimer

	start time.Time

	adsSent     int
	adsReceived int
	adsRelayed  int
	adsDropped  int
	spfRuns     int
	spfDeferred int
}

// NewNode is a factory method that returns a Node instance
func NewNode(conf *config.Config,
	peerSet *peers.PeerSet,
	store routing.Store,
	trans net.Transport,
) (*Node, error) {

	logger := conf.Logger().WithField("this_id", conf.RouterID)

	core, err := NewCore(conf.RouterID, conf.Moniker, peerSet, store, conf.TTLLimit, logger)
	if err != nil {
		return nil, err
	}

	//Prepare sigintCh to relay SIGINT system calls
	sigintCh := make(chan os.Signal, 1)
	signal.Notify(sigintCh, os.Interrupt, syscall.SIGINT)

	node := Node{
		conf:           conf,
		logger:         logger,
		core:           core,
		trans:          trans,
		netCh:          trans.Consumer(),
		sigintCh:       sigintCh,
		shutdownCh:     make(chan struct{}),
		broadcastTimer: NewPeriodicControlTimer(),
		spfTimer:       NewPeriodicControlTimer(),
	}

	return &node, nil
}

// Init starts the transport listening and logs the initial state.
func (n *Node) Init() error {
	n.logger.WithFields(logrus.Fields{
		"num_peers":   n.core.peers.Len(),
		"total_nodes": n.core.store.Size(),
	}).Debug("Init")

	go n.trans.Listen()

	n.setState(Flooding)

	return nil
}

// RunAsync calls Run as a separate thread
func (n *Node) RunAsync() {
	n.logger.Debug("runasync")

	go n.Run()
}

// Run invokes the main loops of the node and blocks until shutdown.
func (n *Node) Run() {
	n.start = time.Now()

	go n.broadcastTimer.Run(n.conf.BroadcastInterval)
	go n.spfTimer.Run(n.conf.SPFInterval)

	go n.doBackgroundWork()

	n.goFunc(n.originateLoop)
	n.goFunc(n.receiveLoop)
	n.goFunc(n.spfLoop)

	<-n.shutdownCh
}

func (n *Node) doBackgroundWork() {
	for {
		select {
		case <-n.sigintCh:
			n.logger.Debug("Reacting to SIGINT - SHUTDOWN")
			n.Shutdown()
			os.Exit(0)
		case <-n.shutdownCh:
			return
		}
	}
}

// originateLoop periodically re-advertises the local row to every direct
// neighbor. This is unconditional: it does not wait for completeness and
// does not care whether the row changed. Lost datagrams are repaired by the
// next cycle.
func (n *Node) originateLoop() {
	for {
		select {
		case <-n.broadcastTimer.tickCh:
			if n.getState() == Flooding {
				n.originate()
			}
			n.resetTimer(n.broadcastTimer, n.conf.BroadcastInterval)
		case <-n.shutdownCh:
			return
		}
	}
}

func (n *Node) originate() {
	n.coreLock.Lock()
	ad := n.core.SelfAdvertisement()
	n.adsSent++
	n.coreLock.Unlock()

	n.broadcast(ad, routing.NoHop)
}

// receiveLoop processes inbound advertisements one at a time.
func (n *Node) receiveLoop() {
	for {
		select {
		case ad, ok := <-n.netCh:
			if !ok {
				return
			}
			n.processAdvertisement(ad)
		case <-n.shutdownCh:
			return
		}
	}
}

func (n *Node) processAdvertisement(ad *net.Advertisement) {
	n.coreLock.Lock()
	n.adsReceived++
	relay, err := n.core.ReceiveAdvertisement(ad)
	if err != nil {
		n.adsDropped++
	}
	if relay {
		n.adsRelayed++
	}
	n.coreLock.Unlock()

	if err != nil {
		n.logger.WithError(err).WithField("origin", ad.RouterID).
			Warn("Dropping invalid advertisement")
		return
	}

	if !relay {
		return
	}

	forward := &net.Advertisement{
		RouterID:  ad.RouterID,
		LinkState: ad.LinkState,
		TTL:       ad.TTL - 1,
	}

	n.broadcast(forward, ad.RouterID)
}

// broadcast sends an advertisement to every direct neighbor except the
// excluded one. Pass routing.NoHop to send to all neighbors. Send failures
// are logged, never retried.
func (n *Node) broadcast(ad *net.Advertisement, exclude int) {
	for _, p := range n.core.peers.Peers {
		if p.ID == exclude {
			continue
		}
		if err := n.trans.Send(p.NetAddr, ad); err != nil {
			n.logger.WithError(err).WithFields(logrus.Fields{
				"target": p.NetAddr,
				"origin": ad.RouterID,
			}).Error("Sending advertisement")
		}
	}
}

// spfLoop periodically recomputes shortest paths, deferring while the
// topology is incomplete.
func (n *Node) spfLoop() {
	for {
		select {
		case <-n.spfTimer.tickCh:
			if n.getState() == Flooding {
				n.runSPF()
			}
			n.resetTimer(n.spfTimer, n.conf.SPFInterval)
		case <-n.shutdownCh:
			return
		}
	}
}

func (n *Node) runSPF() {
	n.coreLock.Lock()

	if !n.core.Complete() {
		known := n.core.KnownCount()
		n.spfDeferred++
		n.coreLock.Unlock()

		n.logger.WithFields(logrus.Fields{
			"known":       known,
			"total_nodes": n.core.store.Size(),
		}).Info("Waiting for all link states. Computation deferred.")
		return
	}

	routeTable := n.core.ComputeRoutes()
	n.spfRuns++
	n.coreLock.Unlock()

	n.logger.Info("\n" + routeTable.Format(n.core.peers))
	n.logStats()
}

func (n *Node) resetTimer(timer *ControlTimer, d time.Duration) {
	if !timer.set {
		timer.resetCh <- d
	}
}

// Suspend stops origination and route computation; reception continues so
// the topology store stays warm.
func (n *Node) Suspend() {
	if n.getState() == Flooding {
		n.logger.Debug("Suspend")
		n.setState(Suspended)
	}
}

// Resume returns a suspended node to the Flooding state.
func (n *Node) Resume() {
	if n.getState() == Suspended {
		n.logger.Debug("Resume")
		n.setState(Flooding)
	}
}

// Shutdown stops all concurrent activities and closes the transport and the
// store.
func (n *Node) Shutdown() {
	if n.getState() != Shutdown {
		n.logger.Debug("Shutdown")

		//Exit any non-shutdown state immediately
		n.setState(Shutdown)

		//Stop and wait for concurrent operations
		close(n.shutdownCh)

		n.waitRoutines()

		n.broadcastTimer.Shutdown()
		n.spfTimer.Shutdown()

		//transport and store should only be closed once all concurrent
		//operations are finished otherwise they will panic trying to use
		//closed objects
		n.trans.Close()

		n.core.store.Close()
	}
}

// ID returns the local router id.
func (n *Node) ID() int {
	return n.core.ID()
}

// GetPeers returns the neighbor table.
func (n *Node) GetPeers() []*peers.Peer {
	return n.core.peers.Peers
}

// GetRouteTable returns the last computed route table, or nil before the
// first complete computation.
func (n *Node) GetRouteTable() *routing.RouteTable {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()
	return n.core.GetRouteTable()
}

// GetTopology returns a snapshot of the known cost matrix.
func (n *Node) GetTopology() [][]int {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()
	return n.core.GetTopology()
}

// KnownCount returns the number of routers heard from so far.
func (n *Node) KnownCount() int {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()
	return n.core.KnownCount()
}

// GetStats returns stats
func (n *Node) GetStats() map[string]string {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	s := map[string]string{
		"id":            strconv.Itoa(n.core.ID()),
		"moniker":       n.conf.Moniker,
		"state":         n.getState().String(),
		"num_peers":     strconv.Itoa(n.core.peers.Len()),
		"total_nodes":   strconv.Itoa(n.core.store.Size()),
		"known":         strconv.Itoa(n.core.KnownCount()),
		"complete":      strconv.FormatBool(n.core.Complete()),
		"ads_sent":      strconv.Itoa(n.adsSent),
		"ads_received":  strconv.Itoa(n.adsReceived),
		"ads_relayed":   strconv.Itoa(n.adsRelayed),
		"ads_dropped":   strconv.Itoa(n.adsDropped),
		"spf_runs":      strconv.Itoa(n.spfRuns),
		"spf_deferrals": strconv.Itoa(n.spfDeferred),
	}
	return s
}

func (n *Node) logStats() {
	stats := n.GetStats()

	n.logger.WithFields(logrus.Fields{
		"state":         stats["state"],
		"known":         stats["known"],
		"complete":      stats["complete"],
		"ads_sent":      stats["ads_sent"],
		"ads_received":  stats["ads_received"],
		"ads_relayed":   stats["ads_relayed"],
		"ads_dropped":   stats["ads_dropped"],
		"spf_runs":      stats["spf_runs"],
		"spf_deferrals": stats["spf_deferrals"],
	}).Debug("Stats")
}
