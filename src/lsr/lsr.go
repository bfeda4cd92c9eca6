package lsr

import (
	"fmt"

	"github.com/ak033/462lab5/src/config"
	"github.com/ak033/462lab5/src/net"
	"github.com/ak033/462lab5/src/node"
	"github.com/ak033/462lab5/src/peers"
	"github.com/ak033/462lab5/src/routing"
	"github.com/ak033/462lab5/src/service"
)

// LSR is a link-state router engine: the neighbor table, topology store,
// datagram transport, node, and reporting service assembled from a Config.
type LSR struct {
	Config     *config.Config
	Node       *node.Node
	Transport  net.Transport
	Store      routing.Store
	Peers      *peers.PeerSet
	TotalNodes int
	Service    *service.Service
}

// NewLSR ...
func NewLSR(config *config.Config) *LSR {
	engine := &LSR{
		Config: config,
	}

	return engine
}

func (l *LSR) initPeers() error {
	staticPeers := peers.NewStaticPeers(l.Config.TopologyFile, l.Config.Logger())

	totalNodes, peerSet, err := staticPeers.Load(l.Config.RouterID, l.Config.BindAddr)
	if err != nil {
		return err
	}

	l.TotalNodes = totalNodes
	l.Peers = peerSet

	return nil
}

func (l *LSR) initStore() error {
	if l.Config.Bootstrap {
		l.Config.Store = true
	}

	if !l.Config.Store {
		l.Store = routing.NewInmemStore(l.TotalNodes)

		l.Config.Logger().Debug("created new in-mem store")

		return nil
	}

	l.Config.Logger().WithField("path", l.Config.DatabaseDir).
		Debug("Attempting to load or create database")

	store, err := routing.LoadOrCreateBadgerStore(l.TotalNodes, l.Config.DatabaseDir)
	if err != nil {
		return err
	}

	if store.Size() != l.TotalNodes {
		return fmt.Errorf("database sized for %d nodes, topology file says %d",
			store.Size(), l.TotalNodes)
	}

	if store.NeedBootstrap() {
		l.Config.Logger().Debug("loaded badger store from existing database")
	} else {
		l.Config.Logger().Debug("created new badger store from fresh database")
	}

	l.Store = store

	return nil
}

func (l *LSR) initTransport() error {
	transport, err := net.NewUDPTransport(
		l.Config.BindAddr,
		l.Config.Logger().WithField("component", "transport"),
	)

	if err != nil {
		return err
	}

	l.Transport = transport

	return nil
}

func (l *LSR) initNode() error {
	n, err := node.NewNode(l.Config, l.Peers, l.Store, l.Transport)
	if err != nil {
		return err
	}

	l.Node = n

	return l.Node.Init()
}

func (l *LSR) initService() error {
	if l.Config.NoService {
		return nil
	}

	l.Service = service.NewService(
		l.Config.ServiceAddr,
		l.Node,
		l.Config.Logger().WithField("component", "service"),
	)

	return nil
}

// Init initializes the engine: neighbor table, store, transport, node, and
// service, in that order.
func (l *LSR) Init() error {
	if err := l.initPeers(); err != nil {
		l.Config.Logger().WithError(err).Error("lsr.go:Init() initPeers")
		return err
	}

	if err := l.initStore(); err != nil {
		l.Config.Logger().WithError(err).Error("lsr.go:Init() initStore")
		return err
	}

	if err := l.initTransport(); err != nil {
		l.Config.Logger().WithError(err).Error("lsr.go:Init() initTransport")
		return err
	}

	if err := l.initNode(); err != nil {
		l.Config.Logger().WithError(err).Error("lsr.go:Init() initNode")
		return err
	}

	if err := l.initService(); err != nil {
		l.Config.Logger().WithError(err).Error("lsr.go:Init() initService")
		return err
	}

	return nil
}

// Run starts the reporting service and runs the node until shutdown.
func (l *LSR) Run() {
	if l.Service != nil {
		go l.Service.Serve()
	}

	l.Node.Run()
}
