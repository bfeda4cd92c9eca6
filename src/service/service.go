package service

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/ak033/462lab5/src/node"
	"github.com/sirupsen/logrus"
)

// Service exposes the router's state over HTTP: stats, the neighbor table,
// the topology snapshot, and the computed routes. It is informative only;
// nothing in the routing protocol depends on it.
type Service struct {
	sync.Mutex

	bindAddress string
	node        *node.Node
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, n *node.Node, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		node:        n,
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

// registerHandlers registers the API handlers with the DefaultServerMux of
// the http package. It is possible that another server in the same process
// is simultaneously using the DefaultServerMux. In which case, the handlers
// will be accessible from both servers.
func (s *Service) registerHandlers() {
	s.logger.Debug("Registering lsrd API handlers")
	http.HandleFunc("/stats", s.makeHandler(s.GetStats))
	http.HandleFunc("/routes", s.makeHandler(s.GetRoutes))
	http.HandleFunc("/topology", s.makeHandler(s.GetTopology))
	http.HandleFunc("/neighbors", s.makeHandler(s.GetNeighbors))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Serve calls ListenAndServe. This is a blocking call. It is not necessary
// to call Serve when another server has already been started with the
// DefaultServerMux and the same address:port combination.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving lsrd API")

	// Use the DefaultServerMux
	err := http.ListenAndServe(s.bindAddress, nil)
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := s.node.GetStats()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(stats)
}

// GetRoutes returns the last computed route table, or 404 while no complete
// computation has happened yet.
func (s *Service) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routeTable := s.node.GetRouteTable()
	if routeTable == nil {
		http.Error(w, "route table not yet computed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(routeTable)
}

// GetTopology returns the known cost matrix.
func (s *Service) GetTopology(w http.ResponseWriter, r *http.Request) {
	topology := s.node.GetTopology()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(topology)
}

// GetNeighbors returns the static neighbor table.
func (s *Service) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	neighbors := s.node.GetPeers()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(neighbors)
}
