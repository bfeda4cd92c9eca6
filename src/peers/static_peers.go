package peers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// StaticPeers loads the neighbor table from the static topology file.
//
// The file format is one integer on the first line, the total number of
// routers in the network, followed by one line per direct neighbor:
//
//	<moniker> <id> <cost> <port>
//
// Lines with the wrong number of fields, or with non-integer id/cost/port
// values, are skipped with a warning naming the offending line; they do not
// abort the load.
type StaticPeers struct {
	path   string
	logger *logrus.Entry
}

// NewStaticPeers creates a StaticPeers backed by the file at path.
func NewStaticPeers(path string, logger *logrus.Entry) *StaticPeers {
	return &StaticPeers{
		path:   path,
		logger: logger,
	}
}

// Load parses the topology file and returns the total node count and the
// neighbor PeerSet. selfID and selfAddr identify the local router; a
// neighbor entry that claims the local id, reuses an id, falls outside
// [0, totalNodes), or collides with the local listen address is a
// configuration error and fails the load.
func (s *StaticPeers) Load(selfID int, selfAddr string) (int, *PeerSet, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return 0, nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	if !scanner.Scan() {
		return 0, nil, fmt.Errorf("topology file %s is empty", s.path)
	}

	totalNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || totalNodes <= 0 {
		return 0, nil, fmt.Errorf("topology file %s: first line must be a positive node count", s.path)
	}

	if selfID < 0 || selfID >= totalNodes {
		return 0, nil, fmt.Errorf("router id %d outside [0,%d)", selfID, totalNodes)
	}

	res := []*Peer{}
	seen := map[int]bool{}

	for lineNo := 2; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			s.logger.WithFields(logrus.Fields{
				"line_no": lineNo,
				"line":    line,
			}).Warn("Malformed topology line, skipping")
			continue
		}

		moniker := fields[0]

		id, errID := strconv.Atoi(fields[1])
		cost, errCost := strconv.Atoi(fields[2])
		port, errPort := strconv.Atoi(fields[3])
		if errID != nil || errCost != nil || errPort != nil {
			s.logger.WithFields(logrus.Fields{
				"line_no": lineNo,
				"line":    line,
			}).Warn("Non-integer field in topology line, skipping")
			continue
		}

		if id < 0 || id >= totalNodes {
			return 0, nil, fmt.Errorf("line %d: neighbor id %d outside [0,%d)", lineNo, id, totalNodes)
		}
		if id == selfID {
			return 0, nil, fmt.Errorf("line %d: neighbor id %d is the local router", lineNo, id)
		}
		if seen[id] {
			return 0, nil, fmt.Errorf("line %d: duplicate neighbor id %d", lineNo, id)
		}
		if cost < 0 {
			return 0, nil, fmt.Errorf("line %d: negative cost %d", lineNo, cost)
		}

		netAddr := fmt.Sprintf("127.0.0.1:%d", port)
		if netAddr == selfAddr {
			return 0, nil, fmt.Errorf("line %d: neighbor port %d collides with the local listen address", lineNo, port)
		}

		seen[id] = true
		res = append(res, NewPeer(id, moniker, cost, netAddr))
	}

	if err := scanner.Err(); err != nil {
		return 0, nil, err
	}

	return totalNodes, NewPeerSet(res), nil
}
