package routing

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/ak033/462lab5/src/peers"
)

// NoHop marks the absence of a node in RouteTable predecessor and next-hop
// entries; a destination whose next hop is NoHop is unreachable.
const NoHop = -1

// RouteTable is the result of one shortest-path computation: distances,
// predecessors and the destination to next-hop forwarding map. It is built
// in full and then swapped in atomically, readers never see a partial one.
type RouteTable struct {
	Self    int         `json:"self"`
	Dist    []int       `json:"dist"`
	Prev    []int       `json:"prev"`
	NextHop map[int]int `json:"next_hop"`
}

// ComputeRoutes runs Dijkstra's algorithm from self over a square cost
// matrix and derives the forwarding table.
//
// The unvisited node with the smallest tentative distance is found by an
// ascending-index scan, so ties always resolve to the lowest router id.
// This keeps the shortest-path tree reproducible for a fixed matrix. A
// destination left at Infinity is not an error; it is recorded as
// unreachable.
func ComputeRoutes(self int, matrix [][]int) *RouteTable {
	size := len(matrix)

	dist := make([]int, size)
	prev := make([]int, size)
	visited := make([]bool, size)

	for i := 0; i < size; i++ {
		dist[i] = Infinity
		prev[i] = NoHop
	}
	dist[self] = 0

	for i := 0; i < size; i++ {
		u := NoHop
		minDist := Infinity
		for v := 0; v < size; v++ {
			if !visited[v] && dist[v] < minDist {
				minDist = dist[v]
				u = v
			}
		}
		if u == NoHop {
			break
		}
		visited[u] = true

		for v := 0; v < size; v++ {
			if matrix[u][v] < Infinity && !visited[v] {
				alt := dist[u] + matrix[u][v]
				if alt < dist[v] {
					dist[v] = alt
					prev[v] = u
				}
			}
		}
	}

	nextHop := make(map[int]int)
	for dest := 0; dest < size; dest++ {
		if dest == self {
			continue
		}
		if dist[dest] >= Infinity {
			nextHop[dest] = NoHop
			continue
		}
		hop := dest
		for prev[hop] != NoHop && prev[hop] != self {
			hop = prev[hop]
		}
		if prev[hop] == NoHop {
			hop = NoHop
		}
		nextHop[dest] = hop
	}

	return &RouteTable{
		Self:    self,
		Dist:    dist,
		Prev:    prev,
		NextHop: nextHop,
	}
}

// Format renders the distances and the forwarding table as tabular text,
// resolving next-hop labels against the neighbor table.
func (rt *RouteTable) Format(neighbors *peers.PeerSet) string {
	b := new(bytes.Buffer)
	w := tabwriter.NewWriter(b, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "Destination_Routerid\tDistance\tPrevious_node_id")
	for node := 0; node < len(rt.Dist); node++ {
		prevLabel := "-"
		if rt.Prev[node] != NoHop {
			prevLabel = fmt.Sprintf("%d", rt.Prev[node])
		}
		fmt.Fprintf(w, "%d\t%d\t%s\n", node, rt.Dist[node], prevLabel)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Forwarding Table:")
	fmt.Fprintln(w, "Destination_Routerid\tNext_hop_routerlabel")
	for dest := 0; dest < len(rt.Dist); dest++ {
		hop, ok := rt.NextHop[dest]
		if !ok {
			continue
		}
		label := "-"
		if hop != NoHop {
			label = neighbors.Moniker(hop)
			if label == "" {
				label = fmt.Sprintf("R%d", hop)
			}
		}
		fmt.Fprintf(w, "%d\t%s\n", dest, label)
	}

	w.Flush()
	return b.String()
}
