package routing

import (
	"reflect"
	"testing"

	"github.com/ak033/462lab5/src/peers"
)

func testPeerSet() *peers.PeerSet {
	return peers.NewPeerSet([]*peers.Peer{
		peers.NewPeer(1, "B", 1, "127.0.0.1:9001"),
	})
}

// matrixFromEdges builds a symmetric cost matrix for a network of size
// nodes with 0 on the diagonal.
func matrixFromEdges(size int, edges map[[2]int]int) [][]int {
	matrix := make([][]int, size)
	for i := 0; i < size; i++ {
		matrix[i] = NewRow(size)
		matrix[i][i] = 0
	}
	for edge, cost := range edges {
		matrix[edge[0]][edge[1]] = cost
		matrix[edge[1]][edge[0]] = cost
	}
	return matrix
}

func TestComputeRoutesRing(t *testing.T) {
	// 4 routers in a ring, all edge costs 1
	matrix := matrixFromEdges(4, map[[2]int]int{
		{0, 1}: 1,
		{1, 2}: 1,
		{2, 3}: 1,
		{3, 0}: 1,
	})

	routeTable := ComputeRoutes(0, matrix)

	expectedDist := []int{0, 1, 2, 1}
	if !reflect.DeepEqual(routeTable.Dist, expectedDist) {
		t.Fatalf("Dist should be %v, not %v", expectedDist, routeTable.Dist)
	}

	// The two equal-cost paths to router 2 (via 1 and via 3) must resolve
	// through router 1, the lowest-id candidate.
	expectedNextHop := map[int]int{1: 1, 2: 1, 3: 3}
	if !reflect.DeepEqual(routeTable.NextHop, expectedNextHop) {
		t.Fatalf("NextHop should be %v, not %v", expectedNextHop, routeTable.NextHop)
	}

	if _, ok := routeTable.NextHop[0]; ok {
		t.Fatal("forwarding table should not contain the local router")
	}
}

func TestComputeRoutesSelfDistance(t *testing.T) {
	matrix := matrixFromEdges(3, map[[2]int]int{
		{0, 1}: 5,
		{1, 2}: 5,
	})

	for self := 0; self < 3; self++ {
		routeTable := ComputeRoutes(self, matrix)
		if routeTable.Dist[self] != 0 {
			t.Fatalf("dist[self] for router %d should be 0, not %d", self, routeTable.Dist[self])
		}
	}
}

func TestComputeRoutesLine(t *testing.T) {
	// 3 routers in a line: 0 -5- 1 -5- 2, no 0-2 link
	matrix := matrixFromEdges(3, map[[2]int]int{
		{0, 1}: 5,
		{1, 2}: 5,
	})

	routeTable := ComputeRoutes(2, matrix)

	expectedDist := []int{10, 5, 0}
	if !reflect.DeepEqual(routeTable.Dist, expectedDist) {
		t.Fatalf("Dist should be %v, not %v", expectedDist, routeTable.Dist)
	}

	// everything leaves through router 1
	expectedNextHop := map[int]int{0: 1, 1: 1}
	if !reflect.DeepEqual(routeTable.NextHop, expectedNextHop) {
		t.Fatalf("NextHop should be %v, not %v", expectedNextHop, routeTable.NextHop)
	}
}

func TestComputeRoutesUnreachable(t *testing.T) {
	// router 3 has no edges at all
	matrix := matrixFromEdges(4, map[[2]int]int{
		{0, 1}: 1,
		{1, 2}: 1,
		{2, 0}: 1,
	})
	matrix[3][3] = 0

	routeTable := ComputeRoutes(0, matrix)

	if routeTable.Dist[3] != Infinity {
		t.Fatalf("dist[3] should be Infinity, not %d", routeTable.Dist[3])
	}

	if hop := routeTable.NextHop[3]; hop != NoHop {
		t.Fatalf("next hop for router 3 should be NoHop, not %d", hop)
	}
}

func TestComputeRoutesDeterministic(t *testing.T) {
	// two equal-cost paths from 0 to 3, via 1 and via 2
	matrix := matrixFromEdges(4, map[[2]int]int{
		{0, 1}: 2,
		{0, 2}: 2,
		{1, 3}: 2,
		{2, 3}: 2,
	})

	first := ComputeRoutes(0, matrix)
	for i := 0; i < 10; i++ {
		again := ComputeRoutes(0, matrix)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, first, again)
		}
	}

	// the tie must resolve through router 1
	if hop := first.NextHop[3]; hop != 1 {
		t.Fatalf("next hop for router 3 should be 1, not %d", hop)
	}
}

func TestRouteTableFormat(t *testing.T) {
	matrix := matrixFromEdges(3, map[[2]int]int{
		{0, 1}: 1,
		{1, 2}: 1,
	})

	routeTable := ComputeRoutes(0, matrix)

	out := routeTable.Format(testPeerSet())
	if out == "" {
		t.Fatal("Format returned an empty table")
	}
}
