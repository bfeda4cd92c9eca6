package routing

import (
	"reflect"
	"testing"

	"github.com/ak033/462lab5/src/peers"
)

func TestSelfRow(t *testing.T) {
	peerSet := peers.NewPeerSet([]*peers.Peer{
		peers.NewPeer(1, "B", 4, "127.0.0.1:9001"),
		peers.NewPeer(3, "D", 2, "127.0.0.1:9003"),
	})

	row := SelfRow(0, 4, peerSet)

	expected := Row{0, 4, Infinity, 2}
	if !reflect.DeepEqual(row, expected) {
		t.Fatalf("self row should be %v, not %v", expected, row)
	}
}

func TestRowEquals(t *testing.T) {
	a := Row{0, 1, Infinity}
	b := Row{0, 1, Infinity}

	if !a.Equals(b) {
		t.Fatal("identical rows should be equal")
	}

	b[2] = 7
	if a.Equals(b) {
		t.Fatal("different rows should not be equal")
	}

	if a.Equals(nil) {
		t.Fatal("a row should never equal nil")
	}
	if a.Equals(Row{0, 1}) {
		t.Fatal("rows of different lengths should not be equal")
	}
}

func TestRowMarshal(t *testing.T) {
	row := Row{0, 5, Infinity}

	data, err := row.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	back := new(Row)
	if err := back.Unmarshal(data); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(*back, row) {
		t.Fatalf("row should be %v, not %v", row, *back)
	}
}
