package lsr

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ak033/462lab5/src/config"
)

func writeTopology(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func initEngine(t *testing.T, id int, bindAddr, topologyFile string) *LSR {
	conf := config.NewTestConfig(t)
	conf.RouterID = id
	conf.BindAddr = bindAddr
	conf.TopologyFile = topologyFile
	conf.NoService = true

	engine := NewLSR(conf)
	if err := engine.Init(); err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestTwoRouterConvergence(t *testing.T) {
	dir, err := ioutil.TempDir("", "lsr_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	topo0 := writeTopology(t, dir, "topo0.txt", "2\nR1 1 7 46001\n")
	topo1 := writeTopology(t, dir, "topo1.txt", "2\nR0 0 7 46000\n")

	engine0 := initEngine(t, 0, "127.0.0.1:46000", topo0)
	engine1 := initEngine(t, 1, "127.0.0.1:46001", topo1)

	defer engine0.Node.Shutdown()
	defer engine1.Node.Shutdown()

	go engine0.Run()
	go engine1.Run()

	deadline := time.After(3 * time.Second)
	for engine0.Node.GetRouteTable() == nil || engine1.Node.GetRouteTable() == nil {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for both routers to compute routes")
		case <-time.After(10 * time.Millisecond):
		}
	}

	routeTable0 := engine0.Node.GetRouteTable()
	if expected := []int{0, 7}; !reflect.DeepEqual(routeTable0.Dist, expected) {
		t.Fatalf("router 0 dist should be %v, not %v", expected, routeTable0.Dist)
	}
	if hop := routeTable0.NextHop[1]; hop != 1 {
		t.Fatalf("router 0 should reach router 1 directly, next hop was %d", hop)
	}

	routeTable1 := engine1.Node.GetRouteTable()
	if expected := []int{7, 0}; !reflect.DeepEqual(routeTable1.Dist, expected) {
		t.Fatalf("router 1 dist should be %v, not %v", expected, routeTable1.Dist)
	}
}

func TestInitRejectsBadTopology(t *testing.T) {
	dir, err := ioutil.TempDir("", "lsr_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	tests := []struct {
		name    string
		content string
	}{
		{"missing node count", "R1 1 7 46001\n"},
		{"neighbor out of range", "2\nR5 5 7 46001\n"},
		{"self as neighbor", "2\nR0 0 7 46001\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := writeTopology(t, dir, "bad.txt", tt.content)

			conf := config.NewTestConfig(t)
			conf.RouterID = 0
			conf.BindAddr = "127.0.0.1:46100"
			conf.TopologyFile = topo
			conf.NoService = true

			if err := NewLSR(conf).Init(); err == nil {
				t.Fatal("Init should fail on a bad topology file")
			}
		})
	}
}
