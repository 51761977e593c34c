package read

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/minff/geodata"
	"github.com/minff/geodata/cache/memory"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/model"
	"github.com/minff/geodata/prefetch"
)

// layerServer serves a fixed partition listing and tile payloads for one
// layer.
func layerServer(dataCalls *atomic.Int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/partitions"):
			w.Write([]byte(`{"partitions":[
				{"partition":"23618402","dataHandle":"h-1"},
				{"partition":"23618403","dataHandle":"h-2"}]}`))
		case strings.Contains(r.URL.Path, "/data/h-1"):
			if dataCalls != nil {
				dataCalls.Add(1)
			}
			w.Write([]byte("tile-one"))
		case strings.Contains(r.URL.Path, "/data/h-2"):
			if dataCalls != nil {
				dataCalls.Add(1)
			}
			w.Write([]byte("tile-two"))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestVersionedLayerClient_GetDataByHandle(t *testing.T) {
	srv := layerServer(nil)
	defer srv.Close()

	c := NewVersionedLayerClient(testHRN, "topology", 3, geodata.Settings{Endpoint: srv.URL})
	resp := c.GetDataFuture(geodata.DataRequest{DataHandle: "h-1"}).GetResponse()
	if !resp.IsSuccessful() || string(resp.Value()) != "tile-one" {
		t.Fatalf("data = (%q, %v)", resp.Value(), resp.Err())
	}
}

func TestVersionedLayerClient_GetDataByPartitionID(t *testing.T) {
	srv := layerServer(nil)
	defer srv.Close()

	c := NewVersionedLayerClient(testHRN, "topology", 3, geodata.Settings{Endpoint: srv.URL})
	resp := c.GetDataFuture(geodata.DataRequest{PartitionID: "23618403"}).GetResponse()
	if !resp.IsSuccessful() || string(resp.Value()) != "tile-two" {
		t.Fatalf("data = (%q, %v)", resp.Value(), resp.Err())
	}
}

func TestVersionedLayerClient_GetPartitionsScopesLayer(t *testing.T) {
	srv := layerServer(nil)
	defer srv.Close()

	c := NewVersionedLayerClient(testHRN, "topology", 3, geodata.Settings{Endpoint: srv.URL})

	var got client.Response[[]model.Partition]
	c.GetPartitions(geodata.PartitionsRequest{}, func(resp client.Response[[]model.Partition]) { got = resp })
	if !got.IsSuccessful() || len(got.Value()) != 2 {
		t.Fatalf("partitions = (%d, %v), want 2", len(got.Value()), got.Err())
	}
}

func TestVersionedLayerClient_PrefetchWarmsCache(t *testing.T) {
	var dataCalls atomic.Int64
	srv := layerServer(&dataCalls)
	defer srv.Close()

	cache := memory.New()
	c := NewVersionedLayerClient(testHRN, "topology", 3, geodata.Settings{Endpoint: srv.URL, Cache: cache})

	resp := c.PrefetchTilesFuture(geodata.PrefetchRequest{TileKeys: []string{"23618402", "23618403"}}).GetResponse()
	if !resp.IsSuccessful() {
		t.Fatalf("unexpected prefetch error: %v", resp.Err())
	}
	for _, r := range resp.Value() {
		if r.Err != nil {
			t.Fatalf("tile %s failed: %v", r.TileKey, r.Err)
		}
	}

	// Warmed tiles now satisfy CacheOnly reads without the service.
	before := dataCalls.Load()
	data := c.GetDataFuture(geodata.DataRequest{DataHandle: "h-1", FetchOption: geodata.CacheOnly}).GetResponse()
	if !data.IsSuccessful() || string(data.Value()) != "tile-one" {
		t.Fatalf("cached read = (%q, %v)", data.Value(), data.Err())
	}
	if dataCalls.Load() != before {
		t.Fatal("cache-only read hit the service")
	}
}

func TestVersionedLayerClient_PrefetchReportsPerTileFailures(t *testing.T) {
	srv := layerServer(nil)
	defer srv.Close()

	c := NewVersionedLayerClient(testHRN, "topology", 3, geodata.Settings{Endpoint: srv.URL})

	var got client.Response[[]prefetch.TileResult]
	c.PrefetchTiles(geodata.PrefetchRequest{TileKeys: []string{"23618402", "99999999"}},
		func(resp client.Response[[]prefetch.TileResult]) { got = resp })

	if !got.IsSuccessful() {
		t.Fatalf("unexpected run error: %v", got.Err())
	}
	results := got.Value()
	if results[0].Err != nil {
		t.Fatalf("known tile failed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, geodata.ErrNotFound) {
		t.Fatalf("unknown tile error = %v, want ErrNotFound", results[1].Err)
	}
}

func TestVersionedLayerClient_CancelAll(t *testing.T) {
	sched := &manualScheduler{}
	c := NewVersionedLayerClient(testHRN, "topology", 3, geodata.Settings{Scheduler: sched, Endpoint: "http://127.0.0.1:1"})

	var calls atomic.Int64
	c.GetData(geodata.DataRequest{DataHandle: "h-1"}, func(resp client.Response[[]byte]) {
		if !errors.Is(resp.Err(), geodata.ErrCancelled) {
			t.Errorf("error = %v, want ErrCancelled", resp.Err())
		}
		calls.Add(1)
	})

	if !c.CancelPendingRequests() {
		t.Fatal("CancelPendingRequests reported nothing pending")
	}
	sched.RunAll()
	if n := calls.Load(); n != 1 {
		t.Fatalf("callbacks fired %d times, want 1", n)
	}
	if n := c.pending.Size(); n != 0 {
		t.Fatalf("registry holds %d entries after drain", n)
	}
}
