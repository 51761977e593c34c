package read

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minff/geodata"
	"github.com/minff/geodata/cache/memory"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/model"
	"github.com/minff/geodata/scheduler"
)

var testHRN = geodata.MustParseHRN("hrn:here:data::acme:roads")

// manualScheduler queues tasks until RunAll is called, so tests control
// exactly when dispatched work executes.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func (s *manualScheduler) ScheduleTask(fn func()) {
	s.mu.Lock()
	s.tasks = append(s.tasks, fn)
	s.mu.Unlock()
}

func (s *manualScheduler) RunAll() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()
		fn()
	}
}

func versionServer(t *testing.T, version int64, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		w.Write([]byte(`{"version":` + strconv.FormatInt(version, 10) + `}`))
	}))
}

func TestCatalogClient_CacheOnlyHitDeliversOnce(t *testing.T) {
	cache := memory.New()
	// Cache key layout: {hrn}::latestVersion, JSON codec.
	cache.Put("hrn:here:data::acme:roads::latestVersion", []byte(`{"version":5}`))

	c := NewCatalogClient(testHRN, geodata.Settings{Cache: cache, Endpoint: "http://127.0.0.1:1"})

	var calls atomic.Int64
	var got client.Response[model.VersionInfo]
	c.GetLatestVersion(geodata.CatalogVersionRequest{StartVersion: -1, FetchOption: geodata.CacheOnly},
		func(resp client.Response[model.VersionInfo]) {
			calls.Add(1)
			got = resp
		})

	if n := calls.Load(); n != 1 {
		t.Fatalf("callback fired %d times, want 1", n)
	}
	if !got.IsSuccessful() || got.Value().Version != 5 {
		t.Fatalf("response = (%+v, %v), want version 5", got.Value(), got.Err())
	}
	if n := c.pending.Size(); n != 0 {
		t.Fatalf("registry holds %d entries after completion", n)
	}
}

func TestCatalogClient_CacheWithUpdateDeliversCacheBranchOnly(t *testing.T) {
	var serviceCalls atomic.Int64
	srv := versionServer(t, 7, &serviceCalls)
	defer srv.Close()

	cache := memory.New()
	c := NewCatalogClient(testHRN, geodata.Settings{Cache: cache, Endpoint: srv.URL})

	// Empty cache: the caller sees the cache branch's NotFound; the
	// online refresh runs in the background and its result is discarded.
	var calls atomic.Int64
	var got client.Response[model.VersionInfo]
	c.GetLatestVersion(geodata.CatalogVersionRequest{StartVersion: -1, FetchOption: geodata.CacheWithUpdate},
		func(resp client.Response[model.VersionInfo]) {
			calls.Add(1)
			got = resp
		})

	if n := calls.Load(); n != 1 {
		t.Fatalf("callback fired %d times, want 1", n)
	}
	if !errors.Is(got.Err(), geodata.ErrNotFound) {
		t.Fatalf("cache branch error = %v, want ErrNotFound", got.Err())
	}
	if n := serviceCalls.Load(); n != 1 {
		t.Fatalf("refresh branch hit the service %d times, want 1", n)
	}

	// The refresh landed in the cache: a CacheOnly read now sees 7.
	var second client.Response[model.VersionInfo]
	c.GetLatestVersion(geodata.CatalogVersionRequest{StartVersion: -1, FetchOption: geodata.CacheOnly},
		func(resp client.Response[model.VersionInfo]) { second = resp })
	if !second.IsSuccessful() || second.Value().Version != 7 {
		t.Fatalf("post-refresh read = (%+v, %v), want version 7", second.Value(), second.Err())
	}
	if n := c.pending.Size(); n != 0 {
		t.Fatalf("registry holds %d entries after completion", n)
	}
}

func TestCatalogClient_CancelBeforeScheduledRun(t *testing.T) {
	sched := &manualScheduler{}
	c := NewCatalogClient(testHRN, geodata.Settings{Scheduler: sched, Endpoint: "http://127.0.0.1:1"})

	var calls atomic.Int64
	var got client.Response[model.Catalog]
	token := c.GetCatalog(geodata.CatalogRequest{}, func(resp client.Response[model.Catalog]) {
		calls.Add(1)
		got = resp
	})

	token.Cancel()
	sched.RunAll()

	if n := calls.Load(); n != 1 {
		t.Fatalf("callback fired %d times, want 1", n)
	}
	if !errors.Is(got.Err(), geodata.ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", got.Err())
	}
	if n := c.pending.Size(); n != 0 {
		t.Fatalf("registry holds %d entries after cancelled run", n)
	}
}

func TestCatalogClient_CancelAllDeliversEveryCallback(t *testing.T) {
	sched := &manualScheduler{}
	c := NewCatalogClient(testHRN, geodata.Settings{Scheduler: sched, Endpoint: "http://127.0.0.1:1"})

	var calls atomic.Int64
	for i := 0; i < 3; i++ {
		c.GetCatalog(geodata.CatalogRequest{}, func(resp client.Response[model.Catalog]) {
			if !errors.Is(resp.Err(), geodata.ErrCancelled) {
				t.Errorf("error = %v, want ErrCancelled", resp.Err())
			}
			calls.Add(1)
		})
	}

	if !c.CancelPendingRequests() {
		t.Fatal("CancelPendingRequests reported nothing pending")
	}
	sched.RunAll()

	if n := calls.Load(); n != 3 {
		t.Fatalf("callbacks fired %d times, want 3", n)
	}
	if n := c.pending.Size(); n != 0 {
		t.Fatalf("registry holds %d entries after drain", n)
	}
}

func TestCatalogClient_FutureAgainstUnreachableService(t *testing.T) {
	c := NewCatalogClient(testHRN, geodata.Settings{Endpoint: "http://127.0.0.1:1"})

	future := c.GetCatalogFuture(geodata.CatalogRequest{FetchOption: geodata.OnlineOnly})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resp, err := future.GetResponseContext(ctx)
	if err != nil {
		t.Fatalf("future never completed: %v", err)
	}
	if !errors.Is(resp.Err(), geodata.ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", resp.Err())
	}
}

func TestCatalogClient_FutureCancelForwards(t *testing.T) {
	sched := &manualScheduler{}
	c := NewCatalogClient(testHRN, geodata.Settings{Scheduler: sched, Endpoint: "http://127.0.0.1:1"})

	future := c.GetCatalogFuture(geodata.CatalogRequest{})
	future.Cancel()
	sched.RunAll()

	resp := future.GetResponse()
	if !errors.Is(resp.Err(), geodata.ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", resp.Err())
	}
}

func TestCatalogClient_SyncAsyncTransparency(t *testing.T) {
	srv := versionServer(t, 7, nil)
	defer srv.Close()

	// Same operation, no scheduler vs pool scheduler: identical results.
	syncClient := NewCatalogClient(testHRN, geodata.Settings{Endpoint: srv.URL})
	syncResp := syncClient.GetLatestVersionFuture(geodata.CatalogVersionRequest{StartVersion: -1, FetchOption: geodata.OnlineOnly}).GetResponse()

	pool := scheduler.NewPool(scheduler.WithConcurrency(2))
	pool.Start()
	defer pool.Stop(context.Background())

	asyncClient := NewCatalogClient(testHRN, geodata.Settings{Endpoint: srv.URL, Scheduler: pool})
	asyncResp := asyncClient.GetLatestVersionFuture(geodata.CatalogVersionRequest{StartVersion: -1, FetchOption: geodata.OnlineOnly}).GetResponse()

	if !syncResp.IsSuccessful() || !asyncResp.IsSuccessful() {
		t.Fatalf("unexpected errors: sync=%v async=%v", syncResp.Err(), asyncResp.Err())
	}
	if syncResp.Value().Version != asyncResp.Value().Version {
		t.Fatalf("sync=%d async=%d, want equal", syncResp.Value().Version, asyncResp.Value().Version)
	}
}

func TestCatalogClient_CloseCancelsPending(t *testing.T) {
	sched := &manualScheduler{}
	c := NewCatalogClient(testHRN, geodata.Settings{Scheduler: sched, Endpoint: "http://127.0.0.1:1"})

	var calls atomic.Int64
	c.GetCatalog(geodata.CatalogRequest{}, func(resp client.Response[model.Catalog]) {
		calls.Add(1)
	})

	if err := c.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	sched.RunAll()
	if n := calls.Load(); n != 1 {
		t.Fatalf("callback fired %d times after Close, want 1", n)
	}
}
