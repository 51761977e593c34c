package memory_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/minff/geodata/cache/memory"
)

func TestCache_PutGetRemove(t *testing.T) {
	c := memory.New()

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get returned ok for a missing key")
	}

	if err := c.Put("k", []byte("v")); err != nil {
		t.Fatalf("unexpected Put error: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get = (%q, %v), want (v, true)", got, ok)
	}

	if !c.Remove("k") {
		t.Fatal("Remove returned false for a present key")
	}
	if c.Remove("k") {
		t.Fatal("Remove returned true for an absent key")
	}
}

func TestCache_FIFOEviction(t *testing.T) {
	c := memory.New(memory.WithMaxEntries(2))

	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Put("c", []byte("3"))

	if _, ok := c.Get("a"); ok {
		t.Fatal("oldest entry not evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("entry b evicted too early")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := memory.New()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n))
			for range 100 {
				c.Put(key, []byte{byte(n)})
				c.Get(key)
				c.Remove(key)
			}
		}(i)
	}
	wg.Wait()
}
