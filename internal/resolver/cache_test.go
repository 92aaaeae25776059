// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"slices"
	"sync"
	"testing"
)

func TestCache_PutOnce(t *testing.T) {
	t.Parallel()

	c := NewCache()
	first := &fakeHandle{path: "first"}
	second := &fakeHandle{path: "second"}

	if !c.Put("Models", first) {
		t.Fatal("first Put() should insert")
	}
	if c.Put("Models", second) {
		t.Error("second Put() should not insert")
	}
	got, ok := c.Get("Models")
	if !ok || got != first {
		t.Errorf("Get() = %v, %v; want the first handle", got, ok)
	}
	if _, ok := c.Get("Other"); ok {
		t.Error("Get() of an unknown name should miss")
	}
}

func TestCache_NamesSorted(t *testing.T) {
	t.Parallel()

	c := NewCache()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		c.Put(name, &fakeHandle{path: name})
	}
	if got, want := c.Names(), []string{"Alpha", "Mid", "Zeta"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCache_ConcurrentPut(t *testing.T) {
	t.Parallel()

	c := NewCache()
	var wg sync.WaitGroup
	inserted := make(chan bool, 16)
	for range 16 {
		wg.Go(func() {
			inserted <- c.Put("Models", &fakeHandle{path: "x"})
		})
	}
	wg.Wait()
	close(inserted)

	wins := 0
	for ok := range inserted {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d goroutines inserted, want exactly 1", wins)
	}
}
