//go:build linux
// +build linux

package wiphy_test

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/mdlayher/wiphy"
)

func TestIntegrationLinuxConcurrent(t *testing.T) {
	const (
		workers    = 4
		iterations = 100
	)

	c := testClient(t)
	phys, err := c.PHYs()
	if err != nil {
		t.Fatalf("failed to retrieve PHYs: %v", err)
	}
	if len(phys) == 0 {
		t.Skip("skipping, found no wireless PHYs")
	}

	var names []string
	for _, p := range phys {
		names = append(names, p.Name())
	}

	t.Logf("workers: %d, iterations: %d, PHYs: %v",
		workers, iterations, names)

	var wg sync.WaitGroup
	wg.Add(workers)
	defer wg.Wait()

	for i := 0; i < workers; i++ {
		go func(differentI int) {
			defer wg.Done()
			execN(t, iterations, names, differentI)
		}(i)
	}
}

func execN(t *testing.T, n int, expect []string, workerID int) {
	c := testClient(t)

	// Each worker keeps a single Registry, so every iteration after the
	// first updates existing PHYs.
	r := wiphy.NewRegistry(nil)

	names := make(map[string]int)
	for i := 0; i < n; i++ {
		if err := c.Dump(r); err != nil {
			panicf("[worker_id %d; iteration %d] failed to dump PHYs: %v", workerID, i, err)
		}

		for _, p := range r.PHYs() {
			if err := c.Refresh(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				panicf("[worker_id %d; iteration %d] failed to refresh %s: %v", workerID, i, p.Name(), err)
			}

			names[p.Name()]++
		}
	}

	if errs := r.Errors(); len(errs) > 0 {
		panicf("[worker_id %d] skipped %d messages, first: %v", workerID, len(errs), errs[0])
	}

	for _, e := range expect {
		nn, ok := names[e]
		if !ok {
			panicf("[worker_id %d] did not find PHY %q during test", workerID, e)
		}
		if nn != n {
			panicf("[worker_id %d] wanted to find %q %d times, found %d", workerID, e, n, nn)
		}
	}
}

func testClient(t *testing.T) *wiphy.Client {
	t.Helper()

	c, err := wiphy.New()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.Skipf("skipping, nl80211 not found: %v", err)
		}

		t.Fatalf("failed to create client: %v", err)
	}

	t.Cleanup(func() { _ = c.Close() })
	return c
}

func panicf(format string, a ...interface{}) {
	panic(fmt.Sprintf(format, a...))
}
