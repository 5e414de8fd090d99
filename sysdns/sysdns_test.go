package sysdns

import (
	"context"
	"net/netip"
	"sync"
	"testing"
	"time"
)

func TestSystemDNSServersNeverNil(t *testing.T) {
	servers := SystemDNSServers(context.Background())
	if servers == nil {
		t.Fatal("SystemDNSServers returned nil, want empty slice at minimum")
	}
}

func TestSystemDNSServersAreValidAddresses(t *testing.T) {
	servers := SystemDNSServers(context.Background())

	seen := make(map[string]struct{}, len(servers))
	for i, server := range servers {
		if _, err := netip.ParseAddr(server); err != nil {
			t.Errorf("server[%d] = %q is not a valid IP address: %v", i, server, err)
		}
		if _, ok := seen[server]; ok {
			t.Errorf("server[%d] = %q appears more than once", i, server)
		}
		seen[server] = struct{}{}
	}
}

func TestGetRespectsDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Get(ctx)
	}()

	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("Get did not complete within its deadline")
	}
}

func TestConcurrentQueries(t *testing.T) {
	const callers = 8

	var wg sync.WaitGroup
	results := make([][]string, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = SystemDNSServers(context.Background())
		}(i)
	}
	wg.Wait()

	for i, servers := range results {
		if servers == nil {
			t.Errorf("caller %d received nil result", i)
		}
	}
}
