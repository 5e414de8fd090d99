//go:build ios || android || (!darwin && !linux && !freebsd && !windows)

package sysdns

import (
	"context"
	"fmt"
	"net/netip"
	"runtime"
)

// unavailableSource is the placeholder for platforms without a supported
// DNS configuration store.
type unavailableSource struct{}

// Name returns the source name
func (u unavailableSource) Name() string {
	return runtime.GOOS
}

// Servers always fails; Get surfaces this as ErrConfigUnavailable and
// SystemDNSServers degrades it to an empty list.
func (u unavailableSource) Servers(_ context.Context) ([]netip.Addr, error) {
	return nil, fmt.Errorf("not implemented on %s", runtime.GOOS)
}

// detectSource returns the placeholder source
func detectSource(_ context.Context) Source {
	return unavailableSource{}
}
