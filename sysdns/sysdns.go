// Package sysdns reads the DNS server addresses configured on the host
// operating system. Each query is a fresh snapshot of whatever the host's
// authoritative configuration store reports; nothing is cached and nothing
// is written.
package sysdns

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/fosrl/newt/logger"
)

// ErrConfigUnavailable indicates that the host's DNS configuration store
// could not be reached (service not running, permission denied, platform
// not supported). It is distinct from an empty server list, which is a
// normal condition for a host with no network configured.
var ErrConfigUnavailable = errors.New("system DNS configuration unavailable")

// defaultQueryTimeout bounds a query when the caller's context carries no
// deadline of its own.
const defaultQueryTimeout = 5 * time.Second

// Source reads DNS server addresses from one host configuration store
type Source interface {
	// Name returns the name of this source implementation
	Name() string

	// Servers returns the DNS servers currently configured in this store,
	// in the store's reported priority order
	Servers(ctx context.Context) ([]netip.Addr, error)
}

// Get returns the DNS server addresses currently configured on the host,
// highest priority first where the platform reports an order. Duplicates
// are dropped without reordering first occurrences. The returned slice is
// never nil; an empty slice means no DNS servers are configured.
//
// Errors wrap ErrConfigUnavailable when the configuration store itself
// cannot be read. Callers that prefer the soft contract should use
// SystemDNSServers instead.
func Get(ctx context.Context) ([]string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultQueryTimeout)
		defer cancel()
	}

	source := detectSource(ctx)

	servers, err := source.Servers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigUnavailable, source.Name(), err)
	}

	return addrStrings(dedupe(servers)), nil
}

// SystemDNSServers is the fail-soft form of Get: a host whose configuration
// store cannot be read is treated the same as a host with no DNS servers
// configured. The result is never nil.
func SystemDNSServers(ctx context.Context) []string {
	servers, err := Get(ctx)
	if err != nil {
		logger.Debug("System DNS query failed: %v", err)
		return []string{}
	}
	return servers
}
