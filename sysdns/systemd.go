//go:build (linux && !android) || freebsd

package sysdns

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	dbus "github.com/godbus/dbus/v5"
)

const (
	resolvedDest           = "org.freedesktop.resolve1"
	resolvedDbusObjectNode = "/org/freedesktop/resolve1"
	resolvedManagerIface   = "org.freedesktop.resolve1.Manager"
	resolvedDNSMember      = "DNS"

	dbusPeerPingMethod       = "org.freedesktop.DBus.Peer.Ping"
	dbusPropertiesGetMethod  = "org.freedesktop.DBus.Properties.Get"
	availabilityProbeTimeout = 2 * time.Second
)

// resolvedStubAddr is the local stub listener systemd-resolved places in
// resolv.conf; it is never a configured upstream.
var resolvedStubAddr = netip.MustParseAddr("127.0.0.53")

// resolvedDNSEntry maps to one (iiay) element of the Manager DNS property
type resolvedDNSEntry struct {
	IfIndex int32
	Family  int32
	Address []byte
}

// getProperty reads a D-Bus property under the query context. godbus's
// GetProperty issues a call with no deadline, so a hung service would block
// the caller past any deadline; Properties.Get through CallWithContext does
// not.
func getProperty(ctx context.Context, obj dbus.BusObject, iface, member string) (dbus.Variant, error) {
	var variant dbus.Variant
	if err := obj.CallWithContext(ctx, dbusPropertiesGetMethod, 0, iface, member).Store(&variant); err != nil {
		return dbus.Variant{}, err
	}
	return variant, nil
}

// resolvedSource reads DNS servers from systemd-resolved over D-Bus
type resolvedSource struct{}

// Name returns the source name
func (s *resolvedSource) Name() string {
	return "systemd-resolved"
}

// Servers returns the DNS servers known to systemd-resolved: global entries
// first, then per-link entries in reported order. When the D-Bus property is
// empty the upstreams are read from resolved's own resolv.conf instead.
func (s *resolvedSource) Servers(ctx context.Context) ([]netip.Addr, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect to system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(resolvedDest, resolvedDbusObjectNode)

	variant, err := getProperty(ctx, obj, resolvedManagerIface, resolvedDNSMember)
	if err != nil {
		return nil, fmt.Errorf("get DNS property: %w", err)
	}

	var entries []resolvedDNSEntry
	if err := variant.Store(&entries); err != nil {
		return nil, fmt.Errorf("decode DNS property: %w", err)
	}

	servers := resolvedServersFromEntries(entries)

	if len(servers) == 0 {
		// resolved materializes its upstreams in its own resolv.conf even
		// when nothing is configured over D-Bus
		return newFileSource(resolvedResolvConfPath).Servers(ctx)
	}

	return servers, nil
}

// resolvedServersFromEntries converts Manager DNS property entries to
// addresses. Global entries (ifindex 0) apply to all lookups and take
// priority over per-link entries; the 127.0.0.53 stub is resolved itself,
// never an upstream.
func resolvedServersFromEntries(entries []resolvedDNSEntry) []netip.Addr {
	servers := make([]netip.Addr, 0, len(entries))

	for _, wantGlobal := range []bool{true, false} {
		for _, entry := range entries {
			if (entry.IfIndex == 0) != wantGlobal {
				continue
			}
			addr, ok := netip.AddrFromSlice(entry.Address)
			if !ok || addr == resolvedStubAddr {
				continue
			}
			servers = append(servers, addr)
		}
	}

	return servers
}

// isSystemdResolvedAvailable checks if systemd-resolved is available and responsive
func isSystemdResolvedAvailable(ctx context.Context) bool {
	conn, err := dbus.SystemBus()
	if err != nil {
		return false
	}
	defer conn.Close()

	obj := conn.Object(resolvedDest, resolvedDbusObjectNode)

	ctx, cancel := context.WithTimeout(ctx, availabilityProbeTimeout)
	defer cancel()

	// Try to ping systemd-resolved
	if err := obj.CallWithContext(ctx, dbusPeerPingMethod, 0).Store(); err != nil {
		return false
	}

	return true
}
