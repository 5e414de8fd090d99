//go:build (linux && !android) || freebsd

package sysdns

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/fosrl/newt/logger"
	dbus "github.com/godbus/dbus/v5"
)

const (
	networkManagerDest                     = "org.freedesktop.NetworkManager"
	networkManagerDbusObjectNode           = "/org/freedesktop/NetworkManager"
	networkManagerDbusDNSManagerInterface  = networkManagerDest + ".DnsManager"
	networkManagerDbusDNSManagerObjectNode = networkManagerDbusObjectNode + "/DnsManager"
	networkManagerDNSManagerModeMember     = "Mode"
	networkManagerDNSManagerConfMember     = "Configuration"
	networkManagerNameserversKey           = "nameservers"
)

// networkManagerSource reads DNS servers from NetworkManager's DnsManager
// over D-Bus. The Configuration property lists per-connection resolver
// configurations already sorted by NetworkManager's DNS priority.
type networkManagerSource struct{}

// Name returns the source name
func (n *networkManagerSource) Name() string {
	return "networkmanager-dbus"
}

// Servers returns the nameservers of all active connections in NetworkManager's
// priority order.
func (n *networkManagerSource) Servers(ctx context.Context) ([]netip.Addr, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect to system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(networkManagerDest, networkManagerDbusDNSManagerObjectNode)

	variant, err := getProperty(ctx, obj, networkManagerDbusDNSManagerInterface, networkManagerDNSManagerConfMember)
	if err != nil {
		return nil, fmt.Errorf("get DNS configuration property: %w", err)
	}

	var configs []map[string]dbus.Variant
	if err := variant.Store(&configs); err != nil {
		return nil, fmt.Errorf("decode DNS configuration property: %w", err)
	}

	return nameserversFromConfigs(configs), nil
}

// nameserversFromConfigs extracts nameserver addresses from DnsManager
// configuration dicts, preserving NetworkManager's reported order and
// dropping entries without a nameservers key or with malformed addresses.
func nameserversFromConfigs(configs []map[string]dbus.Variant) []netip.Addr {
	var servers []netip.Addr

	for _, config := range configs {
		nsVariant, ok := config[networkManagerNameserversKey]
		if !ok {
			continue
		}

		nameservers, ok := nsVariant.Value().([]string)
		if !ok {
			continue
		}

		for _, nameserver := range nameservers {
			if addr, ok := parseAddr(nameserver); ok {
				servers = append(servers, addr)
			}
		}
	}

	return servers
}

// isNetworkManagerAvailable checks if NetworkManager is available and responsive
func isNetworkManagerAvailable(ctx context.Context) bool {
	conn, err := dbus.SystemBus()
	if err != nil {
		return false
	}
	defer conn.Close()

	obj := conn.Object(networkManagerDest, networkManagerDbusObjectNode)

	ctx, cancel := context.WithTimeout(ctx, availabilityProbeTimeout)
	defer cancel()

	// Try to ping NetworkManager
	if err := obj.CallWithContext(ctx, dbusPeerPingMethod, 0).Store(); err != nil {
		logger.Debug("NetworkManager ping failed: %v", err)
		return false
	}

	return true
}

// networkManagerDNSMode returns the current DNS mode of NetworkManager
func networkManagerDNSMode(ctx context.Context) (string, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return "", fmt.Errorf("connect to system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(networkManagerDest, networkManagerDbusDNSManagerObjectNode)

	modeVariant, err := getProperty(ctx, obj, networkManagerDbusDNSManagerInterface, networkManagerDNSManagerModeMember)
	if err != nil {
		return "", fmt.Errorf("get DNS mode property: %w", err)
	}

	mode, ok := modeVariant.Value().(string)
	if !ok {
		return "", fmt.Errorf("DNS mode is not a string")
	}

	return mode, nil
}

// networkManagerDelegatesToResolved reports whether NetworkManager hands its
// DNS configuration to systemd-resolved, in which case resolved is the
// authoritative store to query.
func networkManagerDelegatesToResolved(ctx context.Context) bool {
	mode, err := networkManagerDNSMode(ctx)
	if err != nil {
		return false
	}
	return mode == "systemd-resolved"
}
