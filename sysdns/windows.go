//go:build windows

package sysdns

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/netip"

	"golang.org/x/sys/windows/registry"
)

const (
	tcpipInterfacesPath  = `SYSTEM\CurrentControlSet\Services\Tcpip\Parameters\Interfaces`
	tcpip6InterfacesPath = `SYSTEM\CurrentControlSet\Services\Tcpip6\Parameters\Interfaces`

	interfaceConfigNameServer     = "NameServer"
	interfaceConfigDhcpNameServer = "DhcpNameServer"
)

// registrySource reads DNS servers from the per-interface TCP/IP parameters
// in the Windows registry. Interface enumeration order is not a priority
// order; the result is unordered but deterministic per call.
type registrySource struct{}

// Name returns the source name
func (r *registrySource) Name() string {
	return "windows-registry"
}

// Servers returns the DNS servers configured on every interface, IPv4 stack
// first. Per interface, a static NameServer value wins over the
// DHCP-assigned servers.
func (r *registrySource) Servers(_ context.Context) ([]netip.Addr, error) {
	var servers []netip.Addr

	for _, root := range []string{tcpipInterfacesPath, tcpip6InterfacesPath} {
		addrs, err := interfaceServers(root)
		if err != nil {
			if errors.Is(err, registry.ErrNotExist) {
				continue
			}
			return nil, err
		}
		servers = append(servers, addrs...)
	}

	return servers, nil
}

// interfaceServers collects DNS servers from every interface subkey under root
func interfaceServers(root string) ([]netip.Addr, error) {
	rootKey, err := registry.OpenKey(registry.LOCAL_MACHINE, root, registry.READ)
	if err != nil {
		return nil, fmt.Errorf(`open HKEY_LOCAL_MACHINE\%s: %w`, root, err)
	}
	defer closeKey(rootKey)

	guids, err := rootKey.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("enumerate interfaces: %w", err)
	}

	var servers []netip.Addr
	for _, guid := range guids {
		ifaceKey, err := registry.OpenKey(registry.LOCAL_MACHINE, root+`\`+guid, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		servers = append(servers, interfaceNameServers(ifaceKey)...)
		closeKey(ifaceKey)
	}

	return servers, nil
}

// interfaceNameServers reads the DNS servers configured on one interface
func interfaceNameServers(ifaceKey registry.Key) []netip.Addr {
	// Try to get static DNS first, fall back to DHCP DNS
	for _, value := range []string{interfaceConfigNameServer, interfaceConfigDhcpNameServer} {
		serverList, _, err := ifaceKey.GetStringValue(value)
		if err == nil && serverList != "" {
			return parseServerList(serverList)
		}
	}

	return nil
}

// closeKey closes a registry key and logs errors
func closeKey(closer io.Closer) {
	if err := closer.Close(); err != nil {
		fmt.Printf("warning: failed to close registry key: %v\n", err)
	}
}

// detectSource returns the Windows source
func detectSource(_ context.Context) Source {
	return &registrySource{}
}
