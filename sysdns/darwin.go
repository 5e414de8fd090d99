//go:build darwin && !ios

package sysdns

import (
	"context"
	"fmt"
	"net/netip"
	"os/exec"
	"strings"
)

const (
	scutilPath = "/usr/sbin/scutil"

	globalIPv4State    = "State:/Network/Global/IPv4"
	serviceDNSStateFmt = "State:/Network/Service/%s/DNS"
)

// scutilSource reads DNS servers from the macOS dynamic store via scutil,
// following the primary network service.
type scutilSource struct{}

// Name returns the source name
func (s *scutilSource) Name() string {
	return "darwin-scutil"
}

// Servers returns the DNS servers of the primary network service. A host
// with no primary service (no active network) yields an empty list.
func (s *scutilSource) Servers(ctx context.Context) ([]netip.Addr, error) {
	output, err := s.runScutil(ctx, fmt.Sprintf("show %s\n", globalIPv4State))
	if err != nil {
		return nil, fmt.Errorf("run scutil: %w", err)
	}

	serviceID := parseScutilPrimaryService(output)
	if serviceID == "" {
		return nil, nil
	}

	dnsKey := fmt.Sprintf(serviceDNSStateFmt, serviceID)
	output, err = s.runScutil(ctx, fmt.Sprintf("show %s\n", dnsKey))
	if err != nil {
		return nil, fmt.Errorf("run scutil: %w", err)
	}

	if scutilReportsNoKey(output) {
		// Primary service exists but carries no DNS dictionary
		return nil, nil
	}

	return parseScutilServerAddresses(output), nil
}

// runScutil executes an scutil command under the query context
func (s *scutilSource) runScutil(ctx context.Context, commands string) ([]byte, error) {
	// Wrap commands with open/quit
	wrapped := fmt.Sprintf("open\n%squit\n", commands)

	cmd := exec.CommandContext(ctx, scutilPath)
	cmd.Stdin = strings.NewReader(wrapped)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("scutil command failed: %w, output: %s", err, output)
	}

	return output, nil
}

// detectSource returns the macOS source
func detectSource(_ context.Context) Source {
	return &scutilSource{}
}
