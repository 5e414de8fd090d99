//go:build (linux && !android) || freebsd

package sysdns

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/fosrl/newt/logger"
)

// DNSManagerType represents the type of DNS manager detected
type DNSManagerType int

const (
	// UnknownManager indicates we couldn't determine the DNS manager
	UnknownManager DNSManagerType = iota
	// SystemdResolvedManager indicates systemd-resolved is managing DNS
	SystemdResolvedManager
	// NetworkManagerManager indicates NetworkManager is managing DNS
	NetworkManagerManager
	// ResolvconfManager indicates resolvconf is managing DNS
	ResolvconfManager
	// FileManager indicates direct file management (no DNS manager)
	FileManager
)

// String returns a human-readable name for the DNS manager type
func (d DNSManagerType) String() string {
	switch d {
	case SystemdResolvedManager:
		return "systemd-resolved"
	case NetworkManagerManager:
		return "NetworkManager"
	case ResolvconfManager:
		return "resolvconf"
	case FileManager:
		return "file"
	default:
		return "unknown"
	}
}

// detectManagerFromFile reads a resolv.conf file to determine which DNS
// manager maintains it, based on the signature comments managers leave in
// the file header.
func detectManagerFromFile(path string) DNSManagerType {
	file, err := os.Open(path)
	if err != nil {
		return UnknownManager
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		text := scanner.Text()
		if len(text) == 0 {
			continue
		}

		// If we hit a non-comment line, default to file-based
		if text[0] != '#' {
			return FileManager
		}

		// Check for DNS manager signatures in comments
		if strings.Contains(text, "NetworkManager") {
			return NetworkManagerManager
		}

		if strings.Contains(text, "systemd-resolved") {
			return SystemdResolvedManager
		}

		if strings.Contains(text, "resolvconf") {
			return ResolvconfManager
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return UnknownManager
	}

	// No indicators found, assume file-based management
	return FileManager
}

// detectSource combines file detection with runtime availability checks to
// pick the authoritative store to query. When a hinted manager turns out not
// to be running, the query falls back to reading resolv.conf directly.
func detectSource(ctx context.Context) Source {
	fileHint := detectManagerFromFile(defaultResolvConfPath)

	switch fileHint {
	case SystemdResolvedManager:
		if isSystemdResolvedAvailable(ctx) {
			return &resolvedSource{}
		}
		logger.Warn("Found systemd-resolved hint but it is not running, falling back to resolv.conf")
		return newFileSource("")

	case NetworkManagerManager:
		if isNetworkManagerAvailable(ctx) {
			// NetworkManager may delegate DNS to systemd-resolved, in which
			// case resolved holds the authoritative configuration
			if networkManagerDelegatesToResolved(ctx) && isSystemdResolvedAvailable(ctx) {
				return &resolvedSource{}
			}
			return &networkManagerSource{}
		}
		logger.Warn("Found NetworkManager hint but it is not running, falling back to resolv.conf")
		return newFileSource("")

	case ResolvconfManager:
		// resolvconf materializes the merged configuration in resolv.conf
		// itself, so the file is the store to read
		return newFileSource("")

	case FileManager:
		return newFileSource("")

	default:
		// No readable resolv.conf; probe for a running manager before
		// giving up on the file
		if isSystemdResolvedAvailable(ctx) {
			return &resolvedSource{}
		}
		if isNetworkManagerAvailable(ctx) {
			return &networkManagerSource{}
		}
		return newFileSource("")
	}
}
