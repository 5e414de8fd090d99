package sysdns

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/netip"

	"github.com/miekg/dns"
)

const (
	defaultResolvConfPath  = "/etc/resolv.conf"
	resolvedResolvConfPath = "/run/systemd/resolve/resolv.conf"
)

// fileSource reads DNS servers from a resolv.conf style file.
type fileSource struct {
	path string
}

func newFileSource(path string) *fileSource {
	if path == "" {
		path = defaultResolvConfPath
	}
	return &fileSource{path: path}
}

// Name returns the source name
func (f *fileSource) Name() string {
	return "resolv.conf"
}

// Servers returns the nameserver entries of the file in declaration order.
// A missing file means no DNS is configured, not a failure.
func (f *fileSource) Servers(_ context.Context) ([]netip.Addr, error) {
	config, err := dns.ClientConfigFromFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var servers []netip.Addr
	for _, entry := range config.Servers {
		if addr, ok := parseAddr(entry); ok {
			servers = append(servers, addr)
		}
	}

	return servers, nil
}
