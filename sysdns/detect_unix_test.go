//go:build (linux && !android) || freebsd

package sysdns

import (
	"path/filepath"
	"testing"
)

func TestDetectManagerFromFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected DNSManagerType
	}{
		{
			name: "systemd-resolved header",
			content: `# This is /run/systemd/resolve/stub-resolv.conf managed by man:systemd-resolved(8).
# Do not edit.
nameserver 127.0.0.53
`,
			expected: SystemdResolvedManager,
		},
		{
			name: "NetworkManager header",
			content: `# Generated by NetworkManager
nameserver 192.168.1.1
`,
			expected: NetworkManagerManager,
		},
		{
			name: "resolvconf header",
			content: `# Dynamic resolv.conf(5) file for glibc resolver(3) generated by resolvconf(8)
nameserver 10.0.0.1
`,
			expected: ResolvconfManager,
		},
		{
			name: "plain file with no comments",
			content: `nameserver 8.8.8.8
`,
			expected: FileManager,
		},
		{
			name: "unrelated comment then content",
			content: `# my hand written config
nameserver 8.8.8.8
`,
			expected: FileManager,
		},
		{
			name:     "empty file",
			content:  "",
			expected: FileManager,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeResolvConf(t, tt.content)
			if got := detectManagerFromFile(path); got != tt.expected {
				t.Errorf("detectManagerFromFile = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDetectManagerFromMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	if got := detectManagerFromFile(path); got != UnknownManager {
		t.Errorf("detectManagerFromFile on missing file = %s, want %s", got, UnknownManager)
	}
}

func TestDNSManagerTypeString(t *testing.T) {
	tests := []struct {
		manager  DNSManagerType
		expected string
	}{
		{SystemdResolvedManager, "systemd-resolved"},
		{NetworkManagerManager, "NetworkManager"},
		{ResolvconfManager, "resolvconf"},
		{FileManager, "file"},
		{UnknownManager, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.manager.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, want %q", tt.manager, got, tt.expected)
		}
	}
}
