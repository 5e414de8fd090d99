package sysdns

import "testing"

const scutilGlobalIPv4Output = `<dictionary> {
  PrimaryInterface : en0
  PrimaryService : 7C3A4B6E-1234-5678-9ABC-DEF012345678
  Router : 192.168.1.1
}
`

const scutilServiceDNSOutput = `<dictionary> {
  DomainName : example.lan
  ServerAddresses : <array> {
    0 : 8.8.8.8
    1 : 1.1.1.1
  }
}
`

const scutilServiceDNSOutputV6 = `<dictionary> {
  ServerAddresses : <array> {
    0 : 2606:4700:4700::1111
    1 : 192.168.1.1
  }
}
`

const scutilNoSuchKeyOutput = `  No such key
`

func TestParseScutilPrimaryService(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{
			name:     "primary service present",
			output:   scutilGlobalIPv4Output,
			expected: "7C3A4B6E-1234-5678-9ABC-DEF012345678",
		},
		{
			name:     "no primary service",
			output:   "<dictionary> {\n  Router : 192.168.1.1\n}\n",
			expected: "",
		},
		{
			name:     "empty output",
			output:   "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceID := parseScutilPrimaryService([]byte(tt.output))
			if serviceID != tt.expected {
				t.Errorf("parseScutilPrimaryService = %q, want %q", serviceID, tt.expected)
			}
		})
	}
}

func TestParseScutilServerAddresses(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []string
	}{
		{
			name:     "ordered IPv4 servers",
			output:   scutilServiceDNSOutput,
			expected: []string{"8.8.8.8", "1.1.1.1"},
		},
		{
			name:     "mixed IPv6 and IPv4",
			output:   scutilServiceDNSOutputV6,
			expected: []string{"2606:4700:4700::1111", "192.168.1.1"},
		},
		{
			name:     "no server array",
			output:   "<dictionary> {\n  DomainName : example.lan\n}\n",
			expected: nil,
		},
		{
			name:     "no such key answer",
			output:   scutilNoSuchKeyOutput,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			servers := parseScutilServerAddresses([]byte(tt.output))
			assertAddrs(t, servers, tt.expected)
		})
	}
}

func TestScutilReportsNoKey(t *testing.T) {
	if !scutilReportsNoKey([]byte(scutilNoSuchKeyOutput)) {
		t.Error("expected no-such-key output to be recognized")
	}
	if scutilReportsNoKey([]byte(scutilServiceDNSOutput)) {
		t.Error("DNS dictionary output misread as no-such-key")
	}
}
