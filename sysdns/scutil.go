package sysdns

import (
	"bufio"
	"bytes"
	"net/netip"
	"strings"
)

const (
	scutilKeyServerAddresses  = "ServerAddresses"
	scutilKeyPrimaryService   = "PrimaryService"
	scutilServerArrayHeader   = scutilKeyServerAddresses + " : <array> {"
	scutilNoSuchKeyIndication = "No such key"
)

// parseScutilPrimaryService extracts the primary service identifier from the
// output of `show State:/Network/Global/IPv4`. Returns "" when the host has
// no primary service, which is the case with no active network.
func parseScutilPrimaryService(output []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, scutilKeyPrimaryService) {
			parts := strings.Split(line, ":")
			if len(parts) >= 2 {
				return strings.TrimSpace(parts[1])
			}
		}
	}

	return ""
}

// parseScutilServerAddresses extracts DNS server addresses from the output
// of `show State:/Network/Service/<id>/DNS`, preserving array order.
func parseScutilServerAddresses(output []byte) []netip.Addr {
	var servers []netip.Addr
	inServerArray := false

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, scutilServerArrayHeader) {
			inServerArray = true
			continue
		}

		if line == "}" {
			inServerArray = false
			continue
		}

		if inServerArray {
			// Line format: "0 : 8.8.8.8"
			parts := strings.Split(line, " : ")
			if len(parts) >= 2 {
				if addr, err := netip.ParseAddr(parts[1]); err == nil {
					servers = append(servers, addr)
				}
			}
		}
	}

	return servers
}

// scutilReportsNoKey reports whether scutil answered "No such key", which it
// does for services that carry no DNS dictionary.
func scutilReportsNoKey(output []byte) bool {
	return bytes.Contains(output, []byte(scutilNoSuchKeyIndication))
}
