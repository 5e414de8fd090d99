package sysdns

import "net/netip"

// parseAddr parses a single DNS server entry. Entries are usually bare IP
// addresses, but some stores report ip:port or [ipv6]:port forms; the port
// is discarded. IPv6 zone suffixes are preserved.
func parseAddr(entry string) (netip.Addr, bool) {
	if addr, err := netip.ParseAddr(entry); err == nil {
		return addr, true
	}
	if addrPort, err := netip.ParseAddrPort(entry); err == nil {
		return addrPort.Addr(), true
	}
	return netip.Addr{}, false
}

// parseServerList parses a comma or space separated list of DNS server
// entries, dropping anything that is not a syntactically valid address.
func parseServerList(serverList string) []netip.Addr {
	var servers []netip.Addr

	for _, part := range splitByDelimiters(serverList, []rune{',', ' '}) {
		if addr, ok := parseAddr(part); ok {
			servers = append(servers, addr)
		}
	}

	return servers
}

// dedupe removes duplicate addresses, keeping the first occurrence of each
// so that the store's priority order is preserved.
func dedupe(servers []netip.Addr) []netip.Addr {
	if len(servers) < 2 {
		return servers
	}

	seen := make(map[netip.Addr]struct{}, len(servers))
	result := servers[:0]
	for _, server := range servers {
		if _, ok := seen[server]; ok {
			continue
		}
		seen[server] = struct{}{}
		result = append(result, server)
	}

	return result
}

// addrStrings converts addresses to their string form. The result is never
// nil, even for an empty input.
func addrStrings(servers []netip.Addr) []string {
	result := make([]string, 0, len(servers))
	for _, server := range servers {
		result = append(result, server.String())
	}
	return result
}

// splitByDelimiters splits a string by multiple delimiters
func splitByDelimiters(s string, delimiters []rune) []string {
	var result []string
	var current []rune

	for _, char := range s {
		isDelimiter := false
		for _, delim := range delimiters {
			if char == delim {
				isDelimiter = true
				break
			}
		}

		if isDelimiter {
			if len(current) > 0 {
				result = append(result, string(current))
				current = []rune{}
			}
		} else {
			current = append(current, char)
		}
	}

	if len(current) > 0 {
		result = append(result, string(current))
	}

	return result
}
