// Package privacy keeps personally identifiable information out of logs.
// Patient records carry social security numbers and request logs carry
// client addresses; neither may appear verbatim in log output.
package privacy

import (
	"fmt"
	"net"
	"strings"
)

// MaskSSN hides the individual part of a social security number, keeping
// the leading date part so log lines stay correlatable. "090786-122X"
// becomes "090786-****". Values without a separator are masked entirely.
func MaskSSN(ssn string) string {
	if ssn == "" {
		return ""
	}
	idx := strings.IndexAny(ssn, "-+A")
	if idx < 0 {
		return strings.Repeat("*", len(ssn))
	}
	return ssn[:idx+1] + strings.Repeat("*", len(ssn)-idx-1)
}

// AnonymizeIP truncates an address to its network prefix before logging.
// IPv4 addresses lose the last octet (a /24 mask), IPv6 addresses keep
// only the /48 prefix. A port suffix is stripped first.
//
// Returns "invalid" for unparseable addresses and "unknown" for empty input.
func AnonymizeIP(addr string) string {
	if addr == "" || addr == "unknown" {
		return "unknown"
	}

	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	parsed := net.ParseIP(addr)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}
