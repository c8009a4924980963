// Package device summarizes user-agent strings for audit attribution.
package device

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent turns a raw User-Agent header into a short human-readable
// summary such as "Chrome 120 on macOS". Unknown agents still produce a
// non-empty string.
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(ua)
	browser, version := parsed.Browser()
	os := parsed.OSInfo().Name

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}

	major := version
	if i := strings.Index(version, "."); i > 0 {
		major = version[:i]
	}

	if major == "" {
		return strings.TrimSpace(fmt.Sprintf("%s on %s", browser, os))
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s on %s", browser, major, os))
}
