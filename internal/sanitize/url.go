package sanitize

import (
	"net/url"
	"strings"
)

// RepairURL validates a URL-shaped field and repairs it deterministically
// where possible: a missing scheme defaults to https, scheme and host are
// lowercased. The second return value is false when the value is
// unrepairable and must be cleared rather than propagated.
//
// An empty input is valid: the field stays explicitly empty.
func RepairURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}

	parsed, err := parsePreserveHost(raw)
	if err != nil {
		return "", false
	}

	if parsed.Scheme == "" {
		parsed.Scheme = "https"
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}

	host := strings.ToLower(parsed.Host)
	if host == "" || !validHost(host) {
		return "", false
	}
	parsed.Host = host

	return parsed.String(), true
}

// parsePreserveHost parses raw so that schemeless inputs like
// "example.com/hotel" keep their host instead of becoming a relative path.
func parsePreserveHost(raw string) (*url.URL, error) {
	if strings.Contains(raw, "://") {
		return url.Parse(raw)
	}
	if strings.HasPrefix(raw, "//") {
		return url.Parse("https:" + raw)
	}
	return url.Parse("https://" + raw)
}

// validHost requires a dot-separated name or localhost; single opaque
// tokens ("hotel", "N/A") are hallucination markers, not hosts.
func validHost(host string) bool {
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}
	if host == "localhost" {
		return true
	}
	if !strings.Contains(host, ".") {
		return false
	}
	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	for _, r := range host {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '-' {
			continue
		}
		return false
	}
	return true
}
