package gallery

import (
	"net/url"
	"strings"
)

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// NormalizeLink prepares a user-entered external link for storage. Links with
// a recognised scheme pass through as-is, bare host names get https://
// prepended, anything unparseable is rejected. Empty input clears the link.
func NormalizeLink(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &ValidationError{Field: "link", Message: "not a valid link"}
	}
	if parsed.Scheme != "" {
		if !allowedSchemes[parsed.Scheme] {
			return "", &ValidationError{Field: "link", Message: "unsupported link scheme " + parsed.Scheme}
		}
		return raw, nil
	}
	return "https://" + raw, nil
}
