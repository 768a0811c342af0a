package records

import (
	"net/url"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// RegisteredDomain extracts the registrable domain of a profile URL so
// dossier views can group profiles by site.
// e.g. "https://social.example.co.uk/u/jdoe" -> "example.co.uk", true
func RegisteredDomain(profileURL string) (string, bool) {
	s := strings.TrimSpace(profileURL)
	if s == "" {
		return "", false
	}

	// Bare hosts without a scheme confuse url.Parse; prepend one.
	if !strings.Contains(s, "://") && strings.Contains(s, ".") {
		s = "https://" + s
	}

	host := s
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		host = u.Hostname()
	} else {
		host = strings.Split(host, "/")[0]
		host = strings.Split(host, ":")[0]
	}

	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if !strings.Contains(host, ".") {
		return "", false
	}

	domain, err := publicsuffix.Domain(host)
	if err != nil {
		return "", false
	}
	return domain, true
}
