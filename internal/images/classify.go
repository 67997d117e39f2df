package images

import (
	"net/url"
	"strings"
)

// IsValidImageURL reports whether rawURL looks like a real product image on an
// allowed marketplace host. It fails closed on anything that does not parse.
func (r *Rules) IsValidImageURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}

	if !containsAny(host, r.Domains) {
		return false
	}

	path := strings.ToLower(u.Path)
	if !containsAny(path, lowerAll(r.Extensions)) {
		return false
	}

	return !containsAny(strings.ToLower(rawURL), lowerAll(r.Exclude))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
