// Package util holds small shared helpers.
package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds a proxy selection function for an http.Transport.
// Explicitly configured proxy URLs take precedence over the standard
// environment variables; hosts listed in noProxy (comma separated, matched
// exactly or as a domain suffix) always connect directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := splitHostList(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostMatchesAny(req.URL.Hostname(), skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func splitHostList(list string) []string {
	var hosts []string
	for _, h := range strings.Split(list, ",") {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// hostMatchesAny reports whether host equals a pattern or sits under it as a
// subdomain. A leading dot on the pattern is accepted ("a.example.com"
// matches both "example.com" and ".example.com").
func hostMatchesAny(host string, patterns []string) bool {
	host = strings.ToLower(host)
	for _, p := range patterns {
		p = strings.TrimPrefix(p, ".")
		if host == p || strings.HasSuffix(host, "."+p) {
			return true
		}
	}
	return false
}
