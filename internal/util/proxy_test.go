package util

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func proxyFor(t *testing.T, fn func(*http.Request) (*url.URL, error), target string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	u, err := fn(req)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u == nil {
		return ""
	}
	return u.String()
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "http://sproxy.local:3128", "")

	if got := proxyFor(t, fn, "http://api.finshare.app/api/health"); got != "http://proxy.local:3128" {
		t.Errorf("http request: expected http proxy, got %q", got)
	}
	if got := proxyFor(t, fn, "https://api.finshare.app/api/health"); got != "http://sproxy.local:3128" {
		t.Errorf("https request: expected https proxy, got %q", got)
	}
}

func TestNewProxyFunc_HTTPProxyCoversHTTPS(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "", "")

	if got := proxyFor(t, fn, "https://api.finshare.app/"); got != "http://proxy.local:3128" {
		t.Errorf("expected http proxy to cover https, got %q", got)
	}
}

func TestNewProxyFunc_NoProxyHosts(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "", "localhost, .internal.example.com")

	if got := proxyFor(t, fn, "http://localhost:11434/api/generate"); got != "" {
		t.Errorf("expected direct connection for localhost, got %q", got)
	}
	if got := proxyFor(t, fn, "http://ollama.internal.example.com/api/generate"); got != "" {
		t.Errorf("expected direct connection for no_proxy subdomain, got %q", got)
	}
	if got := proxyFor(t, fn, "http://api.finshare.app/"); got != "http://proxy.local:3128" {
		t.Errorf("expected proxy for unlisted host, got %q", got)
	}
}
