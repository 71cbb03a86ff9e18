// Package assets provides the fallback handler for requests that don't hit
// the todo API.
package assets

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/config"
)

// New returns the configured asset handler, or nil when none is set.
func New(cfg config.AssetsConfig) (http.Handler, error) {
	switch {
	case cfg.Dir != "":
		return Dir(cfg.Dir), nil
	case cfg.Upstream != "":
		return Proxy(cfg.Upstream)
	default:
		return nil, nil
	}
}

// Dir serves files below root.
func Dir(root string) http.Handler {
	return http.FileServer(http.Dir(root))
}

// Proxy forwards requests unchanged to upstream and relays the response.
func Proxy(upstream string) (http.Handler, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("parse assets upstream: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("assets upstream %q must include scheme and host", upstream)
	}
	return httputil.NewSingleHostReverseProxy(target), nil
}
