// Package endpoint derives the host WebSocket address from the run mode.
package endpoint

import (
	"fmt"
	"net/url"
	"strings"

	"go-surface/config"
)

// DevHost is where the host listens during development
const DevHost = "localhost"

// Path is the WebSocket path served next to the page in production
const Path = "/ws"

// Resolve returns the WebSocket URL for cfg.
//
// In development the host is always localhost on the dev port with no path.
// In production the page host is reused with /ws; an https page gets wss.
func Resolve(cfg *config.Config) (*url.URL, error) {
	switch cfg.Mode {
	case config.ModeDevelopment, "":
		port := cfg.DevPort
		if port == 0 {
			port = 8080
		}
		return &url.URL{Scheme: "ws", Host: fmt.Sprintf("%s:%d", DevHost, port)}, nil

	case config.ModeProduction:
		host := strings.TrimSpace(cfg.Host)
		if host == "" {
			return nil, fmt.Errorf("endpoint: production mode needs a host")
		}
		// Accept a full page URL as well as a bare host
		if strings.Contains(host, "://") {
			page, err := url.Parse(host)
			if err != nil {
				return nil, fmt.Errorf("endpoint: parse host: %w", err)
			}
			return &url.URL{Scheme: wsScheme(page.Scheme), Host: page.Host, Path: Path}, nil
		}
		return &url.URL{Scheme: wsScheme(cfg.Scheme), Host: host, Path: Path}, nil
	}

	return nil, fmt.Errorf("endpoint: unknown mode %q", cfg.Mode)
}

// wsScheme maps a page scheme to its WebSocket scheme
func wsScheme(pageScheme string) string {
	if strings.EqualFold(pageScheme, "https") || strings.EqualFold(pageScheme, "wss") {
		return "wss"
	}
	return "ws"
}
