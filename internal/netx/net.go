// Package netx contains network helpers shared by the client.
package netx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

var ErrNoHost = errors.New("url has no host")

// HostPort turns an API base URL into a dialable host:port, filling in the
// scheme's default port when the URL omits one.
func HostPort(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrNoHost, rawURL)
	}
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Dialer is satisfied by *net.Dialer.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Reachable reports whether a TCP connection to addr can be opened within
// timeout. The connection is closed immediately.
func Reachable(ctx context.Context, d Dialer, addr string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}
