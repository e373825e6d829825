// Package connectivity answers the point-in-time question "is the network
// reachable right now?". Answers are never cached.
package connectivity

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"github.com/dmitrijs2005/storykeeper/internal/netx"
)

// Oracle reports current reachability. Implementations must be safe for
// concurrent use.
type Oracle interface {
	IsOnline(ctx context.Context) bool
}

// Func adapts a plain function to Oracle.
type Func func(ctx context.Context) bool

func (f Func) IsOnline(ctx context.Context) bool { return f(ctx) }

// Static always reports the same answer.
func Static(online bool) Oracle {
	return Func(func(context.Context) bool { return online })
}

// ProbeOracle dials the API host over TCP on every call.
type ProbeOracle struct {
	addr    string
	timeout time.Duration
	dialer  netx.Dialer
	log     logging.Logger
}

// NewProbeOracle derives the probe address from the API base URL.
func NewProbeOracle(baseURL string, timeout time.Duration, log logging.Logger) (*ProbeOracle, error) {
	addr, err := netx.HostPort(baseURL)
	if err != nil {
		return nil, err
	}
	return &ProbeOracle{
		addr:    addr,
		timeout: timeout,
		dialer:  &net.Dialer{},
		log:     log,
	}, nil
}

func (o *ProbeOracle) IsOnline(ctx context.Context) bool {
	if err := netx.Reachable(ctx, o.dialer, o.addr, o.timeout); err != nil {
		o.log.Debug(ctx, "connectivity probe failed", "addr", o.addr, "error", err)
		return false
	}
	return true
}
