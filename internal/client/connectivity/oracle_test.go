package connectivity

import (
	"context"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAndFunc(t *testing.T) {
	ctx := context.Background()
	assert.True(t, Static(true).IsOnline(ctx))
	assert.False(t, Static(false).IsOnline(ctx))

	calls := 0
	o := Func(func(context.Context) bool { calls++; return calls%2 == 1 })
	assert.True(t, o.IsOnline(ctx))
	assert.False(t, o.IsOnline(ctx))
	assert.Equal(t, 2, calls, "answers must not be cached")
}

func TestProbeOracle_ReachableServer(t *testing.T) {
	srv := httptest.NewServer(nil)
	defer srv.Close()

	o, err := NewProbeOracle(srv.URL, time.Second, logging.Nop())
	require.NoError(t, err)
	assert.True(t, o.IsOnline(context.Background()))
}

func TestProbeOracle_ClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	o, err := NewProbeOracle("http://"+addr, 200*time.Millisecond, logging.Nop())
	require.NoError(t, err)
	assert.False(t, o.IsOnline(context.Background()))
}

func TestNewProbeOracle_BadURL(t *testing.T) {
	_, err := NewProbeOracle("not a url", time.Second, logging.Nop())
	require.Error(t, err)
}
