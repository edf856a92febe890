package netutils

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitForAddr(t *testing.T) {
	addr, err := GetFreeAddr()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, WaitForAddr(ctx, addr), context.DeadlineExceeded)

	l, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, WaitForAddr(ctx, addr))
}
