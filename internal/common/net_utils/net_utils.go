// Пакет netutils содержит простые сетевые инструменты
package netutils

import (
	"context"
	"net"
	"strconv"
	"time"
)

// GetFreeAddr - получить адрес localhost со свободным портом
func GetFreeAddr() (string, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return net.JoinHostPort("localhost", strconv.Itoa(l.Addr().(*net.TCPAddr).Port)), nil
}

// WaitForAddr - дождаться, пока addr начнет принимать соединения
func WaitForAddr(ctx context.Context, addr string) error {
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			return conn.Close()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
}
