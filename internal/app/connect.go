package app

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/justmedusty/Kryptos-Client/internal/pkg/config"
)

// DialTimeout bounds how long Connect waits for the TCP handshake.
const DialTimeout = 10 * time.Second

// Connect opens the TCP connection to the chat server described by settings.
func Connect(ctx context.Context, settings *config.ClientSettings) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", settings.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", settings.Address(), err)
	}
	return conn, nil
}
