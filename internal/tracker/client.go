package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Handler receives each decoded event in arrival order.
type Handler func(Event)

// Client reads events from a tracker websocket.
type Client struct {
	url    string
	dialer *websocket.Dialer
	logger *log.Logger

	// RetryDelay is the pause between reconnect attempts in Follow.
	RetryDelay time.Duration
}

// NewClient creates a client for the given ws:// or wss:// URL.
// A nil logger uses log.Default().
func NewClient(url string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		url:        url,
		dialer:     websocket.DefaultDialer,
		logger:     logger,
		RetryDelay: 2 * time.Second,
	}
}

// Run connects once and delivers events to handle until the connection
// closes or ctx is cancelled. Malformed frames are logged and skipped.
//
// Returns nil when ctx is cancelled, otherwise the error that ended the
// connection.
func (c *Client) Run(ctx context.Context, handle Handler) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to tracker %s: %w", c.url, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Unblocks ReadMessage.
			conn.Close()
		case <-done:
		}
	}()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read tracker frame: %w", err)
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}

		ev, err := ParseEvent(data)
		if err != nil {
			c.logger.Printf("Warning: skipping tracker frame: %v", err)
			continue
		}
		handle(ev)
	}
}

// Follow runs the client and reconnects after RetryDelay whenever the
// connection drops, until ctx is cancelled.
func (c *Client) Follow(ctx context.Context, handle Handler) {
	for {
		err := c.Run(ctx, handle)
		if ctx.Err() != nil {
			return
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Printf("Warning: tracker disconnected: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.RetryDelay):
		}
	}
}
