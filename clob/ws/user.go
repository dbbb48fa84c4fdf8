// Package ws implements the CLOB websocket channels. The user channel
// streams order and trade updates for one authenticated wallet.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/w6g2000/polymarket-go-client/clob/types"
	"github.com/w6g2000/polymarket-go-client/pkg/logger"
)

const (
	userChannelPath  = "/ws/user"
	pingInterval     = 10 * time.Second
	readTimeout      = 30 * time.Second
	handshakeTimeout = 30 * time.Second
)

// OrderEvent is one order update from the user channel.
type OrderEvent struct {
	EventType    string `json:"event_type"`
	ID           string `json:"id"`
	Market       string `json:"market"`
	AssetID      string `json:"asset_id"`
	Side         string `json:"side"`
	Price        string `json:"price"`
	OriginalSize string `json:"original_size"`
	SizeMatched  string `json:"size_matched"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
}

// TradeEvent is one fill notification from the user channel.
type TradeEvent struct {
	EventType string `json:"event_type"`
	ID        string `json:"id"`
	Market    string `json:"market"`
	AssetID   string `json:"asset_id"`
	Side      string `json:"side"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// OrderHandler receives order updates. Handlers run on the read loop
// goroutine and must not block.
type OrderHandler func(*OrderEvent)

// TradeHandler receives fill notifications.
type TradeHandler func(*TradeEvent)

type authMessage struct {
	Auth    authPayload `json:"auth"`
	Type    string      `json:"type"`
	Markets []string    `json:"markets"`
}

type authPayload struct {
	APIKey     string `json:"apikey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// UserClient maintains one authenticated user-channel connection with
// automatic reconnects.
type UserClient struct {
	host    string
	creds   types.ApiKeyCreds
	markets []string
	log     *logrus.Entry

	maxReconnects  int
	reconnectDelay time.Duration

	mu            sync.RWMutex
	conn          *websocket.Conn
	closed        bool
	orderHandlers []OrderHandler
	tradeHandlers []TradeHandler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewUserClient creates a client for the given websocket host
// (wss://...). Markets optionally narrows the stream to condition ids.
func NewUserClient(host string, creds types.ApiKeyCreds, markets []string) *UserClient {
	return &UserClient{
		host:           host,
		creds:          creds,
		markets:        markets,
		log:            logger.Named("ws").WithField("conn", uuid.NewString()[:8]),
		maxReconnects:  10,
		reconnectDelay: 5 * time.Second,
	}
}

// OnOrder registers an order update handler. Register before Connect.
func (u *UserClient) OnOrder(h OrderHandler) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.orderHandlers = append(u.orderHandlers, h)
}

// OnTrade registers a fill handler. Register before Connect.
func (u *UserClient) OnTrade(h TradeHandler) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.tradeHandlers = append(u.tradeHandlers, h)
}

// Connect dials the user channel, authenticates with the credential
// triple and starts the read and ping loops. The connection lives until
// Close or context cancellation.
func (u *UserClient) Connect(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	u.mu.Lock()
	if u.cancel != nil {
		u.cancel()
	}
	u.cancel = cancel
	u.closed = false
	u.mu.Unlock()

	if err := u.dial(runCtx); err != nil {
		cancel()
		return err
	}
	return nil
}

func (u *UserClient) dial(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, u.host+userChannelPath, nil)
	if err != nil {
		return fmt.Errorf("dial user channel: %w", err)
	}

	auth := authMessage{
		Auth: authPayload{
			APIKey:     u.creds.Key,
			Secret:     u.creds.Secret,
			Passphrase: u.creds.Passphrase,
		},
		Type:    "user",
		Markets: u.markets,
	}
	if err := conn.WriteJSON(auth); err != nil {
		conn.Close()
		return fmt.Errorf("authenticate user channel: %w", err)
	}

	// The conn swap and wg.Add happen under the same lock that Close uses
	// to set closed, so a reconnect in flight cannot race Close's Wait.
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		conn.Close()
		return fmt.Errorf("user channel is closed")
	}
	if u.conn != nil {
		u.conn.Close()
	}
	u.conn = conn
	u.wg.Add(2)
	u.mu.Unlock()

	go func() {
		defer u.wg.Done()
		u.readLoop(ctx, conn)
	}()
	go func() {
		defer u.wg.Done()
		u.pingLoop(ctx, conn)
	}()

	u.log.Info("user channel connected")
	return nil
}

func (u *UserClient) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.TextMessage, []byte("PING")); err != nil {
				// The read loop notices the broken connection and
				// reconnects; nothing to do here.
				return
			}
		}
	}
}

func (u *UserClient) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || u.isClosed() {
				return
			}
			u.log.WithError(err).Warn("user channel read failed, reconnecting")
			u.reconnect(ctx)
			return
		}
		u.dispatch(message)
	}
}

func (u *UserClient) dispatch(message []byte) {
	if string(message) == "PONG" {
		return
	}

	// The channel delivers both single events and arrays of events.
	var events []json.RawMessage
	if len(message) > 0 && message[0] == '[' {
		if err := json.Unmarshal(message, &events); err != nil {
			u.log.WithError(err).Debug("unparseable message batch")
			return
		}
	} else {
		events = []json.RawMessage{message}
	}

	for _, raw := range events {
		var head struct {
			EventType string `json:"event_type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			continue
		}

		switch head.EventType {
		case "order":
			var ev OrderEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				u.log.WithError(err).Debug("bad order event")
				continue
			}
			u.mu.RLock()
			handlers := u.orderHandlers
			u.mu.RUnlock()
			for _, h := range handlers {
				h(&ev)
			}
		case "trade":
			var ev TradeEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				u.log.WithError(err).Debug("bad trade event")
				continue
			}
			u.mu.RLock()
			handlers := u.tradeHandlers
			u.mu.RUnlock()
			for _, h := range handlers {
				h(&ev)
			}
		}
	}
}

func (u *UserClient) reconnect(ctx context.Context) {
	for attempt := 1; attempt <= u.maxReconnects; attempt++ {
		if u.isClosed() {
			return
		}
		delay := u.reconnectDelay * time.Duration(attempt)
		u.log.WithField("attempt", attempt).Infof("reconnecting in %v", delay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if err := u.dial(ctx); err != nil {
			u.log.WithError(err).Warn("reconnect failed")
			continue
		}
		return
	}
	u.log.Error("user channel gave up reconnecting")
}

func (u *UserClient) isClosed() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.closed
}

// Close tears down the connection and stops all loops.
func (u *UserClient) Close() error {
	u.mu.Lock()
	u.closed = true
	if u.cancel != nil {
		u.cancel()
	}
	conn := u.conn
	u.conn = nil
	u.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	u.wg.Wait()
	return err
}
