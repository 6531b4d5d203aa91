/*
Package wstransport implements the secure WebSocket client half of the
messaging stack: it resolves a host, opens TCP, performs a TLS
handshake with SNI set to the target host, upgrades to WebSocket, and
ferries text messages in both directions. It is the concrete
transport.Transporter that StompSession drives in production; tests use
transport.MockTransporter instead.

The read loop for one connection runs on a single goroutine supervised
by a tomb.Tomb, which is what gives callers the single-strand callback
ordering the session layer relies on.
*/
package wstransport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gopkg.in/tomb.v2"

	"github.com/tfl-labs/ltnm-stomp-client/logger"
	"github.com/tfl-labs/ltnm-stomp-client/transport"
)

// DefaultTcpConnectTimeout is the bounded timeout applied to the TCP
// connect phase when Config.TcpConnectTimeout is left unset.
const DefaultTcpConnectTimeout = 5 * time.Second

// Config configures a Client. TLSTrustStore is opaque to the transport;
// the caller loads it (typically from a CA bundle PEM file) and it may
// be shared read-only across many Clients.
type Config struct {
	URL      string
	Endpoint string
	Port     string

	TLSTrustStore *x509.CertPool

	// TcpConnectTimeout overrides DefaultTcpConnectTimeout when non-zero.
	TcpConnectTimeout time.Duration
}

// Client is a single concurrent-safe WebSocket handle. The zero value
// is not usable; construct one with New.
type Client struct {
	log    *logger.Logger
	config Config

	mu    sync.Mutex
	phase Phase
	conn  *websocket.Conn

	writeMu sync.Mutex

	tmb tomb.Tomb
}

var _ transport.Transporter = (*Client)(nil)

func New(log *logger.Logger, config Config) *Client {
	if config.TcpConnectTimeout == 0 {
		config.TcpConnectTimeout = DefaultTcpConnectTimeout
	}
	return &Client{
		log:    log,
		config: config,
		phase:  Idle,
	}
}

func (c *Client) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Client) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

func (c *Client) buildURL() (*url.URL, error) {
	raw := fmt.Sprintf("wss://%s:%s%s", c.config.URL, c.config.Port, c.config.Endpoint)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not build websocket url: %w", err)
	}
	return u, nil
}

// Connect drives the full phase machine: Resolving, TcpConnecting,
// TlsHandshaking, WsHandshaking, then Connected (or Closed on failure).
// onConnect fires exactly once, either with nil on success or with the
// error from the first failing phase. onMessage fires once per
// delivered text message thereafter, and onDisconnect fires exactly
// once when the connection ends for any reason other than a successful
// caller-initiated Close.
func (c *Client) Connect(ctx context.Context, onConnect func(error), onMessage func(string), onDisconnect func(error)) {
	u, err := c.buildURL()
	if err != nil {
		c.setPhase(Closed)
		onConnect(err)
		return
	}

	c.setPhase(Resolving)
	if _, err := net.DefaultResolver.LookupHost(ctx, c.config.URL); err != nil {
		c.setPhase(Closed)
		c.log.Errorf("failed to resolve host %s: %s", c.config.URL, err)
		onConnect(fmt.Errorf("could not resolve host: %w", err))
		return
	}

	c.setPhase(TcpConnecting)
	dialer := &net.Dialer{Timeout: c.config.TcpConnectTimeout}
	tcpConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(c.config.URL, c.config.Port))
	if err != nil {
		c.setPhase(Closed)
		c.log.Errorf("failed to open tcp connection: %s", err)
		onConnect(fmt.Errorf("could not open tcp connection: %w", err))
		return
	}

	c.setPhase(TlsHandshaking)
	tlsConn := tls.Client(tcpConn, &tls.Config{
		ServerName: c.config.URL,
		RootCAs:    c.config.TLSTrustStore,
	})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		tcpConn.Close()
		c.setPhase(Closed)
		c.log.Errorf("tls handshake failed: %s", err)
		onConnect(fmt.Errorf("tls handshake failed: %w", err))
		return
	}

	c.setPhase(WsHandshaking)
	wsConn, _, err := websocket.NewClient(tlsConn, u, http.Header{}, 1024, 1024)
	if err != nil {
		tlsConn.Close()
		c.setPhase(Closed)
		c.log.Errorf("websocket handshake failed: %s", err)
		onConnect(fmt.Errorf("websocket handshake failed: %w", err))
		return
	}

	c.mu.Lock()
	c.conn = wsConn
	c.phase = Connected
	c.mu.Unlock()

	c.tmb = tomb.Tomb{}
	c.tmb.Go(func() error {
		return c.receiveLoop(onMessage, onDisconnect)
	})

	onConnect(nil)
}

// receiveLoop is the single goroutine that owns conn.ReadMessage. Its
// serialized delivery of onMessage is what gives StompSession its
// single-strand ordering guarantee.
func (c *Client) receiveLoop(onMessage func(string), onDisconnect func(error)) error {
	defer c.log.Debug("websocket receive loop exiting")

	for {
		_, data, err := c.conn.ReadMessage()
		if !c.tmb.Alive() {
			// Close() already took over shutdown; don't double-report.
			return nil
		}
		if err != nil {
			c.setPhase(Closed)
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				onDisconnect(nil)
			} else {
				onDisconnect(fmt.Errorf("websocket connection dropped: %w", err))
			}
			return err
		}
		onMessage(string(data))
	}
}

// Send writes a complete text frame. Concurrent writers are serialized
// by writeMu so that only one WriteMessage call is ever in flight;
// additional callers block until their turn.
func (c *Client) Send(text string, onSend func(error)) {
	if c.Phase() != Connected {
		onSend(transport.ErrAborted{})
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		onSend(fmt.Errorf("failed to send websocket message: %w", err))
		return
	}
	onSend(nil)
}

// Close initiates a clean WebSocket close and fires onClose exactly
// once. A caller-initiated Close that completes successfully does not
// also trigger onDisconnect from the receive loop: killing the tomb
// first makes the loop's next ReadMessage error path a silent return.
func (c *Client) Close(onClose func(error)) {
	c.mu.Lock()
	phase := c.phase
	conn := c.conn
	c.mu.Unlock()

	if phase != Connected {
		onClose(transport.ErrAborted{})
		return
	}

	c.setPhase(Closing)
	c.tmb.Kill(nil)

	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)

	err := conn.Close()
	c.tmb.Wait()

	c.setPhase(Closed)
	onClose(err)
}
