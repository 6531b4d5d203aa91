/*
Package teststomp provides an in-process WebSocket test server used by
WsTransport's own test suite to exercise its phase machine over a real
TLS connection. StompSession's tests drive transport.MockTransporter
directly instead, since a protocol state machine is easier to exercise
against a scriptable mock than a real socket.
*/
package teststomp

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tfl-labs/ltnm-stomp-client/logger"
)

// EchoServer upgrades each incoming connection and writes back whatever
// message it receives, in order. ForceClose and Close act on the most
// recently upgraded connection.
type EchoServer struct {
	log    *logger.Logger
	conn   *websocket.Conn
	server *httptest.Server

	// Addr is the TLS test server's https URL; clients dial its host and
	// port.
	Addr string
}

func NewEchoServer(log *logger.Logger) *EchoServer {
	e := &EchoServer{log: log}
	e.server = httptest.NewTLSServer(http.HandlerFunc(e.serve))
	e.Addr = e.server.URL
	return e
}

// Certificate is the server's self-signed leaf, for building a client
// trust store scoped to exactly this test server.
func (e *EchoServer) Certificate() []byte {
	return e.server.Certificate().Raw
}

func (e *EchoServer) serve(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.log.Errorf("failed to upgrade websocket: %s", err)
		return
	}
	e.conn = conn
	defer conn.Close()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(messageType, message); err != nil {
			return
		}
	}
}

// ForceClose drops the connection without a WebSocket close handshake.
func (e *EchoServer) ForceClose() {
	if e.conn != nil {
		e.conn.Close()
	}
}

// Close performs a clean WebSocket close handshake against the client.
func (e *EchoServer) Close() {
	if e.conn == nil {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	e.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

func (e *EchoServer) Shutdown() {
	e.server.Close()
}
