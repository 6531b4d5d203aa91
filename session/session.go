/*
Package session implements StompSession, the protocol state machine on
top of a transport.Transporter: it speaks the STOMP v1.2 connect
handshake, tracks subscriptions, dispatches inbound MESSAGE/RECEIPT/
ERROR frames to the right callback, and drives a clean DISCONNECT on
Close. Session owns no socket of its own; wstransport.Client (or
transport.MockTransporter in tests) does the actual byte movement.

Everything a Session does happens on the single goroutine that its
transport delivers callbacks from (see wstransport's receive loop), so
this package needs no locking around the protocol state machine itself;
the mutex below only protects the bits a caller can touch directly, such
as Phase-style introspection from another goroutine.
*/
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tfl-labs/ltnm-stomp-client/logger"
	"github.com/tfl-labs/ltnm-stomp-client/stomp/frame"
	"github.com/tfl-labs/ltnm-stomp-client/transport"
)

const stompVersion = "1.2"

// Session is a single STOMP v1.2 session over a Transporter. The zero
// value is not usable; construct one with New.
type Session struct {
	id        string
	log       *logger.Logger
	transport transport.Transporter
	host      string

	mu    sync.Mutex
	state State

	connectOnce  sync.Once
	onConnect    func(error)
	onDisconnect func(error)

	subscriptions      map[string]*subscription
	lastSubscriptionID string
}

// New builds a Session that will drive t. host is sent as the STOMP
// "host" header on CONNECT and is unrelated to the transport's own
// notion of a destination host. Each Session gets a random id, distinct
// from the process-wide subscription counter, so its log lines can be
// told apart from any other Session sharing the same process.
func New(log *logger.Logger, t transport.Transporter, host string) *Session {
	return &Session{
		id:            uuid.NewString(),
		log:           log,
		transport:     t,
		host:          host,
		state:         Idle,
		subscriptions: make(map[string]*subscription),
	}
}

// ID is this session's random identifier, stable for its lifetime.
func (s *Session) ID() string {
	return s.id
}

// State reports the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(next State) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

// Connect opens the underlying transport and performs the STOMP CONNECT
// handshake. onConnect fires at most once: with nil on a CONNECTED
// reply, or with a *SessionError describing the first failure of the
// transport or of the handshake. A server ERROR frame in reply to the
// CONNECT does not fire onConnect; it fires onDisconnect instead.
// Once connected, onDisconnect fires on a server ERROR frame, an
// unexpected frame, or a transport drop. Neither a failure reported
// through onConnect nor a Close fires onDisconnect.
func (s *Session) Connect(ctx context.Context, username, password string, onConnect func(error), onDisconnect func(error)) {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		onConnect(&SessionError{Kind: UndefinedError, Cause: fmt.Errorf("connect called from state %s", s.state)})
		return
	}
	s.state = TransportConnecting
	s.onConnect = onConnect
	s.onDisconnect = onDisconnect
	s.mu.Unlock()

	s.transport.Connect(ctx,
		func(err error) { s.handleTransportConnected(username, password, err) },
		s.handleFrameBytes,
		s.handleTransportDisconnect,
	)
}

func (s *Session) handleTransportConnected(username, password string, err error) {
	if err != nil {
		s.setState(Failed)
		s.completeConnect(&SessionError{Kind: CouldNotConnectToWebSocketServer, Cause: err})
		return
	}

	s.setState(Authenticating)

	f := frame.Frame{
		Command: frame.CONNECT,
		Headers: frame.Headers{
			frame.HeaderAcceptVersion: stompVersion,
			frame.HeaderHost:          s.host,
			frame.HeaderLogin:         username,
			frame.HeaderPasscode:      password,
		},
	}

	raw, err := frame.Serialize(f)
	if err != nil {
		s.setState(Failed)
		s.completeConnect(&SessionError{Kind: UnexpectedCouldNotCreateValidFrame, Cause: err})
		return
	}

	s.transport.Send(string(raw), func(err error) {
		if err != nil {
			s.setState(Failed)
			s.completeConnect(&SessionError{Kind: CouldNotSendStompFrame, Cause: err})
		}
	})
}

// completeConnect fires onConnect exactly once, however connect ends up
// resolving. A server ERROR frame during Authenticating does NOT go
// through here: this session routes that to onDisconnect instead, since
// by then the handshake has a definitive, if negative, answer from the
// server rather than a connection that never went anywhere.
func (s *Session) completeConnect(err error) {
	s.connectOnce.Do(func() {
		s.onConnect(err)
	})
}

func (s *Session) fireDisconnect(err error) {
	if s.onDisconnect != nil {
		s.onDisconnect(err)
	}
}

// handleFrameBytes parses one inbound text message and dispatches it
// according to the current state. An unparseable message is reported to
// the most recently subscribed destination's onMessage if one exists;
// during the connect handshake, before any subscription exists, it is
// reported through onConnect instead.
func (s *Session) handleFrameBytes(text string) {
	f, err := frame.Parse([]byte(text))
	if err != nil {
		s.handleUnparseableFrame(err)
		return
	}

	switch state := s.State(); state {
	case Authenticating:
		s.handleAuthFrame(f)
	case Connected:
		s.handleConnectedFrame(f)
	case Idle:
		s.log.Errorf("session %s: %s", s.id, &SessionError{
			Kind:  UnexpectedMessageContentType,
			Cause: fmt.Errorf("received a %s frame before Connect was called", f.Command),
		})
	default:
		s.log.Debugf("session %s: ignoring frame received while in state %s", s.id, state)
	}
}

func (s *Session) handleUnparseableFrame(err error) {
	parseErr := &SessionError{Kind: CouldNotParseMessageAsStompFrame, Cause: err}

	if s.State() == Authenticating {
		s.setState(Failed)
		s.completeConnect(parseErr)
		return
	}

	s.mu.Lock()
	sub, ok := s.subscriptions[s.lastSubscriptionID]
	s.mu.Unlock()

	if ok {
		sub.onMessage(parseErr, nil)
		return
	}
	s.log.Errorf("session %s: received unparseable frame with no subscription to report it to: %s", s.id, err)
}

func (s *Session) handleAuthFrame(f frame.Frame) {
	switch f.Command {
	case frame.CONNECTED:
		s.setState(Connected)
		s.completeConnect(nil)
	case frame.ERROR:
		s.setState(Disconnected)
		s.fireDisconnect(&SessionError{Kind: WebSocketServerDisconnected})
	default:
		s.setState(Failed)
		s.completeConnect(&SessionError{Kind: UnexpectedMessageContentType})
	}
}

func (s *Session) handleConnectedFrame(f frame.Frame) {
	switch f.Command {
	case frame.MESSAGE:
		s.dispatchMessage(f)
	case frame.RECEIPT:
		s.dispatchReceipt(f)
	case frame.ERROR:
		s.setState(Disconnected)
		s.fireDisconnect(&SessionError{Kind: WebSocketServerDisconnected})
	default:
		s.setState(Disconnected)
		s.fireDisconnect(&SessionError{Kind: UnexpectedMessageContentType})
	}
}

func (s *Session) dispatchMessage(f frame.Frame) {
	id := f.Headers[frame.HeaderSubscription]

	s.mu.Lock()
	sub, ok := s.subscriptions[id]
	s.mu.Unlock()

	if !ok {
		s.log.Errorf("session %s: %s", s.id, &SessionError{
			Kind:  UnexpectedSubscriptionMismatch,
			Cause: fmt.Errorf("received MESSAGE for unknown subscription %s", id),
		})
		return
	}

	sub.confirm(nil)
	sub.onMessage(nil, f.Body)
}

func (s *Session) dispatchReceipt(f frame.Frame) {
	id := f.Headers[frame.HeaderReceiptID]

	s.mu.Lock()
	sub, ok := s.subscriptions[id]
	s.mu.Unlock()

	if !ok {
		return
	}
	sub.confirm(nil)
}

func (s *Session) handleTransportDisconnect(err error) {
	switch s.State() {
	case Closing, Closed:
		// Close() already owns shutdown reporting.
		return
	case Authenticating:
		s.setState(Failed)
		s.completeConnect(&SessionError{Kind: WebSocketServerDisconnected, Cause: err})
	case Connected:
		s.setState(Disconnected)
		s.fireDisconnect(&SessionError{Kind: WebSocketServerDisconnected, Cause: err})
	default:
		s.log.Errorf("session %s: transport disconnected unexpectedly while in state %s", s.id, s.State())
	}
}

// Subscribe sends a SUBSCRIBE frame for destination and registers the
// callbacks that will receive its outcome. onSubscribe fires exactly
// once, on whichever comes first: the server's RECEIPT for this
// subscription or its first delivered MESSAGE. onMessage fires once per
// MESSAGE frame delivered to this subscription thereafter. The returned
// id is empty if the session is not Connected or the SUBSCRIBE frame
// fails validation; a failed send is reported through onSubscribe and
// the id is still returned.
func (s *Session) Subscribe(destination string, onSubscribe func(error, string), onMessage func(error, []byte)) string {
	if s.State() != Connected {
		onSubscribe(&SessionError{Kind: CouldNotSendSubscribeFrame, Cause: fmt.Errorf("subscribe called from state %s", s.State())}, "")
		return ""
	}

	id := nextSubscriptionID()
	sub := &subscription{id: id, destination: destination, onSubscribe: onSubscribe, onMessage: onMessage}

	s.mu.Lock()
	s.subscriptions[id] = sub
	s.lastSubscriptionID = id
	s.mu.Unlock()

	f := frame.Frame{
		Command: frame.SUBSCRIBE,
		Headers: frame.Headers{
			frame.HeaderDestination: destination,
			frame.HeaderID:          id,
			frame.HeaderReceipt:     id,
			frame.HeaderAck:         "auto",
		},
	}

	raw, err := frame.Serialize(f)
	if err != nil {
		s.removeSubscription(id)
		onSubscribe(&SessionError{Kind: UnexpectedCouldNotCreateValidFrame, Cause: err}, "")
		return ""
	}

	s.transport.Send(string(raw), func(err error) {
		if err != nil {
			s.removeSubscription(id)
			onSubscribe(&SessionError{Kind: CouldNotSendSubscribeFrame, Cause: err}, "")
		}
	})

	return id
}

func (s *Session) removeSubscription(id string) {
	s.mu.Lock()
	delete(s.subscriptions, id)
	s.mu.Unlock()
}

// Close sends DISCONNECT and tears down the underlying transport.
// onClose fires exactly once. Closing a session that never reached
// Connected reports CouldNotCloseWebSocketConnection rather than
// attempting a handshake the server was never told about.
func (s *Session) Close(onClose func(error)) {
	if s.State() != Connected {
		onClose(&SessionError{Kind: CouldNotCloseWebSocketConnection, Cause: fmt.Errorf("close called from state %s", s.State())})
		return
	}

	s.setState(Closing)

	if raw, err := frame.Serialize(frame.Frame{Command: frame.DISCONNECT}); err == nil {
		s.transport.Send(string(raw), func(error) {})
	}

	s.transport.Close(func(err error) {
		s.setState(Closed)
		if err != nil {
			onClose(&SessionError{Kind: CouldNotCloseWebSocketConnection, Cause: err})
			return
		}
		onClose(nil)
	})
}
