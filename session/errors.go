package session

import "fmt"

// SessionErrorKind is the closed set of ways a StompSession operation can
// fail. It exists mainly so tests and callers can switch
// on the failure category without string-matching Error(); the success
// path itself is reported as a nil error, not SessionErrorKind Ok, the
// way the rest of this module's callbacks work.
type SessionErrorKind int

const (
	Ok SessionErrorKind = iota
	UndefinedError
	CouldNotCloseWebSocketConnection
	CouldNotConnectToWebSocketServer
	CouldNotParseMessageAsStompFrame
	CouldNotSendStompFrame
	CouldNotSendSubscribeFrame
	UnexpectedCouldNotCreateValidFrame
	UnexpectedMessageContentType
	UnexpectedSubscriptionMismatch
	WebSocketServerDisconnected
)

func (k SessionErrorKind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case CouldNotCloseWebSocketConnection:
		return "CouldNotCloseWebSocketConnection"
	case CouldNotConnectToWebSocketServer:
		return "CouldNotConnectToWebSocketServer"
	case CouldNotParseMessageAsStompFrame:
		return "CouldNotParseMessageAsStompFrame"
	case CouldNotSendStompFrame:
		return "CouldNotSendStompFrame"
	case CouldNotSendSubscribeFrame:
		return "CouldNotSendSubscribeFrame"
	case UnexpectedCouldNotCreateValidFrame:
		return "UnexpectedCouldNotCreateValidFrame"
	case UnexpectedMessageContentType:
		return "UnexpectedMessageContentType"
	case UnexpectedSubscriptionMismatch:
		return "UnexpectedSubscriptionMismatch"
	case WebSocketServerDisconnected:
		return "WebSocketServerDisconnected"
	default:
		return "UndefinedError"
	}
}

// SessionError is the error type every Session callback reports on
// failure. Cause is the underlying error where one exists (a transport
// failure, a codec failure); it is nil for purely protocol-level
// outcomes such as a server ERROR frame.
type SessionError struct {
	Kind  SessionErrorKind
	Cause error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *SessionError) Unwrap() error { return e.Cause }
