package frame

// Command is the closed set of STOMP commands this codec understands.
// On the wire, CONNECT and STOMP are accepted synonymously when parsing
// and always emitted as STOMP by Serialize for the client connect frame.
type Command string

const (
	CONNECT    Command = "CONNECT"
	STOMP      Command = "STOMP"
	CONNECTED  Command = "CONNECTED"
	SUBSCRIBE  Command = "SUBSCRIBE"
	DISCONNECT Command = "DISCONNECT"
	MESSAGE    Command = "MESSAGE"
	RECEIPT    Command = "RECEIPT"
	SEND       Command = "SEND"
	ERROR      Command = "ERROR"
)

// passthroughCommands are STOMP 1.2 commands this core never builds or
// dispatches on but must still accept while parsing, so that a future
// extension of the protocol handler can add support for them without
// touching the codec.
var passthroughCommands = map[string]bool{
	"SEND":        true,
	"ACK":         true,
	"NACK":        true,
	"BEGIN":       true,
	"COMMIT":      true,
	"ABORT":       true,
	"UNSUBSCRIBE": true,
}

// knownCommands is the full closed set recognized on the wire, including
// the synonym CONNECT and the pass-through-only commands above.
var knownCommands = map[string]bool{
	"CONNECT":    true,
	"STOMP":      true,
	"CONNECTED":  true,
	"SUBSCRIBE":  true,
	"DISCONNECT": true,
	"MESSAGE":    true,
	"RECEIPT":    true,
	"SEND":       true,
	"ERROR":      true,
}

func init() {
	for c := range passthroughCommands {
		knownCommands[c] = true
	}
}

// isConnectFamily reports whether cmd is one of the two commands whose
// header values are sent and received raw, without the backslash escaping
// used by every other frame (STOMP 1.2 §2.4).
func isConnectFamily(cmd Command) bool {
	return cmd == CONNECT || cmd == STOMP || cmd == CONNECTED
}

// requiredHeaders lists the headers that must be present for a valid
// frame of the given command.
func requiredHeaders(cmd Command) []HeaderName {
	switch cmd {
	case STOMP, CONNECT:
		return []HeaderName{HeaderAcceptVersion, HeaderHost}
	case CONNECTED:
		return []HeaderName{HeaderVersion}
	case SEND:
		return []HeaderName{HeaderDestination}
	case SUBSCRIBE:
		return []HeaderName{HeaderDestination, HeaderID}
	case MESSAGE:
		return []HeaderName{HeaderDestination, HeaderMessageID, HeaderSubscription}
	case RECEIPT:
		return []HeaderName{HeaderReceiptID}
	default: // DISCONNECT, ERROR, and any pass-through command
		return nil
	}
}
