package frame

// HeaderName is the closed set of header tags this codec accepts. Any
// header name outside this set fails to parse.
type HeaderName string

const (
	HeaderAcceptVersion  HeaderName = "accept-version"
	HeaderAck            HeaderName = "ack"
	HeaderContentLength  HeaderName = "content-length"
	HeaderContentType    HeaderName = "content-type"
	HeaderDestination    HeaderName = "destination"
	HeaderHost           HeaderName = "host"
	HeaderID             HeaderName = "id"
	HeaderLogin          HeaderName = "login"
	HeaderMessageID      HeaderName = "message-id"
	HeaderPasscode       HeaderName = "passcode"
	HeaderReceipt        HeaderName = "receipt"
	HeaderReceiptID      HeaderName = "receipt-id"
	HeaderSession        HeaderName = "session"
	HeaderSubscription   HeaderName = "subscription"
	HeaderVersion        HeaderName = "version"
)

var knownHeaders = map[string]HeaderName{
	string(HeaderAcceptVersion): HeaderAcceptVersion,
	string(HeaderAck):           HeaderAck,
	string(HeaderContentLength): HeaderContentLength,
	string(HeaderContentType):   HeaderContentType,
	string(HeaderDestination):   HeaderDestination,
	string(HeaderHost):          HeaderHost,
	string(HeaderID):            HeaderID,
	string(HeaderLogin):         HeaderLogin,
	string(HeaderMessageID):     HeaderMessageID,
	string(HeaderPasscode):      HeaderPasscode,
	string(HeaderReceipt):       HeaderReceipt,
	string(HeaderReceiptID):     HeaderReceiptID,
	string(HeaderSession):       HeaderSession,
	string(HeaderSubscription):  HeaderSubscription,
	string(HeaderVersion):       HeaderVersion,
}

// Headers is an ordered-agnostic mapping from header tag to value. When
// a header name appears more than once on the wire only the first
// occurrence is retained; this type stores that resolved view.
type Headers map[HeaderName]string

func (h Headers) clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
