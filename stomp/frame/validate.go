package frame

import "strconv"

// Validate reports whether f satisfies the command-specific structural
// rules: required headers present and content-length consistent with
// the body. Any command may carry a body; the STOMP grammar does not
// forbid one, and this codec follows suit. It is deterministic and
// side-effect free; both Parse and Serialize call it, so a frame that
// round-trips one also round-trips the other.
func Validate(f Frame) error {
	if raw, ok := f.Headers[HeaderContentLength]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return &ValidationError{Reason: "content-length is not a non-negative integer"}
		}
		if n != len(f.Body) {
			return &ValidationError{Reason: "content-length does not match body length"}
		}
	}

	for _, name := range requiredHeaders(f.Command) {
		if _, ok := f.Headers[name]; !ok {
			return &ValidationError{Reason: "missing required header: " + string(name)}
		}
	}

	return nil
}
