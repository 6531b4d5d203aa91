/*
Package frame implements the STOMP v1.2 wire codec: parsing a byte
buffer into a validated Frame, and serializing a Frame back to bytes.
Both directions are pure and stateless, and both enforce the same
command-specific validation rules so that a frame built in memory and
a frame read off the wire are held to the same standard.
*/
package frame

import "bytes"

const nul = byte(0)

// Frame is an immutable STOMP frame: a command, a closed set of
// headers, and an optional body.
type Frame struct {
	Command Command
	Headers Headers
	Body    []byte
}

// Equal compares two frames structurally, treating Headers as a set
// (map equality already does this) and treating a nil body the same
// as an empty one.
func (f Frame) Equal(other Frame) bool {
	if f.Command != other.Command {
		return false
	}
	if !bytes.Equal(f.Body, other.Body) {
		return false
	}
	if len(f.Headers) != len(other.Headers) {
		return false
	}
	for k, v := range f.Headers {
		if ov, ok := other.Headers[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
