package frame

import "bytes"

// Serialize renders f as wire bytes: COMMAND\n, then header:value\n
// lines, then a blank line, then the body, then a terminating NUL. It
// fails with a *ValidationError under the same rules as Validate.
func Serialize(f Frame) ([]byte, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(string(wireCommand(f.Command)))
	buf.WriteByte('\n')

	for name, value := range f.Headers {
		buf.WriteString(string(name))
		buf.WriteByte(':')
		if isConnectFamily(f.Command) {
			buf.WriteString(value)
		} else {
			buf.WriteString(escapeValue(value))
		}
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.Write(f.Body)
	buf.WriteByte(nul)

	return buf.Bytes(), nil
}

// wireCommand is the token actually written for cmd. Only the client
// connect frame is special-cased: it is always emitted as STOMP.
func wireCommand(cmd Command) Command {
	if cmd == CONNECT {
		return STOMP
	}
	return cmd
}
