package frame

import (
	"bytes"
)

// Parse decodes raw wire bytes into a validated Frame. It returns a
// *ParseError for malformed input and a *ValidationError for
// well-formed but semantically invalid input.
func Parse(raw []byte) (Frame, error) {
	commandEnd, eolLen := findEOL(raw, 0)
	if commandEnd < 0 {
		return Frame{}, &ParseError{Reason: "missing command line"}
	}

	cmd, err := normalizeCommand(string(raw[:commandEnd]))
	if err != nil {
		return Frame{}, err
	}
	pos := commandEnd + eolLen

	headers := Headers{}
	seen := make(map[HeaderName]bool)
	for {
		lineEnd, lineEolLen := findEOL(raw, pos)
		if lineEnd < 0 {
			return Frame{}, &ParseError{Reason: "missing blank line terminating headers"}
		}
		if lineEnd == pos {
			pos += lineEolLen
			break
		}

		line := raw[pos:lineEnd]
		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			return Frame{}, &ParseError{Reason: "header line missing colon"}
		}

		nameToken := string(line[:colon])
		valueToken := line[colon+1:]
		if bytes.IndexByte(valueToken, ':') >= 0 {
			return Frame{}, &ParseError{Reason: "unescaped colon in header value"}
		}

		name, ok := knownHeaders[nameToken]
		if !ok {
			return Frame{}, &ParseError{Reason: "unknown header: " + nameToken}
		}

		var value string
		if isConnectFamily(cmd) {
			value = string(valueToken)
		} else {
			value, err = unescapeValue(string(valueToken))
			if err != nil {
				return Frame{}, err
			}
		}

		if !seen[name] {
			headers[name] = value
			seen[name] = true
		}
		pos = lineEnd + lineEolLen
	}

	nulOffset := bytes.IndexByte(raw[pos:], nul)
	if nulOffset < 0 {
		return Frame{}, &ParseError{Reason: "missing terminating NUL"}
	}
	body := raw[pos : pos+nulOffset]
	trailer := raw[pos+nulOffset+1:]
	if !isAllEOLBytes(trailer) {
		return Frame{}, &ParseError{Reason: "unexpected bytes after terminating NUL"}
	}

	f := Frame{
		Command: cmd,
		Headers: headers,
		Body:    append([]byte(nil), body...),
	}

	if err := Validate(f); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// normalizeCommand maps a wire command token onto the closed Command
// set, folding the CONNECT/STOMP synonym.
func normalizeCommand(token string) (Command, error) {
	if !knownCommands[token] {
		return "", &ParseError{Reason: "unknown command: " + token}
	}
	if token == string(CONNECT) {
		return STOMP, nil
	}
	return Command(token), nil
}

// findEOL returns the index at which the line's EOL sequence begins
// (the \r if present, else the \n) starting the search at start, and
// the length of that EOL sequence (1 or 2). It returns (-1, 0) if no
// \n is found.
func findEOL(raw []byte, start int) (idx int, length int) {
	for i := start; i < len(raw); i++ {
		if raw[i] == '\n' {
			if i > start && raw[i-1] == '\r' {
				return i - 1, 2
			}
			return i, 1
		}
	}
	return -1, 0
}

func isAllEOLBytes(b []byte) bool {
	for _, c := range b {
		if c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}
