// Package wire builds and parses the HTTP-shaped text messages used by SSDP
// discovery and by the descriptor responder. Both sides of the protocol share
// the same framing: a start line, `Key: Value` header lines in a fixed order,
// and a blank-line terminator, all CRLF separated.
package wire

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidHeaderValue = errors.New("wire: header value is not printable ASCII")

// Header is a single header line. Key case is preserved as written.
type Header struct {
	Key   string
	Value string
}

// Message is a request- or response-shaped record with an ordered header
// list. Serialization is a pure function of the fields, so identical
// messages serialize to identical bytes.
type Message struct {
	startLine string
	headers   []Header
}

// NewRequest creates a request-shaped message, e.g. `NOTIFY * HTTP/1.1`.
func NewRequest(method, target, version string) *Message {
	return &Message{startLine: fmt.Sprintf("%s %s %s", method, target, version)}
}

// NewResponse creates a response-shaped message, e.g. `HTTP/1.1 200 OK`.
func NewResponse(version, status string) *Message {
	return &Message{startLine: fmt.Sprintf("%s %s", version, status)}
}

// Add appends a header, keeping insertion order. The value must be printable
// ASCII per the SSDP framing rules.
func (m *Message) Add(key, value string) error {
	if !printableASCII(value) {
		return fmt.Errorf("%w: %s: %q", ErrInvalidHeaderValue, key, value)
	}
	m.headers = append(m.headers, Header{Key: key, Value: value})
	return nil
}

// Headers returns the header list in insertion order.
func (m *Message) Headers() []Header {
	return m.headers
}

// Serialize renders the on-wire form: start line, one header line per entry
// in insertion order, then the empty terminator line.
func (m *Message) Serialize() []byte {
	var b strings.Builder
	b.WriteString(m.startLine)
	b.WriteString("\r\n")
	for _, h := range m.headers {
		b.WriteString(h.Key)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	return []byte(b.String())
}

func printableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
