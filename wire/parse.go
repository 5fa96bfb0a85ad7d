package wire

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEncoding  = errors.New("wire: payload is not valid UTF-8")
	ErrMalformedRequest = errors.New("wire: malformed request line")
)

// Request is one parsed inbound message, either an SSDP datagram or a
// descriptor request read from a stream. It lives only for the duration of
// handling that message.
type Request struct {
	Method  string
	Target  string
	Version string
	headers []Header
}

// Header looks up a header value by case-insensitive key.
func (r *Request) Header(key string) (string, bool) {
	for _, h := range r.headers {
		if strings.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}
	return "", false
}

// Headers returns the parsed headers in the order they appeared.
func (r *Request) Headers() []Header {
	return r.headers
}

// ParseRequest decodes a request-shaped message. The first line must carry
// at least method, target and version; header lines that do not match the
// `Key: Value` shape are skipped rather than rejected, since SSDP peers emit
// all sorts of noise on the shared multicast group. A blank line ends the
// header section.
func ParseRequest(data []byte) (*Request, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 {
		return nil, ErrMalformedRequest
	}

	words := strings.Fields(strings.TrimRight(lines[0], "\r"))
	if len(words) < 3 {
		return nil, ErrMalformedRequest
	}

	req := &Request{
		Method:  words[0],
		Target:  words[1],
		Version: words[2],
	}

	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}
		req.headers = append(req.headers, Header{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}

	return req, nil
}
