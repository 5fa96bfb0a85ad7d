package wire_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dialcast/dialcast/wire"
)

// ----------------------- Serialization ------------------------

func TestSerializeRequest(t *testing.T) {
	m := wire.NewRequest("NOTIFY", "*", "HTTP/1.1")
	if err := m.Add("HOST", "239.255.255.250:1900"); err != nil {
		t.Fatal(err)
	}
	if err := m.Add("NT", "upnp:rootdevice"); err != nil {
		t.Fatal(err)
	}
	got := string(m.Serialize())
	want := "NOTIFY * HTTP/1.1\r\nHOST: 239.255.255.250:1900\r\nNT: upnp:rootdevice\r\n\r\n"
	if got != want {
		t.Fatalf("serialized form wrong:\n%q", got)
	}
}

func TestSerializeResponse(t *testing.T) {
	m := wire.NewResponse("HTTP/1.1", "200 OK")
	got := string(m.Serialize())
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("bad status line: %q", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\n") {
		t.Fatal("missing blank-line terminator")
	}
}

func TestSerializeDeterministic(t *testing.T) {
	build := func() []byte {
		m := wire.NewRequest("NOTIFY", "*", "HTTP/1.1")
		m.Add("HOST", "239.255.255.250:1900")
		m.Add("cache-control", "max-age = 900")
		return m.Serialize()
	}
	if string(build()) != string(build()) {
		t.Fatal("two identical builds differ")
	}
}

func TestHeaderOrderPreserved(t *testing.T) {
	m := wire.NewRequest("NOTIFY", "*", "HTTP/1.1")
	m.Add("B", "2")
	m.Add("a", "1")
	m.Add("C", "3")
	got := string(m.Serialize())
	if strings.Index(got, "B:") > strings.Index(got, "a:") ||
		strings.Index(got, "a:") > strings.Index(got, "C:") {
		t.Fatalf("insertion order not preserved: %q", got)
	}
}

func TestRejectNonASCIIHeaderValue(t *testing.T) {
	m := wire.NewRequest("NOTIFY", "*", "HTTP/1.1")
	err := m.Add("SERVER", "café")
	if !errors.Is(err, wire.ErrInvalidHeaderValue) {
		t.Fatalf("expected ErrInvalidHeaderValue, got %v", err)
	}
	if len(m.Headers()) != 0 {
		t.Fatal("rejected header was still added")
	}
}

// ----------------------- Parsing ------------------------

func TestParseSearchRequest(t *testing.T) {
	data := []byte("M-SEARCH * HTTP/1.1\r\nHOST: 239.255.255.250:1900\r\nST: urn:dial-multiscreen-org:service:dial:1\r\n\r\n")
	req, err := wire.ParseRequest(data)
	if err != nil {
		t.Fatal(err)
	}
	if req.Method != "M-SEARCH" || req.Target != "*" || req.Version != "HTTP/1.1" {
		t.Fatalf("request line wrong: %+v", req)
	}
	st, ok := req.Header("st")
	if !ok || st != "urn:dial-multiscreen-org:service:dial:1" {
		t.Fatalf("ST lookup failed: %q %v", st, ok)
	}
}

func TestParseShortRequestLine(t *testing.T) {
	_, err := wire.ParseRequest([]byte("GET /\r\n\r\n"))
	if !errors.Is(err, wire.ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest, got %v", err)
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := wire.ParseRequest([]byte{0xff, 0xfe, 0xfd})
	if !errors.Is(err, wire.ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestParseSkipsBadHeaderLines(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nnot a header\r\nHOST: here\r\n\r\n")
	req, err := wire.ParseRequest(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(req.Headers()) != 1 {
		t.Fatalf("expected one header, got %d", len(req.Headers()))
	}
	if host, _ := req.Header("HOST"); host != "here" {
		t.Fatalf("HOST wrong: %q", host)
	}
}

func TestParseStopsAtBlankLine(t *testing.T) {
	data := []byte("POST /app HTTP/1.1\r\nHOST: a\r\n\r\nBODY: not-a-header\r\n")
	req, err := wire.ParseRequest(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := req.Header("BODY"); ok {
		t.Fatal("parsed past the blank line into the body")
	}
}

func TestRoundTrip(t *testing.T) {
	m := wire.NewRequest("NOTIFY", "*", "HTTP/1.1")
	m.Add("HOST", "239.255.255.250:1900")
	m.Add("cache-control", "max-age = 900")
	m.Add("LOCATION", "http://10.0.0.2:8081/upnp_device_descriptor.xml")
	m.Add("NT", "upnp:rootdevice")

	req, err := wire.ParseRequest(m.Serialize())
	if err != nil {
		t.Fatal(err)
	}
	if len(req.Headers()) != len(m.Headers()) {
		t.Fatalf("header count changed: %d != %d", len(req.Headers()), len(m.Headers()))
	}
	for i, h := range m.Headers() {
		got := req.Headers()[i]
		if got.Key != h.Key || got.Value != h.Value {
			t.Fatalf("header %d changed: %+v != %+v", i, got, h)
		}
	}
}
