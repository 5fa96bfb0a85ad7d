package descriptor

import (
	"context"
	_ "embed"
	"fmt"
	"net"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dialcast/dialcast/wire"
)

//go:embed landing.html
var landingPage []byte

// Server answers descriptor-fetch requests, one connection per goroutine.
// Connections share no mutable state, every request gets exactly one
// response and the connection is closed, no keep-alive.
type Server struct {
	port   int
	source Source
	ln     net.Listener
}

func NewServer(port int, source Source) *Server {
	return &Server{port: port, source: source}
}

// Listen binds the stream socket. Kept separate from Serve so callers (and
// tests, which bind port 0) can learn the bound address before serving.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("descriptor: bind port %d: %w", s.port, err)
	}
	s.ln = ln
	return nil
}

func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until the context ends. A failing connection is
// that connection's problem; only the accept primitive failing stops the
// server.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	log.Infof("✅ Descriptor server listening on %v", s.ln.Addr())

	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("descriptor: accept: %w", err)
		}
		go s.handle(conn)
	}
}

// handle serves one connection: read the request in a single read (clients
// send the small request promptly), respond, close.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	buf := make([]byte, 8192)
	n, err := conn.Read(buf)
	if err != nil {
		log.Debugf("Dropping connection from %v: %v", conn.RemoteAddr(), err)
		return
	}

	req, err := wire.ParseRequest(buf[:n])
	if err != nil {
		log.Debugf("Malformed request from %v: %v", conn.RemoteAddr(), err)
		return
	}

	resp := s.route(req)
	if _, err := conn.Write(resp); err != nil {
		log.Warnf("❌ Failed to respond to %v: %v", conn.RemoteAddr(), err)
		return
	}
	log.Infof("📄 %s %s from %v", req.Method, req.Target, conn.RemoteAddr())
}

func (s *Server) route(req *wire.Request) []byte {
	switch {
	case req.Method == "GET" && req.Target == "/":
		return respond("200 OK", "text/html; charset=utf-8", landingPage)
	case req.Method == "GET" && req.Target == Path:
		doc, err := s.source.Document()
		if err != nil {
			log.Errorf("❌ Descriptor document unavailable: %v", err)
			return respond("500 Internal Server Error", "", nil)
		}
		return respond("200 OK", "application/xml", doc)
	default:
		return respond("404 Not Found", "", nil)
	}
}

func respond(status, contentType string, body []byte) []byte {
	m := wire.NewResponse("HTTP/1.1", status)
	m.Add("Connection", "close")
	if contentType != "" {
		m.Add("Content-Type", contentType)
	}
	m.Add("Content-Length", strconv.Itoa(len(body)))
	return append(m.Serialize(), body...)
}
