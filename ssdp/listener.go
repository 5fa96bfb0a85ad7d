package ssdp

import (
	"context"
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dialcast/dialcast/wire"
)

// PacketConn is the subset of the discovery socket the listener needs.
// *net.UDPConn satisfies it; tests substitute fakes.
type PacketConn interface {
	ReadFrom(b []byte) (int, net.Addr, error)
	WriteTo(b []byte, addr net.Addr) (int, error)
	SetReadDeadline(t time.Time) error
}

// Listener answers M-SEARCH queries on the multicast group. It holds no
// state between datagrams; each inbound search produces at most one unicast
// reply to the requester.
type Listener struct {
	conn     PacketConn
	identity Identity
	location string
}

func NewListener(conn PacketConn, id Identity, location string) *Listener {
	return &Listener{conn: conn, identity: id, location: location}
}

// Serve reads search requests until the context ends. Malformed datagrams
// are discarded and never stop the loop; only a failure of the read
// primitive itself is fatal, since the listener cannot continue without its
// socket.
func (l *Listener) Serve(ctx context.Context) error {
	log.Infof("✅ Listening for M-SEARCH on %s:%d", MulticastAddr, Port)
	buf := make([]byte, 8192)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			l.conn.SetReadDeadline(time.Now().Add(1 * time.Second))
			n, src, err := l.conn.ReadFrom(buf)
			if err != nil {
				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					continue
				}
				return fmt.Errorf("ssdp: read: %w", err)
			}
			l.handle(buf[:n], src)
		}
	}
}

// handle decides whether one datagram deserves a reply. Queries with a
// different ST, or none, are for other services on the shared group and are
// ignored by design.
func (l *Listener) handle(payload []byte, src net.Addr) {
	req, err := wire.ParseRequest(payload)
	if err != nil {
		log.Debugf("Discarding datagram from %v: %v", src, err)
		return
	}

	st, ok := req.Header("ST")
	if !ok || st != SearchTarget {
		return
	}

	resp, err := SearchResponse(l.identity, l.location)
	if err != nil {
		log.Warnf("❌ Cannot build search response: %v", err)
		return
	}
	if _, err := l.conn.WriteTo(resp, src); err != nil {
		log.Warnf("❌ Failed to answer M-SEARCH from %v: %v", src, err)
		return
	}
	log.Infof("📡 Answered M-SEARCH from %v with ST=%s", src, st)
}
