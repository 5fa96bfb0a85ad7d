package ssdp

import (
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/ipv4"
)

// Listen opens the shared discovery socket: bound to the well-known port on
// all interfaces and joined to the multicast group. The advertiser and the
// listener both use this one socket; *net.UDPConn serializes concurrent
// datagram writes, so no further locking is needed between them.
func Listen() (*net.UDPConn, error) {
	group := &net.UDPAddr{IP: net.ParseIP(MulticastAddr), Port: Port}
	conn, err := net.ListenMulticastUDP("udp4", nil, group)
	if err != nil {
		return nil, fmt.Errorf("ssdp: bind %s:%d: %w", MulticastAddr, Port, err)
	}
	if err := conn.SetReadBuffer(8192); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssdp: set read buffer: %w", err)
	}

	// Loopback lets a control point on the same host see our NOTIFYs; TTL 2
	// keeps the burst on the local segment. Both are best effort, not every
	// platform supports the options.
	p := ipv4.NewPacketConn(conn)
	if err := p.SetMulticastLoopback(true); err != nil {
		log.Warnf("❌ Cannot enable multicast loopback: %v", err)
	}
	if err := p.SetMulticastTTL(2); err != nil {
		log.Warnf("❌ Cannot set multicast TTL: %v", err)
	}

	return conn, nil
}
