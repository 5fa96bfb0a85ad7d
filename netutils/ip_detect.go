// Package netutils answers the one network question the supervisor has:
// which local IPv4 address should be advertised in LOCATION headers.
package netutils

import (
	"fmt"
	"net"
)

// GuessLocalIP returns the source address the kernel would pick for
// multicast traffic to the SSDP group. No packet is sent; connecting a UDP
// socket only resolves the route.
func GuessLocalIP() (string, error) {
	conn, err := net.Dial("udp4", "239.255.255.250:1900")
	if err != nil {
		return "", fmt.Errorf("netutils: no route to the SSDP group: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "", fmt.Errorf("netutils: unexpected local address %v", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}
