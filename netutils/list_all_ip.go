package netutils

import (
	"fmt"
	"net"
)

// AdvertisableIPs maps every up interface to the IPv4 addresses that could
// carry a LOCATION URL, for startup diagnostics when the advertised address
// is picked automatically. Loopback and IPv6-only interfaces are left out
// since clients on the LAN cannot reach them.
func AdvertisableIPs() (map[string][]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("netutils: list interfaces: %w", err)
	}

	result := make(map[string][]string)
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		var ips []string
		for _, addr := range addrs {
			if ip := ipv4Of(addr); ip != nil {
				ips = append(ips, ip.String())
			}
		}
		if len(ips) > 0 {
			result[iface.Name] = ips
		}
	}

	return result, nil
}

func ipv4Of(addr net.Addr) net.IP {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	if ip == nil || ip.To4() == nil || ip.IsLoopback() {
		return nil
	}
	return ip.To4()
}
