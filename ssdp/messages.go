package ssdp

import (
	"fmt"

	"github.com/dialcast/dialcast/wire"
)

// notification builds one NOTIFY advertisement. Every advertisement carries
// exactly these seven headers; HOST, CACHE-CONTROL, NTS and SERVER are the
// same for every message of a session, NT and USN vary by role.
func notification(id Identity, location, nt, usn, nts string, maxAge int) ([]byte, error) {
	m := wire.NewRequest("NOTIFY", "*", "HTTP/1.1")
	headers := []wire.Header{
		{Key: "HOST", Value: fmt.Sprintf("%s:%d", MulticastAddr, Port)},
		{Key: "cache-control", Value: fmt.Sprintf("max-age = %d", maxAge)},
		{Key: "LOCATION", Value: location},
		{Key: "NT", Value: nt},
		{Key: "USN", Value: usn},
		{Key: "NTS", Value: nts},
		{Key: "SERVER", Value: id.Server},
	}
	for _, h := range headers {
		if err := m.Add(h.Key, h.Value); err != nil {
			return nil, err
		}
	}
	return m.Serialize(), nil
}

// RootDeviceNotification announces the root device role.
func RootDeviceNotification(id Identity, location string, maxAge int) ([]byte, error) {
	return notification(id, location, "upnp:rootdevice", id.USN("upnp:rootdevice"), ntsAlive, maxAge)
}

// DeviceNotification announces the device itself, NT and USN both carry the
// bare uuid form.
func DeviceNotification(id Identity, location string, maxAge int) ([]byte, error) {
	return notification(id, location, id.DeviceUSN(), id.DeviceUSN(), ntsAlive, maxAge)
}

// DeviceTypeNotification announces the Basic:1 device type.
func DeviceTypeNotification(id Identity, location string, maxAge int) ([]byte, error) {
	return notification(id, location, DeviceType, id.USN(DeviceType), ntsAlive, maxAge)
}

// SearchResponse builds the unicast reply to a matching M-SEARCH.
func SearchResponse(id Identity, location string) ([]byte, error) {
	m := wire.NewResponse("HTTP/1.1", "200 OK")
	headers := []wire.Header{
		{Key: "LOCATION", Value: location},
		{Key: "ST", Value: SearchTarget},
		{Key: "USN", Value: id.USN(SearchTarget)},
	}
	for _, h := range headers {
		if err := m.Add(h.Key, h.Value); err != nil {
			return nil, err
		}
	}
	return m.Serialize(), nil
}

// byeByeNotification withdraws one advertisement role on shutdown. ByeBye
// messages carry no LOCATION, CACHE-CONTROL or SERVER.
func byeByeNotification(nt, usn string) []byte {
	m := wire.NewRequest("NOTIFY", "*", "HTTP/1.1")
	m.Add("HOST", fmt.Sprintf("%s:%d", MulticastAddr, Port))
	m.Add("NT", nt)
	m.Add("NTS", ntsByeBye)
	m.Add("USN", usn)
	return m.Serialize()
}
