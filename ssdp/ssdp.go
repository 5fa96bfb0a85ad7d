// Package ssdp implements the discovery side of the DIAL second-screen
// protocol: the NOTIFY advertisement burst for the virtual device and the
// M-SEARCH listener that answers matching queries with the location of the
// device descriptor.
package ssdp

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	MulticastAddr = "239.255.255.250"
	Port          = 1900

	// DefaultMaxAge is the advertised cache lifetime in seconds when the
	// configuration does not override it.
	DefaultMaxAge = 900

	// SearchTarget is the only ST this responder answers to. Queries for
	// anything else belong to other listeners on the shared group.
	SearchTarget = "urn:dial-multiscreen-org:service:dial:1"

	// DeviceType is announced in the third NOTIFY of the burst.
	DeviceType = "urn:schemas-upnp-org:device:Basic:1"

	ntsAlive  = "ssdp:alive"
	ntsByeBye = "ssdp:byebye"
)

// Identity names the root device for the lifetime of the process. It is
// created once at startup and injected into every component that needs it,
// never regenerated.
type Identity struct {
	UUID   string
	Server string
}

// NewIdentity validates the configured UUID, or generates a fresh one when
// none is configured. Server is the implementation-identifying string sent
// in the SERVER header of every advertisement.
func NewIdentity(rawUUID, server string) (Identity, error) {
	if rawUUID == "" {
		return Identity{UUID: uuid.New().String(), Server: server}, nil
	}
	u, err := uuid.Parse(rawUUID)
	if err != nil {
		return Identity{}, fmt.Errorf("ssdp: invalid device uuid %q: %w", rawUUID, err)
	}
	return Identity{UUID: u.String(), Server: server}, nil
}

// USN returns the unique service name advertising this device for the given
// target, `uuid:<device-id>::<target>`.
func (id Identity) USN(target string) string {
	return fmt.Sprintf("uuid:%s::%s", id.UUID, target)
}

// DeviceUSN returns the bare `uuid:<device-id>` form used when the device
// announces itself rather than a role or type.
func (id Identity) DeviceUSN() string {
	return "uuid:" + id.UUID
}
