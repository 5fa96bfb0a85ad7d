package ssdp

import (
	"context"
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

// PacketWriter is the outbound half of the shared discovery socket.
type PacketWriter interface {
	WriteTo(b []byte, addr net.Addr) (int, error)
}

// Advertiser emits the NOTIFY burst for the virtual device: root device,
// the device itself, then its device type, in that fixed order. Slow SSDP
// receivers drop back-to-back datagrams, so each send is paced.
type Advertiser struct {
	conn     PacketWriter
	group    net.Addr
	identity Identity
	location string

	// Pace is the delay between consecutive NOTIFY sends, 100ms unless a
	// test shrinks it.
	Pace time.Duration

	// MaxAge is the advertised cache lifetime in seconds.
	MaxAge int

	// Interval overrides the re-broadcast period of KeepAlive, which is
	// MaxAge/2 seconds when left zero.
	Interval time.Duration
}

func NewAdvertiser(conn PacketWriter, id Identity, location string) *Advertiser {
	return &Advertiser{
		conn:     conn,
		group:    &net.UDPAddr{IP: net.ParseIP(MulticastAddr), Port: Port},
		identity: id,
		location: location,
		Pace:     100 * time.Millisecond,
		MaxAge:   DefaultMaxAge,
	}
}

// roles returns the three alive notifications in advertisement order.
func (a *Advertiser) roles() ([][]byte, error) {
	var msgs [][]byte
	for _, build := range []func(Identity, string, int) ([]byte, error){
		RootDeviceNotification,
		DeviceNotification,
		DeviceTypeNotification,
	} {
		msg, err := build(a.identity, a.location, a.MaxAge)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Broadcast sends the advertisement burst to the multicast group. A failed
// send aborts the sequence; advertising on a dead socket is pointless and
// SSDP recovers through re-advertisement, not retries.
func (a *Advertiser) Broadcast() error {
	msgs, err := a.roles()
	if err != nil {
		return err
	}
	for i, msg := range msgs {
		if i > 0 {
			time.Sleep(a.Pace)
		}
		if _, err := a.conn.WriteTo(msg, a.group); err != nil {
			return fmt.Errorf("ssdp: notify %d/%d: %w", i+1, len(msgs), err)
		}
	}
	log.Infof("✅ Advertised device %s on %v", a.identity.UUID, a.group)
	return nil
}

// ByeBye withdraws the three advertisements, best effort.
func (a *Advertiser) ByeBye() {
	for _, msg := range [][]byte{
		byeByeNotification("upnp:rootdevice", a.identity.USN("upnp:rootdevice")),
		byeByeNotification(a.identity.DeviceUSN(), a.identity.DeviceUSN()),
		byeByeNotification(DeviceType, a.identity.USN(DeviceType)),
	} {
		if _, err := a.conn.WriteTo(msg, a.group); err != nil {
			log.Warnf("❌ Failed to notify byebye: %v", err)
		}
	}
	log.Infof("👋 Sent byebye for device %s", a.identity.UUID)
}

// KeepAlive re-broadcasts the burst every max-age/2 seconds until the
// context ends, so caches never see the advertisement expire. A failed
// re-broadcast only logs; the next tick retries.
func (a *Advertiser) KeepAlive(ctx context.Context) {
	interval := a.Interval
	if interval == 0 {
		interval = time.Duration(a.MaxAge/2) * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Broadcast(); err != nil {
				log.Warnf("❌ Re-advertisement failed: %v", err)
			}
		}
	}
}
