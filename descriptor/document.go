// Package descriptor serves the UPnP device description document that the
// discovery responder points clients at, over a minimal per-connection TCP
// responder.
package descriptor

import (
	"bytes"
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/dialcast/dialcast/ssdp"
)

// Path is the well-known route of the descriptor document, referenced by the
// LOCATION header of every advertisement and search response.
const Path = "/upnp_device_descriptor.xml"

// Source supplies the descriptor document for one request.
type Source interface {
	Document() ([]byte, error)
}

// File serves a descriptor asset verbatim. The file is read on every request
// so the asset can be swapped without a restart; a missing file fails only
// the request that hit it.
type File string

func (f File) Document() ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("descriptor: read asset %s: %w", string(f), err)
	}
	return data, nil
}

// Static serves a document generated once at startup.
type Static []byte

func (s Static) Document() ([]byte, error) {
	return []byte(s), nil
}

// Device carries the fields of the generated device description.
type Device struct {
	UDN          string
	FriendlyName string
	Manufacturer string
	ModelName    string
}

// Generate renders the device description for a Basic:1 device. Used when no
// descriptor asset file is configured.
func Generate(dev Device) ([]byte, error) {
	root := etree.NewElement("root")
	root.CreateAttr("xmlns", "urn:schemas-upnp-org:device-1-0")

	spec := root.CreateElement("specVersion")
	spec.CreateElement("major").SetText("1")
	spec.CreateElement("minor").SetText("0")

	device := root.CreateElement("device")
	device.CreateElement("deviceType").SetText(ssdp.DeviceType)
	device.CreateElement("friendlyName").SetText(dev.FriendlyName)
	device.CreateElement("manufacturer").SetText(dev.Manufacturer)
	device.CreateElement("modelName").SetText(dev.ModelName)
	device.CreateElement("UDN").SetText("uuid:" + dev.UDN)

	doc := etree.NewDocument()
	doc.SetRoot(root)
	doc.Indent(2)

	buf := new(bytes.Buffer)
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	if _, err := doc.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("descriptor: render description: %w", err)
	}
	return buf.Bytes(), nil
}
