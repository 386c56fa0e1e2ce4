package logix

import (
	"fmt"

	"github.com/dhunt84971/cslogix/cip"
)

// Message sends an arbitrary CIP request - the escape hatch for object
// classes this library has no dedicated operation for (spec §4.E, §6). Class
// and instance are promoted to their 16-bit logical segment encoding when
// they exceed 255; attribute, when given, is always 8-bit. data is appended
// verbatim as the service's request data.
func (p *PLC) Message(service byte, class uint16, instance uint16, attribute *byte, data []byte) ([]byte, error) {
	if p == nil || p.Connection == nil {
		return nil, fmt.Errorf("Message: nil plc or connection")
	}

	builder := cip.EPath()
	if class > 0xFF {
		builder = builder.Class16(class)
	} else {
		builder = builder.Class(byte(class))
	}
	if instance > 0xFF {
		builder = builder.Instance16(instance)
	} else {
		builder = builder.Instance(byte(instance))
	}
	if attribute != nil {
		builder = builder.Attribute(*attribute)
	}

	path, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("Message: failed to build path: %w", err)
	}

	req := cip.Request{Service: service, Path: path, Data: data}

	cipResp, err := p.sendCipRequest(req.Marshal())
	if err != nil {
		return nil, fmt.Errorf("Message: %w", err)
	}

	resp, err := cip.ParseResponse(cipResp)
	if err != nil {
		return nil, fmt.Errorf("Message: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, parseCipError(resp.GeneralStatus, byte(len(resp.AdditionalStatus)), cipResp[4:])
	}

	return resp.Data, nil
}

// Message is the Client-level entry point for spec §6's raw Message
// operation: Message(service, class, instance, attribute=None, data=None).
func (c *Client) Message(service byte, class uint16, instance uint16, attribute *byte, data []byte) ([]byte, error) {
	if c == nil || c.plc == nil {
		return nil, fmt.Errorf("Message: nil client")
	}
	return c.plc.Message(service, class, instance, attribute, data)
}
