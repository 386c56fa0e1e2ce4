package logix

import (
	"encoding/binary"
	"fmt"

	"github.com/dhunt84971/cslogix/cip"
)

// GetModuleProperties queries the Identity Object (class 0x01, instance 1) of
// the module occupying a specific backplane slot via an unconnected
// GetAttributesAll, routed through (backplane, slot) (spec §4.E). This is how
// a connection to a bridging Ethernet module (e.g. a 1756-EN2T) reaches the
// identity of the CPU sitting in a different chassis slot.
func (p *PLC) GetModuleProperties(slot byte) (*DeviceInfo, error) {
	if p == nil || p.Connection == nil {
		return nil, fmt.Errorf("GetModuleProperties: nil plc or connection")
	}

	path, err := cip.EPath().Class(0x01).Instance(1).Build()
	if err != nil {
		return nil, fmt.Errorf("GetModuleProperties: failed to build path: %w", err)
	}

	req := cip.Request{Service: SvcGetAttributesAll, Path: path}

	cpf := buildRoutedCpf(req.Marshal(), []byte{0x01, slot})
	resp, err := p.Connection.SendRRData(*cpf)
	if err != nil {
		return nil, fmt.Errorf("GetModuleProperties: %w", err)
	}
	if len(resp.Items) < 2 {
		return nil, fmt.Errorf("GetModuleProperties: expected 2 CPF items, got %d", len(resp.Items))
	}

	cipResp, err := unwrapUCMMResponse(resp.Items[1].Data)
	if err != nil {
		return nil, fmt.Errorf("GetModuleProperties: %w", err)
	}

	return parseIdentityAttributesAll(cipResp)
}

// GetDeviceProperties queries the Identity Object (class 0x01, instance 1) of
// the device the PLC handle is already talking to, with no backplane routing
// (spec §4.E, §6) - used when the target itself, not a module behind it, is
// the subject of the query.
func (p *PLC) GetDeviceProperties() (*DeviceInfo, error) {
	if p == nil || p.Connection == nil {
		return nil, fmt.Errorf("GetDeviceProperties: nil plc or connection")
	}

	path, err := cip.EPath().Class(0x01).Instance(1).Build()
	if err != nil {
		return nil, fmt.Errorf("GetDeviceProperties: failed to build path: %w", err)
	}

	req := cip.Request{Service: SvcGetAttributesAll, Path: path}

	cipResp, err := p.sendCipRequest(req.Marshal())
	if err != nil {
		return nil, fmt.Errorf("GetDeviceProperties: %w", err)
	}

	return parseIdentityAttributesAll(cipResp)
}

// parseIdentityAttributesAll parses a GetAttributesAll reply from the
// Identity Object into a Device record (spec §4.E: "parse the reply into a
// Device starting at CIP offset 44"). Our transport layer already strips the
// EIP/CPF/UCMM envelope before a caller sees cipResp, so the equivalent
// landing point is the standard reply-header skip (reply_service, reserved,
// status, addl_status_size[, addl_status]) used by every other parser in
// this package, followed directly by the Identity Object's attribute layout:
// vendor_id:u16, device_type:u16, product_code:u16, revision_major:u8,
// revision_minor:u8, status:u16, serial:u32, name_len:u8, name:[]byte.
func parseIdentityAttributesAll(data []byte) (*DeviceInfo, error) {
	resp, err := cip.ParseResponse(data)
	if err != nil {
		return nil, err
	}

	if resp.ReplyService != (SvcGetAttributesAll | 0x80) {
		return nil, fmt.Errorf("unexpected reply service: 0x%02X", resp.ReplyService)
	}
	if !resp.IsSuccess() {
		return nil, parseCipError(resp.GeneralStatus, byte(len(resp.AdditionalStatus)), data[4:])
	}

	body := resp.Data
	if len(body) < 15 {
		return nil, fmt.Errorf("GetAttributesAll reply too short: %d bytes", len(body))
	}

	vendor := binary.LittleEndian.Uint16(body[0:2])
	devType := binary.LittleEndian.Uint16(body[2:4])
	prodCode := binary.LittleEndian.Uint16(body[4:6])
	revMajor := body[6]
	revMinor := body[7]
	statusWord := binary.LittleEndian.Uint16(body[8:10])
	serial := binary.LittleEndian.Uint32(body[10:14])
	nameLen := int(body[14])
	if 15+nameLen > len(body) {
		return nil, fmt.Errorf("GetAttributesAll reply: product name truncated")
	}
	name := string(body[15 : 15+nameLen])

	return &DeviceInfo{
		VendorID:    vendor,
		DeviceType:  devType,
		ProductCode: prodCode,
		Revision:    fmt.Sprintf("%d.%d", revMajor, revMinor),
		Status:      statusWord,
		Serial:      serial,
		ProductName: name,
	}, nil
}

// GetModuleProperties is the Client-level entry point for spec §6's
// GetModuleProperties(slot) operation.
func (c *Client) GetModuleProperties(slot byte) (*DeviceInfo, error) {
	if c == nil || c.plc == nil {
		return nil, fmt.Errorf("GetModuleProperties: nil client")
	}
	return c.plc.GetModuleProperties(slot)
}

// GetDeviceProperties is the Client-level entry point for spec §6's
// GetDeviceProperties() operation.
func (c *Client) GetDeviceProperties() (*DeviceInfo, error) {
	if c == nil || c.plc == nil {
		return nil, fmt.Errorf("GetDeviceProperties: nil client")
	}
	return c.plc.GetDeviceProperties()
}
