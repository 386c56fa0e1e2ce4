package logix

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dhunt84971/cslogix/cip"
)

// wallClockTimeClass is the CIP Wall Clock Time object (class 0x8B); instance
// 1, attribute 5 carries the current time as microseconds since 1970-01-01
// UTC, little-endian (spec §4.E, §6).
const (
	wallClockTimeClass     byte = 0x8B
	wallClockTimeInstance  byte = 0x01
	wallClockTimeAttribute byte = 0x05
)

// GetPLCTime reads the controller's Wall Clock Time attribute and returns it
// as microseconds since the Unix epoch, UTC.
func (p *PLC) GetPLCTime() (int64, error) {
	if p == nil || p.Connection == nil {
		return 0, fmt.Errorf("GetPLCTime: nil plc or connection")
	}

	path, err := cip.EPath().Class(wallClockTimeClass).Instance(wallClockTimeInstance).Attribute(wallClockTimeAttribute).Build()
	if err != nil {
		return 0, fmt.Errorf("GetPLCTime: failed to build path: %w", err)
	}

	req := cip.Request{Service: SvcGetAttributeSingle, Path: path}

	cipResp, err := p.sendCipRequest(req.Marshal())
	if err != nil {
		return 0, fmt.Errorf("GetPLCTime: %w", err)
	}

	resp, err := cip.ParseResponse(cipResp)
	if err != nil {
		return 0, fmt.Errorf("GetPLCTime: %w", err)
	}
	if !resp.IsSuccess() {
		return 0, parseCipError(resp.GeneralStatus, byte(len(resp.AdditionalStatus)), cipResp[4:])
	}
	if len(resp.Data) < 8 {
		return 0, fmt.Errorf("GetPLCTime: response missing timestamp")
	}

	return int64(binary.LittleEndian.Uint64(resp.Data[:8])), nil
}

// SetPLCTime writes the controller's Wall Clock Time attribute.
//
// Open question (spec §9): the reference implementation accepts a `dst`
// parameter that is never applied to the write; it is ignored here too and
// only the microsecond timestamp is written.
func (p *PLC) SetPLCTime(t time.Time) error {
	if p == nil || p.Connection == nil {
		return fmt.Errorf("SetPLCTime: nil plc or connection")
	}

	path, err := cip.EPath().Class(wallClockTimeClass).Instance(wallClockTimeInstance).Attribute(wallClockTimeAttribute).Build()
	if err != nil {
		return fmt.Errorf("SetPLCTime: failed to build path: %w", err)
	}

	micros := uint64(t.UnixMicro())
	value := binary.LittleEndian.AppendUint64(nil, micros)
	req := cip.Request{Service: SvcSetAttributeSingle, Path: path, Data: value}

	cipResp, err := p.sendCipRequest(req.Marshal())
	if err != nil {
		return fmt.Errorf("SetPLCTime: %w", err)
	}

	resp, err := cip.ParseResponse(cipResp)
	if err != nil {
		return fmt.Errorf("SetPLCTime: %w", err)
	}
	if !resp.IsSuccess() {
		return parseCipError(resp.GeneralStatus, byte(len(resp.AdditionalStatus)), cipResp[4:])
	}

	return nil
}

// GetPLCTime returns the controller's current time. When raw is true, the
// microsecond timestamp is returned directly instead of a time.Time (spec §6:
// "GetPLCTime(raw=false) -> Response{value: DateTime or i64 microseconds}").
func (c *Client) GetPLCTime(raw bool) (interface{}, error) {
	if c == nil || c.plc == nil {
		return nil, fmt.Errorf("GetPLCTime: nil client")
	}

	micros, err := c.plc.GetPLCTime()
	if err != nil {
		return nil, fmt.Errorf("GetPLCTime: %w", err)
	}
	if raw {
		return micros, nil
	}
	return time.UnixMicro(micros).UTC(), nil
}

// SetPLCTime sets the controller's Wall Clock Time to the given time (UTC
// recommended). dst is accepted for interface parity with the reference
// implementation but ignored (spec §9, Open Question 1).
func (c *Client) SetPLCTime(t time.Time, dst interface{}) error {
	if c == nil || c.plc == nil {
		return fmt.Errorf("SetPLCTime: nil client")
	}
	return c.plc.SetPLCTime(t)
}
