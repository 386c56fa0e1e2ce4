package logix

import "testing"

func TestPLCMessageNilGuards(t *testing.T) {
	var p *PLC
	if _, err := p.Message(0x0E, 0x01, 0x01, nil, nil); err == nil {
		t.Error("(*PLC)(nil).Message() error = nil, want error")
	}

	p2 := &PLC{}
	if _, err := p2.Message(0x0E, 0x01, 0x01, nil, nil); err == nil {
		t.Error("PLC{}.Message() error = nil, want error (no connection)")
	}
}

func TestClientMessageNilGuards(t *testing.T) {
	var c *Client
	if _, err := c.Message(0x0E, 0x01, 0x01, nil, nil); err == nil {
		t.Error("(*Client)(nil).Message() error = nil, want error")
	}

	c2 := &Client{plc: &PLC{}}
	if _, err := c2.Message(0x0E, 0x01, 0x01, nil, nil); err == nil {
		t.Error("Client{plc: &PLC{}}.Message() error = nil, want error (no connection)")
	}
}
