package logix

import (
	"testing"
	"time"
)

func TestPLCGetPLCTimeNilGuards(t *testing.T) {
	var p *PLC
	if _, err := p.GetPLCTime(); err == nil {
		t.Error("(*PLC)(nil).GetPLCTime() error = nil, want error")
	}

	p2 := &PLC{}
	if _, err := p2.GetPLCTime(); err == nil {
		t.Error("PLC{}.GetPLCTime() error = nil, want error (no connection)")
	}
}

func TestPLCSetPLCTimeNilGuards(t *testing.T) {
	var p *PLC
	if err := p.SetPLCTime(time.Now()); err == nil {
		t.Error("(*PLC)(nil).SetPLCTime() error = nil, want error")
	}

	p2 := &PLC{}
	if err := p2.SetPLCTime(time.Now()); err == nil {
		t.Error("PLC{}.SetPLCTime() error = nil, want error (no connection)")
	}
}

func TestClientGetPLCTimeNilGuards(t *testing.T) {
	var c *Client
	if _, err := c.GetPLCTime(false); err == nil {
		t.Error("(*Client)(nil).GetPLCTime() error = nil, want error")
	}

	c2 := &Client{plc: &PLC{}}
	if _, err := c2.GetPLCTime(true); err == nil {
		t.Error("Client{plc: &PLC{}}.GetPLCTime() error = nil, want error (no connection)")
	}
}

func TestClientSetPLCTimeNilGuards(t *testing.T) {
	var c *Client
	if err := c.SetPLCTime(time.Now(), nil); err == nil {
		t.Error("(*Client)(nil).SetPLCTime() error = nil, want error")
	}

	c2 := &Client{plc: &PLC{}}
	if err := c2.SetPLCTime(time.Now(), nil); err == nil {
		t.Error("Client{plc: &PLC{}}.SetPLCTime() error = nil, want error (no connection)")
	}
}
