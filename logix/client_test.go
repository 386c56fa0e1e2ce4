package logix

import "testing"

func TestClientTagListNilGuards(t *testing.T) {
	var c *Client
	if _, err := c.GetProgramsList(); err == nil {
		t.Error("(*Client)(nil).GetProgramsList() error = nil, want error")
	}
	if _, err := c.GetProgramTagList("MainProgram"); err == nil {
		t.Error("(*Client)(nil).GetProgramTagList() error = nil, want error")
	}
	if _, err := c.GetTagList(false); err == nil {
		t.Error("(*Client)(nil).GetTagList() error = nil, want error")
	}
	if _, err := c.Read("MyTag"); err == nil {
		t.Error("(*Client)(nil).Read() error = nil, want error")
	}
}

func TestClientReadNoArgs(t *testing.T) {
	c := &Client{plc: &PLC{}}
	got, err := c.Read()
	if err != nil {
		t.Fatalf("Client.Read() with no tag names: unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Client.Read() with no tag names = %v, want nil", got)
	}
}
