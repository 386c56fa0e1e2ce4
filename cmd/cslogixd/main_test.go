package main

import (
	"testing"

	"github.com/dhunt84971/cslogix/config"
)

func newTestPoller(plcName string, tags []config.TagSelection) *poller {
	p := newPoller()
	p.plcs[plcName] = &polledPLC{
		cfg:        &config.PLCConfig{Name: plcName, Tags: tags},
		lastValues: make(map[string]interface{}),
	}
	return p
}

func TestPollerIsWritable(t *testing.T) {
	p := newTestPoller("line1", []config.TagSelection{
		{Name: "Speed", Writable: true},
		{Name: "Status", Writable: false},
	})

	if !p.isWritable("line1", "Speed") {
		t.Error("expected Speed to be writable")
	}
	if p.isWritable("line1", "Status") {
		t.Error("expected Status to not be writable")
	}
	if p.isWritable("line1", "NoSuchTag") {
		t.Error("expected unknown tag to not be writable")
	}
	if p.isWritable("noSuchPLC", "Speed") {
		t.Error("expected unknown PLC to not be writable")
	}
}

func TestPollerWriteTagUnknownPLC(t *testing.T) {
	p := newPoller()
	if err := p.writeTag("missing", "Tag", 1); err == nil {
		t.Error("expected error writing to an unregistered PLC")
	}
}

func TestPollerTagTypeUnknownPLC(t *testing.T) {
	p := newPoller()
	if got := p.tagType("missing", "Tag"); got != 0 {
		t.Errorf("tagType for unknown PLC = %d, want 0", got)
	}
}
