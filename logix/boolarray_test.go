package logix

import "testing"

func TestReadBoolArrayElementValidation(t *testing.T) {
	tests := []struct {
		name    string
		tagName string
	}{
		{"malformed tag path", "BoolArray[32"},
		{"no array index", "BoolArray"},
	}

	p := &PLC{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.ReadBoolArrayElement(tt.tagName); err == nil {
				t.Errorf("ReadBoolArrayElement(%q) error = nil, want error", tt.tagName)
			}
		})
	}
}

func TestWriteBoolArrayElementValidation(t *testing.T) {
	tests := []struct {
		name    string
		tagName string
	}{
		{"malformed tag path", "BoolArray[32"},
		{"no array index", "BoolArray"},
	}

	p := &PLC{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.WriteBoolArrayElement(tt.tagName, true); err == nil {
				t.Errorf("WriteBoolArrayElement(%q) error = nil, want error", tt.tagName)
			}
		})
	}
}

func TestClientBoolArrayElementNilGuards(t *testing.T) {
	var c *Client
	if _, err := c.ReadBoolArrayElement("BoolArray[32]"); err == nil {
		t.Error("(*Client)(nil).ReadBoolArrayElement() error = nil, want error")
	}
	if err := c.WriteBoolArrayElement("BoolArray[32]", true); err == nil {
		t.Error("(*Client)(nil).WriteBoolArrayElement() error = nil, want error")
	}
}
