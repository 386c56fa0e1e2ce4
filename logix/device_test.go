package logix

import (
	"reflect"
	"testing"
)

func TestPLCDevicePropertiesNilGuards(t *testing.T) {
	var p *PLC
	if _, err := p.GetModuleProperties(0); err == nil {
		t.Error("(*PLC)(nil).GetModuleProperties() error = nil, want error")
	}
	if _, err := p.GetDeviceProperties(); err == nil {
		t.Error("(*PLC)(nil).GetDeviceProperties() error = nil, want error")
	}

	p2 := &PLC{}
	if _, err := p2.GetModuleProperties(0); err == nil {
		t.Error("PLC{}.GetModuleProperties() error = nil, want error (no connection)")
	}
	if _, err := p2.GetDeviceProperties(); err == nil {
		t.Error("PLC{}.GetDeviceProperties() error = nil, want error (no connection)")
	}
}

func TestClientDevicePropertiesNilGuards(t *testing.T) {
	var c *Client
	if _, err := c.GetModuleProperties(0); err == nil {
		t.Error("(*Client)(nil).GetModuleProperties() error = nil, want error")
	}
	if _, err := c.GetDeviceProperties(); err == nil {
		t.Error("(*Client)(nil).GetDeviceProperties() error = nil, want error")
	}
}

func TestParseIdentityAttributesAll(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
		want    *DeviceInfo
	}{
		{
			name: "well-formed identity reply",
			data: []byte{
				SvcGetAttributesAll | 0x80, 0x00, StatusSuccess, 0x00,
				0x01, 0x00, // vendor 1
				0x0E, 0x00, // device type 14
				0x69, 0x00, // product code 105
				32, 11, // revision 32.11
				0x30, 0x00, // status
				0x78, 0x56, 0x34, 0x12, // serial
				0x04,             // name len
				'L', '8', '3', 'E',
			},
			want: &DeviceInfo{
				VendorID:    1,
				DeviceType:  14,
				ProductCode: 105,
				Revision:    "32.11",
				Status:      0x0030,
				Serial:      0x12345678,
				ProductName: "L83E",
			},
		},
		{
			name:    "unexpected reply service",
			data:    []byte{0x00, 0x00, StatusSuccess, 0x00},
			wantErr: true,
		},
		{
			name:    "error status",
			data:    []byte{SvcGetAttributesAll | 0x80, 0x00, 0x05, 0x00},
			wantErr: true,
		},
		{
			name:    "body too short",
			data:    []byte{SvcGetAttributesAll | 0x80, 0x00, StatusSuccess, 0x00, 0x01, 0x00},
			wantErr: true,
		},
		{
			name: "truncated product name",
			data: []byte{
				SvcGetAttributesAll | 0x80, 0x00, StatusSuccess, 0x00,
				0x01, 0x00, 0x0E, 0x00, 0x69, 0x00, 32, 11, 0x30, 0x00,
				0x78, 0x56, 0x34, 0x12,
				0x04, 'L', '8',
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIdentityAttributesAll(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseIdentityAttributesAll(%q) error = nil, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseIdentityAttributesAll(%q) unexpected error: %v", tt.name, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseIdentityAttributesAll(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}
