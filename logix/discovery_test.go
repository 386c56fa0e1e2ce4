package logix

import (
	"net"
	"reflect"
	"testing"

	"github.com/dhunt84971/cslogix/eip"
)

func TestDeviceInfoVendorName(t *testing.T) {
	tests := []struct {
		vendorID uint16
		want     string
	}{
		{1, "Rockwell Automation"},
		{2, "Schneider Electric"},
		{0x58, "Siemens"},
		{9999, "Vendor 9999"},
	}
	for _, tt := range tests {
		d := &DeviceInfo{VendorID: tt.vendorID}
		if got := d.VendorName(); got != tt.want {
			t.Errorf("DeviceInfo{VendorID: %d}.VendorName() = %q, want %q", tt.vendorID, got, tt.want)
		}
	}
}

func TestDeviceInfoDeviceTypeName(t *testing.T) {
	tests := []struct {
		devType uint16
		want    string
	}{
		{0x0E, "Programmable Logic Controller"},
		{0x0C, "Communications Adapter"},
		{0xFF, "Device Type 0xFF"},
	}
	for _, tt := range tests {
		d := &DeviceInfo{DeviceType: tt.devType}
		if got := d.DeviceTypeName(); got != tt.want {
			t.Errorf("DeviceInfo{DeviceType: 0x%02X}.DeviceTypeName() = %q, want %q", tt.devType, got, tt.want)
		}
	}
}

func TestIdentityToDeviceInfo(t *testing.T) {
	id := eip.Identity{
		VendorID:      1,
		DeviceType:    0x0E,
		ProductCode:   105,
		RevisionMajor: 32,
		RevisionMinor: 11,
		Status:        0x0030,
		SerialNumber:  0x12345678,
		ProductName:   "1756-L83E/B",
		IP:            net.ParseIP("192.168.1.10"),
		Port:          44818,
	}

	want := DeviceInfo{
		IP:          net.ParseIP("192.168.1.10"),
		Port:        44818,
		VendorID:    1,
		DeviceType:  0x0E,
		ProductCode: 105,
		Revision:    "32.11",
		Serial:      0x12345678,
		ProductName: "1756-L83E/B",
		Status:      0x0030,
	}

	got := identityToDeviceInfo(id)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("identityToDeviceInfo(%+v) = %+v, want %+v", id, got, want)
	}
}

func TestGetIdentityEmptyAddress(t *testing.T) {
	if _, err := GetIdentity(""); err == nil {
		t.Error("GetIdentity(\"\") error = nil, want error")
	}
}
