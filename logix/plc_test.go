package logix

import (
	"reflect"
	"testing"
)

func TestParseReadTagResponseEx(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		tagName     string
		wantErr     bool
		wantTag     *Tag
		wantPartial bool
	}{
		{
			name:    "success, DINT value",
			data:    []byte{SvcReadTag | 0x80, 0x00, StatusSuccess, 0x00, 0xC4, 0x00, 0x2A, 0x00, 0x00, 0x00},
			tagName: "MyDint",
			wantTag: &Tag{Name: "MyDint", DataType: 0x00C4, Bytes: []byte{0x2A, 0x00, 0x00, 0x00}},
		},
		{
			name:        "partial transfer",
			data:        []byte{SvcReadTag | 0x80, 0x00, StatusPartialTransfer, 0x00, 0xC3, 0x00, 0x01, 0x02},
			tagName:     "MyArray",
			wantTag:     &Tag{Name: "MyArray", DataType: 0x00C3, Bytes: []byte{0x01, 0x02}},
			wantPartial: true,
		},
		{
			name:    "unexpected reply service",
			data:    []byte{0x00, 0x00, StatusSuccess, 0x00},
			tagName: "MyDint",
			wantErr: true,
		},
		{
			name:    "general error status",
			data:    []byte{SvcReadTag | 0x80, 0x00, 0x05, 0x00},
			tagName: "MyDint",
			wantErr: true,
		},
		{
			name:    "missing data type field",
			data:    []byte{SvcReadTag | 0x80, 0x00, StatusSuccess, 0x00},
			tagName: "MyDint",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, partial, err := parseReadTagResponseEx(tt.data, tt.tagName)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseReadTagResponseEx(%q) error = nil, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseReadTagResponseEx(%q) unexpected error: %v", tt.name, err)
			}
			if !reflect.DeepEqual(tag, tt.wantTag) {
				t.Errorf("parseReadTagResponseEx(%q) Tag = %+v, want %+v", tt.name, tag, tt.wantTag)
			}
			if partial != tt.wantPartial {
				t.Errorf("parseReadTagResponseEx(%q) partial = %v, want %v", tt.name, partial, tt.wantPartial)
			}
		})
	}
}

func TestParseReadTagFragmentedResponse(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		tagName     string
		wantErr     bool
		wantTag     *Tag
		wantPartial bool
	}{
		{
			name:    "complete, final chunk",
			data:    []byte{SvcReadTagFragmented | 0x80, 0x00, StatusSuccess, 0x00, 0xC4, 0x00, 0x01, 0x02, 0x03, 0x04},
			tagName: "MyReal",
			wantTag: &Tag{Name: "MyReal", DataType: 0x00C4, Bytes: []byte{0x01, 0x02, 0x03, 0x04}},
		},
		{
			name:        "more data available",
			data:        []byte{SvcReadTagFragmented | 0x80, 0x00, StatusPartialTransfer, 0x00, 0xC4, 0x00, 0x01, 0x02},
			tagName:     "MyReal",
			wantTag:     &Tag{Name: "MyReal", DataType: 0x00C4, Bytes: []byte{0x01, 0x02}},
			wantPartial: true,
		},
		{
			name:    "unexpected reply service",
			data:    []byte{SvcReadTag | 0x80, 0x00, StatusSuccess, 0x00},
			tagName: "MyReal",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, partial, err := parseReadTagFragmentedResponse(tt.data, tt.tagName)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseReadTagFragmentedResponse(%q) error = nil, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseReadTagFragmentedResponse(%q) unexpected error: %v", tt.name, err)
			}
			if !reflect.DeepEqual(tag, tt.wantTag) {
				t.Errorf("parseReadTagFragmentedResponse(%q) Tag = %+v, want %+v", tt.name, tag, tt.wantTag)
			}
			if partial != tt.wantPartial {
				t.Errorf("parseReadTagFragmentedResponse(%q) partial = %v, want %v", tt.name, partial, tt.wantPartial)
			}
		})
	}
}

func TestParseWriteTagResponse(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name: "success",
			data: []byte{SvcWriteTag | 0x80, 0x00, StatusSuccess, 0x00},
		},
		{
			name:    "unexpected reply service",
			data:    []byte{0x00, 0x00, StatusSuccess, 0x00},
			wantErr: true,
		},
		{
			name:    "error status",
			data:    []byte{SvcWriteTag | 0x80, 0x00, 0x0A, 0x00},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseWriteTagResponse(tt.data)
			if tt.wantErr && err == nil {
				t.Fatalf("parseWriteTagResponse(%q) error = nil, want error", tt.name)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("parseWriteTagResponse(%q) unexpected error: %v", tt.name, err)
			}
		})
	}
}

func TestUnwrapUCMMResponse(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
		want    []byte
	}{
		{
			name: "not a UCMM reply, passed through",
			data: []byte{SvcReadTag | 0x80, 0x00, StatusSuccess, 0x00, 0xC3, 0x00},
			want: []byte{SvcReadTag | 0x80, 0x00, StatusSuccess, 0x00, 0xC3, 0x00},
		},
		{
			name: "unconnected send reply, embedded response extracted",
			data: []byte{0xD2, 0x00, StatusSuccess, 0x00, SvcReadTag | 0x80, 0x00, StatusSuccess, 0x00, 0xC3, 0x00},
			want: []byte{SvcReadTag | 0x80, 0x00, StatusSuccess, 0x00, 0xC3, 0x00},
		},
		{
			name:    "unconnected send reply with error status",
			data:    []byte{0xD2, 0x00, 0x05, 0x00},
			wantErr: true,
		},
		{
			name:    "too short",
			data:    []byte{0x00, 0x00},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unwrapUCMMResponse(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("unwrapUCMMResponse(%q) error = nil, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("unwrapUCMMResponse(%q) unexpected error: %v", tt.name, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("unwrapUCMMResponse(%q) = % x, want % x", tt.name, got, tt.want)
			}
		})
	}
}

func TestCipStatusName(t *testing.T) {
	tests := []struct {
		status byte
		want   string
	}{
		{StatusSuccess, "Success"},
		{StatusPartialTransfer, "Partial transfer"},
		{0xFE, "Unknown error 254"},
	}
	for _, tt := range tests {
		if got := cipStatusName(tt.status); got != tt.want {
			t.Errorf("cipStatusName(%#x) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
