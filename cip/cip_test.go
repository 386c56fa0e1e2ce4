package cip

import (
	"reflect"
	"testing"
)

func TestRequestMarshal(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []byte
	}{
		{
			name: "no path, no data",
			req:  Request{Service: 0x01},
			want: []byte{0x01, 0x00},
		},
		{
			name: "class/instance path, no data",
			req: Request{
				Service: 0x0E,
				Path:    EPath_t{0x20, 0x6B, 0x24, 0x01},
			},
			want: []byte{0x0E, 0x02, 0x20, 0x6B, 0x24, 0x01},
		},
		{
			name: "path and data",
			req: Request{
				Service: 0x4C,
				Path:    EPath_t{0x91, 0x04, 'T', 'e', 's', 't'},
				Data:    []byte{0x01, 0x00},
			},
			want: []byte{0x4C, 0x03, 0x91, 0x04, 'T', 'e', 's', 't', 0x01, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.Marshal()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Request.Marshal() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		wantErr bool
		want    Response
	}{
		{
			name: "success, no additional status, no data",
			raw:  []byte{0xCC, 0x00, 0x00, 0x00},
			want: Response{ReplyService: 0xCC, GeneralStatus: 0x00, AdditionalStatus: []uint16{}, Data: []byte{}},
		},
		{
			name: "success with data",
			raw:  []byte{0xCC, 0x00, 0x00, 0x00, 0xC3, 0x00, 0x2A, 0x00},
			want: Response{ReplyService: 0xCC, GeneralStatus: 0x00, AdditionalStatus: []uint16{}, Data: []byte{0xC3, 0x00, 0x2A, 0x00}},
		},
		{
			name: "partial transfer status with one additional status word",
			raw:  []byte{0xCC, 0x00, 0x06, 0x01, 0x05, 0x00, 0xAA},
			want: Response{ReplyService: 0xCC, GeneralStatus: 0x06, AdditionalStatus: []uint16{0x0005}, Data: []byte{0xAA}},
		},
		{
			name:    "too short",
			raw:     []byte{0xCC, 0x00, 0x00},
			wantErr: true,
		},
		{
			name:    "truncated additional status",
			raw:     []byte{0xCC, 0x00, 0x01, 0x02},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseResponse(% x) error = nil, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResponse(% x) unexpected error: %v", tt.raw, err)
			}
			if got.ReplyService != tt.want.ReplyService {
				t.Errorf("ParseResponse(% x) ReplyService = %v, want %v", tt.raw, got.ReplyService, tt.want.ReplyService)
			}
			if got.GeneralStatus != tt.want.GeneralStatus {
				t.Errorf("ParseResponse(% x) GeneralStatus = %v, want %v", tt.raw, got.GeneralStatus, tt.want.GeneralStatus)
			}
			if !reflect.DeepEqual(got.AdditionalStatus, tt.want.AdditionalStatus) {
				t.Errorf("ParseResponse(% x) AdditionalStatus = %v, want %v", tt.raw, got.AdditionalStatus, tt.want.AdditionalStatus)
			}
			if !reflect.DeepEqual(got.Data, tt.want.Data) {
				t.Errorf("ParseResponse(% x) Data = %v, want %v", tt.raw, got.Data, tt.want.Data)
			}
		})
	}
}

func TestResponseIsSuccess(t *testing.T) {
	tests := []struct {
		status byte
		want   bool
	}{
		{0x00, true},
		{0x06, false},
		{0x05, false},
	}
	for _, tt := range tests {
		r := Response{GeneralStatus: tt.status}
		if got := r.IsSuccess(); got != tt.want {
			t.Errorf("Response{GeneralStatus: %#x}.IsSuccess() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestResponseIsPartialTransfer(t *testing.T) {
	tests := []struct {
		status byte
		want   bool
	}{
		{0x06, true},
		{0x00, false},
		{0x05, false},
	}
	for _, tt := range tests {
		r := Response{GeneralStatus: tt.status}
		if got := r.IsPartialTransfer(); got != tt.want {
			t.Errorf("Response{GeneralStatus: %#x}.IsPartialTransfer() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
