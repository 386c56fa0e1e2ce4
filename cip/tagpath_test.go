package cip

import (
	"reflect"
	"testing"
)

func TestParseTagPath(t *testing.T) {
	tests := []struct {
		input        string
		wantErr      bool
		wantProgram  string
		wantBase     string
		wantArrayIdx []uint32
		wantMembers  []TagMember
		wantBitIndex *uint8
	}{
		{
			input:    "MyTag",
			wantBase: "MyTag",
		},
		{
			input:        "MyArray[3]",
			wantBase:     "MyArray",
			wantArrayIdx: []uint32{3},
		},
		{
			input:        "MyArray[3,4]",
			wantBase:     "MyArray",
			wantArrayIdx: []uint32{3, 4},
		},
		{
			input:       "MyTag.Sub",
			wantBase:    "MyTag",
			wantMembers: []TagMember{{Name: "Sub"}},
		},
		{
			input:       "MyTag.Sub[2]",
			wantBase:    "MyTag",
			wantMembers: []TagMember{{Name: "Sub", Indices: []uint32{2}}},
		},
		{
			input:        "Program:MainProgram.MyTag",
			wantProgram:  "Program:MainProgram",
			wantBase:     "MyTag",
		},
		{
			input:        "program:MainProgram.MyTag",
			wantProgram:  "program:MainProgram",
			wantBase:     "MyTag",
		},
		{
			input:        "MyDINT.5",
			wantBase:     "MyDINT",
			wantBitIndex: uint8Ptr(5),
		},
		{
			input:        "Program:MainProgram.MyArray[5].Member.3",
			wantProgram:  "Program:MainProgram",
			wantBase:     "MyArray",
			wantArrayIdx: []uint32{5},
			wantMembers:  []TagMember{{Name: "Member"}},
			wantBitIndex: uint8Ptr(3),
		},
		{
			input:   "",
			wantErr: true,
		},
		{
			input:   "Program:MainProgram",
			wantErr: true,
		},
		{
			input:   "MyArray[3",
			wantErr: true,
		},
		{
			input:   "MyArray[x]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pt, err := ParseTagPath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTagPath(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTagPath(%q) unexpected error: %v", tt.input, err)
			}
			if pt.ProgramName != tt.wantProgram {
				t.Errorf("ParseTagPath(%q) ProgramName = %v, want %v", tt.input, pt.ProgramName, tt.wantProgram)
			}
			if pt.BaseTag != tt.wantBase {
				t.Errorf("ParseTagPath(%q) BaseTag = %v, want %v", tt.input, pt.BaseTag, tt.wantBase)
			}
			if !reflect.DeepEqual(pt.ArrayIndices, tt.wantArrayIdx) {
				t.Errorf("ParseTagPath(%q) ArrayIndices = %v, want %v", tt.input, pt.ArrayIndices, tt.wantArrayIdx)
			}
			if !reflect.DeepEqual(pt.Members, tt.wantMembers) {
				t.Errorf("ParseTagPath(%q) Members = %v, want %v", tt.input, pt.Members, tt.wantMembers)
			}
			if (pt.BitIndex == nil) != (tt.wantBitIndex == nil) {
				t.Errorf("ParseTagPath(%q) BitIndex = %v, want %v", tt.input, pt.BitIndex, tt.wantBitIndex)
			} else if pt.BitIndex != nil && *pt.BitIndex != *tt.wantBitIndex {
				t.Errorf("ParseTagPath(%q) BitIndex = %v, want %v", tt.input, *pt.BitIndex, *tt.wantBitIndex)
			}
		})
	}
}

func TestParsedTagCompileIOI(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		isDwordBoolArray bool
		wantErr          bool
		want             EPath_t
	}{
		{
			name:  "bare tag",
			input: "Test",
			want:  EPath_t{0x91, 0x04, 'T', 'e', 's', 't'},
		},
		{
			name:  "array element, 8-bit member segment",
			input: "MyArray[3]",
			want:  EPath_t{0x91, 0x07, 'M', 'y', 'A', 'r', 'r', 'a', 'y', 0x00, 0x28, 0x03},
		},
		{
			name:  "dotted member",
			input: "MyTag.Sub",
			want: EPath_t{
				0x91, 0x05, 'M', 'y', 'T', 'a', 'g', 0x00,
				0x91, 0x03, 'S', 'u', 'b', 0x00,
			},
		},
		{
			name:             "dword bool array backing divides by 32",
			input:            "MyDwordArray[40]",
			isDwordBoolArray: true,
			want: EPath_t{
				0x91, 0x0C, 'M', 'y', 'D', 'w', 'o', 'r', 'd', 'A', 'r', 'r', 'a', 'y',
				0x28, 0x01,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := ParseTagPath(tt.input)
			if err != nil {
				t.Fatalf("ParseTagPath(%q) unexpected error: %v", tt.input, err)
			}
			got, err := pt.CompileIOI(tt.isDwordBoolArray)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CompileIOI(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompileIOI(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CompileIOI(%q) = % x, want % x", tt.input, got, tt.want)
			}
		})
	}
}

func TestBitWithinDword(t *testing.T) {
	tests := []struct {
		index uint32
		want  uint32
	}{
		{0, 0},
		{31, 31},
		{32, 0},
		{40, 8},
		{63, 31},
		{64, 0},
	}

	for _, tt := range tests {
		got := BitWithinDword(tt.index)
		if got != tt.want {
			t.Errorf("BitWithinDword(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func uint8Ptr(v uint8) *uint8 { return &v }
