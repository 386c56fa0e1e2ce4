package logix

import "testing"

func TestTagInfoIsProgram(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Program:MainProgram", true},
		{"Program:MainProgram.MyTag", false},
		{"MyTag", false},
		{"Program:", true},
	}
	for _, tt := range tests {
		info := TagInfo{Name: tt.name}
		if got := info.IsProgram(); got != tt.want {
			t.Errorf("TagInfo{Name: %q}.IsProgram() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTagInfoIsSystem(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"MyTag", false},
		{"__SomeSystemTag", true},
		{"Routine:Main", true},
		{"Map:IO_Map", true},
		{"Task:MainTask", true},
		{"UDI:MyUDT", true},
		{"Program:MainProgram.MyTag", false},
	}
	for _, tt := range tests {
		info := TagInfo{Name: tt.name}
		if got := info.IsSystem(); got != tt.want {
			t.Errorf("TagInfo{Name: %q}.IsSystem() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTagInfoIsRoutine(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Routine:Main", true},
		{"MyTag", false},
	}
	for _, tt := range tests {
		info := TagInfo{Name: tt.name}
		if got := info.IsRoutine(); got != tt.want {
			t.Errorf("TagInfo{Name: %q}.IsRoutine() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTagInfoIsReadable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"MyTag", true},
		{"Program:MainProgram.MyTag", true},
		{"Program:MainProgram", false},
		{"__SystemTag", false},
		{"Routine:Main", false},
	}
	for _, tt := range tests {
		info := TagInfo{Name: tt.name}
		if got := info.IsReadable(); got != tt.want {
			t.Errorf("TagInfo{Name: %q}.IsReadable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTagInfoElementCount(t *testing.T) {
	tests := []struct {
		name string
		dims []int
		want int
	}{
		{"scalar", nil, 1},
		{"1-D array", []int{10}, 10},
		{"2-D array", []int{3, 4}, 12},
		{"zero dimension clamps to 1", []int{0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := TagInfo{Dimensions: tt.dims}
			if got := info.ElementCount(); got != tt.want {
				t.Errorf("TagInfo{Dimensions: %v}.ElementCount() = %v, want %v", tt.dims, got, tt.want)
			}
		})
	}
}

func TestTagInfoIsArray(t *testing.T) {
	tests := []struct {
		name string
		dims []int
		want bool
	}{
		{"scalar", nil, false},
		{"array", []int{5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := TagInfo{Dimensions: tt.dims}
			if got := info.IsArray(); got != tt.want {
				t.Errorf("TagInfo{Dimensions: %v}.IsArray() = %v, want %v", tt.dims, got, tt.want)
			}
		})
	}
}
