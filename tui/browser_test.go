package tui

import (
	"testing"

	"github.com/dhunt84971/cslogix/logix"
)

func TestParseWriteValue(t *testing.T) {
	tests := []struct {
		raw  string
		want interface{}
	}{
		{"true", true},
		{"false", false},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"3.14", 3.14},
		{"hello", "hello"},
	}

	for _, tt := range tests {
		got, err := parseWriteValue(tt.raw)
		if err != nil {
			t.Fatalf("parseWriteValue(%q) returned error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("parseWriteValue(%q) = %v (%T), want %v (%T)", tt.raw, got, got, tt.want, tt.want)
		}
	}
}

func TestParseWriteValueEmpty(t *testing.T) {
	if _, err := parseWriteValue(""); err == nil {
		t.Fatal("expected error for empty value")
	}
}

func TestNewAppDefaultsToFirstPLC(t *testing.T) {
	lookup := func(string) *logix.Client { return nil }
	a := NewApp([]string{"line2", "line1"}, lookup)
	if a.selectedPLC != "line1" {
		t.Errorf("selectedPLC = %q, want %q (names should be sorted)", a.selectedPLC, "line1")
	}
}
