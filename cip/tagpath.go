package cip

import (
	"fmt"
	"strconv"
	"strings"
)

// TagMember is one dotted segment of a tag path after the base tag, carrying
// its own optional bracketed indices (e.g. the ".Sub[2]" in "Tag.Sub[2]").
type TagMember struct {
	Name    string
	Indices []uint32
}

// ParsedTag is the structural form of a textual Logix tag reference, produced
// by splitting on '.' and peeling off the optional "Program:<Name>" prefix,
// the base tag and its array indices, any member chain, and a trailing bare
// decimal segment as a bit index (spec §4.B).
type ParsedTag struct {
	ProgramName  string   // full "Program:<Name>" prefix, empty when controller-scoped
	BaseTag      string
	ArrayIndices []uint32
	Members      []TagMember
	BitIndex     *uint8 // set when the terminal segment was a bare decimal literal, 0-63
}

// ParseTagPath parses a textual Logix tag reference such as
// "Program:MainProgram.MyArray[5].Member.3" into its structural components.
func ParseTagPath(path string) (*ParsedTag, error) {
	if path == "" {
		return nil, fmt.Errorf("ParseTagPath: empty tag path")
	}

	segments := strings.Split(path, ".")

	pt := &ParsedTag{}
	if len(segments[0]) >= 8 && strings.EqualFold(segments[0][:8], "Program:") {
		pt.ProgramName = segments[0]
		segments = segments[1:]
	}
	if len(segments) == 0 || segments[0] == "" {
		return nil, fmt.Errorf("ParseTagPath: %q has no base tag", path)
	}

	base, baseIdx, err := splitBracketIndices(segments[0])
	if err != nil {
		return nil, fmt.Errorf("ParseTagPath: %w", err)
	}
	pt.BaseTag = base
	pt.ArrayIndices = baseIdx
	segments = segments[1:]

	if n := len(segments); n > 0 {
		if bit, ok := parseBitIndex(segments[n-1]); ok {
			pt.BitIndex = &bit
			segments = segments[:n-1]
		}
	}

	for _, seg := range segments {
		name, idx, err := splitBracketIndices(seg)
		if err != nil {
			return nil, fmt.Errorf("ParseTagPath: %w", err)
		}
		pt.Members = append(pt.Members, TagMember{Name: name, Indices: idx})
	}

	return pt, nil
}

// parseBitIndex reports whether seg is a bare decimal literal in [0,63] - the
// terminal "bit-of-word" form ("MyDINT.5") rather than a member name.
func parseBitIndex(seg string) (uint8, bool) {
	if seg == "" || strings.ContainsAny(seg, "[]") {
		return 0, false
	}
	for _, c := range seg {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(seg, 10, 8)
	if err != nil || n > 63 {
		return 0, false
	}
	return uint8(n), true
}

// splitBracketIndices splits "Name[i,j,k]" into its name and decimal indices;
// a segment with no brackets returns nil indices.
func splitBracketIndices(seg string) (string, []uint32, error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil, nil
	}
	if !strings.HasSuffix(seg, "]") {
		return "", nil, fmt.Errorf("malformed array index in %q", seg)
	}

	name := seg[:open]
	inner := seg[open+1 : len(seg)-1]
	fields := strings.Split(inner, ",")
	indices := make([]uint32, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return "", nil, fmt.Errorf("invalid array index %q in %q", f, seg)
		}
		indices = append(indices, uint32(n))
	}
	return name, indices, nil
}

// CompileIOI emits the CIP IOI byte sequence for the parsed tag path
// (spec §4.B): the optional program segment, the base tag segment, element
// segments for the base tag's array indices, then each member's symbolic
// segment followed by its own element segments.
//
// isDwordBoolArray marks a tag whose declared type is DWORD used as BOOL
// array backing storage: only the first array index is emitted, divided by
// 32 (the remaining bit position is resolved by the caller, not the IOI).
func (pt *ParsedTag) CompileIOI(isDwordBoolArray bool) (EPath_t, error) {
	if pt == nil || pt.BaseTag == "" {
		return nil, fmt.Errorf("CompileIOI: parsed tag has no base tag")
	}

	b := EPath()
	if pt.ProgramName != "" {
		b = b.add(symbolicSegmentAsciiExt([]byte(pt.ProgramName)))
	}
	b = b.add(symbolicSegmentAsciiExt([]byte(pt.BaseTag)))

	indices := pt.ArrayIndices
	if isDwordBoolArray && len(indices) > 0 {
		indices = []uint32{indices[0] / 32}
	}
	for _, idx := range indices {
		b = b.add(memberSegment(idx))
	}

	for _, m := range pt.Members {
		b = b.add(symbolicSegmentAsciiExt([]byte(m.Name)))
		for _, idx := range m.Indices {
			b = b.add(memberSegment(idx))
		}
	}

	return b.Build()
}

// BitWithinDword returns the bit position within the DWORD backing a BOOL
// array element at index i (spec §4.B: bit_within_dword(i) = i mod 32).
func BitWithinDword(i uint32) uint32 {
	return i % 32
}
