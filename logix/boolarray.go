package logix

import (
	"fmt"

	"github.com/dhunt84971/cslogix/cip"
)

// ReadBoolArrayElement reads a single element of a BOOL array backed by a
// DWORD (spec §4.B, §8 S3): tagName is the array reference with its index,
// e.g. "BoolArray[32]". The IOI compiler emits only index/32 as the element
// segment; the target bit within the returned DWORD is index mod 32.
func (p *PLC) ReadBoolArrayElement(tagName string) (bool, error) {
	pt, err := cip.ParseTagPath(tagName)
	if err != nil {
		return false, fmt.Errorf("ReadBoolArrayElement: %w", err)
	}
	if len(pt.ArrayIndices) == 0 {
		return false, fmt.Errorf("ReadBoolArrayElement: %q has no array index", tagName)
	}

	path, err := pt.CompileIOI(true)
	if err != nil {
		return false, fmt.Errorf("ReadBoolArrayElement: %w", err)
	}

	tag, _, err := p.readTagByPath(path, tagName, 1)
	if err != nil {
		return false, fmt.Errorf("ReadBoolArrayElement: %w", err)
	}

	bit := cip.BitWithinDword(pt.ArrayIndices[0])
	byteOff := int(bit) / 8
	if byteOff >= len(tag.Bytes) {
		return false, fmt.Errorf("ReadBoolArrayElement: bit %d out of range for %d-byte DWORD", bit, len(tag.Bytes))
	}
	return tag.Bytes[byteOff]&(1<<uint(bit%8)) != 0, nil
}

// WriteBoolArrayElement writes a single element of a BOOL array backed by a
// DWORD (spec §4.B, §8 S3), via a masked read-modify-write of the containing
// DWORD since the IOI can only address the whole word.
func (p *PLC) WriteBoolArrayElement(tagName string, value bool) error {
	pt, err := cip.ParseTagPath(tagName)
	if err != nil {
		return fmt.Errorf("WriteBoolArrayElement: %w", err)
	}
	if len(pt.ArrayIndices) == 0 {
		return fmt.Errorf("WriteBoolArrayElement: %q has no array index", tagName)
	}

	path, err := pt.CompileIOI(true)
	if err != nil {
		return fmt.Errorf("WriteBoolArrayElement: %w", err)
	}

	tag, _, err := p.readTagByPath(path, tagName, 1)
	if err != nil {
		return fmt.Errorf("WriteBoolArrayElement: %w", err)
	}

	bit := cip.BitWithinDword(pt.ArrayIndices[0])
	byteOff := int(bit) / 8
	if byteOff >= len(tag.Bytes) {
		return fmt.Errorf("WriteBoolArrayElement: bit %d out of range for %d-byte DWORD", bit, len(tag.Bytes))
	}

	data := append([]byte(nil), tag.Bytes...)
	mask := byte(1) << uint(bit%8)
	if value {
		data[byteOff] |= mask
	} else {
		data[byteOff] &^= mask
	}

	return p.writeTagByPath(path, tagName, TypeDWORD, data, 1)
}

// ReadBoolArrayElement is the Client-level entry point for a DWORD-backed
// BOOL array element read (spec §8 S3).
func (c *Client) ReadBoolArrayElement(tagName string) (bool, error) {
	if c == nil || c.plc == nil {
		return false, fmt.Errorf("ReadBoolArrayElement: nil client")
	}
	return c.plc.ReadBoolArrayElement(tagName)
}

// WriteBoolArrayElement is the Client-level entry point for a DWORD-backed
// BOOL array element write (spec §8 S3).
func (c *Client) WriteBoolArrayElement(tagName string, value bool) error {
	if c == nil || c.plc == nil {
		return fmt.Errorf("WriteBoolArrayElement: nil client")
	}
	return c.plc.WriteBoolArrayElement(tagName, value)
}
