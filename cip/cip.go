package cip

import "fmt"

// Request is a single CIP service request: the service code, a path (logical
// or an IOI compiled from a tag reference), and service-specific data
// appended after the path. Every operation in the orchestrator - Read Tag,
// Write Tag, Get Attribute Single, GetInstanceAttributeList, raw Message -
// shares this shape (spec §4.E).
type Request struct {
	Service byte
	Path    EPath_t
	Data    []byte
}

// Marshal serializes the request as service | path_word_len | path | data.
func (r Request) Marshal() []byte {
	path := r.Path
	out := make([]byte, 0, 2+len(path)+len(r.Data))
	out = append(out, r.Service)
	out = append(out, r.Path.WordLen())
	out = append(out, path...)
	out = append(out, r.Data...)
	return out
}

// Response is a parsed CIP service reply: the reply service byte, general
// status, any additional status words, and the service-specific data that
// follows them.
type Response struct {
	ReplyService     byte
	GeneralStatus    byte
	AdditionalStatus []uint16
	Data             []byte
}

// IsSuccess reports whether the general status is 0x00.
func (r Response) IsSuccess() bool {
	return r.GeneralStatus == 0x00
}

// IsPartialTransfer reports whether the general status is 0x06 - more data
// is available and the caller should re-request with an advanced cursor.
func (r Response) IsPartialTransfer() bool {
	return r.GeneralStatus == 0x06
}

// ParseResponse splits a raw CIP reply into its common header fields and
// trailing data. Every CIP reply begins with
// {reply_service, reserved, general_status, additional_status_size_words,
// additional_status...} (spec §4.E); this is the shared envelope every
// orchestrator operation (read, write, browse, device query) must strip
// before interpreting its own payload.
func ParseResponse(raw []byte) (Response, error) {
	if len(raw) < 4 {
		return Response{}, fmt.Errorf("cip: response too short: %d bytes", len(raw))
	}

	addlWords := int(raw[3])
	headerLen := 4 + addlWords*2
	if len(raw) < headerLen {
		return Response{}, fmt.Errorf("cip: response missing %d additional status word(s)", addlWords)
	}

	addl := make([]uint16, addlWords)
	for i := 0; i < addlWords; i++ {
		off := 4 + i*2
		addl[i] = uint16(raw[off]) | uint16(raw[off+1])<<8
	}

	return Response{
		ReplyService:     raw[0],
		GeneralStatus:    raw[2],
		AdditionalStatus: addl,
		Data:             raw[headerLen:],
	}, nil
}
