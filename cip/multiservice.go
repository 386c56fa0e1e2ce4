package cip

import (
	"encoding/binary"
	"fmt"
)

// Multiple Service Packet (service 0x0A) allows batching multiple CIP requests
// into a single round trip - the mechanism behind Client.Read's tag-group
// batching (spec §4.E, §8 S6).
const SvcMultipleServicePacket byte = 0x0A

// maxBatchedServices caps a Multiple Service Packet at 200 embedded requests
// before the two-byte offset table itself risks overflowing the packet the
// controller is willing to accept in a single unconnected message.
const maxBatchedServices = 200

// MultiServiceRequest represents a single request within a Multiple Service Packet.
type MultiServiceRequest struct {
	Service byte
	Path    EPath_t
	Data    []byte
}

// BuildMultipleServiceRequest builds a Multiple Service Packet request.
// Each individual request is wrapped and offsets are calculated.
func BuildMultipleServiceRequest(requests []MultiServiceRequest) ([]byte, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("MultipleService: no requests provided")
	}
	if len(requests) > maxBatchedServices {
		return nil, fmt.Errorf("MultipleService: too many requests (%d), max %d", len(requests), maxBatchedServices)
	}

	// Build each individual request and calculate offsets
	serviceData := make([][]byte, len(requests))
	for i, req := range requests {
		serviceData[i] = Request{Service: req.Service, Path: req.Path, Data: req.Data}.Marshal()
	}

	// Calculate total size and offsets
	// Header: [service count: 2 bytes] [offsets: 2 bytes each]
	headerSize := 2 + len(requests)*2

	offsets := make([]uint16, len(requests))
	currentOffset := uint16(headerSize)
	for i, svc := range serviceData {
		offsets[i] = currentOffset
		currentOffset += uint16(len(svc))
	}

	// Build the complete request
	result := make([]byte, 0, int(currentOffset))

	// Service count
	result = binary.LittleEndian.AppendUint16(result, uint16(len(requests)))

	// Offsets
	for _, offset := range offsets {
		result = binary.LittleEndian.AppendUint16(result, offset)
	}

	// Service data
	for _, svc := range serviceData {
		result = append(result, svc...)
	}

	return result, nil
}

// BuildReadTagBatch compiles a batch Read Tag request straight from tag
// reference strings (spec §8 S6), so a caller never has to hand-build
// MultiServiceRequest.Path itself. Each tag is compiled via ParseTagPath and
// CompileIOI(false): a bit-of-word reference reads its whole containing
// word, and array indices are emitted as written, so a DWORD-backed BOOL
// array element is not divided down to its containing DWORD.
func BuildReadTagBatch(tagNames []string, elementCount uint16) ([]byte, error) {
	requests := make([]MultiServiceRequest, len(tagNames))
	countBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(countBytes, elementCount)

	for i, name := range tagNames {
		pt, err := ParseTagPath(name)
		if err != nil {
			return nil, fmt.Errorf("BuildReadTagBatch: tag %q: %w", name, err)
		}
		path, err := pt.CompileIOI(false)
		if err != nil {
			return nil, fmt.Errorf("BuildReadTagBatch: tag %q: %w", name, err)
		}
		requests[i] = MultiServiceRequest{Service: SvcReadTag, Path: path, Data: countBytes}
	}

	return BuildMultipleServiceRequest(requests)
}

// SvcReadTag is the Read Tag service code (0x4C), duplicated here (rather
// than imported from the logix package, which itself depends on cip) so
// BuildReadTagBatch can be self-contained.
const SvcReadTag byte = 0x4C

// MultiServiceResponse represents a single response from a Multiple Service Packet.
type MultiServiceResponse struct {
	Service       byte   // Reply service code (original | 0x80)
	Status        byte   // General status
	ExtStatus     []byte // Extended status (if any)
	Data          []byte // Response data
}

// ParseMultipleServiceResponse parses a Multiple Service Packet response.
func ParseMultipleServiceResponse(data []byte) ([]MultiServiceResponse, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("MultipleService response too short: %d bytes", len(data))
	}

	serviceCount := binary.LittleEndian.Uint16(data[0:2])
	if serviceCount == 0 {
		return nil, nil
	}

	// Calculate minimum size needed for offsets
	minSize := 2 + int(serviceCount)*2
	if len(data) < minSize {
		return nil, fmt.Errorf("MultipleService response too short for %d services", serviceCount)
	}

	// Read offsets
	offsets := make([]uint16, serviceCount)
	for i := 0; i < int(serviceCount); i++ {
		offsets[i] = binary.LittleEndian.Uint16(data[2+i*2 : 4+i*2])
	}

	// Parse each service response
	responses := make([]MultiServiceResponse, serviceCount)
	for i := 0; i < int(serviceCount); i++ {
		start := int(offsets[i])

		// Determine end of this response
		var end int
		if i < int(serviceCount)-1 {
			end = int(offsets[i+1])
		} else {
			end = len(data)
		}

		if start >= len(data) || start >= end {
			continue
		}

		svcData := data[start:end]
		parsed, err := ParseResponse(svcData)
		if err != nil {
			continue
		}

		resp := MultiServiceResponse{
			Service: parsed.ReplyService,
			Status:  parsed.GeneralStatus,
			Data:    parsed.Data,
		}
		if len(parsed.AdditionalStatus) > 0 {
			resp.ExtStatus = make([]byte, len(parsed.AdditionalStatus)*2)
			for j, w := range parsed.AdditionalStatus {
				binary.LittleEndian.PutUint16(resp.ExtStatus[j*2:j*2+2], w)
			}
		}

		responses[i] = resp
	}

	return responses, nil
}

// MultiServiceError represents an error from one service in a batch.
type MultiServiceError struct {
	Index  int
	Status byte
	Msg    string
}

