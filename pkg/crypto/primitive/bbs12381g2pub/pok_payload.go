/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"fmt"
	"sort"
)

const (
	messagesCountLen = 2
	bitsInByte       = 8
)

// PoKPayload is the header of a serialized proof: the number of signed messages and the
// indexes of the revealed ones.
//
// Wire form: uint16 big-endian messages count, followed by a bit-vector of count/8+1 bytes
// where bit i%8 of byte i/8 is set for every revealed index i. The bit-vector is stored in
// reversed byte order.
type PoKPayload struct {
	messagesCount int

	Revealed []int
}

// NewPoKPayload creates a new PoKPayload.
func NewPoKPayload(messagesCount int, revealed []int) *PoKPayload {
	return &PoKPayload{
		messagesCount: messagesCount,
		Revealed:      revealed,
	}
}

// MessagesCount returns the number of signed messages the payload describes.
func (p *PoKPayload) MessagesCount() int {
	return p.messagesCount
}

// LenInBytes returns the size of the serialized payload.
func (p *PoKPayload) LenInBytes() int {
	return payloadLen(p.messagesCount)
}

func payloadLen(messagesCount int) int {
	return messagesCountLen + bitvectorLen(messagesCount)
}

func bitvectorLen(messagesCount int) int {
	return messagesCount/bitsInByte + 1
}

// ToBytes converts PoKPayload to bytes.
func (p *PoKPayload) ToBytes() ([]byte, error) {
	if p.messagesCount < 0 || p.messagesCount > MaxMessagesCount {
		return nil, fmt.Errorf("%w: messages count %d does not fit in the PoK payload",
			ErrCapacityMismatch, p.messagesCount)
	}

	bytes := make([]byte, p.LenInBytes())
	copy(bytes, uint16ToBytes(uint16(p.messagesCount)))

	bitvector := bytes[messagesCountLen:]

	for _, r := range p.Revealed {
		if r < 0 || r >= p.messagesCount {
			return nil, fmt.Errorf("%w: invalid size of PoK payload: revealed index %d, messages count %d",
				ErrIndexOutOfBounds, r, p.messagesCount)
		}

		bitvector[r/bitsInByte] |= 1 << (r % bitsInByte)
	}

	reverseBytes(bitvector)

	return bytes, nil
}

// ParsePoKPayload parses PoKPayload from the beginning of bytes. Trailing bytes are ignored.
func ParsePoKPayload(bytes []byte) (*PoKPayload, error) {
	if len(bytes) < messagesCountLen {
		return nil, fmt.Errorf("%w: invalid size of PoK payload", ErrMalformedProof)
	}

	messagesCount := int(uint16FromBytes(bytes[:messagesCountLen]))

	offset := payloadLen(messagesCount)
	if len(bytes) < offset {
		return nil, fmt.Errorf("%w: invalid size of PoK payload", ErrMalformedProof)
	}

	bitvector := make([]byte, offset-messagesCountLen)
	copy(bitvector, bytes[messagesCountLen:offset])
	reverseBytes(bitvector)

	revealed := make([]int, 0)

	for i, b := range bitvector {
		for bit := 0; bit < bitsInByte; bit++ {
			if b&(1<<bit) == 0 {
				continue
			}

			idx := i*bitsInByte + bit
			if idx >= messagesCount {
				return nil, fmt.Errorf("%w: revealed index %d exceeds messages count %d",
					ErrMalformedProof, idx, messagesCount)
			}

			revealed = append(revealed, idx)
		}
	}

	return &PoKPayload{
		messagesCount: messagesCount,
		Revealed:      revealed,
	}, nil
}

func reverseBytes(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// EncodeSignatureProof serializes the proof together with its PoK payload header.
func EncodeSignatureProof(messagesCount int, revealed []int, proof *PoKOfSignatureProof) ([]byte, error) {
	payloadBytes, err := NewPoKPayload(messagesCount, revealed).ToBytes()
	if err != nil {
		return nil, fmt.Errorf("encode PoK payload: %w", err)
	}

	return append(payloadBytes, proof.ToBytes()...), nil
}

// DecodeSignatureProof splits serialized proof bytes into the payload header and the proof.
// Every failure wraps ErrMalformedProof.
func DecodeSignatureProof(bytes []byte) (*PoKPayload, *PoKOfSignatureProof, error) {
	payload, err := ParsePoKPayload(bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("parse signature proof: %w", err)
	}

	signatureProof, err := ParseSignatureProof(bytes[payload.LenInBytes():])
	if err != nil {
		return nil, nil, fmt.Errorf("parse signature proof: %w: %s", ErrMalformedProof, err.Error())
	}

	return payload, signatureProof, nil
}

// normalizeIndexes returns a sorted copy of indexes after checking that each one is in
// [0, messagesCount) and appears once.
func normalizeIndexes(indexes []int, messagesCount int) ([]int, error) {
	sorted := make([]int, len(indexes))
	copy(sorted, indexes)
	sort.Ints(sorted)

	for i, idx := range sorted {
		if idx < 0 || idx >= messagesCount {
			return nil, fmt.Errorf("%w: index %d, messages count %d", ErrIndexOutOfBounds, idx, messagesCount)
		}

		if i > 0 && sorted[i-1] == idx {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, idx)
		}
	}

	return sorted, nil
}

// revealedIndexSet returns the sorted indexes with repeated ones merged, each index in [0, messagesCount).
func revealedIndexSet(indexes []int, messagesCount int) ([]int, error) {
	sorted := make([]int, len(indexes))
	copy(sorted, indexes)
	sort.Ints(sorted)

	set := make([]int, 0, len(sorted))

	for _, idx := range sorted {
		if idx < 0 || idx >= messagesCount {
			return nil, fmt.Errorf("%w: index %d, messages count %d", ErrIndexOutOfBounds, idx, messagesCount)
		}

		if len(set) == 0 || set[len(set)-1] != idx {
			set = append(set, idx)
		}
	}

	return set, nil
}
