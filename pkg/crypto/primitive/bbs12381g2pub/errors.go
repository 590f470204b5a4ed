/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import "errors"

// Input validation errors. They are returned before any group operation takes place.
var (
	// ErrCapacityMismatch is returned when the number of messages differs from the public key capacity.
	ErrCapacityMismatch = errors.New("messages count does not match public key capacity")

	// ErrIndexOutOfBounds is returned when a message index is outside of [0, capacity).
	ErrIndexOutOfBounds = errors.New("message index is out of bounds")

	// ErrLengthMismatch is returned when two parallel inputs have different lengths.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrDuplicateIndex is returned when the same message index is given twice.
	ErrDuplicateIndex = errors.New("duplicate message index")
)

// Data format errors of serialized inputs.
var (
	// ErrMalformedProof is returned when serialized proof bytes cannot be decoded.
	ErrMalformedProof = errors.New("malformed proof")

	// ErrMalformedKey is returned when a serialized key cannot be decoded.
	ErrMalformedKey = errors.New("malformed key")

	// ErrMalformedSignature is returned when a serialized signature or blinding factor cannot be decoded.
	ErrMalformedSignature = errors.New("malformed signature")
)

// Cryptographic outcomes.
var (
	// ErrInvalidSignature is returned when a signature does not verify against the messages and key.
	ErrInvalidSignature = errors.New("invalid BLS12-381 signature")

	// ErrInvalidProof is returned when a proof of knowledge does not verify.
	ErrInvalidProof = errors.New("invalid proof of knowledge")

	// ErrProofGeneration is returned when a proof cannot be built from the committed values.
	ErrProofGeneration = errors.New("proof generation failed")
)
