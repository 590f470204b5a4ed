/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	ml "github.com/IBM/mathlib"
)

// SignatureMessage defines a message to be used for a signature check.
type SignatureMessage struct {
	FR *ml.Zr
}

// ParseSignatureMessage parses SignatureMessage from bytes.
// Any byte string, the empty one included, maps to a scalar.
func ParseSignatureMessage(message []byte) *SignatureMessage {
	return &SignatureMessage{FR: frFromOKM(message)}
}

// ParseSignatureMessages parses each of the messages in order.
func ParseSignatureMessages(messages [][]byte) []*SignatureMessage {
	return messagesToFr(messages)
}

// ProofMessageType tells whether a message is disclosed in a proof.
type ProofMessageType int

const (
	// Revealed message is disclosed to the verifier.
	Revealed ProofMessageType = iota + 1

	// Hidden message is only proven to be known.
	Hidden
)

// ProofMessage is a signed message tagged with its disclosure in a proof.
type ProofMessage struct {
	Type    ProofMessageType
	Message *SignatureMessage
}

// NewProofMessages tags messages with their disclosure: indexes listed in revealed are Revealed,
// all other messages are Hidden.
func NewProofMessages(messages []*SignatureMessage, revealed []int) []*ProofMessage {
	revealedSet := make(map[int]struct{}, len(revealed))
	for _, i := range revealed {
		revealedSet[i] = struct{}{}
	}

	proofMessages := make([]*ProofMessage, len(messages))

	for i, m := range messages {
		msgType := Hidden
		if _, ok := revealedSet[i]; ok {
			msgType = Revealed
		}

		proofMessages[i] = &ProofMessage{Type: msgType, Message: m}
	}

	return proofMessages
}
