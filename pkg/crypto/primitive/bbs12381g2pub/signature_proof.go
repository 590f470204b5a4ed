/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"

	ml "github.com/IBM/mathlib"
)

const proofLenBytes = 4

// PoKOfSignatureProof defines BLS signature proof.
// It is the actual proof that is sent from prover to verifier.
type PoKOfSignatureProof struct {
	aPrime *ml.G1
	aBar   *ml.G1
	d      *ml.G1

	proofVC1 *ProofG1
	proofVC2 *ProofG1
}

// ProofRequest is what the verifier knows before receiving a proof: the key and which
// message indexes are expected to be revealed.
type ProofRequest struct {
	RevealedMessages []int
	VerificationKey  *PublicKeyWithGenerators
}

// SignatureProof is a proof together with the revealed messages keyed by their index.
type SignatureProof struct {
	RevealedMessages map[int]*SignatureMessage
	Proof            *PoKOfSignatureProof
}

// GetBytesForChallenge creates bytes for proof challenge.
func (sp *PoKOfSignatureProof) GetBytesForChallenge(revealedMessages map[int]*SignatureMessage,
	pubKey *PublicKeyWithGenerators) []byte {
	hiddenCount := pubKey.messagesCount - len(revealedMessages)

	bytesLen := (7 + hiddenCount) * g1UncompressedSize //nolint:gomnd
	bytes := make([]byte, 0, bytesLen)

	bytes = append(bytes, sp.aBar.Bytes()...)
	bytes = append(bytes, sp.aPrime.Bytes()...)
	bytes = append(bytes, pubKey.H0.Bytes()...)
	bytes = append(bytes, sp.proofVC1.Commitment.Bytes()...)
	bytes = append(bytes, sp.d.Bytes()...)
	bytes = append(bytes, pubKey.H0.Bytes()...)

	for i := range pubKey.H {
		if _, ok := revealedMessages[i]; !ok {
			bytes = append(bytes, pubKey.H[i].Bytes()...)
		}
	}

	bytes = append(bytes, sp.proofVC2.Commitment.Bytes()...)

	return bytes
}

// Verify verifies PoKOfSignatureProof.
func (sp *PoKOfSignatureProof) Verify(challenge *ml.Zr, pubKey *PublicKeyWithGenerators,
	revealedMessages map[int]*SignatureMessage) error {
	if sp.aPrime.IsInfinity() {
		return fmt.Errorf("%w: A' is the identity", ErrInvalidProof)
	}

	aBar := sp.aBar.Copy()
	aBar.Neg()

	ok := compareTwoPairings(sp.aPrime, pubKey.w, aBar, curve.GenG2)
	if !ok {
		return fmt.Errorf("%w: bad signature", ErrInvalidProof)
	}

	err := sp.verifyVC1Proof(challenge, pubKey)
	if err != nil {
		return err
	}

	return sp.verifyVC2Proof(challenge, pubKey, revealedMessages)
}

func (sp *PoKOfSignatureProof) verifyVC1Proof(challenge *ml.Zr, pubKey *PublicKeyWithGenerators) error {
	basesVC1 := []*ml.G1{sp.aPrime, pubKey.H0}
	aBarD := sp.aBar.Copy()
	aBarD.Sub(sp.d)

	err := sp.proofVC1.Verify(basesVC1, aBarD, challenge)
	if err != nil {
		return fmt.Errorf("%w: VC1: %s", ErrInvalidProof, err.Error())
	}

	return nil
}

func (sp *PoKOfSignatureProof) verifyVC2Proof(challenge *ml.Zr, pubKey *PublicKeyWithGenerators,
	revealedMessages map[int]*SignatureMessage) error {
	revealedMessagesCount := len(revealedMessages)

	basesVC2 := make([]*ml.G1, 0, 2+pubKey.messagesCount-revealedMessagesCount)
	basesVC2 = append(basesVC2, sp.d, pubKey.H0)

	cbDisclosed := newCommitmentBuilder(1 + revealedMessagesCount)
	cbDisclosed.add(curve.GenG1, curve.NewZrFromInt(1))

	for i := range pubKey.H {
		if m, ok := revealedMessages[i]; ok {
			cbDisclosed.add(pubKey.H[i], m.FR)
		} else {
			basesVC2 = append(basesVC2, pubKey.H[i])
		}
	}

	pr := cbDisclosed.build()
	pr.Neg()

	err := sp.proofVC2.Verify(basesVC2, pr, challenge)
	if err != nil {
		return fmt.Errorf("%w: VC2: %s", ErrInvalidProof, err.Error())
	}

	return nil
}

// ToBytes converts PoKOfSignatureProof to bytes.
func (sp *PoKOfSignatureProof) ToBytes() []byte {
	bytes := make([]byte, 0)

	bytes = append(bytes, sp.aPrime.Compressed()...)
	bytes = append(bytes, sp.aBar.Compressed()...)
	bytes = append(bytes, sp.d.Compressed()...)

	proof1Bytes := sp.proofVC1.ToBytes()
	bytes = append(bytes, uint32ToBytes(uint32(len(proof1Bytes)))...)
	bytes = append(bytes, proof1Bytes...)

	bytes = append(bytes, sp.proofVC2.ToBytes()...)

	return bytes
}

// ProofG1 is a proof of knowledge of a signature and hidden messages.
type ProofG1 struct {
	Commitment *ml.G1
	Responses  []*ml.Zr
}

// NewProofG1 creates a new ProofG1.
func NewProofG1(commitment *ml.G1, responses []*ml.Zr) *ProofG1 {
	return &ProofG1{
		Commitment: commitment,
		Responses:  responses,
	}
}

// Verify verifies the ProofG1.
func (pg1 *ProofG1) Verify(bases []*ml.G1, commitment *ml.G1, challenge *ml.Zr) error {
	if len(bases) != len(pg1.Responses) {
		return fmt.Errorf("%d responses for %d bases", len(pg1.Responses), len(bases))
	}

	contribution := pg1.getChallengeContribution(bases, commitment, challenge)
	contribution.Sub(pg1.Commitment)

	if !contribution.IsInfinity() {
		return errors.New("contribution is not zero")
	}

	return nil
}

// getChallengeContribution returns bases[0]^r[0] * ... * bases[n-1]^r[n-1] * commitment^challenge.
func (pg1 *ProofG1) getChallengeContribution(bases []*ml.G1, commitment *ml.G1,
	challenge *ml.Zr) *ml.G1 {
	points := make([]*ml.G1, 0, len(bases)+1)
	points = append(points, bases...)
	points = append(points, commitment)

	scalars := make([]*ml.Zr, 0, len(pg1.Responses)+1)
	scalars = append(scalars, pg1.Responses...)
	scalars = append(scalars, challenge)

	return sumOfG1Products(points, scalars)
}

// ToBytes converts ProofG1 to bytes.
func (pg1 *ProofG1) ToBytes() []byte {
	bytes := make([]byte, 0, g1CompressedSize+proofLenBytes+len(pg1.Responses)*frCompressedSize)

	bytes = append(bytes, pg1.Commitment.Compressed()...)
	bytes = append(bytes, uint32ToBytes(uint32(len(pg1.Responses)))...)

	for i := range pg1.Responses {
		bytes = append(bytes, frToBytes(pg1.Responses[i])...)
	}

	return bytes
}

// ParseSignatureProof parses a signature proof.
func ParseSignatureProof(sigProofBytes []byte) (*PoKOfSignatureProof, error) {
	if len(sigProofBytes) < g1CompressedSize*3+proofLenBytes {
		return nil, errors.New("invalid size of signature proof")
	}

	g1Points := make([]*ml.G1, 3) //nolint:gomnd
	offset := 0

	for i := range g1Points {
		g1Point, err := curve.NewG1FromCompressed(sigProofBytes[offset : offset+g1CompressedSize])
		if err != nil {
			return nil, fmt.Errorf("parse G1 point: %w", err)
		}

		g1Points[i] = g1Point
		offset += g1CompressedSize
	}

	proof1BytesLen := int(uint32FromBytes(sigProofBytes[offset : offset+proofLenBytes]))
	offset += proofLenBytes

	if proof1BytesLen > len(sigProofBytes)-offset {
		return nil, errors.New("invalid size of signature proof")
	}

	proofVc1, err := ParseProofG1(sigProofBytes[offset : offset+proof1BytesLen])
	if err != nil {
		return nil, fmt.Errorf("parse G1 proof: %w", err)
	}

	offset += proof1BytesLen

	proofVc2, err := ParseProofG1(sigProofBytes[offset:])
	if err != nil {
		return nil, fmt.Errorf("parse G1 proof: %w", err)
	}

	return &PoKOfSignatureProof{
		aPrime:   g1Points[0],
		aBar:     g1Points[1],
		d:        g1Points[2],
		proofVC1: proofVc1,
		proofVC2: proofVc2,
	}, nil
}

// ParseProofG1 parses ProofG1 from bytes.
func ParseProofG1(bytes []byte) (*ProofG1, error) {
	if len(bytes) < g1CompressedSize+proofLenBytes {
		return nil, errors.New("invalid size of G1 signature proof")
	}

	offset := 0

	commitment, err := curve.NewG1FromCompressed(bytes[:g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("parse G1 point: %w", err)
	}

	offset += g1CompressedSize
	length := int(uint32FromBytes(bytes[offset : offset+proofLenBytes]))
	offset += proofLenBytes

	if length > (len(bytes)-offset)/frCompressedSize || len(bytes) != offset+length*frCompressedSize {
		return nil, errors.New("invalid size of G1 signature proof")
	}

	responses := make([]*ml.Zr, length)
	for i := 0; i < length; i++ {
		responses[i] = parseFr(bytes[offset : offset+frCompressedSize])
		offset += frCompressedSize
	}

	return NewProofG1(commitment, responses), nil
}

// ProofNonce is a nonce for Proof of Knowledge proof.
type ProofNonce struct {
	fr *ml.Zr
}

// ParseProofNonce creates a new ProofNonce from bytes.
func ParseProofNonce(proofNonceBytes []byte) *ProofNonce {
	return &ProofNonce{
		frFromOKM(proofNonceBytes),
	}
}

// ToBytes converts ProofNonce into its 32 byte form.
func (pn *ProofNonce) ToBytes() []byte {
	return frToBytes(pn.fr)
}

// ToUncompressed converts ProofNonce into its 48 byte form which is used in challenge hashing.
func (pn *ProofNonce) ToUncompressed() []byte {
	return frToUncompressed(pn.fr)
}

// nonceChallengeBytes returns the nonce contribution to a proof challenge: 32 zero bytes
// for an empty nonce, the uncompressed hashed nonce otherwise.
func nonceChallengeBytes(nonce []byte) []byte {
	if len(nonce) == 0 {
		return make([]byte, frCompressedSize)
	}

	return ParseProofNonce(nonce).ToUncompressed()
}

// ComputeChallenge hashes the challenge bytes of a proof together with the nonce.
// Prover and verifier must call it with the same nonce.
func ComputeChallenge(challengeBytes, nonce []byte) *ml.Zr {
	data := make([]byte, 0, len(challengeBytes)+frUncompressedSize)
	data = append(data, challengeBytes...)
	data = append(data, nonceChallengeBytes(nonce)...)

	return frFromOKM(data)
}

// VerifySignaturePoK checks a proof against the request of the verifier.
// The revealed messages of the proof must be exactly the ones the request expects.
func VerifySignaturePoK(request *ProofRequest, proof *SignatureProof, nonce []byte) error {
	pubKey := request.VerificationKey

	revealed, err := normalizeIndexes(request.RevealedMessages, pubKey.messagesCount)
	if err != nil {
		return err
	}

	if len(revealed) != len(proof.RevealedMessages) {
		return fmt.Errorf("%w: %d revealed messages requested, %d provided", ErrLengthMismatch,
			len(revealed), len(proof.RevealedMessages))
	}

	for _, idx := range revealed {
		if _, ok := proof.RevealedMessages[idx]; !ok {
			return fmt.Errorf("%w: revealed message %d is missing", ErrInvalidProof, idx)
		}
	}

	challengeBytes := proof.Proof.GetBytesForChallenge(proof.RevealedMessages, pubKey)
	challenge := ComputeChallenge(challengeBytes, nonce)

	return proof.Proof.Verify(challenge, pubKey, proof.RevealedMessages)
}
