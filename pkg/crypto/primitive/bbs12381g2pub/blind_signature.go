/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"
	"sort"

	ml "github.com/IBM/mathlib"
)

// BlindSignatureContext is sent by the holder to the signer. It carries a Pedersen commitment to the
// hidden messages and a proof that the holder knows the committed values.
type BlindSignatureContext struct {
	Commitment            *ml.G1
	ProofOfHiddenMessages *ProofG1
	ChallengeHash         *ml.Zr
}

// SignatureBlinding is the blinding factor of a commitment. It stays with the holder and is
// used to unblind the signature.
type SignatureBlinding struct {
	FR *ml.Zr
}

// BlindSignature is a signature over committed and known messages which is not valid until unblinded.
type BlindSignature struct {
	A *ml.G1
	E *ml.Zr
	S *ml.Zr
}

// NewBlindSignatureContext commits to the hidden messages, keyed by their index, and proves knowledge
// of them bound to the nonce.
func NewBlindSignatureContext(pubKey *PublicKeyWithGenerators, messages map[int]*SignatureMessage,
	nonce *ProofNonce) (*BlindSignatureContext, *SignatureBlinding, error) {
	indexes := make([]int, 0, len(messages))

	for idx := range messages {
		if idx < 0 || idx >= pubKey.messagesCount {
			return nil, nil, fmt.Errorf("%w: index %d, messages count %d", ErrIndexOutOfBounds,
				idx, pubKey.messagesCount)
		}

		indexes = append(indexes, idx)
	}

	sort.Ints(indexes)

	blinding := createRandSignatureFr()

	committing := NewProverCommittingG1()
	cb := newCommitmentBuilder(len(indexes) + 1)
	secrets := make([]*ml.Zr, 0, len(indexes)+1)

	committing.Commit(pubKey.H0)
	cb.add(pubKey.H0, blinding)
	secrets = append(secrets, blinding)

	for _, idx := range indexes {
		committing.Commit(pubKey.H[idx])
		cb.add(pubKey.H[idx], messages[idx].FR)
		secrets = append(secrets, messages[idx].FR)
	}

	commitment := cb.build()
	committed := committing.Finish()

	challengeBytes := committed.ToBytes()
	challengeBytes = append(challengeBytes, commitment.Bytes()...)
	challengeBytes = append(challengeBytes, nonce.ToUncompressed()...)

	challenge := frFromOKM(challengeBytes)

	proof, err := committed.GenerateProof(challenge, secrets)
	if err != nil {
		return nil, nil, err
	}

	return &BlindSignatureContext{
			Commitment:            commitment,
			ProofOfHiddenMessages: proof,
			ChallengeHash:         challenge,
		}, &SignatureBlinding{
			FR: blinding,
		}, nil
}

// Verify checks the proof of hidden messages. blinded lists the indexes the holder committed to.
// A proof that does not check out is reported as false with no error.
func (bsc *BlindSignatureContext) Verify(blinded []int, pubKey *PublicKeyWithGenerators,
	nonce *ProofNonce) (bool, error) {
	blinded, err := normalizeIndexes(blinded, pubKey.messagesCount)
	if err != nil {
		return false, err
	}

	known := make(map[int]struct{}, pubKey.messagesCount-len(blinded))

	for i := 0; i < pubKey.messagesCount; i++ {
		known[i] = struct{}{}
	}

	for _, idx := range blinded {
		delete(known, idx)
	}

	bases := make([]*ml.G1, 0, len(blinded)+1)
	bases = append(bases, pubKey.H0)

	for i := 0; i < pubKey.messagesCount; i++ {
		if _, ok := known[i]; !ok {
			bases = append(bases, pubKey.H[i])
		}
	}

	proof := bsc.ProofOfHiddenMessages
	if len(proof.Responses) != len(bases) {
		logger.Debugf("blind signature context has %d responses for %d bases", len(proof.Responses), len(bases))

		return false, nil
	}

	commitment := proof.getChallengeContribution(bases, bsc.Commitment, bsc.ChallengeHash)

	challengeBytes := make([]byte, 0, (len(bases)+2)*g1UncompressedSize+frUncompressedSize) //nolint:gomnd

	for _, b := range bases {
		challengeBytes = append(challengeBytes, b.Bytes()...)
	}

	challengeBytes = append(challengeBytes, commitment.Bytes()...)
	challengeBytes = append(challengeBytes, bsc.Commitment.Bytes()...)
	challengeBytes = append(challengeBytes, nonce.ToUncompressed()...)

	challenge := frFromOKM(challengeBytes)

	return challenge.Equals(bsc.ChallengeHash) && commitment.Equals(proof.Commitment), nil
}

// CommitmentBytes returns the compressed commitment.
func (bsc *BlindSignatureContext) CommitmentBytes() []byte {
	return bsc.Commitment.Compressed()
}

// ProofBytes returns the serialized proof of hidden messages.
func (bsc *BlindSignatureContext) ProofBytes() []byte {
	return bsc.ProofOfHiddenMessages.ToBytes()
}

// ChallengeBytes returns the 32 byte challenge hash.
func (bsc *BlindSignatureContext) ChallengeBytes() []byte {
	return frToBytes(bsc.ChallengeHash)
}

// ParseBlindSignatureContext builds a context from the serialized commitment, proof and challenge.
func ParseBlindSignatureContext(commitment, proof, challenge []byte) (*BlindSignatureContext, error) {
	c, err := ParseCommitment(commitment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProof, err)
	}

	p, err := ParseProofG1(proof)
	if err != nil {
		return nil, fmt.Errorf("parse proof of hidden messages: %w: %w", ErrMalformedProof, err)
	}

	if len(challenge) != frCompressedSize {
		return nil, fmt.Errorf("%w: invalid size of challenge hash", ErrMalformedProof)
	}

	return &BlindSignatureContext{
		Commitment:            c,
		ProofOfHiddenMessages: p,
		ChallengeHash:         parseFr(challenge),
	}, nil
}

// ParseCommitment parses a compressed commitment.
func ParseCommitment(commitment []byte) (*ml.G1, error) {
	if len(commitment) != g1CompressedSize {
		return nil, errors.New("invalid size of commitment")
	}

	c, err := curve.NewG1FromCompressed(commitment)
	if err != nil {
		return nil, fmt.Errorf("deserialize commitment: %w", err)
	}

	return c, nil
}

// ToBytes converts SignatureBlinding to bytes.
func (sb *SignatureBlinding) ToBytes() []byte {
	return frToBytes(sb.FR)
}

// ParseSignatureBlinding parses SignatureBlinding from bytes.
func ParseSignatureBlinding(bytes []byte) (*SignatureBlinding, error) {
	if len(bytes) != frCompressedSize {
		return nil, errors.New("invalid size of signature blinding")
	}

	return &SignatureBlinding{FR: parseFr(bytes)}, nil
}

// NewBlindSignature signs the commitment and the known messages, keyed by their index.
// The caller is trusted to pass known indexes disjoint from the committed ones.
func NewBlindSignature(commitment *ml.G1, messages map[int]*SignatureMessage, privKey *PrivateKey,
	pubKey *PublicKeyWithGenerators) (*BlindSignature, error) {
	cb := newCommitmentBuilder(len(messages) + 3) //nolint:gomnd

	e, s := createRandSignatureFr(), createRandSignatureFr()

	cb.add(curve.GenG1, curve.NewZrFromInt(1))
	cb.add(pubKey.H0, s)
	cb.add(commitment, curve.NewZrFromInt(1))

	for idx, m := range messages {
		if idx < 0 || idx >= pubKey.messagesCount {
			return nil, fmt.Errorf("%w: index %d, messages count %d", ErrIndexOutOfBounds,
				idx, pubKey.messagesCount)
		}

		cb.add(pubKey.H[idx], m.FR)
	}

	b := cb.build()

	return &BlindSignature{
		A: b.Mul(frInverse(frAdd(privKey.FR, e))),
		E: e,
		S: s,
	}, nil
}

// ToUnblinded adds the blinding factor to the signature. A wrong factor is not detected here,
// the resulting signature fails verification.
func (bs *BlindSignature) ToUnblinded(blinding *SignatureBlinding) *Signature {
	return &Signature{
		A: bs.A.Copy(),
		E: bs.E.Copy(),
		S: frAdd(bs.S, blinding.FR),
	}
}

// ToBytes converts BlindSignature to bytes, the layout is the one of Signature.
func (bs *BlindSignature) ToBytes() ([]byte, error) {
	return (&Signature{A: bs.A, E: bs.E, S: bs.S}).ToBytes()
}

// ParseBlindSignature parses BlindSignature from bytes.
func ParseBlindSignature(bytes []byte) (*BlindSignature, error) {
	signature, err := ParseSignature(bytes)
	if err != nil {
		return nil, err
	}

	return &BlindSignature{A: signature.A, E: signature.E, S: signature.S}, nil
}
