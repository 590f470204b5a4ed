/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"fmt"

	ml "github.com/IBM/mathlib"
)

// PoKOfSignature is Proof of Knowledge of a Signature that is used by the prover to construct PoKOfSignatureProof.
type PoKOfSignature struct {
	aPrime *ml.G1
	aBar   *ml.G1
	d      *ml.G1

	pokVC1   *ProverCommittedG1
	secrets1 []*ml.Zr

	pokVC2   *ProverCommittedG1
	secrets2 []*ml.Zr

	revealedMessages map[int]*SignatureMessage
}

// NewPoKOfSignature creates a new PoKOfSignature.
// The input signature is verified first, a proof over an invalid signature is never started.
func NewPoKOfSignature(signature *Signature, messages []*ProofMessage,
	pubKey *PublicKeyWithGenerators) (*PoKOfSignature, error) {
	if len(messages) != pubKey.messagesCount {
		return nil, fmt.Errorf("%w: got %d messages, key supports %d", ErrCapacityMismatch,
			len(messages), pubKey.messagesCount)
	}

	signatureMessages := make([]*SignatureMessage, len(messages))
	revealedMessages := make(map[int]*SignatureMessage)

	for i, m := range messages {
		signatureMessages[i] = m.Message

		if m.Type == Revealed {
			revealedMessages[i] = m.Message
		}
	}

	err := signature.Verify(signatureMessages, pubKey)
	if err != nil {
		return nil, fmt.Errorf("verify input signature: %w", err)
	}

	r1, r2 := createRandSignatureFr(), createRandSignatureFr()
	r3 := frInverse(r1)

	b := computeB(signature.S, signatureMessages, pubKey)

	aPrime := signature.A.Mul(r1)

	bR1 := b.Mul(r1)

	aBar := aPrime.Mul(frNeg(signature.E))
	aBar.Add(bR1)

	cbD := newCommitmentBuilder(2) //nolint:gomnd
	cbD.add(b, r1)
	cbD.add(pubKey.H0, frNeg(r2))
	d := cbD.build()

	sPrime := frSub(signature.S, frMul(r2, r3))

	pokVC1, secrets1 := newVC1Signature(aPrime, pubKey.H0, signature.E, r2)
	pokVC2, secrets2 := newVC2Signature(d, r3, pubKey, sPrime, signatureMessages, revealedMessages)

	return &PoKOfSignature{
		aPrime:           aPrime,
		aBar:             aBar,
		d:                d,
		pokVC1:           pokVC1,
		secrets1:         secrets1,
		pokVC2:           pokVC2,
		secrets2:         secrets2,
		revealedMessages: revealedMessages,
	}, nil
}

func newVC1Signature(aPrime *ml.G1, h0 *ml.G1,
	e, r2 *ml.Zr) (*ProverCommittedG1, []*ml.Zr) {
	committing1 := NewProverCommittingG1()
	secrets1 := make([]*ml.Zr, 2) //nolint:gomnd

	committing1.Commit(aPrime)
	secrets1[0] = frNeg(e)

	committing1.Commit(h0)
	secrets1[1] = r2

	pokVC1 := committing1.Finish()

	return pokVC1, secrets1
}

func newVC2Signature(d *ml.G1, r3 *ml.Zr, pubKey *PublicKeyWithGenerators, sPrime *ml.Zr,
	messages []*SignatureMessage, revealedMessages map[int]*SignatureMessage) (*ProverCommittedG1, []*ml.Zr) {
	messagesCount := len(messages)
	committing2 := NewProverCommittingG1()
	baseSecretsCount := 2
	secrets2 := make([]*ml.Zr, 0, baseSecretsCount+messagesCount)

	committing2.Commit(d)
	secrets2 = append(secrets2, frNeg(r3))

	committing2.Commit(pubKey.H0)
	secrets2 = append(secrets2, sPrime)

	for i := 0; i < messagesCount; i++ {
		if _, ok := revealedMessages[i]; ok {
			continue
		}

		committing2.Commit(pubKey.H[i])

		secrets2 = append(secrets2, messages[i].FR.Copy())
	}

	pokVC2 := committing2.Finish()

	return pokVC2, secrets2
}

// ToBytes converts PoKOfSignature to bytes. The result is the challenge input and is equal to
// PoKOfSignatureProof.GetBytesForChallenge of the proof generated from it.
func (pos *PoKOfSignature) ToBytes() []byte {
	challengeBytes := pos.aBar.Bytes()
	challengeBytes = append(challengeBytes, pos.pokVC1.ToBytes()...)
	challengeBytes = append(challengeBytes, pos.pokVC2.ToBytes()...)

	return challengeBytes
}

// GenerateProof generates PoKOfSignatureProof proof from PoKOfSignature signature.
func (pos *PoKOfSignature) GenerateProof(challengeHash *ml.Zr) (*PoKOfSignatureProof, error) {
	proofVC1, err := pos.pokVC1.GenerateProof(challengeHash, pos.secrets1)
	if err != nil {
		return nil, fmt.Errorf("generate VC1 proof: %w", err)
	}

	proofVC2, err := pos.pokVC2.GenerateProof(challengeHash, pos.secrets2)
	if err != nil {
		return nil, fmt.Errorf("generate VC2 proof: %w", err)
	}

	return &PoKOfSignatureProof{
		aPrime:   pos.aPrime,
		aBar:     pos.aBar,
		d:        pos.d,
		proofVC1: proofVC1,
		proofVC2: proofVC2,
	}, nil
}

// ProverCommittedG1 helps to generate a ProofG1.
type ProverCommittedG1 struct {
	bases           []*ml.G1
	blindingFactors []*ml.Zr
	commitment      *ml.G1
}

// ToBytes converts ProverCommittedG1 to bytes.
func (g *ProverCommittedG1) ToBytes() []byte {
	bytes := make([]byte, 0, (len(g.bases)+1)*g1UncompressedSize)

	for _, base := range g.bases {
		bytes = append(bytes, base.Bytes()...)
	}

	return append(bytes, g.commitment.Bytes()...)
}

// GenerateProof generates proof ProofG1 for all secrets.
// The response for the i-th base is blinding_i - challenge*secret_i.
func (g *ProverCommittedG1) GenerateProof(challenge *ml.Zr, secrets []*ml.Zr) (*ProofG1, error) {
	if len(secrets) != len(g.blindingFactors) {
		return nil, fmt.Errorf("%w: %d secrets for %d bases", ErrProofGeneration,
			len(secrets), len(g.blindingFactors))
	}

	responses := make([]*ml.Zr, len(g.bases))

	for i := range g.blindingFactors {
		responses[i] = frSub(g.blindingFactors[i], frMul(challenge, secrets[i]))
	}

	return NewProofG1(g.commitment, responses), nil
}

// ProverCommittingG1 is a proof of knowledge of messages in a vector commitment.
type ProverCommittingG1 struct {
	bases           []*ml.G1
	blindingFactors []*ml.Zr
}

// NewProverCommittingG1 creates a new ProverCommittingG1.
func NewProverCommittingG1() *ProverCommittingG1 {
	return &ProverCommittingG1{
		bases:           make([]*ml.G1, 0),
		blindingFactors: make([]*ml.Zr, 0),
	}
}

// Commit append a base point and randomly generated blinding factor.
func (pc *ProverCommittingG1) Commit(base *ml.G1) {
	pc.bases = append(pc.bases, base)
	pc.blindingFactors = append(pc.blindingFactors, createRandSignatureFr())
}

// Finish helps to generate ProverCommittedG1 after commitment of all base points.
func (pc *ProverCommittingG1) Finish() *ProverCommittedG1 {
	commitment := sumOfG1Products(pc.bases, pc.blindingFactors)

	return &ProverCommittedG1{
		bases:           pc.bases,
		blindingFactors: pc.blindingFactors,
		commitment:      commitment,
	}
}
