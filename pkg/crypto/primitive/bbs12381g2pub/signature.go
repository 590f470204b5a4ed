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

// Signature defines BLS signature.
type Signature struct {
	A *ml.G1
	E *ml.Zr
	S *ml.Zr
}

// NewSignature signs the messages with the key pair. The number of messages must match the capacity of pubKey.
func NewSignature(messages []*SignatureMessage, privKey *PrivateKey, pubKey *PublicKeyWithGenerators) (*Signature,
	error) {
	if len(messages) != pubKey.messagesCount {
		return nil, fmt.Errorf("%w: got %d messages, key supports %d", ErrCapacityMismatch,
			len(messages), pubKey.messagesCount)
	}

	e, s := createRandSignatureFr(), createRandSignatureFr()

	b := computeB(s, messages, pubKey)

	return &Signature{
		A: b.Mul(frInverse(frAdd(privKey.FR, e))),
		E: e,
		S: s,
	}, nil
}

// ParseSignature parses a Signature from bytes.
func ParseSignature(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != bls12381SignatureLen {
		return nil, errors.New("invalid size of signature")
	}

	pointG1, err := curve.NewG1FromCompressed(sigBytes[:g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("deserialize G1 compressed signature: %w", err)
	}

	e := parseFr(sigBytes[g1CompressedSize : g1CompressedSize+frCompressedSize])
	s := parseFr(sigBytes[g1CompressedSize+frCompressedSize:])

	return &Signature{
		A: pointG1,
		E: e,
		S: s,
	}, nil
}

// ToBytes converts signature to bytes using compression of G1 point and E, S FR points.
func (s *Signature) ToBytes() ([]byte, error) {
	bytes := make([]byte, bls12381SignatureLen)

	copy(bytes, s.A.Compressed())
	copy(bytes[g1CompressedSize:g1CompressedSize+frCompressedSize], frToBytes(s.E))
	copy(bytes[g1CompressedSize+frCompressedSize:], frToBytes(s.S))

	return bytes, nil
}

// Verify is used for signature verification.
func (s *Signature) Verify(messages []*SignatureMessage, pubKey *PublicKeyWithGenerators) error {
	if len(messages) != pubKey.messagesCount {
		return fmt.Errorf("%w: got %d messages, key supports %d", ErrCapacityMismatch,
			len(messages), pubKey.messagesCount)
	}

	p1 := s.A

	q1 := curve.GenG2.Mul(s.E)
	q1.Add(pubKey.w)

	p2 := computeB(s.S, messages, pubKey)
	p2.Neg()

	if compareTwoPairings(p1, q1, p2, curve.GenG2) {
		return nil
	}

	return ErrInvalidSignature
}

// computeB returns g1 * h0^s * h[0]^m[0] * ... * h[n-1]^m[n-1].
func computeB(s *ml.Zr, messages []*SignatureMessage, key *PublicKeyWithGenerators) *ml.G1 {
	const basesOffset = 2

	cb := newCommitmentBuilder(len(messages) + basesOffset)

	cb.add(curve.GenG1, curve.NewZrFromInt(1))
	cb.add(key.H0, s)

	for i := 0; i < len(messages); i++ {
		cb.add(key.H[i], messages[i].FR)
	}

	return cb.build()
}

type commitmentBuilder struct {
	bases   []*ml.G1
	scalars []*ml.Zr
}

func newCommitmentBuilder(expectedSize int) *commitmentBuilder {
	return &commitmentBuilder{
		bases:   make([]*ml.G1, 0, expectedSize),
		scalars: make([]*ml.Zr, 0, expectedSize),
	}
}

func (cb *commitmentBuilder) add(base *ml.G1, scalar *ml.Zr) {
	cb.bases = append(cb.bases, base)
	cb.scalars = append(cb.scalars, scalar)
}

func (cb *commitmentBuilder) build() *ml.G1 {
	return sumOfG1Products(cb.bases, cb.scalars)
}

func sumOfG1Products(bases []*ml.G1, scalars []*ml.Zr) *ml.G1 {
	res := g1Zero()

	for i := 0; i < len(bases); i++ {
		res.Add(bases[i].Mul(scalars[i]))
	}

	return res
}

// g1Zero returns the identity of G1.
func g1Zero() *ml.G1 {
	zero := curve.GenG1.Copy()
	zero.Sub(curve.GenG1)

	return zero
}

func compareTwoPairings(p1 *ml.G1, q1 *ml.G2,
	p2 *ml.G1, q2 *ml.G2) bool {
	p := curve.Pairing2(q1, p1, q2, p2)
	p = curve.FExp(p)

	return p.IsUnity()
}
