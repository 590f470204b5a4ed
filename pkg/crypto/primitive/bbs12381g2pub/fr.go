/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"crypto/rand"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/blake2b"
)

func parseFr(data []byte) *ml.Zr {
	return curve.NewZrFromBytes(data)
}

// nolint:gochecknoglobals
var f2192Bytes = []byte{
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x1,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
}

func f2192() *ml.Zr {
	return curve.NewZrFromBytes(f2192Bytes)
}

// frFromOKM maps arbitrary bytes to a scalar: the 48 bytes of a BLAKE2b-384 digest are read as
// okm[:24]*2^192 + okm[24:] modulo the group order.
func frFromOKM(message []byte) *ml.Zr {
	const (
		eightBytes = 8
		okmMiddle  = 24
	)

	// We pass a null key so error is impossible here.
	h, _ := blake2b.New384(nil) //nolint:errcheck

	// blake2b.digest() does not return an error.
	_, _ = h.Write(message)
	okm := h.Sum(nil)
	emptyEightBytes := make([]byte, eightBytes)

	elm := curve.NewZrFromBytes(append(emptyEightBytes, okm[:okmMiddle]...))
	elm = elm.Mul(f2192())

	fr := curve.NewZrFromBytes(append(emptyEightBytes, okm[okmMiddle:]...))
	elm = elm.Plus(fr)
	elm.Mod(curve.GroupOrder)

	return elm
}

// frToBytes returns the canonical 32 byte big-endian form of the scalar.
func frToBytes(fr *ml.Zr) []byte {
	c := fr.Copy()
	c.Mod(curve.GroupOrder)

	b := c.Bytes()
	if len(b) == frCompressedSize {
		return b
	}

	out := make([]byte, frCompressedSize)
	copy(out[frCompressedSize-len(b):], b)

	return out
}

// frToUncompressed returns the 48 byte form of the scalar (left padded with zeroes).
func frToUncompressed(fr *ml.Zr) []byte {
	out := make([]byte, frUncompressedSize)
	copy(out[frUncompressedSize-frCompressedSize:], frToBytes(fr))

	return out
}

func frAdd(a, b *ml.Zr) *ml.Zr {
	res := a.Plus(b)
	res.Mod(curve.GroupOrder)

	return res
}

func frSub(a, b *ml.Zr) *ml.Zr {
	res := a.Minus(b)
	res.Mod(curve.GroupOrder)

	return res
}

func frMul(a, b *ml.Zr) *ml.Zr {
	res := a.Mul(b)
	res.Mod(curve.GroupOrder)

	return res
}

func frNeg(a *ml.Zr) *ml.Zr {
	return frSub(curve.NewZrFromInt(0), a)
}

func frInverse(a *ml.Zr) *ml.Zr {
	res := a.Copy()
	res.InvModP(curve.GroupOrder)

	return res
}

func messagesToFr(messages [][]byte) []*SignatureMessage {
	messagesFr := make([]*SignatureMessage, len(messages))

	for i := range messages {
		messagesFr[i] = ParseSignatureMessage(messages[i])
	}

	return messagesFr
}

func createRandSignatureFr() *ml.Zr {
	return curve.NewRandomZr(rand.Reader)
}
