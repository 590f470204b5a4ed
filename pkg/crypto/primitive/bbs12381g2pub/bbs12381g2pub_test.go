/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub_test

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-bbs-signatures-go/pkg/crypto/primitive/bbs12381g2pub"
)

func TestBBSG2Pub_SignVerify(t *testing.T) {
	pubKeyBytes, privKeyBytes := generateKeyPair(t, 1)

	bls := bbs12381g2pub.New()

	signatureBytes, err := bls.Sign([][]byte{[]byte("Message1")}, privKeyBytes, pubKeyBytes)
	require.NoError(t, err)
	require.Len(t, signatureBytes, 112)

	t.Run("valid signature", func(t *testing.T) {
		require.NoError(t, bls.Verify([][]byte{[]byte("Message1")}, signatureBytes, pubKeyBytes))
	})

	t.Run("invalid signature", func(t *testing.T) {
		err = bls.Verify([][]byte{[]byte("BadMessage")}, signatureBytes, pubKeyBytes)
		require.Error(t, err)
		require.EqualError(t, err, "invalid BLS12-381 signature")
		require.True(t, errors.Is(err, bbs12381g2pub.ErrInvalidSignature))
	})

	t.Run("tampered signature", func(t *testing.T) {
		tampered := make([]byte, len(signatureBytes))
		copy(tampered, signatureBytes)
		tampered[len(tampered)-1] ^= 1

		err = bls.Verify([][]byte{[]byte("Message1")}, tampered, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)
	})

	t.Run("tampered signature point", func(t *testing.T) {
		for i := 0; i < 48; i++ {
			for _, bit := range []byte{0x01, 0x10} {
				tampered := make([]byte, len(signatureBytes))
				copy(tampered, signatureBytes)
				tampered[i] ^= bit

				err = bls.Verify([][]byte{[]byte("Message1")}, tampered, pubKeyBytes)
				require.Error(t, err)
				require.True(t, errors.Is(err, bbs12381g2pub.ErrMalformedSignature) ||
					errors.Is(err, bbs12381g2pub.ErrInvalidSignature), err.Error())
			}
		}
	})

	t.Run("other key", func(t *testing.T) {
		otherPubKeyBytes, _ := generateKeyPair(t, 1)

		err = bls.Verify([][]byte{[]byte("Message1")}, signatureBytes, otherPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)
	})

	t.Run("capacity mismatch", func(t *testing.T) {
		_, err = bls.Sign([][]byte{[]byte("Message1"), []byte("Message2")}, privKeyBytes, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrCapacityMismatch)

		_, err = bls.Sign([][]byte{}, privKeyBytes, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrCapacityMismatch)

		err = bls.Verify([][]byte{}, signatureBytes, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrCapacityMismatch)
	})

	t.Run("invalid input public key", func(t *testing.T) {
		err = bls.Verify([][]byte{[]byte("Message1")}, signatureBytes, []byte("invalid"))
		require.Error(t, err)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedKey)
		require.Contains(t, err.Error(), "invalid size of public key")
	})

	t.Run("invalid input private key", func(t *testing.T) {
		_, err = bls.Sign([][]byte{[]byte("Message1")}, []byte("invalid"), pubKeyBytes)
		require.Error(t, err)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedKey)
		require.Contains(t, err.Error(), "invalid size of private key")
	})

	t.Run("invalid input signature", func(t *testing.T) {
		err = bls.Verify([][]byte{[]byte("Message1")}, []byte("invalid"), pubKeyBytes)
		require.Error(t, err)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedSignature)
		require.Contains(t, err.Error(), "invalid size of signature")

		sigBytesInvalid := make([]byte, len(signatureBytes))

		_, err = rand.Read(sigBytesInvalid)
		require.NoError(t, err)

		err = bls.Verify([][]byte{[]byte("Message1")}, sigBytesInvalid, pubKeyBytes)
		require.Error(t, err)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedSignature)
	})
}

func TestBBSG2Pub_DeriveProof(t *testing.T) {
	pubKeyBytes, privKeyBytes := generateKeyPair(t, 5)

	messagesBytes := [][]byte{
		[]byte("message1"), []byte("message2"), []byte("message3"), []byte("message4"), []byte("message5"),
	}

	bls := bbs12381g2pub.New()

	signatureBytes, err := bls.Sign(messagesBytes, privKeyBytes, pubKeyBytes)
	require.NoError(t, err)

	nonce := []byte("nonce")

	t.Run("selective disclosure", func(t *testing.T) {
		proofBytes, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{3, 0})
		require.NoError(t, err)

		require.NoError(t, bls.VerifyProof([][]byte{messagesBytes[0], messagesBytes[3]}, proofBytes, nonce,
			pubKeyBytes))

		err = bls.VerifyProof([][]byte{messagesBytes[0], messagesBytes[3]}, proofBytes, []byte("other nonce"),
			pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidProof)

		err = bls.VerifyProof([][]byte{messagesBytes[3], messagesBytes[0]}, proofBytes, nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidProof)

		err = bls.VerifyProof([][]byte{messagesBytes[0]}, proofBytes, nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrLengthMismatch)
	})

	t.Run("reveal all and none", func(t *testing.T) {
		proofBytes, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{0, 1, 2, 3, 4})
		require.NoError(t, err)
		require.NoError(t, bls.VerifyProof(messagesBytes, proofBytes, nonce, pubKeyBytes))

		proofBytes, err = bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, nil)
		require.NoError(t, err)
		require.NoError(t, bls.VerifyProof(nil, proofBytes, nonce, pubKeyBytes))
	})

	t.Run("empty nonce", func(t *testing.T) {
		proofBytes, err := bls.DeriveProof(messagesBytes, signatureBytes, nil, pubKeyBytes, []int{1})
		require.NoError(t, err)

		require.NoError(t, bls.VerifyProof([][]byte{messagesBytes[1]}, proofBytes, []byte{}, pubKeyBytes))

		err = bls.VerifyProof([][]byte{messagesBytes[1]}, proofBytes, nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidProof)
	})

	t.Run("proofs are unlinkable", func(t *testing.T) {
		proof1, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{1})
		require.NoError(t, err)

		proof2, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{1})
		require.NoError(t, err)

		require.NotEqual(t, proof1, proof2)
	})

	t.Run("tampered proof", func(t *testing.T) {
		proofBytes, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{2})
		require.NoError(t, err)

		tampered := make([]byte, len(proofBytes))
		copy(tampered, proofBytes)
		tampered[len(tampered)-1] ^= 1

		err = bls.VerifyProof([][]byte{messagesBytes[2]}, tampered, nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidProof)
	})

	t.Run("malformed proof", func(t *testing.T) {
		err = bls.VerifyProof(nil, []byte("?"), nonce, pubKeyBytes)
		require.Error(t, err)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedProof)
		require.Contains(t, err.Error(), "invalid size of PoK payload")

		proofBytes, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{2})
		require.NoError(t, err)

		err = bls.VerifyProof([][]byte{messagesBytes[2]}, proofBytes[:10], nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedProof)
		require.Contains(t, err.Error(), "invalid size of signature proof")
	})

	t.Run("proof for other capacity", func(t *testing.T) {
		otherPubKeyBytes, _ := generateKeyPair(t, 4)

		proofBytes, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{2})
		require.NoError(t, err)

		err = bls.VerifyProof([][]byte{messagesBytes[2]}, proofBytes, nonce, otherPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrCapacityMismatch)
	})

	t.Run("invalid revealed indexes", func(t *testing.T) {
		_, err = bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{0, 5})
		require.ErrorIs(t, err, bbs12381g2pub.ErrIndexOutOfBounds)

		_, err = bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{-1})
		require.ErrorIs(t, err, bbs12381g2pub.ErrIndexOutOfBounds)

	})

	t.Run("repeated revealed indexes are merged", func(t *testing.T) {
		proofBytes, err := bls.DeriveProof(messagesBytes, signatureBytes, nonce, pubKeyBytes, []int{3, 1, 3, 1})
		require.NoError(t, err)

		require.NoError(t, bls.VerifyProof([][]byte{messagesBytes[1], messagesBytes[3]}, proofBytes, nonce,
			pubKeyBytes))

		err = bls.VerifyProof([][]byte{messagesBytes[1], messagesBytes[1], messagesBytes[3], messagesBytes[3]},
			proofBytes, nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrLengthMismatch)
	})

	t.Run("invalid signature", func(t *testing.T) {
		otherMessages := [][]byte{
			[]byte("message1"), []byte("message2"), []byte("message3"), []byte("message4"), []byte("other"),
		}

		_, err = bls.DeriveProof(otherMessages, signatureBytes, nonce, pubKeyBytes, []int{0})
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)
		require.Contains(t, err.Error(), "init proof of knowledge signature")
	})

	t.Run("capacity mismatch", func(t *testing.T) {
		_, err = bls.DeriveProof(messagesBytes[:4], signatureBytes, nonce, pubKeyBytes, []int{0})
		require.ErrorIs(t, err, bbs12381g2pub.ErrCapacityMismatch)
	})
}

func TestBBSG2Pub_BlindSign(t *testing.T) {
	pubKeyBytes, privKeyBytes := generateKeyPair(t, 3)

	bls := bbs12381g2pub.New()
	nonce := []byte("dummy nonce")

	hidden := [][]byte{[]byte("holder secret")}
	known := [][]byte{[]byte("name"), []byte("age")}

	ctx, blinding, err := bls.BlindCommit(hidden, []int{0}, pubKeyBytes, nonce)
	require.NoError(t, err)

	verified, err := bls.VerifyBlindContext(ctx, []int{0}, pubKeyBytes, nonce)
	require.NoError(t, err)
	require.True(t, verified)

	blindSignatureBytes, err := bls.BlindSign(known, []int{1, 2}, ctx.CommitmentBytes(), privKeyBytes, pubKeyBytes)
	require.NoError(t, err)

	allMessages := [][]byte{hidden[0], known[0], known[1]}

	t.Run("unblinded signature verifies", func(t *testing.T) {
		signatureBytes, err := bls.Unblind(blindSignatureBytes, blinding.ToBytes())
		require.NoError(t, err)

		require.NoError(t, bls.Verify(allMessages, signatureBytes, pubKeyBytes))

		proofBytes, err := bls.DeriveProof(allMessages, signatureBytes, nonce, pubKeyBytes, []int{1})
		require.NoError(t, err)
		require.NoError(t, bls.VerifyProof([][]byte{known[0]}, proofBytes, nonce, pubKeyBytes))
	})

	t.Run("blind signature does not verify", func(t *testing.T) {
		err = bls.Verify(allMessages, blindSignatureBytes, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)
	})

	t.Run("wrong blinding factor", func(t *testing.T) {
		_, otherBlinding, err := bls.BlindCommit(hidden, []int{0}, pubKeyBytes, nonce)
		require.NoError(t, err)

		signatureBytes, err := bls.Unblind(blindSignatureBytes, otherBlinding.ToBytes())
		require.NoError(t, err)

		err = bls.Verify(allMessages, signatureBytes, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)
	})

	t.Run("other nonce", func(t *testing.T) {
		verified, err := bls.VerifyBlindContext(ctx, []int{0}, pubKeyBytes, []byte("bad nonce"))
		require.NoError(t, err)
		require.False(t, verified)
	})

	t.Run("other blinded indexes", func(t *testing.T) {
		verified, err := bls.VerifyBlindContext(ctx, []int{1}, pubKeyBytes, nonce)
		require.NoError(t, err)
		require.False(t, verified)

		verified, err = bls.VerifyBlindContext(ctx, []int{0, 1}, pubKeyBytes, nonce)
		require.NoError(t, err)
		require.False(t, verified)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, _, err = bls.BlindCommit(hidden, []int{0, 1}, pubKeyBytes, nonce)
		require.ErrorIs(t, err, bbs12381g2pub.ErrLengthMismatch)

		_, _, err = bls.BlindCommit(hidden, []int{3}, pubKeyBytes, nonce)
		require.ErrorIs(t, err, bbs12381g2pub.ErrIndexOutOfBounds)

		_, _, err = bls.BlindCommit(hidden, []int{0}, []byte("key"), nonce)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedKey)

		_, err = bls.VerifyBlindContext(ctx, []int{0, 0}, pubKeyBytes, nonce)
		require.ErrorIs(t, err, bbs12381g2pub.ErrDuplicateIndex)

		_, err = bls.BlindSign(known, []int{1}, ctx.CommitmentBytes(), privKeyBytes, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrLengthMismatch)

		_, err = bls.BlindSign(known, []int{1, 2}, []byte("commitment"), privKeyBytes, pubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedProof)

		_, err = bls.Unblind([]byte("signature"), blinding.ToBytes())
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedSignature)

		_, err = bls.Unblind(blindSignatureBytes, []byte("blinding"))
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedSignature)
	})
}

func TestBBSG2Pub_BlsSignVerify(t *testing.T) {
	blsPubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(sha256.New, nil)
	require.NoError(t, err)

	blsPubKeyBytes, err := blsPubKey.Marshal()
	require.NoError(t, err)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)

	messagesBytes := [][]byte{[]byte("message1"), []byte("message2"), []byte("message3")}

	bls := bbs12381g2pub.New()

	signatureBytes, err := bls.BlsSign(messagesBytes, privKeyBytes)
	require.NoError(t, err)
	require.Len(t, signatureBytes, 112)

	t.Run("valid signature", func(t *testing.T) {
		require.NoError(t, bls.BlsVerify(messagesBytes, signatureBytes, blsPubKeyBytes))
	})

	t.Run("same signature under the expanded key", func(t *testing.T) {
		pubKeyWithGenerators, err := blsPubKey.ToPublicKeyWithGenerators(len(messagesBytes))
		require.NoError(t, err)

		pubKeyBytes, err := pubKeyWithGenerators.Marshal()
		require.NoError(t, err)

		require.NoError(t, bls.Verify(messagesBytes, signatureBytes, pubKeyBytes))
	})

	t.Run("invalid signature", func(t *testing.T) {
		err = bls.BlsVerify([][]byte{[]byte("message1"), []byte("message2"), []byte("other")},
			signatureBytes, blsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)

		err = bls.BlsVerify(messagesBytes[:2], signatureBytes, blsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)
	})

	t.Run("no messages", func(t *testing.T) {
		_, err = bls.BlsSign(nil, privKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrCapacityMismatch)

		err = bls.BlsVerify(nil, signatureBytes, blsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrCapacityMismatch)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err = bls.BlsSign(messagesBytes, []byte("invalid"))
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedKey)

		err = bls.BlsVerify(messagesBytes, signatureBytes, []byte("invalid"))
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedKey)

		err = bls.BlsVerify(messagesBytes, []byte("invalid"), blsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedSignature)
	})
}

func TestBBSG2Pub_BlsDeriveProof(t *testing.T) {
	blsPubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(sha256.New, nil)
	require.NoError(t, err)

	blsPubKeyBytes, err := blsPubKey.Marshal()
	require.NoError(t, err)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)

	messagesBytes := [][]byte{[]byte("message1"), []byte("message2"), []byte("message3"), []byte("message4")}
	nonce := []byte("nonce")

	bls := bbs12381g2pub.New()

	signatureBytes, err := bls.BlsSign(messagesBytes, privKeyBytes)
	require.NoError(t, err)

	proofBytes, err := bls.BlsDeriveProof(messagesBytes, signatureBytes, nonce, blsPubKeyBytes, []int{0, 2})
	require.NoError(t, err)

	t.Run("valid proof", func(t *testing.T) {
		require.NoError(t, bls.BlsVerifyProof([][]byte{messagesBytes[0], messagesBytes[2]}, proofBytes, nonce,
			blsPubKeyBytes))
	})

	t.Run("verified under the expanded key", func(t *testing.T) {
		pubKeyWithGenerators, err := blsPubKey.ToPublicKeyWithGenerators(len(messagesBytes))
		require.NoError(t, err)

		pubKeyBytes, err := pubKeyWithGenerators.Marshal()
		require.NoError(t, err)

		require.NoError(t, bls.VerifyProof([][]byte{messagesBytes[0], messagesBytes[2]}, proofBytes, nonce,
			pubKeyBytes))
	})

	t.Run("other nonce", func(t *testing.T) {
		err = bls.BlsVerifyProof([][]byte{messagesBytes[0], messagesBytes[2]}, proofBytes, []byte("other nonce"),
			blsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidProof)
	})

	t.Run("other key", func(t *testing.T) {
		otherBlsPubKey, _, err := bbs12381g2pub.GenerateKeyPair(sha256.New, nil)
		require.NoError(t, err)

		otherBlsPubKeyBytes, err := otherBlsPubKey.Marshal()
		require.NoError(t, err)

		err = bls.BlsVerifyProof([][]byte{messagesBytes[0], messagesBytes[2]}, proofBytes, nonce,
			otherBlsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidProof)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err = bls.BlsDeriveProof(messagesBytes, signatureBytes, nonce, blsPubKeyBytes, []int{4})
		require.ErrorIs(t, err, bbs12381g2pub.ErrIndexOutOfBounds)

		_, err = bls.BlsDeriveProof(messagesBytes, signatureBytes, nonce, []byte("invalid"), []int{0})
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedKey)

		_, err = bls.BlsDeriveProof(messagesBytes[:3], signatureBytes, nonce, blsPubKeyBytes, []int{0})
		require.ErrorIs(t, err, bbs12381g2pub.ErrInvalidSignature)

		err = bls.BlsVerifyProof(nil, []byte("?"), nonce, blsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrMalformedProof)

		err = bls.BlsVerifyProof([][]byte{messagesBytes[0]}, proofBytes, nonce, blsPubKeyBytes)
		require.ErrorIs(t, err, bbs12381g2pub.ErrLengthMismatch)
	})
}

func generateKeyPair(t *testing.T, messagesCount int) ([]byte, []byte) {
	t.Helper()

	pubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(sha256.New, nil)
	require.NoError(t, err)

	pubKeyWithGenerators, err := pubKey.ToPublicKeyWithGenerators(messagesCount)
	require.NoError(t, err)

	pubKeyBytes, err := pubKeyWithGenerators.Marshal()
	require.NoError(t, err)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)

	return pubKeyBytes, privKeyBytes
}
