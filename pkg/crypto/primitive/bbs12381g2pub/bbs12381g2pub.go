/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs12381g2pub contains BBS+ signing primitives and keys: signing and verification, blind
// issuance of signatures over committed messages, and zero-knowledge proofs of a signature that
// disclose only selected messages.
//
// Keys are handled in two forms. The BLS public key is a single compressed G2 point. The BBS
// public key is the BLS key extended with the generators for a fixed number of messages, see
// PublicKeyWithGenerators. BBSG2Pub operates on the BBS public key, its Bls methods take the BLS
// public key and derive the generators for the number of messages at hand.
package bbs12381g2pub

import (
	"fmt"

	ml "github.com/IBM/mathlib"

	"github.com/hyperledger/aries-bbs-signatures-go/pkg/common/log"
)

var logger = log.New("aries-bbs/crypto/bbs12381g2pub")

// nolint:gochecknoglobals
var curve = ml.Curves[ml.BLS12_381_BBS]

const (
	// Number of bytes in scalar compressed form.
	frCompressedSize = 32

	// Number of bytes in scalar uncompressed form.
	frUncompressedSize = 48
)

// nolint:gochecknoglobals
var (
	// Signature length.
	bls12381SignatureLen = curve.CompressedG1ByteSize + 2*frCompressedSize

	// Default BLS 12-381 public key length in G2 field.
	bls12381G2PublicKeyLen = curve.CompressedG2ByteSize

	// Number of bytes in G1 X coordinate.
	g1CompressedSize = curve.CompressedG1ByteSize

	// Number of bytes in G1 X and Y coordinates.
	g1UncompressedSize = curve.G1ByteSize

	// Number of bytes in G2 X(a, b) and Y(a, b) coordinates.
	g2UncompressedSize = curve.G2ByteSize
)

// BBSG2Pub defines BBS+ signature scheme where public key is a point in the field of G2.
// BBS+ signature scheme (as defined in https://eprint.iacr.org/2016/663.pdf, section 4.3).
type BBSG2Pub struct{}

// New creates a new BBSG2Pub.
func New() *BBSG2Pub {
	return &BBSG2Pub{}
}

// Sign signs the messages with the private key. The number of messages must match the capacity of the
// public key, which is checked before any message is hashed.
func (bbs *BBSG2Pub) Sign(messages [][]byte, privKeyBytes, pubKeyBytes []byte) ([]byte, error) {
	pubKey, err := parsePublicKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}

	if err = checkCapacity(len(messages), pubKey); err != nil {
		return nil, err
	}

	privKey, err := UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w: %w", ErrMalformedKey, err)
	}

	return signWithKey(messages, privKey, pubKey)
}

// BlsSign signs the messages with the private key only. The generators are derived from the BLS public key
// of the private key for len(messages).
func (bbs *BBSG2Pub) BlsSign(messages [][]byte, privKeyBytes []byte) ([]byte, error) {
	privKey, err := UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w: %w", ErrMalformedKey, err)
	}

	pubKey, err := privKey.PublicKey().ToPublicKeyWithGenerators(len(messages))
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	return signWithKey(messages, privKey, pubKey)
}

// Verify makes BLS BBS12-381 signature verification. A signature that does not match returns
// ErrInvalidSignature, signature bytes that cannot be decoded return ErrMalformedSignature.
func (bbs *BBSG2Pub) Verify(messages [][]byte, sigBytes, pubKeyBytes []byte) error {
	pubKey, err := parsePublicKey(pubKeyBytes)
	if err != nil {
		return err
	}

	if err = checkCapacity(len(messages), pubKey); err != nil {
		return err
	}

	return verifyWithKey(messages, sigBytes, pubKey)
}

// BlsVerify verifies the signature against the BLS public key expanded for len(messages).
func (bbs *BBSG2Pub) BlsVerify(messages [][]byte, sigBytes, blsPubKeyBytes []byte) error {
	pubKey, err := expandBlsPublicKey(blsPubKeyBytes, len(messages))
	if err != nil {
		return err
	}

	return verifyWithKey(messages, sigBytes, pubKey)
}

// BlindCommit commits to the messages to be hidden from the signer. messages[i] is placed at index
// blinded[i]. The returned blinding factor must be kept to unblind the signature.
func (bbs *BBSG2Pub) BlindCommit(messages [][]byte, blinded []int, pubKeyBytes, nonce []byte) (
	*BlindSignatureContext, *SignatureBlinding, error) {
	if len(messages) != len(blinded) {
		return nil, nil, fmt.Errorf("%w: %d messages, %d blinded indexes", ErrLengthMismatch,
			len(messages), len(blinded))
	}

	pubKey, err := parsePublicKey(pubKeyBytes)
	if err != nil {
		return nil, nil, err
	}

	hidden, err := indexedMessages(messages, blinded, pubKey.messagesCount)
	if err != nil {
		return nil, nil, err
	}

	return NewBlindSignatureContext(pubKey, hidden, ParseProofNonce(nonce))
}

// VerifyBlindContext checks the proof of hidden messages of a blind signature context.
// Invalid input is reported as an error, a proof that does not check out as false.
func (bbs *BBSG2Pub) VerifyBlindContext(ctx *BlindSignatureContext, blinded []int, pubKeyBytes,
	nonce []byte) (bool, error) {
	pubKey, err := parsePublicKey(pubKeyBytes)
	if err != nil {
		return false, err
	}

	return ctx.Verify(blinded, pubKey, ParseProofNonce(nonce))
}

// BlindSign signs the commitment of a verified blind signature context and the known messages.
// messages[i] is placed at index known[i].
func (bbs *BBSG2Pub) BlindSign(messages [][]byte, known []int, commitmentBytes, privKeyBytes,
	pubKeyBytes []byte) ([]byte, error) {
	if len(messages) != len(known) {
		return nil, fmt.Errorf("%w: %d messages, %d known indexes", ErrLengthMismatch,
			len(messages), len(known))
	}

	pubKey, err := parsePublicKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}

	knownMessages, err := indexedMessages(messages, known, pubKey.messagesCount)
	if err != nil {
		return nil, err
	}

	privKey, err := UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w: %w", ErrMalformedKey, err)
	}

	commitment, err := ParseCommitment(commitmentBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProof, err)
	}

	blindSignature, err := NewBlindSignature(commitment, knownMessages, privKey, pubKey)
	if err != nil {
		return nil, err
	}

	return blindSignature.ToBytes()
}

// Unblind turns a blind signature into a regular one using the blinding factor of the commitment.
func (bbs *BBSG2Pub) Unblind(blindSigBytes, blindingFactorBytes []byte) ([]byte, error) {
	blindSignature, err := ParseBlindSignature(blindSigBytes)
	if err != nil {
		return nil, fmt.Errorf("parse blind signature: %w: %w", ErrMalformedSignature, err)
	}

	blinding, err := ParseSignatureBlinding(blindingFactorBytes)
	if err != nil {
		return nil, fmt.Errorf("parse blinding factor: %w: %w", ErrMalformedSignature, err)
	}

	return blindSignature.ToUnblinded(blinding).ToBytes()
}

// DeriveProof derives a proof of BBS+ signature with the messages at revealedIndexes disclosed.
// Revealed indexes are sorted and repeated ones are merged. The result is the PoK payload header
// followed by the compressed proof.
func (bbs *BBSG2Pub) DeriveProof(messages [][]byte, sigBytes, nonce, pubKeyBytes []byte,
	revealedIndexes []int) ([]byte, error) {
	pubKey, err := parsePublicKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}

	if err = checkCapacity(len(messages), pubKey); err != nil {
		return nil, err
	}

	return deriveProofWithKey(messages, sigBytes, nonce, pubKey, revealedIndexes)
}

// BlsDeriveProof derives a proof like DeriveProof with the BLS public key expanded for len(messages).
func (bbs *BBSG2Pub) BlsDeriveProof(messages [][]byte, sigBytes, nonce, blsPubKeyBytes []byte,
	revealedIndexes []int) ([]byte, error) {
	pubKey, err := expandBlsPublicKey(blsPubKeyBytes, len(messages))
	if err != nil {
		return nil, err
	}

	return deriveProofWithKey(messages, sigBytes, nonce, pubKey, revealedIndexes)
}

// VerifyProof verifies BBS+ signature proof. messagesBytes are the revealed messages in ascending
// order of their indexes. Malformed proof bytes wrap ErrMalformedProof, a proof that does not
// verify wraps ErrInvalidProof.
func (bbs *BBSG2Pub) VerifyProof(messagesBytes [][]byte, proof, nonce, pubKeyBytes []byte) error {
	pubKey, err := parsePublicKey(pubKeyBytes)
	if err != nil {
		return err
	}

	payload, signatureProof, err := DecodeSignatureProof(proof)
	if err != nil {
		return err
	}

	if payload.messagesCount != pubKey.messagesCount {
		return fmt.Errorf("%w: proof is for %d messages, key supports %d", ErrCapacityMismatch,
			payload.messagesCount, pubKey.messagesCount)
	}

	return verifyProofWithKey(messagesBytes, payload, signatureProof, nonce, pubKey)
}

// BlsVerifyProof verifies a proof like VerifyProof with the BLS public key expanded for the messages
// count carried by the proof.
func (bbs *BBSG2Pub) BlsVerifyProof(messagesBytes [][]byte, proof, nonce, blsPubKeyBytes []byte) error {
	payload, signatureProof, err := DecodeSignatureProof(proof)
	if err != nil {
		return err
	}

	pubKey, err := expandBlsPublicKey(blsPubKeyBytes, payload.messagesCount)
	if err != nil {
		return err
	}

	return verifyProofWithKey(messagesBytes, payload, signatureProof, nonce, pubKey)
}

func signWithKey(messages [][]byte, privKey *PrivateKey, pubKey *PublicKeyWithGenerators) ([]byte, error) {
	signature, err := NewSignature(messagesToFr(messages), privKey, pubKey)
	if err != nil {
		return nil, err
	}

	return signature.ToBytes()
}

func verifyWithKey(messages [][]byte, sigBytes []byte, pubKey *PublicKeyWithGenerators) error {
	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("parse signature: %w: %w", ErrMalformedSignature, err)
	}

	return signature.Verify(messagesToFr(messages), pubKey)
}

func deriveProofWithKey(messages [][]byte, sigBytes, nonce []byte, pubKey *PublicKeyWithGenerators,
	revealedIndexes []int) ([]byte, error) {
	messagesCount := pubKey.messagesCount

	revealed, err := revealedIndexSet(revealedIndexes, messagesCount)
	if err != nil {
		return nil, err
	}

	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return nil, fmt.Errorf("parse signature: %w: %w", ErrMalformedSignature, err)
	}

	pokSignature, err := NewPoKOfSignature(signature, NewProofMessages(messagesToFr(messages), revealed), pubKey)
	if err != nil {
		return nil, fmt.Errorf("init proof of knowledge signature: %w", err)
	}

	proofChallenge := ComputeChallenge(pokSignature.ToBytes(), nonce)

	proof, err := pokSignature.GenerateProof(proofChallenge)
	if err != nil {
		return nil, err
	}

	return EncodeSignatureProof(messagesCount, revealed, proof)
}

func verifyProofWithKey(messagesBytes [][]byte, payload *PoKPayload, signatureProof *PoKOfSignatureProof,
	nonce []byte, pubKey *PublicKeyWithGenerators) error {
	if len(payload.Revealed) != len(messagesBytes) {
		return fmt.Errorf("%w: proof reveals %d messages, %d provided", ErrLengthMismatch,
			len(payload.Revealed), len(messagesBytes))
	}

	revealedMessages := make(map[int]*SignatureMessage, len(payload.Revealed))
	for i, idx := range payload.Revealed {
		revealedMessages[idx] = ParseSignatureMessage(messagesBytes[i])
	}

	return VerifySignaturePoK(&ProofRequest{
		RevealedMessages: payload.Revealed,
		VerificationKey:  pubKey,
	}, &SignatureProof{
		RevealedMessages: revealedMessages,
		Proof:            signatureProof,
	}, nonce)
}

func parsePublicKey(pubKeyBytes []byte) (*PublicKeyWithGenerators, error) {
	pubKey, err := UnmarshalPublicKeyWithGenerators(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w: %w", ErrMalformedKey, err)
	}

	return pubKey, nil
}

// expandBlsPublicKey parses a BLS public key and takes its generators for messagesCount from the cache.
func expandBlsPublicKey(blsPubKeyBytes []byte, messagesCount int) (*PublicKeyWithGenerators, error) {
	blsPubKey, err := UnmarshalPublicKey(blsPubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w: %w", ErrMalformedKey, err)
	}

	pubKey, err := blsPubKey.ToPublicKeyWithGenerators(messagesCount)
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	return pubKey, nil
}

func checkCapacity(messagesCount int, pubKey *PublicKeyWithGenerators) error {
	if messagesCount != pubKey.messagesCount {
		return fmt.Errorf("%w: got %d messages, key supports %d", ErrCapacityMismatch,
			messagesCount, pubKey.messagesCount)
	}

	return nil
}

// indexedMessages hashes messages[i] and keys it by indexes[i].
func indexedMessages(messages [][]byte, indexes []int, messagesCount int) (map[int]*SignatureMessage, error) {
	if _, err := normalizeIndexes(indexes, messagesCount); err != nil {
		return nil, err
	}

	res := make(map[int]*SignatureMessage, len(indexes))
	for i, idx := range indexes {
		res[idx] = ParseSignatureMessage(messages[i])
	}

	return res, nil
}
