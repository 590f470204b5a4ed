/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"math"

	ml "github.com/IBM/mathlib"
	"github.com/bluele/gcache"
	"golang.org/x/crypto/hkdf"
)

const (
	seedSize           = frCompressedSize
	generateKeySalt    = "BBS-SIG-KEYGEN-SALT-"
	okmSize            = 48
	generatorsCacheLen = 256

	// MaxMessagesCount is the largest capacity a public key can be expanded to.
	MaxMessagesCount = math.MaxUint16
)

// nolint:gochecknoglobals
var (
	dstG1 = []byte("BLS12381G1_XMD:BLAKE2B_SSWU_RO_BBS+_SIGNATURES:1_0_0")

	// underlying gcache is thread safe, no need of locks.
	generatorsCache = gcache.New(generatorsCacheLen).LRU().Build()
)

// PublicKey defines BLS Public Key.
type PublicKey struct {
	PointG2 *ml.G2
}

// PrivateKey defines BLS Private Key.
type PrivateKey struct {
	FR *ml.Zr
}

// PublicKeyWithGenerators extends PublicKey with a blinding generator h0, a commitment to the secret key w,
// and a generator for each message h.
// It must not be modified after creation, so a single value can be shared between goroutines.
type PublicKeyWithGenerators struct {
	H0 *ml.G1
	H  []*ml.G1

	w             *ml.G2
	messagesCount int
}

// UnmarshalPrivateKey unmarshals PrivateKey.
func UnmarshalPrivateKey(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != frCompressedSize {
		return nil, errors.New("invalid size of private key")
	}

	return &PrivateKey{FR: parseFr(privKeyBytes)}, nil
}

// Marshal marshals PrivateKey.
func (k *PrivateKey) Marshal() ([]byte, error) {
	return frToBytes(k.FR), nil
}

// PublicKey returns a Public Key as G2 point generated from the Private Key.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{PointG2: curve.GenG2.Mul(k.FR)}
}

// UnmarshalPublicKey parses a PublicKey from bytes.
func UnmarshalPublicKey(pubKeyBytes []byte) (*PublicKey, error) {
	if len(pubKeyBytes) != bls12381G2PublicKeyLen {
		return nil, errors.New("invalid size of public key")
	}

	pointG2, err := curve.NewG2FromCompressed(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("deserialize public key: %w", err)
	}

	return &PublicKey{PointG2: pointG2}, nil
}

// Marshal marshals PublicKey.
func (pk *PublicKey) Marshal() ([]byte, error) {
	return pk.PointG2.Compressed(), nil
}

// ToPublicKeyWithGenerators creates PublicKeyWithGenerators from the PublicKey.
// Derived generators are kept in a shared LRU cache keyed by the key and the messages count.
func (pk *PublicKey) ToPublicKeyWithGenerators(messagesCount int) (*PublicKeyWithGenerators, error) {
	if messagesCount < 1 || messagesCount > MaxMessagesCount {
		return nil, fmt.Errorf("%w: capacity %d is outside of [1, %d]", ErrCapacityMismatch,
			messagesCount, MaxMessagesCount)
	}

	cacheKey := generatorsCacheKey(pk, messagesCount)

	if cached, err := generatorsCache.Get(cacheKey); err == nil {
		if keyWithGenerators, ok := cached.(*PublicKeyWithGenerators); ok {
			return keyWithGenerators, nil
		}
	}

	keyWithGenerators := pk.deriveGenerators(messagesCount)

	if err := generatorsCache.Set(cacheKey, keyWithGenerators); err != nil {
		logger.Warnf("failed to cache generators: %s", err)
	}

	return keyWithGenerators, nil
}

func (pk *PublicKey) deriveGenerators(messagesCount int) *PublicKeyWithGenerators {
	offset := g2UncompressedSize + 1

	data := calcData(pk, messagesCount)

	h0 := hashToG1(data)

	h := make([]*ml.G1, messagesCount)

	for i := 1; i <= messagesCount; i++ {
		dataCopy := make([]byte, len(data))
		copy(dataCopy, data)

		copy(dataCopy[offset:], uint32ToBytes(uint32(i)))

		h[i-1] = hashToG1(dataCopy)
	}

	logger.Debugf("derived %d message generators", messagesCount)

	return &PublicKeyWithGenerators{
		H0:            h0,
		H:             h,
		w:             pk.PointG2,
		messagesCount: messagesCount,
	}
}

func generatorsCacheKey(pk *PublicKey, messagesCount int) string {
	return string(append(pk.PointG2.Compressed(), uint32ToBytes(uint32(messagesCount))...))
}

func calcData(key *PublicKey, messagesCount int) []byte {
	data := key.PointG2.Bytes()

	data = append(data, 0, 0, 0, 0, 0, 0)

	return append(data, uint32ToBytes(uint32(messagesCount))...)
}

func hashToG1(data []byte) *ml.G1 {
	return curve.HashToG1WithDomain(data, dstG1)
}

// MessagesCount returns the number of messages the key can sign.
func (pk *PublicKeyWithGenerators) MessagesCount() int {
	return pk.messagesCount
}

// PublicKey returns the BLS public key the generators were derived for.
func (pk *PublicKeyWithGenerators) PublicKey() *PublicKey {
	return &PublicKey{PointG2: pk.w}
}

// Marshal serializes the key as w || uint32(count) || h0 || h[0] || ... || h[count-1]
// with all points in compressed form.
func (pk *PublicKeyWithGenerators) Marshal() ([]byte, error) {
	bytes := make([]byte, 0, publicKeyWithGeneratorsLen(pk.messagesCount))

	bytes = append(bytes, pk.w.Compressed()...)
	bytes = append(bytes, uint32ToBytes(uint32(pk.messagesCount))...)
	bytes = append(bytes, pk.H0.Compressed()...)

	for _, h := range pk.H {
		bytes = append(bytes, h.Compressed()...)
	}

	return bytes, nil
}

// UnmarshalPublicKeyWithGenerators parses a key produced by PublicKeyWithGenerators.Marshal.
func UnmarshalPublicKeyWithGenerators(bytes []byte) (*PublicKeyWithGenerators, error) {
	const countLen = 4

	if len(bytes) < bls12381G2PublicKeyLen+countLen {
		return nil, errors.New("invalid size of public key")
	}

	pubKey, err := UnmarshalPublicKey(bytes[:bls12381G2PublicKeyLen])
	if err != nil {
		return nil, err
	}

	offset := bls12381G2PublicKeyLen

	messagesCount := int(uint32FromBytes(bytes[offset : offset+countLen]))
	if messagesCount < 1 || messagesCount > MaxMessagesCount {
		return nil, fmt.Errorf("invalid messages count of public key: %d", messagesCount)
	}

	if len(bytes) != publicKeyWithGeneratorsLen(messagesCount) {
		return nil, errors.New("invalid size of public key")
	}

	offset += countLen

	points := make([]*ml.G1, messagesCount+1)

	for i := range points {
		points[i], err = curve.NewG1FromCompressed(bytes[offset : offset+g1CompressedSize])
		if err != nil {
			return nil, fmt.Errorf("deserialize generator %d: %w", i, err)
		}

		offset += g1CompressedSize
	}

	return &PublicKeyWithGenerators{
		H0:            points[0],
		H:             points[1:],
		w:             pubKey.PointG2,
		messagesCount: messagesCount,
	}, nil
}

func publicKeyWithGeneratorsLen(messagesCount int) int {
	return bls12381G2PublicKeyLen + 4 + (messagesCount+1)*g1CompressedSize //nolint:gomnd
}

// GenerateKeyPair generates BBS+ PublicKey and PrivateKey pair.
func GenerateKeyPair(h func() hash.Hash, seed []byte) (*PublicKey, *PrivateKey, error) {
	if len(seed) != 0 && len(seed) != seedSize {
		return nil, nil, errors.New("invalid size of seed")
	}

	okm, err := generateOKM(seed, h)
	if err != nil {
		return nil, nil, err
	}

	privKey := &PrivateKey{FR: frFromOKM(okm)}

	return privKey.PublicKey(), privKey, nil
}

func generateOKM(seed []byte, h func() hash.Hash) ([]byte, error) {
	ikm := make([]byte, seedSize+1)

	if len(seed) == 0 {
		if _, err := rand.Read(ikm[:seedSize]); err != nil {
			return nil, fmt.Errorf("create random seed: %w", err)
		}
	} else {
		copy(ikm, seed)
	}

	info := make([]byte, 2) //nolint:gomnd
	okm := make([]byte, okmSize)

	if _, err := io.ReadFull(hkdf.New(h, ikm, []byte(generateKeySalt), info), okm); err != nil {
		return nil, fmt.Errorf("derive key material: %w", err)
	}

	return okm, nil
}

func uint32ToBytes(value uint32) []byte {
	bytes := make([]byte, 4) //nolint:gomnd

	binary.BigEndian.PutUint32(bytes, value)

	return bytes
}

func uint16ToBytes(value uint16) []byte {
	bytes := make([]byte, 2) //nolint:gomnd

	binary.BigEndian.PutUint16(bytes, value)

	return bytes
}

func uint32FromBytes(bytes []byte) uint32 {
	return binary.BigEndian.Uint32(bytes)
}

func uint16FromBytes(bytes []byte) uint16 {
	return binary.BigEndian.Uint16(bytes)
}
