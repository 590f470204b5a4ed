/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs

// Keys are base58 encoded strings. Every other binary field is base64 encoded by encoding/json.

// GenerateKeyPairRequest is request model for generating a BBS+ key pair.
type GenerateKeyPairRequest struct {
	// optional 32 byte seed, a random one is used when empty
	Seed []byte `json:"seed,omitempty"`
	// number of messages the public key supports
	MessageCount int `json:"messageCount"`
}

// GenerateKeyPairResponse is response model for generating a BBS+ key pair.
type GenerateKeyPairResponse struct {
	SecretKey    string `json:"secretKey"`
	PublicKey    string `json:"publicKey"`
	BlsPublicKey string `json:"blsPublicKey"`
	MessageCount int    `json:"messageCount"`
}

// BlsToBbsKeyRequest is request model for expanding a BLS12-381 G2 public key to a BBS+ public key.
type BlsToBbsKeyRequest struct {
	BlsPublicKey string `json:"blsPublicKey"`
	MessageCount int    `json:"messageCount"`
}

// BlsToBbsKeyResponse is response model for expanding a BLS12-381 G2 public key.
type BlsToBbsKeyResponse struct {
	PublicKey    string `json:"publicKey"`
	MessageCount int    `json:"messageCount"`
}

// SignRequest is request model for signing messages.
type SignRequest struct {
	SecretKey string   `json:"secretKey"`
	PublicKey string   `json:"publicKey"`
	Messages  [][]byte `json:"messages"`
}

// SignResponse is response model for signing messages.
type SignResponse struct {
	Signature []byte `json:"signature"`
}

// VerifyRequest is request model for verifying a signature.
type VerifyRequest struct {
	PublicKey string   `json:"publicKey"`
	Signature []byte   `json:"signature"`
	Messages  [][]byte `json:"messages"`
}

// BlsSignRequest is request model for signing messages with the secret key only.
// The generators are derived for len(Messages) from the BLS public key of the secret key.
type BlsSignRequest struct {
	SecretKey string   `json:"secretKey"`
	Messages  [][]byte `json:"messages"`
}

// BlsVerifyRequest is request model for verifying a signature with a BLS12-381 G2 public key.
type BlsVerifyRequest struct {
	BlsPublicKey string   `json:"blsPublicKey"`
	Signature    []byte   `json:"signature"`
	Messages     [][]byte `json:"messages"`
}

// VerifyResponse is response model of all verification commands.
// A failed cryptographic check is reported as verified=false with the reason in error.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// BlindCommitRequest is request model for committing to messages hidden from the signer.
type BlindCommitRequest struct {
	PublicKey string `json:"publicKey"`
	// messages to hide, Messages[i] is placed at index Blinded[i]
	Messages [][]byte `json:"messages"`
	Blinded  []int    `json:"blinded"`
	Nonce    []byte   `json:"nonce"`
}

// BlindCommitResponse is response model for committing to hidden messages.
// BlindingFactor must stay with the holder, the other fields are sent to the signer.
type BlindCommitResponse struct {
	Commitment            []byte `json:"commitment"`
	ProofOfHiddenMessages []byte `json:"proofOfHiddenMessages"`
	ChallengeHash         []byte `json:"challengeHash"`
	BlindingFactor        []byte `json:"blindingFactor"`
}

// VerifyBlindCommitRequest is request model for verifying the proof of hidden messages.
type VerifyBlindCommitRequest struct {
	Commitment            []byte `json:"commitment"`
	ProofOfHiddenMessages []byte `json:"proofOfHiddenMessages"`
	ChallengeHash         []byte `json:"challengeHash"`
	PublicKey             string `json:"publicKey"`
	Blinded               []int  `json:"blinded"`
	Nonce                 []byte `json:"nonce"`
}

// BlindSignRequest is request model for signing a commitment together with known messages.
type BlindSignRequest struct {
	Commitment []byte `json:"commitment"`
	PublicKey  string `json:"publicKey"`
	SecretKey  string `json:"secretKey"`
	// messages known to the signer, Messages[i] is placed at index Known[i]
	Messages [][]byte `json:"messages"`
	Known    []int    `json:"known"`
}

// BlindSignResponse is response model for blind signing.
type BlindSignResponse struct {
	BlindSignature []byte `json:"blindSignature"`
}

// UnblindRequest is request model for unblinding a blind signature.
type UnblindRequest struct {
	BlindSignature []byte `json:"blindSignature"`
	BlindingFactor []byte `json:"blindingFactor"`
}

// UnblindResponse is response model for unblinding a blind signature.
type UnblindResponse struct {
	Signature []byte `json:"signature"`
}

// CreateProofRequest is request model for deriving a selective disclosure proof.
type CreateProofRequest struct {
	Signature []byte   `json:"signature"`
	PublicKey string   `json:"publicKey"`
	Messages  [][]byte `json:"messages"`
	Revealed  []int    `json:"revealed"`
	Nonce     []byte   `json:"nonce"`
}

// CreateProofResponse is response model for deriving a proof.
type CreateProofResponse struct {
	Proof []byte `json:"proof"`
}

// VerifyProofRequest is request model for verifying a selective disclosure proof.
type VerifyProofRequest struct {
	Proof     []byte `json:"proof"`
	PublicKey string `json:"publicKey"`
	// revealed messages in ascending order of their indexes
	Messages [][]byte `json:"messages"`
	Nonce    []byte   `json:"nonce"`
}

// BlsCreateProofRequest is request model for deriving a proof with a BLS12-381 G2 public key.
type BlsCreateProofRequest struct {
	Signature    []byte   `json:"signature"`
	BlsPublicKey string   `json:"blsPublicKey"`
	Messages     [][]byte `json:"messages"`
	Revealed     []int    `json:"revealed"`
	Nonce        []byte   `json:"nonce"`
}

// BlsVerifyProofRequest is request model for verifying a proof with a BLS12-381 G2 public key.
// The messages count is taken from the proof.
type BlsVerifyProofRequest struct {
	Proof        []byte `json:"proof"`
	BlsPublicKey string `json:"blsPublicKey"`
	// revealed messages in ascending order of their indexes
	Messages [][]byte `json:"messages"`
	Nonce    []byte   `json:"nonce"`
}
