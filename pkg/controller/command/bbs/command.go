/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs provides the BBS+ signature controller commands: key generation, signing and verification,
// blind issuance and selective disclosure proofs. Every method takes a JSON request and writes a JSON response.
package bbs

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"io"
	"strconv"

	"github.com/btcsuite/btcutil/base58"

	"github.com/hyperledger/aries-bbs-signatures-go/pkg/common/log"
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/controller/command"
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/controller/internal/cmdutil"
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/internal/logutil"
)

var logger = log.New("aries-bbs/command/bbs")

// Error codes.
const (
	// InvalidRequestErrorCode is typically a code for invalid requests.
	InvalidRequestErrorCode = command.Code(iota + command.BBS)
	// InvalidKeyErrorCode is for keys that cannot be decoded.
	InvalidKeyErrorCode
	// InvalidSignatureErrorCode is for signatures and blinding factors that cannot be decoded outside of
	// verification, where they are a negative result.
	InvalidSignatureErrorCode
	// InvalidProofFormatErrorCode is for proofs and blind commitments that cannot be decoded.
	InvalidProofFormatErrorCode
	// CapacityMismatchErrorCode is for message counts that do not match the public key.
	CapacityMismatchErrorCode
	// IndexOutOfBoundsErrorCode is for message indexes outside of the public key capacity.
	IndexOutOfBoundsErrorCode
	// LengthMismatchErrorCode is for messages and indexes of different length.
	LengthMismatchErrorCode
	// DuplicateIndexErrorCode is for message indexes given more than once.
	DuplicateIndexErrorCode
	// GenerateKeyPairError is for failures while generating a key pair.
	GenerateKeyPairError
	// SignError is for failures while signing.
	SignError
	// VerifyError is for failures while verifying which are not a negative verification result.
	VerifyError
	// BlindCommitError is for failures while committing to hidden messages.
	BlindCommitError
	// BlindSignError is for failures while blind signing.
	BlindSignError
	// UnblindError is for failures while unblinding a signature.
	UnblindError
	// CreateProofError is for failures while deriving a proof.
	CreateProofError
)

// constants for BBS+ commands.
const (
	// command name.
	CommandName = "bbs"

	// command methods.
	GenerateKeyPairCommandMethod   = "GenerateKeyPair"
	BlsToBbsKeyCommandMethod       = "BlsToBbsKey"
	SignCommandMethod              = "Sign"
	VerifyCommandMethod            = "Verify"
	BlindCommitCommandMethod       = "BlindCommit"
	VerifyBlindCommitCommandMethod = "VerifyBlindCommit"
	BlindSignCommandMethod         = "BlindSign"
	UnblindCommandMethod           = "Unblind"
	CreateProofCommandMethod       = "CreateProof"
	VerifyProofCommandMethod       = "VerifyProof"
	BlsSignCommandMethod           = "BlsSign"
	BlsVerifyCommandMethod         = "BlsVerify"
	BlsCreateProofCommandMethod    = "BlsCreateProof"
	BlsVerifyProofCommandMethod    = "BlsVerifyProof"

	// error messages.
	errEmptyPublicKey      = "public key is mandatory"
	errEmptySecretKey      = "secret key is mandatory"
	errEmptyBlsPublicKey   = "BLS public key is mandatory"
	errEmptySignature      = "signature is mandatory"
	errEmptyProof          = "proof is mandatory"
	errEmptyCommitment     = "commitment is mandatory"
	errEmptyBlindSignature = "blind signature is mandatory"
	errEmptyBlindingFactor = "blinding factor is mandatory"
	errInvalidSeed         = "seed must be empty or 32 bytes"

	seedSize = 32
)

// validationCodes maps input errors of the primitive to command error codes, checked in order.
// nolint:gochecknoglobals
var validationCodes = []struct {
	err  error
	code command.Code
}{
	{bbs12381g2pub.ErrMalformedKey, InvalidKeyErrorCode},
	{bbs12381g2pub.ErrMalformedSignature, InvalidSignatureErrorCode},
	{bbs12381g2pub.ErrMalformedProof, InvalidProofFormatErrorCode},
	{bbs12381g2pub.ErrCapacityMismatch, CapacityMismatchErrorCode},
	{bbs12381g2pub.ErrIndexOutOfBounds, IndexOutOfBoundsErrorCode},
	{bbs12381g2pub.ErrLengthMismatch, LengthMismatchErrorCode},
	{bbs12381g2pub.ErrDuplicateIndex, DuplicateIndexErrorCode},
}

// Command contains command operations provided by BBS+ signature controller.
type Command struct {
	bbs     *bbs12381g2pub.BBSG2Pub
	keyHash func() hash.Hash
}

// New returns new BBS+ command instance.
func New() *Command {
	return &Command{
		bbs:     bbs12381g2pub.New(),
		keyHash: sha256.New,
	}
}

// GetHandlers returns list of all commands supported by this controller command.
func (c *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		cmdutil.NewCommandHandler(CommandName, GenerateKeyPairCommandMethod, c.GenerateKeyPair),
		cmdutil.NewCommandHandler(CommandName, BlsToBbsKeyCommandMethod, c.BlsToBbsKey),
		cmdutil.NewCommandHandler(CommandName, SignCommandMethod, c.Sign),
		cmdutil.NewCommandHandler(CommandName, VerifyCommandMethod, c.Verify),
		cmdutil.NewCommandHandler(CommandName, BlindCommitCommandMethod, c.BlindCommit),
		cmdutil.NewCommandHandler(CommandName, VerifyBlindCommitCommandMethod, c.VerifyBlindCommit),
		cmdutil.NewCommandHandler(CommandName, BlindSignCommandMethod, c.BlindSign),
		cmdutil.NewCommandHandler(CommandName, UnblindCommandMethod, c.Unblind),
		cmdutil.NewCommandHandler(CommandName, CreateProofCommandMethod, c.CreateProof),
		cmdutil.NewCommandHandler(CommandName, VerifyProofCommandMethod, c.VerifyProof),
		cmdutil.NewCommandHandler(CommandName, BlsSignCommandMethod, c.BlsSign),
		cmdutil.NewCommandHandler(CommandName, BlsVerifyCommandMethod, c.BlsVerify),
		cmdutil.NewCommandHandler(CommandName, BlsCreateProofCommandMethod, c.BlsCreateProof),
		cmdutil.NewCommandHandler(CommandName, BlsVerifyProofCommandMethod, c.BlsVerifyProof),
	}
}

// GenerateKeyPair creates a BLS12-381 G2 key pair and the BBS+ public key for the requested message count.
func (c *Command) GenerateKeyPair(rw io.Writer, req io.Reader) command.Error {
	var request GenerateKeyPairRequest

	if cmdErr := decodeRequest(req, &request, GenerateKeyPairCommandMethod); cmdErr != nil {
		return cmdErr
	}

	if len(request.Seed) != 0 && len(request.Seed) != seedSize {
		logutil.LogDebug(logger, CommandName, GenerateKeyPairCommandMethod, errInvalidSeed)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errInvalidSeed))
	}

	blsPubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(c.keyHash, request.Seed)
	if err != nil {
		logutil.LogError(logger, CommandName, GenerateKeyPairCommandMethod, err.Error())
		return command.NewExecuteError(GenerateKeyPairError, err)
	}

	bbsPubKeyBytes, cmdErr := expandPublicKey(blsPubKey, request.MessageCount, GenerateKeyPairCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	privKeyBytes, err := privKey.Marshal()
	if err != nil {
		logutil.LogError(logger, CommandName, GenerateKeyPairCommandMethod, err.Error())
		return command.NewExecuteError(GenerateKeyPairError, err)
	}

	blsPubKeyBytes, err := blsPubKey.Marshal()
	if err != nil {
		logutil.LogError(logger, CommandName, GenerateKeyPairCommandMethod, err.Error())
		return command.NewExecuteError(GenerateKeyPairError, err)
	}

	command.WriteNillableResponse(rw, &GenerateKeyPairResponse{
		SecretKey:    base58.Encode(privKeyBytes),
		PublicKey:    base58.Encode(bbsPubKeyBytes),
		BlsPublicKey: base58.Encode(blsPubKeyBytes),
		MessageCount: request.MessageCount,
	}, logger)

	logutil.LogDebug(logger, CommandName, GenerateKeyPairCommandMethod, "success",
		logutil.CreateKeyValueString("messageCount", strconv.Itoa(request.MessageCount)))

	return nil
}

// BlsToBbsKey expands a BLS12-381 G2 public key to a BBS+ public key supporting the requested message count.
func (c *Command) BlsToBbsKey(rw io.Writer, req io.Reader) command.Error {
	var request BlsToBbsKeyRequest

	if cmdErr := decodeRequest(req, &request, BlsToBbsKeyCommandMethod); cmdErr != nil {
		return cmdErr
	}

	blsPubKeyBytes, cmdErr := decodeKey(request.BlsPublicKey, errEmptyBlsPublicKey, BlsToBbsKeyCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	blsPubKey, err := bbs12381g2pub.UnmarshalPublicKey(blsPubKeyBytes)
	if err != nil {
		logutil.LogInfo(logger, CommandName, BlsToBbsKeyCommandMethod, err.Error())
		return command.NewValidationError(InvalidKeyErrorCode, fmt.Errorf("parse BLS public key: %w", err))
	}

	bbsPubKeyBytes, cmdErr := expandPublicKey(blsPubKey, request.MessageCount, BlsToBbsKeyCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	command.WriteNillableResponse(rw, &BlsToBbsKeyResponse{
		PublicKey:    base58.Encode(bbsPubKeyBytes),
		MessageCount: request.MessageCount,
	}, logger)

	logutil.LogDebug(logger, CommandName, BlsToBbsKeyCommandMethod, "success")

	return nil
}

// Sign signs the messages, their number must match the capacity of the public key.
func (c *Command) Sign(rw io.Writer, req io.Reader) command.Error {
	var request SignRequest

	if cmdErr := decodeRequest(req, &request, SignCommandMethod); cmdErr != nil {
		return cmdErr
	}

	privKeyBytes, cmdErr := decodeKey(request.SecretKey, errEmptySecretKey, SignCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	pubKeyBytes, cmdErr := decodeKey(request.PublicKey, errEmptyPublicKey, SignCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	signature, err := c.bbs.Sign(request.Messages, privKeyBytes, pubKeyBytes)
	if err != nil {
		return toCommandError(err, SignError, SignCommandMethod)
	}

	command.WriteNillableResponse(rw, &SignResponse{Signature: signature}, logger)

	logutil.LogDebug(logger, CommandName, SignCommandMethod, "success")

	return nil
}

// Verify verifies a signature. A signature that does not match or cannot be decoded is not an error:
// the response has verified=false.
func (c *Command) Verify(rw io.Writer, req io.Reader) command.Error {
	var request VerifyRequest

	if cmdErr := decodeRequest(req, &request, VerifyCommandMethod); cmdErr != nil {
		return cmdErr
	}

	pubKeyBytes, cmdErr := decodeKey(request.PublicKey, errEmptyPublicKey, VerifyCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Signature) == 0 {
		logutil.LogDebug(logger, CommandName, VerifyCommandMethod, errEmptySignature)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptySignature))
	}

	err := c.bbs.Verify(request.Messages, request.Signature, pubKeyBytes)

	return writeVerifyResult(rw, err, VerifyCommandMethod, bbs12381g2pub.ErrInvalidSignature,
		bbs12381g2pub.ErrMalformedSignature)
}

// BlindCommit commits to the messages the holder hides from the signer.
func (c *Command) BlindCommit(rw io.Writer, req io.Reader) command.Error {
	var request BlindCommitRequest

	if cmdErr := decodeRequest(req, &request, BlindCommitCommandMethod); cmdErr != nil {
		return cmdErr
	}

	pubKeyBytes, cmdErr := decodeKey(request.PublicKey, errEmptyPublicKey, BlindCommitCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	ctx, blinding, err := c.bbs.BlindCommit(request.Messages, request.Blinded, pubKeyBytes, request.Nonce)
	if err != nil {
		return toCommandError(err, BlindCommitError, BlindCommitCommandMethod)
	}

	command.WriteNillableResponse(rw, &BlindCommitResponse{
		Commitment:            ctx.CommitmentBytes(),
		ProofOfHiddenMessages: ctx.ProofBytes(),
		ChallengeHash:         ctx.ChallengeBytes(),
		BlindingFactor:        blinding.ToBytes(),
	}, logger)

	logutil.LogDebug(logger, CommandName, BlindCommitCommandMethod, "success",
		logutil.CreateKeyValueString("blinded", strconv.Itoa(len(request.Blinded))))

	return nil
}

// VerifyBlindCommit verifies the proof of hidden messages sent along with a commitment.
func (c *Command) VerifyBlindCommit(rw io.Writer, req io.Reader) command.Error {
	var request VerifyBlindCommitRequest

	if cmdErr := decodeRequest(req, &request, VerifyBlindCommitCommandMethod); cmdErr != nil {
		return cmdErr
	}

	pubKeyBytes, cmdErr := decodeKey(request.PublicKey, errEmptyPublicKey, VerifyBlindCommitCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Commitment) == 0 {
		logutil.LogDebug(logger, CommandName, VerifyBlindCommitCommandMethod, errEmptyCommitment)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyCommitment))
	}

	ctx, err := bbs12381g2pub.ParseBlindSignatureContext(request.Commitment, request.ProofOfHiddenMessages,
		request.ChallengeHash)
	if err != nil {
		return toCommandError(err, VerifyError, VerifyBlindCommitCommandMethod)
	}

	verified, err := c.bbs.VerifyBlindContext(ctx, request.Blinded, pubKeyBytes, request.Nonce)
	if err != nil {
		return toCommandError(err, VerifyError, VerifyBlindCommitCommandMethod)
	}

	command.WriteNillableResponse(rw, &VerifyResponse{Verified: verified}, logger)

	logutil.LogDebug(logger, CommandName, VerifyBlindCommitCommandMethod, "success",
		logutil.CreateKeyValueString("verified", strconv.FormatBool(verified)))

	return nil
}

// BlindSign signs a commitment together with the messages known to the signer.
func (c *Command) BlindSign(rw io.Writer, req io.Reader) command.Error {
	var request BlindSignRequest

	if cmdErr := decodeRequest(req, &request, BlindSignCommandMethod); cmdErr != nil {
		return cmdErr
	}

	privKeyBytes, cmdErr := decodeKey(request.SecretKey, errEmptySecretKey, BlindSignCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	pubKeyBytes, cmdErr := decodeKey(request.PublicKey, errEmptyPublicKey, BlindSignCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Commitment) == 0 {
		logutil.LogDebug(logger, CommandName, BlindSignCommandMethod, errEmptyCommitment)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyCommitment))
	}

	blindSignature, err := c.bbs.BlindSign(request.Messages, request.Known, request.Commitment,
		privKeyBytes, pubKeyBytes)
	if err != nil {
		return toCommandError(err, BlindSignError, BlindSignCommandMethod)
	}

	command.WriteNillableResponse(rw, &BlindSignResponse{BlindSignature: blindSignature}, logger)

	logutil.LogDebug(logger, CommandName, BlindSignCommandMethod, "success")

	return nil
}

// Unblind turns a blind signature into a regular signature.
func (c *Command) Unblind(rw io.Writer, req io.Reader) command.Error {
	var request UnblindRequest

	if cmdErr := decodeRequest(req, &request, UnblindCommandMethod); cmdErr != nil {
		return cmdErr
	}

	if len(request.BlindSignature) == 0 {
		logutil.LogDebug(logger, CommandName, UnblindCommandMethod, errEmptyBlindSignature)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyBlindSignature))
	}

	if len(request.BlindingFactor) == 0 {
		logutil.LogDebug(logger, CommandName, UnblindCommandMethod, errEmptyBlindingFactor)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyBlindingFactor))
	}

	signature, err := c.bbs.Unblind(request.BlindSignature, request.BlindingFactor)
	if err != nil {
		return toCommandError(err, UnblindError, UnblindCommandMethod)
	}

	command.WriteNillableResponse(rw, &UnblindResponse{Signature: signature}, logger)

	logutil.LogDebug(logger, CommandName, UnblindCommandMethod, "success")

	return nil
}

// CreateProof derives a proof of the signature revealing only the requested messages.
func (c *Command) CreateProof(rw io.Writer, req io.Reader) command.Error {
	var request CreateProofRequest

	if cmdErr := decodeRequest(req, &request, CreateProofCommandMethod); cmdErr != nil {
		return cmdErr
	}

	pubKeyBytes, cmdErr := decodeKey(request.PublicKey, errEmptyPublicKey, CreateProofCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Signature) == 0 {
		logutil.LogDebug(logger, CommandName, CreateProofCommandMethod, errEmptySignature)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptySignature))
	}

	proof, err := c.bbs.DeriveProof(request.Messages, request.Signature, request.Nonce, pubKeyBytes,
		request.Revealed)
	if err != nil {
		return toCommandError(err, CreateProofError, CreateProofCommandMethod)
	}

	command.WriteNillableResponse(rw, &CreateProofResponse{Proof: proof}, logger)

	logutil.LogDebug(logger, CommandName, CreateProofCommandMethod, "success",
		logutil.CreateKeyValueString("revealed", strconv.Itoa(len(request.Revealed))))

	return nil
}

// VerifyProof verifies a selective disclosure proof. Malformed proof bytes are a validation error,
// a proof that does not verify is reported as verified=false.
func (c *Command) VerifyProof(rw io.Writer, req io.Reader) command.Error {
	var request VerifyProofRequest

	if cmdErr := decodeRequest(req, &request, VerifyProofCommandMethod); cmdErr != nil {
		return cmdErr
	}

	pubKeyBytes, cmdErr := decodeKey(request.PublicKey, errEmptyPublicKey, VerifyProofCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Proof) == 0 {
		logutil.LogDebug(logger, CommandName, VerifyProofCommandMethod, errEmptyProof)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyProof))
	}

	err := c.bbs.VerifyProof(request.Messages, request.Proof, request.Nonce, pubKeyBytes)

	return writeVerifyResult(rw, err, VerifyProofCommandMethod, bbs12381g2pub.ErrInvalidProof)
}

// BlsSign signs the messages with the secret key, the generators are derived for the number of messages.
func (c *Command) BlsSign(rw io.Writer, req io.Reader) command.Error {
	var request BlsSignRequest

	if cmdErr := decodeRequest(req, &request, BlsSignCommandMethod); cmdErr != nil {
		return cmdErr
	}

	privKeyBytes, cmdErr := decodeKey(request.SecretKey, errEmptySecretKey, BlsSignCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	signature, err := c.bbs.BlsSign(request.Messages, privKeyBytes)
	if err != nil {
		return toCommandError(err, SignError, BlsSignCommandMethod)
	}

	command.WriteNillableResponse(rw, &SignResponse{Signature: signature}, logger)

	logutil.LogDebug(logger, CommandName, BlsSignCommandMethod, "success",
		logutil.CreateKeyValueString("messages", strconv.Itoa(len(request.Messages))))

	return nil
}

// BlsVerify verifies a signature with a BLS public key. Like Verify, a failed check has verified=false.
func (c *Command) BlsVerify(rw io.Writer, req io.Reader) command.Error {
	var request BlsVerifyRequest

	if cmdErr := decodeRequest(req, &request, BlsVerifyCommandMethod); cmdErr != nil {
		return cmdErr
	}

	blsPubKeyBytes, cmdErr := decodeKey(request.BlsPublicKey, errEmptyBlsPublicKey, BlsVerifyCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Signature) == 0 {
		logutil.LogDebug(logger, CommandName, BlsVerifyCommandMethod, errEmptySignature)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptySignature))
	}

	err := c.bbs.BlsVerify(request.Messages, request.Signature, blsPubKeyBytes)

	return writeVerifyResult(rw, err, BlsVerifyCommandMethod, bbs12381g2pub.ErrInvalidSignature,
		bbs12381g2pub.ErrMalformedSignature)
}

// BlsCreateProof derives a proof of the signature with a BLS public key.
func (c *Command) BlsCreateProof(rw io.Writer, req io.Reader) command.Error {
	var request BlsCreateProofRequest

	if cmdErr := decodeRequest(req, &request, BlsCreateProofCommandMethod); cmdErr != nil {
		return cmdErr
	}

	blsPubKeyBytes, cmdErr := decodeKey(request.BlsPublicKey, errEmptyBlsPublicKey, BlsCreateProofCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Signature) == 0 {
		logutil.LogDebug(logger, CommandName, BlsCreateProofCommandMethod, errEmptySignature)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptySignature))
	}

	proof, err := c.bbs.BlsDeriveProof(request.Messages, request.Signature, request.Nonce, blsPubKeyBytes,
		request.Revealed)
	if err != nil {
		return toCommandError(err, CreateProofError, BlsCreateProofCommandMethod)
	}

	command.WriteNillableResponse(rw, &CreateProofResponse{Proof: proof}, logger)

	logutil.LogDebug(logger, CommandName, BlsCreateProofCommandMethod, "success",
		logutil.CreateKeyValueString("revealed", strconv.Itoa(len(request.Revealed))))

	return nil
}

// BlsVerifyProof verifies a selective disclosure proof with a BLS public key.
func (c *Command) BlsVerifyProof(rw io.Writer, req io.Reader) command.Error {
	var request BlsVerifyProofRequest

	if cmdErr := decodeRequest(req, &request, BlsVerifyProofCommandMethod); cmdErr != nil {
		return cmdErr
	}

	blsPubKeyBytes, cmdErr := decodeKey(request.BlsPublicKey, errEmptyBlsPublicKey, BlsVerifyProofCommandMethod)
	if cmdErr != nil {
		return cmdErr
	}

	if len(request.Proof) == 0 {
		logutil.LogDebug(logger, CommandName, BlsVerifyProofCommandMethod, errEmptyProof)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyProof))
	}

	err := c.bbs.BlsVerifyProof(request.Messages, request.Proof, request.Nonce, blsPubKeyBytes)

	return writeVerifyResult(rw, err, BlsVerifyProofCommandMethod, bbs12381g2pub.ErrInvalidProof)
}

func expandPublicKey(blsPubKey *bbs12381g2pub.PublicKey, messageCount int, method string) ([]byte, command.Error) {
	bbsPubKey, err := blsPubKey.ToPublicKeyWithGenerators(messageCount)
	if err != nil {
		return nil, toCommandError(err, GenerateKeyPairError, method)
	}

	bbsPubKeyBytes, err := bbsPubKey.Marshal()
	if err != nil {
		logutil.LogError(logger, CommandName, method, err.Error())
		return nil, command.NewExecuteError(GenerateKeyPairError, err)
	}

	return bbsPubKeyBytes, nil
}

// writeVerifyResult writes verified=false for errors matching one of negatives, other errors are returned.
func writeVerifyResult(rw io.Writer, err error, method string, negatives ...error) command.Error {
	if err != nil && !isOneOf(err, negatives) {
		return toCommandError(err, VerifyError, method)
	}

	response := &VerifyResponse{Verified: err == nil}
	if err != nil {
		response.Error = err.Error()
	}

	command.WriteNillableResponse(rw, response, logger)

	logutil.LogDebug(logger, CommandName, method, "success",
		logutil.CreateKeyValueString("verified", strconv.FormatBool(response.Verified)))

	return nil
}

func isOneOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func decodeRequest(req io.Reader, request interface{}, method string) command.Error {
	if req == nil {
		logutil.LogDebug(logger, CommandName, method, "empty request")
		return command.NewValidationError(InvalidRequestErrorCode, errors.New("request is mandatory"))
	}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, method, err.Error())
		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("failed request decode : %w", err))
	}

	return nil
}

func decodeKey(key, errEmpty, method string) ([]byte, command.Error) {
	if key == "" {
		logutil.LogDebug(logger, CommandName, method, errEmpty)
		return nil, command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmpty))
	}

	keyBytes := base58.Decode(key)
	if len(keyBytes) == 0 {
		logutil.LogDebug(logger, CommandName, method, "invalid base58 key")
		return nil, command.NewValidationError(InvalidKeyErrorCode, errors.New("key is not base58 encoded"))
	}

	return keyBytes, nil
}

// toCommandError converts an error of the primitive to a validation error when it is caused by the input,
// and to an execute error with the fallback code otherwise.
func toCommandError(err error, fallback command.Code, method string) command.Error {
	for _, v := range validationCodes {
		if errors.Is(err, v.err) {
			logutil.LogInfo(logger, CommandName, method, err.Error())
			return command.NewValidationError(v.code, err)
		}
	}

	logutil.LogError(logger, CommandName, method, err.Error())

	return command.NewExecuteError(fallback, err)
}
