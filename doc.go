/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs provides BBS+ signatures over the BLS12-381 curve for Go developers.
//
// Packages for end developer usage
//
// pkg/crypto/primitive/bbs12381g2pub: Keys, signing and verification of message vectors, blind
// issuance over committed messages and zero-knowledge proofs which disclose selected messages only.
//
// pkg/controller/command/bbs: JSON request/response commands on top of the primitive, with typed
// error codes for invalid input.
//
// cmd/aries-bbs: Command line tool running one controller command per invocation.
//
// pkg/common/log: Module based logging, a custom logger can be plugged in with log.Initialize.
package bbs
